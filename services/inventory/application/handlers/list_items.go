package handlers

import (
	"net/http"

	"github.com/ghuser/stocktrack/pkg/errhttp"
	"github.com/ghuser/stocktrack/pkg/httpx"
	appsvcs "github.com/ghuser/stocktrack/services/inventory/application/services"
)

// ListItemsHandler handles GET /items requests.
type ListItemsHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewListItemsHandler returns a ListItemsHandler backed by the given services.
func NewListItemsHandler(svc *appsvcs.Services, errs *errhttp.Responder) *ListItemsHandler {
	return &ListItemsHandler{svc: svc, errs: errs}
}

// Execute lists items.
//
//	@Summary		List items
//	@Description	Lists items filtered by a name/location substring and an exact location, sorted by an allow-listed field
//	@Tags			items
//	@Produce		json
//	@Param			search		query		string	false	"Case-insensitive substring of name or location"
//	@Param			location	query		string	false	"Exact location"
//	@Param			sortBy		query		string	false	"Sort field"	Enums(id, name, quantity, location, createdAt, updatedAt)	default(name)
//	@Param			sortOrder	query		string	false	"Sort order"	Enums(asc, desc)	default(asc)
//	@Success		200			{array}		ItemResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/items [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Item.List(r.Context(), listInputFromQuery(r))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponses(items))
}
