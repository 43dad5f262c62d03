package handlers

import (
	"net/http"

	"github.com/ghuser/stocktrack/pkg/errhttp"
	"github.com/ghuser/stocktrack/pkg/httpx"
	pkgvalidator "github.com/ghuser/stocktrack/pkg/validator"
	appsvcs "github.com/ghuser/stocktrack/services/inventory/application/services"
)

// CreateItemRequest is the request body for POST /items.
type CreateItemRequest struct {
	Name     string `json:"name"     validate:"required,notblank,max=255" example:"M4 screws"`
	Quantity int    `json:"quantity" validate:"gte=0"                     example:"120"`
	Location string `json:"location" validate:"required,notblank,max=255" example:"Cabinet 1, left top"`
} // @name CreateItemRequest

// PostItemHandler handles POST /items requests.
type PostItemHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services, errs *errhttp.Responder) *PostItemHandler {
	return &PostItemHandler{svc: svc, errs: errs}
}

// Execute creates a new item.
//
//	@Summary		Create item
//	@Description	Creates a new item with an initial quantity at a storage location
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateItemRequest	true	"Item creation request"
//	@Success		201		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Item.Create(r.Context(), appsvcs.CreateItemInput{
		Name:     req.Name,
		Quantity: req.Quantity,
		Location: req.Location,
	})
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toItemResponse(item))
}
