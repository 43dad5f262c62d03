package handlers

import (
	"net/http"

	"github.com/ghuser/stocktrack/pkg/errhttp"
	"github.com/ghuser/stocktrack/pkg/httpx"
	appsvcs "github.com/ghuser/stocktrack/services/inventory/application/services"
)

// DeleteItemHandler handles DELETE /items/{id} requests.
type DeleteItemHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewDeleteItemHandler returns a DeleteItemHandler backed by the given services.
func NewDeleteItemHandler(svc *appsvcs.Services, errs *errhttp.Responder) *DeleteItemHandler {
	return &DeleteItemHandler{svc: svc, errs: errs}
}

// Execute deletes an item together with its bookings.
//
//	@Summary	Delete item
//	@Tags		items
//	@Param		id	path	int	true	"Item ID"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/items/{id} [delete]
func (h *DeleteItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Item.Delete(r.Context(), id); err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.NoContent(w)
}
