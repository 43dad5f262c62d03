package handlers

import (
	"net/http"

	"github.com/ghuser/stocktrack/pkg/errhttp"
	"github.com/ghuser/stocktrack/pkg/httpx"
	pkgvalidator "github.com/ghuser/stocktrack/pkg/validator"
	appsvcs "github.com/ghuser/stocktrack/services/inventory/application/services"
)

// UpdateItemRequest is the request body for PUT /items/{id}. Omitted fields
// are left unchanged.
type UpdateItemRequest struct {
	Name     *string `json:"name,omitempty"     validate:"omitempty,notblank,max=255" example:"M4 screws"`
	Quantity *int    `json:"quantity,omitempty" validate:"omitempty,gte=0"            example:"80"`
	Location *string `json:"location,omitempty" validate:"omitempty,notblank,max=255" example:"Cabinet 2, right middle"`
} // @name UpdateItemRequest

// PutItemHandler handles PUT /items/{id} requests.
type PutItemHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewPutItemHandler returns a PutItemHandler backed by the given services.
func NewPutItemHandler(svc *appsvcs.Services, errs *errhttp.Responder) *PutItemHandler {
	return &PutItemHandler{svc: svc, errs: errs}
}

// Execute updates an item.
//
//	@Summary		Update item
//	@Description	Replaces the given fields of an item. A quantity here is a stock correction and is not recorded as a booking.
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Item ID"
//	@Param			request	body		UpdateItemRequest	true	"Fields to change"
//	@Success		200		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/items/{id} [put]
func (h *PutItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Item.Update(r.Context(), id, appsvcs.UpdateItemInput{
		Name:     req.Name,
		Quantity: req.Quantity,
		Location: req.Location,
	})
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
