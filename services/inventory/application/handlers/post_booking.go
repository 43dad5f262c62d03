package handlers

import (
	"net/http"

	"github.com/ghuser/stocktrack/pkg/errhttp"
	"github.com/ghuser/stocktrack/pkg/httpx"
	pkgvalidator "github.com/ghuser/stocktrack/pkg/validator"
	appsvcs "github.com/ghuser/stocktrack/services/inventory/application/services"
)

// CreateBookingRequest is the request body for POST /bookings.
type CreateBookingRequest struct {
	ItemID   int64  `json:"itemId"   validate:"required,gt=0"       example:"1"`
	Quantity int    `json:"quantity" validate:"required,gt=0"       example:"5"`
	Type     string `json:"type"     validate:"required,oneof=in out" example:"out" enums:"in,out"`
	Notes    string `json:"notes"    validate:"max=1000"            example:"Order #4711"`
} // @name CreateBookingRequest

// PostBookingHandler handles POST /bookings requests.
type PostBookingHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewPostBookingHandler returns a PostBookingHandler backed by the given services.
func NewPostBookingHandler(svc *appsvcs.Services, errs *errhttp.Responder) *PostBookingHandler {
	return &PostBookingHandler{svc: svc, errs: errs}
}

// Execute records a stock movement.
//
//	@Summary		Book stock in or out
//	@Description	Atomically records the booking and adjusts the item quantity. Out-bookings beyond the quantity on hand are rejected.
//	@Tags			bookings
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateBookingRequest	true	"Booking"
//	@Success		201		{object}	BookingResponse
//	@Failure		400		{object}	ErrorResponse	"Malformed body or insufficient quantity"
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/bookings [post]
func (h *PostBookingHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateBookingRequest](w, r)
	if !ok {
		return
	}

	booking, err := h.svc.Booking.Apply(r.Context(), appsvcs.ApplyBookingInput{
		ItemID:   req.ItemID,
		Quantity: req.Quantity,
		Type:     req.Type,
		Notes:    req.Notes,
	})
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toBookingResponse(booking))
}
