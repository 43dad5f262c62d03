package handlers

import (
	"net/http"

	"github.com/ghuser/stocktrack/pkg/errhttp"
	"github.com/ghuser/stocktrack/pkg/httpx"
	appsvcs "github.com/ghuser/stocktrack/services/inventory/application/services"
)

// ListBookingsHandler handles GET /bookings requests.
type ListBookingsHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewListBookingsHandler returns a ListBookingsHandler backed by the given services.
func NewListBookingsHandler(svc *appsvcs.Services, errs *errhttp.Responder) *ListBookingsHandler {
	return &ListBookingsHandler{svc: svc, errs: errs}
}

// Execute lists bookings newest first.
//
//	@Summary	List bookings
//	@Tags		bookings
//	@Produce	json
//	@Param		itemId	query		int	false	"Only bookings of this item"
//	@Success	200		{array}		BookingResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	500		{object}	ErrorResponse
//	@Router		/bookings [get]
func (h *ListBookingsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var itemID *int64
	if raw := r.URL.Query().Get("itemId"); raw != "" {
		id, err := parsePositiveID(raw, "itemId")
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		itemID = &id
	}

	bookings, err := h.svc.Booking.List(r.Context(), itemID)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	out := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = toBookingResponse(b)
	}
	httpx.JSON(w, http.StatusOK, out)
}
