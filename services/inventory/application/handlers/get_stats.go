package handlers

import (
	"net/http"

	"github.com/ghuser/stocktrack/pkg/errhttp"
	"github.com/ghuser/stocktrack/pkg/httpx"
	appsvcs "github.com/ghuser/stocktrack/services/inventory/application/services"
)

// GetStatsHandler handles GET /stats requests.
type GetStatsHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewGetStatsHandler returns a GetStatsHandler backed by the given services.
func NewGetStatsHandler(svc *appsvcs.Services, errs *errhttp.Responder) *GetStatsHandler {
	return &GetStatsHandler{svc: svc, errs: errs}
}

// Execute returns dashboard statistics.
//
//	@Summary	Inventory statistics
//	@Tags		stats
//	@Produce	json
//	@Success	200	{object}	StatsResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/stats [get]
func (h *GetStatsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats.Get(r.Context())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, StatsResponse{
		TotalItems:    st.TotalItems,
		TotalQuantity: st.TotalQuantity,
		LowStock:      st.LowStock,
		OutOfStock:    st.OutOfStock,
		TotalBookings: st.TotalBookings,
	})
}
