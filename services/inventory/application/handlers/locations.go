package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ghuser/stocktrack/pkg/errhttp"
	"github.com/ghuser/stocktrack/pkg/httpx"
	appsvcs "github.com/ghuser/stocktrack/services/inventory/application/services"
)

// LocationsHandler serves the storage layout endpoints.
type LocationsHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewLocationsHandler returns a LocationsHandler backed by the given services.
func NewLocationsHandler(svc *appsvcs.Services, errs *errhttp.Responder) *LocationsHandler {
	return &LocationsHandler{svc: svc, errs: errs}
}

// List returns every canonical storage location.
//
//	@Summary	List storage locations
//	@Tags		locations
//	@Produce	json
//	@Success	200	{array}	string
//	@Router		/locations [get]
func (h *LocationsHandler) List(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, h.svc.Locations.All())
}

// QRCode renders a PNG QR label for a location.
//
//	@Summary	Location QR code
//	@Tags		locations
//	@Produce	png
//	@Param		location	query		string	true	"Location, e.g. Cabinet 1, left top"
//	@Param		size		query		int		false	"Edge length in pixels (64-1024)"	default(256)
//	@Success	200			{file}		file
//	@Failure	400			{object}	ErrorResponse
//	@Router		/locations/qr [get]
func (h *LocationsHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	size := 0
	if raw := q.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid size %q", raw))
			return
		}
		size = n
	}

	png, err := h.svc.Locations.QRCode(q.Get("location"), size)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	httpx.Blob(w, http.StatusOK, "image/png", "", png)
}

// StorageMap places all items on the cabinet layout.
//
//	@Summary	Storage map
//	@Tags		locations
//	@Produce	json
//	@Success	200	{object}	StorageMapResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/storage-map [get]
func (h *LocationsHandler) StorageMap(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Locations.StorageMap(r.Context())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toStorageMapResponse(m))
}
