package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ghuser/stocktrack/pkg/errhttp"
	"github.com/ghuser/stocktrack/pkg/httpx"
	appsvcs "github.com/ghuser/stocktrack/services/inventory/application/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportItemsHandler handles GET /items/export requests.
type ExportItemsHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewExportItemsHandler returns an ExportItemsHandler backed by the given services.
func NewExportItemsHandler(svc *appsvcs.Services, errs *errhttp.Responder) *ExportItemsHandler {
	return &ExportItemsHandler{svc: svc, errs: errs}
}

// Execute downloads the item listing as an Excel workbook.
//
//	@Summary	Export items
//	@Tags		items
//	@Produce	application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Param		search		query		string	false	"Case-insensitive substring of name or location"
//	@Param		location	query		string	false	"Exact location"
//	@Param		sortBy		query		string	false	"Sort field"
//	@Param		sortOrder	query		string	false	"Sort order"
//	@Success	200			{file}		file
//	@Failure	400			{object}	ErrorResponse
//	@Failure	500			{object}	ErrorResponse
//	@Router		/items/export [get]
func (h *ExportItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.Export.Items(r.Context(), listInputFromQuery(r))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	filename := fmt.Sprintf("items-%s.xlsx", time.Now().UTC().Format("20060102"))
	httpx.Blob(w, http.StatusOK, xlsxContentType, filename, data)
}
