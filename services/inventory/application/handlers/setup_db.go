package handlers

import (
	"context"
	"net/http"

	"github.com/ghuser/stocktrack/pkg/httpx"
	"github.com/ghuser/stocktrack/pkg/logger"
	appsvcs "github.com/ghuser/stocktrack/services/inventory/application/services"
)

// MigrateFunc applies pending schema migrations and returns the applied versions.
type MigrateFunc func(ctx context.Context) ([]int64, error)

// SetupResponse reports the schema state.
type SetupResponse struct {
	Success   bool    `json:"success"`
	Message   string  `json:"message,omitempty"   example:"Database is set up correctly"`
	ItemCount *int64  `json:"itemCount,omitempty" example:"42"`
	Applied   []int64 `json:"applied,omitempty"`
	Error     string  `json:"error,omitempty"`
} // @name SetupResponse

// SetupDBHandler handles the /setup-db endpoints.
type SetupDBHandler struct {
	svc     *appsvcs.Services
	migrate MigrateFunc
	log     logger.Logger
}

// NewSetupDBHandler returns a SetupDBHandler that runs migrate on demand.
func NewSetupDBHandler(svc *appsvcs.Services, migrate MigrateFunc, log logger.Logger) *SetupDBHandler {
	return &SetupDBHandler{svc: svc, migrate: migrate, log: log}
}

// Status reports whether the inventory tables exist.
//
//	@Summary	Database status
//	@Tags		setup
//	@Produce	json
//	@Success	200	{object}	SetupResponse
//	@Failure	500	{object}	SetupResponse
//	@Router		/setup-db [get]
func (h *SetupDBHandler) Status(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Item.Count(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "database status check failed", "error", err)
		httpx.JSON(w, http.StatusInternalServerError, SetupResponse{
			Success: false,
			Error:   "Failed to set up database. Please run migrations.",
		})
		return
	}
	httpx.JSON(w, http.StatusOK, SetupResponse{
		Success:   true,
		Message:   "Database is set up correctly",
		ItemCount: &n,
	})
}

// Migrate creates the inventory tables if they do not exist.
//
//	@Summary	Run migrations
//	@Tags		setup
//	@Produce	json
//	@Success	200	{object}	SetupResponse
//	@Failure	500	{object}	SetupResponse
//	@Router		/setup-db/migrate [post]
func (h *SetupDBHandler) Migrate(w http.ResponseWriter, r *http.Request) {
	applied, err := h.migrate(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "database migration failed", "error", err)
		httpx.JSON(w, http.StatusInternalServerError, SetupResponse{
			Success: false,
			Error:   "Failed to run migration",
		})
		return
	}
	h.log.InfoContext(r.Context(), "database migration completed", "applied", applied)
	httpx.JSON(w, http.StatusOK, SetupResponse{
		Success: true,
		Message: "Database migration completed successfully",
		Applied: applied,
	})
}
