// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to StatusFor for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/stocktrack/pkg/httpx"
	"github.com/ghuser/stocktrack/pkg/logger"
	"github.com/ghuser/stocktrack/pkg/telemetry"
	inventory "github.com/ghuser/stocktrack/services/inventory/domain"
	product "github.com/ghuser/stocktrack/services/product/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, StatusFor(err), err.Error())
}

// StatusFor returns the HTTP status for err.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, inventory.ErrItemNotFound),
		errors.Is(err, product.ErrProductNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, inventory.ErrInvalidItem),
		errors.Is(err, inventory.ErrInvalidBooking),
		errors.Is(err, product.ErrInvalidProduct):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, inventory.ErrInvalidQuery),
		errors.Is(err, inventory.ErrInsufficientQuantity):
		return http.StatusBadRequest // 400
	default:
		return http.StatusInternalServerError // 500
	}
}

// Responder writes error responses for handlers. Server errors are logged,
// reported to Sentry and, in production, replaced by the status text.
type Responder struct {
	log          logger.Logger
	isProduction bool
}

// NewResponder returns a Responder.
func NewResponder(log logger.Logger, isProduction bool) *Responder {
	return &Responder{log: log, isProduction: isProduction}
}

// Write maps err and writes the JSON error body.
func (rs *Responder) Write(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		rs.log.ErrorContext(r.Context(), "request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
		telemetry.CaptureRequestError(r, err)
	}
	httpx.JSONError(w, status, httpx.SafeError(err, status, rs.isProduction))
}
