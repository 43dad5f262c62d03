package errhttp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ghuser/stocktrack/pkg/logger"
	inventory "github.com/ghuser/stocktrack/services/inventory/domain"
	product "github.com/ghuser/stocktrack/services/product/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrItemNotFound", inventory.ErrItemNotFound, http.StatusNotFound},
		{"ErrProductNotFound", product.ErrProductNotFound, http.StatusNotFound},
		{"ErrInvalidItem", inventory.ErrInvalidItem, http.StatusUnprocessableEntity},
		{"ErrInvalidBooking", inventory.ErrInvalidBooking, http.StatusUnprocessableEntity},
		{"ErrInvalidProduct", product.ErrInvalidProduct, http.StatusUnprocessableEntity},
		{"ErrInvalidQuery", inventory.ErrInvalidQuery, http.StatusBadRequest},
		{"ErrInsufficientQuantity", inventory.ErrInsufficientQuantity, http.StatusBadRequest},
		{"wrapped ErrItemNotFound", fmt.Errorf("get item: %w", inventory.ErrItemNotFound), http.StatusNotFound},
		{"wrapped ErrInsufficientQuantity", fmt.Errorf("record booking: %w: requested 5, available 2", inventory.ErrInsufficientQuantity), http.StatusBadRequest},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
		{"generic wrapped error", fmt.Errorf("context: %w", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestWriteError_JSONBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, inventory.ErrItemNotFound)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if body["error"] != "item not found" {
		t.Fatalf("unexpected error body: %v", body)
	}
	if ct := w.Header().Get("Content-Type"); ct == "" {
		t.Fatal("Content-Type header not set")
	}
}

func TestResponder_Write(t *testing.T) {
	tests := []struct {
		name         string
		production   bool
		err          error
		wantStatus   int
		wantMessage  string
		wantLogEntry bool
	}{
		{"client error keeps message", true, fmt.Errorf("record booking: %w", inventory.ErrInsufficientQuantity), http.StatusBadRequest, "record booking: insufficient quantity", false},
		{"server error masked in production", true, errors.New("pq: connection refused"), http.StatusInternalServerError, "Internal Server Error", true},
		{"server error visible in development", false, errors.New("pq: connection refused"), http.StatusInternalServerError, "pq: connection refused", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			rs := NewResponder(logger.NewWithWriter(&logs, "info"), tt.production)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/bookings", nil)
			rs.Write(w, r, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body["error"] != tt.wantMessage {
				t.Fatalf("expected message %q, got %q", tt.wantMessage, body["error"])
			}
			logged := strings.Contains(logs.String(), "request failed")
			if logged != tt.wantLogEntry {
				t.Fatalf("log entry present = %v, want %v (logs: %s)", logged, tt.wantLogEntry, logs.String())
			}
		})
	}
}
