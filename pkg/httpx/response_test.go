package httpx_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/stocktrack/pkg/httpx"
)

func TestJSON_setsHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("unexpected Content-Type: %q", ct)
	}
	if xct := w.Header().Get("X-Content-Type-Options"); xct != "nosniff" {
		t.Errorf("expected nosniff, got %q", xct)
	}
}

func TestJSON_encodesBody(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.JSON(w, http.StatusCreated, map[string]string{"id": "abc"})

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body["id"] != "abc" {
		t.Errorf("unexpected body: %v", body)
	}
	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.JSONError(w, http.StatusBadRequest, "something went wrong")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body["error"] != "something went wrong" {
		t.Errorf("unexpected error message: %q", body["error"])
	}
}

func TestBlob_setsDownloadHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.Blob(w, http.StatusOK, "image/png", "qrcode-cabinet-1.png", []byte{0x89, 'P', 'N', 'G'})

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("unexpected Content-Type: %q", ct)
	}
	if cl := w.Header().Get("Content-Length"); cl != "4" {
		t.Errorf("unexpected Content-Length: %q", cl)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename=qrcode-cabinet-1.png` {
		t.Errorf("unexpected Content-Disposition: %q", cd)
	}
	if w.Body.Len() != 4 {
		t.Errorf("expected 4 body bytes, got %d", w.Body.Len())
	}
}

func TestBlob_inlineWithoutFilename(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.Blob(w, http.StatusOK, "image/png", "", []byte("x"))
	if cd := w.Header().Get("Content-Disposition"); cd != "" {
		t.Errorf("expected no Content-Disposition, got %q", cd)
	}
}

func TestNoContent(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.NoContent(w)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", w.Body.String())
	}
}

func TestSafeError(t *testing.T) {
	err := errors.New("pq: relation \"items\" does not exist")
	if got := httpx.SafeError(err, http.StatusInternalServerError, true); got != "Internal Server Error" {
		t.Errorf("production 500 must be masked, got %q", got)
	}
	if got := httpx.SafeError(err, http.StatusInternalServerError, false); got != err.Error() {
		t.Errorf("development 500 must keep the message, got %q", got)
	}
	if got := httpx.SafeError(err, http.StatusBadRequest, true); got != err.Error() {
		t.Errorf("4xx must keep the message, got %q", got)
	}
}
