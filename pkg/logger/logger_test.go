package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/ghuser/stocktrack/pkg/config"
)

func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	recs := records(t, buf)
	require.NotEmpty(t, recs, "no log records")
	return recs[len(recs)-1]
}

func TestTraceHandler_InjectsSpanIDs(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug")

	ctx, parent := tp.Tracer("test").Start(context.Background(), "booking")
	log.InfoContext(ctx, "outer")
	outer := lastRecord(t, &buf)

	childCtx, child := tp.Tracer("test").Start(ctx, "update quantity")
	log.ErrorContext(childCtx, "inner", "error", "insufficient quantity")
	inner := lastRecord(t, &buf)
	child.End()
	parent.End()

	assert.Equal(t, parent.SpanContext().TraceID().String(), outer["trace_id"])
	assert.Equal(t, parent.SpanContext().SpanID().String(), outer["span_id"])
	assert.Equal(t, outer["trace_id"], inner["trace_id"], "child shares the trace")
	assert.Equal(t, child.SpanContext().SpanID().String(), inner["span_id"])
	assert.Equal(t, "ERROR", inner["level"])
}

func TestTraceHandler_NoSpan(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, "info").InfoContext(context.Background(), "plain")

	rec := lastRecord(t, &buf)
	assert.NotContains(t, rec, "trace_id")
	assert.NotContains(t, rec, "span_id")
}

func TestNew_BindsServiceAndEnv(t *testing.T) {
	// New writes to stdout; only the bound attributes are checked here.
	l := New(&config.Config{ServiceName: "stocktrack", Environment: "testing", LogLevel: "info"})
	sl := l.ToSlog()
	require.NotNil(t, sl)
	assert.True(t, sl.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, sl.Enabled(context.Background(), slog.LevelDebug))
}

func TestMiddleware_AccessLog(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug")

	r := chi.NewRouter()
	r.Use(middleware.RequestID, Middleware(log))
	r.Get("/api/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":7}`))
	})
	r.Get("/api/items", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {})

	tests := []struct {
		target    string
		wantLevel string
		check     func(t *testing.T, rec map[string]any)
	}{
		{"/api/items/7", "INFO", func(t *testing.T, rec map[string]any) {
			assert.Equal(t, "/api/items/{id}", rec["route"])
			assert.Equal(t, float64(8), rec["bytes"])
			assert.NotEmpty(t, rec["request_id"])
		}},
		{"/api/items?sortBy=name", "WARN", func(t *testing.T, rec map[string]any) {
			assert.Equal(t, float64(http.StatusInternalServerError), rec["status"])
			assert.Equal(t, "sortBy=name", rec["query"])
		}},
		{"/health", "DEBUG", func(*testing.T, map[string]any) {}},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			buf.Reset()
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.target, http.NoBody))
			rec := lastRecord(t, &buf)
			assert.Equal(t, "request", rec["msg"])
			assert.Equal(t, tt.wantLevel, rec["level"])
			tt.check(t, rec)
		})
	}
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	h := Recovery(NewWithWriter(&buf, "debug"))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/bookings", http.NoBody))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rr.Body.String())
	rec := lastRecord(t, &buf)
	assert.Equal(t, "panic recovered", rec["msg"])
	assert.Equal(t, "/api/bookings", rec["path"])
	assert.Contains(t, rec["stack"], "runtime/debug")
}

func TestRecovery_AbortHandlerPropagates(t *testing.T) {
	h := Recovery(Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	})
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), "%q", in)
	}
}
