package validator_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgvalidator "github.com/ghuser/stocktrack/pkg/validator"
)

type location struct {
	Position int    `json:"position" validate:"gte=1,lte=9"`
	Side     string `json:"side"     validate:"required,oneof=left right"`
}

type itemReq struct {
	Name     string    `json:"name"     validate:"required,notblank,max=10"`
	Quantity int       `json:"quantity" validate:"gte=0"`
	Note     *string   `json:"note"     validate:"omitempty,notblank"`
	Location *location `json:"location" validate:"omitempty"`
}

type bookingReq struct {
	ItemID   int64  `json:"itemId"   validate:"required,gt=0"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
	Type     string `json:"type"     validate:"required,oneof=in out"`
}

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func post[T any](t *testing.T, body string) (*T, int, errorBody) {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()
	got, ok := pkgvalidator.ValidateRequest[T](w, r)
	var eb errorBody
	if !ok {
		require.NoError(t, json.NewDecoder(w.Body).Decode(&eb))
		return nil, w.Code, eb
	}
	return got, http.StatusOK, eb
}

func TestValidateRequest_Valid(t *testing.T) {
	got, code, _ := post[itemReq](t, `{"name":"M4 screw","quantity":3,"location":{"position":2,"side":"left"}}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "M4 screw", got.Name)
	assert.Equal(t, 2, got.Location.Position)
}

func TestValidateRequest_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"broken json", `{"name":`, "Invalid JSON"},
		{"unknown field", `{"name":"x","qty":3}`, `Invalid JSON: unknown field "qty"`},
		{"wrong type", `{"name":"x","quantity":"three"}`, "Invalid JSON: field quantity must be int"},
		{"trailing value", `{"name":"x"} {"name":"y"}`, "Invalid JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, code, eb := post[itemReq](t, tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, tt.wantMsg, eb.Error)
		})
	}
}

func TestValidateRequest_FieldErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
		want  string
	}{
		{"missing name", `{"quantity":1}`, "name", "This field is required"},
		{"blank name", `{"name":"   "}`, "name", "Must not be blank"},
		{"long name", `{"name":"abcdefghijk"}`, "name", "Maximum length is 10"},
		{"negative quantity", `{"name":"x","quantity":-1}`, "quantity", "Must be greater than or equal to 0"},
		{"blank optional note", `{"name":"x","note":" "}`, "note", "Must not be blank"},
		{"nested position", `{"name":"x","location":{"position":10,"side":"left"}}`, "location.position", "Must be less than or equal to 9"},
		{"nested side", `{"name":"x","location":{"position":1,"side":"up"}}`, "location.side", "Must be one of: left, right"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, code, eb := post[itemReq](t, tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, code)
			assert.Equal(t, "Validation failed", eb.Error)
			assert.Equal(t, tt.want, eb.Fields[tt.field], eb.Fields)
		})
	}
}

func TestValidateRequest_ReportsEveryField(t *testing.T) {
	_, code, eb := post[bookingReq](t, `{"itemId":1,"quantity":-2,"type":"sideways"}`)
	require.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, map[string]string{
		"quantity": "Must be greater than 0",
		"type":     "Must be one of: in, out",
	}, eb.Fields)
}

func TestValidateRequest_BodyTooLarge(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"itemId":1,"quantity":2,"type":"in"}`))
	w := httptest.NewRecorder()
	r.Body = http.MaxBytesReader(w, r.Body, 8)

	_, ok := pkgvalidator.ValidateRequest[bookingReq](w, r)
	assert.False(t, ok)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestFormatValidationErrors_NotValidationError(t *testing.T) {
	assert.Empty(t, pkgvalidator.FormatValidationErrors(assert.AnError))
	assert.Empty(t, pkgvalidator.FormatValidationErrors(nil))
}

func TestValidate_FieldNameFallsBackToGoName(t *testing.T) {
	type untagged struct {
		Code string `validate:"required"`
	}
	err := pkgvalidator.Validate(&untagged{})
	require.Error(t, err)
	assert.Contains(t, pkgvalidator.FormatValidationErrors(err), "Code")
}
