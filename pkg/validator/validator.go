// Package validator decodes and validates JSON request bodies with
// go-playground/validator. Field names in error maps follow the json tags.
package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ghuser/stocktrack/pkg/httpx"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// notblank rejects strings made only of whitespace; nil pointers pass.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		if f.Kind() != reflect.String {
			return true
		}
		return strings.TrimSpace(f.String()) != ""
	})
	return v
}

// Validate runs struct-level validation.
func Validate(s any) error {
	return validate.Struct(s)
}

// FormatValidationErrors maps each failing json field to a readable message.
// Nested fields use dotted paths, e.g. "storageLocation.side".
func FormatValidationErrors(err error) map[string]string {
	out := make(map[string]string)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return out
	}
	for _, e := range ve {
		out[fieldPath(e)] = fieldMessage(e)
	}
	return out
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(e validator.FieldError) string {
	if _, rest, ok := strings.Cut(e.Namespace(), "."); ok {
		return rest
	}
	return e.Field()
}

var messages = map[string]string{
	"required": "This field is required",
	"notblank": "Must not be blank",
	"uuid":     "Must be a valid UUID",
	"uuid4":    "Must be a valid UUID",
	"numeric":  "Must be a numeric value",
	"min":      "Minimum length is %s",
	"max":      "Maximum length is %s",
	"gt":       "Must be greater than %s",
	"gte":      "Must be greater than or equal to %s",
	"lt":       "Must be less than %s",
	"lte":      "Must be less than or equal to %s",
}

func fieldMessage(e validator.FieldError) string {
	if e.Tag() == "oneof" {
		return "Must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
	}
	msg, ok := messages[e.Tag()]
	if !ok {
		return fmt.Sprintf("Validation failed on '%s'", e.Tag())
	}
	if strings.Contains(msg, "%s") {
		return fmt.Sprintf(msg, e.Param())
	}
	return msg
}

// decodeError turns a json decoding failure into a client message. Unknown
// fields are named so typos such as "qty" for "quantity" are easy to spot.
func decodeError(err error) (int, string) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge, "Request body too large"
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return http.StatusBadRequest, fmt.Sprintf("Invalid JSON: field %s must be %s", typeErr.Field, typeErr.Type)
	}
	const unknownPrefix = "json: unknown field "
	if msg := err.Error(); strings.HasPrefix(msg, unknownPrefix) {
		return http.StatusBadRequest, "Invalid JSON: unknown field " + strings.TrimPrefix(msg, unknownPrefix)
	}
	return http.StatusBadRequest, "Invalid JSON"
}

// ValidateRequest decodes the JSON body into T and validates it. On failure
// it writes the error response (400 malformed, 413 too large, 422 invalid)
// and returns false. Unknown fields and trailing data count as malformed.
func ValidateRequest[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	var req T
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		status, msg := decodeError(err)
		httpx.JSONError(w, status, msg)
		return nil, false
	}
	if dec.More() {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON")
		return nil, false
	}
	if err := Validate(&req); err != nil {
		httpx.JSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "Validation failed",
			"fields": FormatValidationErrors(err),
		})
		return nil, false
	}
	return &req, true
}
