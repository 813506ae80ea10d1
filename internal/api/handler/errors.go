package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/mcoot/tilepath/internal/api/apierr"
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// MaxBodyBytes caps the size of a JSON request body
const MaxBodyBytes = 1 << 20

// decode reads a JSON body into req and runs its validation rules. On
// failure the error response has already been written.
func decode(w http.ResponseWriter, r *http.Request, req validation.Validatable) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, err)
			return false
		}
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return false
	}
	if err := req.Validate(); err != nil {
		WriteError(w, err)
		return false
	}
	return true
}
