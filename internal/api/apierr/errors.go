package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/mcoot/tilepath/internal/model"
	"github.com/mcoot/tilepath/internal/services/auth"
	"github.com/mcoot/tilepath/internal/services/password"
	"github.com/mcoot/tilepath/internal/services/phone"
	"github.com/mcoot/tilepath/internal/services/token"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodePhoneExists        = "PHONE_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeRequestTooLarge    = "REQUEST_TOO_LARGE"
	CodeInvalidGameID      = "INVALID_GAME_ID"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status WriteError would use for err
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &httpError{http.StatusRequestEntityTooLarge, APIError{CodeRequestTooLarge, "Request body too large"}}
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return &httpError{http.StatusBadRequest, APIError{CodeValidationError, verrs.Error()}}
	}

	switch {
	// Map validation errors raised by services
	case errors.Is(err, model.ErrInvalidRole):
		return &httpError{http.StatusBadRequest, APIError{CodeValidationError, "Role must be one of: boss, player"}}
	case errors.Is(err, phone.ErrInvalidPhone):
		return &httpError{http.StatusBadRequest, APIError{CodeValidationError, "Invalid phone number"}}
	case errors.Is(err, password.ErrPasswordTooLong):
		return &httpError{http.StatusBadRequest, APIError{CodeValidationError, "Password must be at most 72 bytes"}}

	// Map game errors
	case errors.Is(err, model.ErrMalformedID):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidGameID, "Invalid game ID format"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}

	// Map auth errors
	case errors.Is(err, auth.ErrPhoneExists):
		return &httpError{http.StatusBadRequest, APIError{CodePhoneExists, "Phone number already registered"}}
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid phone or password"}}
	case errors.Is(err, token.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired token"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) error {
	return &httpError{http.StatusForbidden, APIError{CodeForbidden, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
