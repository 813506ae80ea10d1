package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/tilepath/internal/api/apierr"
	sharedmw "github.com/mcoot/tilepath/internal/middleware"
)

// Recovery creates panic recovery middleware for the API. Clients get the
// same opaque INTERNAL_ERROR body as any other unexpected failure.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return sharedmw.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}

// Logging creates request logging middleware for the API
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return sharedmw.Logging(logger)
}
