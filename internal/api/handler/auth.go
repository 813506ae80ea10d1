package handler

import (
	"errors"
	"net/http"

	"github.com/mcoot/tilepath/internal/api/middleware"
	"github.com/mcoot/tilepath/internal/api/request"
	"github.com/mcoot/tilepath/internal/api/response"
	"github.com/mcoot/tilepath/internal/metrics"
	"github.com/mcoot/tilepath/internal/services/auth"
)

// AuthHandler handles registration, login and token inspection
type AuthHandler struct {
	authService *auth.Service
	metrics     *metrics.Metrics
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, metrics *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		metrics:     metrics,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	if _, err := h.authService.Register(r.Context(), req.Input()); err != nil {
		WriteError(w, err)
		return
	}

	h.metrics.Registrations.Inc()
	response.JSON(w, http.StatusOK, response.Message{Message: "User registered successfully"})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	result, err := h.authService.Login(r.Context(), req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.metrics.RecordLogin(false)
		}
		WriteError(w, err)
		return
	}

	h.metrics.RecordLogin(true)
	response.JSON(w, http.StatusOK, response.LoginFromResult(result))
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.MustGetClaims(r.Context())
	response.JSON(w, http.StatusOK, response.MeFromClaims(claims))
}
