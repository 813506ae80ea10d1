package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tilepath/internal/api/handler"
	"github.com/mcoot/tilepath/internal/api/middleware"
	"github.com/mcoot/tilepath/internal/api/stream"
	"github.com/mcoot/tilepath/internal/metrics"
	sharedmw "github.com/mcoot/tilepath/internal/middleware"
	"github.com/mcoot/tilepath/internal/model"
	"github.com/mcoot/tilepath/internal/services/auth"
	"github.com/mcoot/tilepath/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	AuthService *auth.Service
	GameService *game.Service
	Storage     handler.Pinger
	Metrics     *metrics.Metrics

	// Streams serves live attempt feeds; the feed route is omitted when nil
	Streams *stream.HubManager

	// RequireAuth protects the game routes with bearer tokens; creating a
	// game then also needs the boss role
	RequireAuth bool

	// CORSOrigins lists browser origins allowed to call the API
	CORSOrigins []string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}

	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Metrics)
	gameHandler := handler.NewGameHandler(cfg.GameService, cfg.Metrics)
	healthHandler := handler.NewHealthHandler(cfg.Storage, cfg.Logger)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.Metrics(cfg.Metrics))

	// Auth routes (no token needed to register or log in)
	r.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	r.Handle("/auth/me", authMiddleware(http.HandlerFunc(authHandler.Me))).Methods(http.MethodGet)

	// Game routes
	games := r.PathPrefix("/games").Subrouter()
	var create http.Handler = http.HandlerFunc(gameHandler.Create)
	if cfg.RequireAuth {
		games.Use(authMiddleware)
		create = middleware.RequireRole(model.RoleBoss)(create)
	}
	games.Handle("", create).Methods(http.MethodPost)
	games.Handle("/", create).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{game_id}/attempt", gameHandler.RecordAttempt).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/attempts", gameHandler.ListAttempts).Methods(http.MethodGet)
	if cfg.Streams != nil {
		streamHandler := handler.NewStreamHandler(cfg.Streams)
		games.HandleFunc("/{game_id}/attempts/stream", streamHandler.Attempts).Methods(http.MethodGet)
	}

	// Operational endpoints (no auth)
	r.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	r.Handle("/metrics", cfg.Metrics.Handler()).Methods(http.MethodGet)

	// CORS wraps the whole router so preflight requests are answered even
	// though no route accepts OPTIONS
	if len(cfg.CORSOrigins) > 0 {
		return sharedmw.CORS(cfg.CORSOrigins)(r)
	}
	return r
}
