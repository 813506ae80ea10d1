package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tilepath/internal/api/request"
	"github.com/mcoot/tilepath/internal/api/response"
	"github.com/mcoot/tilepath/internal/metrics"
	"github.com/mcoot/tilepath/internal/services/game"
)

// GameHandler handles game and attempt endpoints
type GameHandler struct {
	gameService *game.Service
	metrics     *metrics.Metrics
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameService *game.Service, metrics *metrics.Metrics) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		metrics:     metrics,
	}
}

// Create handles POST /games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if !decode(w, r, &req) {
		return
	}

	g, err := h.gameService.CreateGame(r.Context(), req.Input())
	if err != nil {
		WriteError(w, err)
		return
	}

	h.metrics.GamesCreated.Inc()
	response.JSON(w, http.StatusOK, response.GameCreated{GameID: string(g.ID)})
}

// Get handles GET /games/{game_id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameService.GetGame(r.Context(), mux.Vars(r)["game_id"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// RecordAttempt handles POST /games/{game_id}/attempt
func (h *GameHandler) RecordAttempt(w http.ResponseWriter, r *http.Request) {
	var req request.AttemptRequest
	if !decode(w, r, &req) {
		return
	}

	if _, err := h.gameService.RecordAttempt(r.Context(), mux.Vars(r)["game_id"], req.Input()); err != nil {
		WriteError(w, err)
		return
	}

	h.metrics.AttemptsRecorded.Inc()
	response.JSON(w, http.StatusOK, response.Message{Message: "Attempt recorded"})
}

// ListAttempts handles GET /games/{game_id}/attempts
func (h *GameHandler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	attempts, err := h.gameService.ListAttempts(r.Context(), mux.Vars(r)["game_id"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AttemptsFromModels(attempts))
}
