package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tilepath/internal/api/stream"
	"github.com/mcoot/tilepath/internal/model"
)

// StreamHandler serves live attempt feeds
type StreamHandler struct {
	manager *stream.HubManager
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(manager *stream.HubManager) *StreamHandler {
	return &StreamHandler{manager: manager}
}

// Attempts handles GET /games/{game_id}/attempts/stream
func (h *StreamHandler) Attempts(w http.ResponseWriter, r *http.Request) {
	stream.ServeSSE(w, r, h.manager, model.GameID(mux.Vars(r)["game_id"]))
}
