package stream

import (
	"encoding/json"
	"log/slog"

	"github.com/mcoot/tilepath/internal/api/response"
	"github.com/mcoot/tilepath/internal/model"
)

// EventAttempt is the SSE event name for a newly recorded attempt
const EventAttempt = "attempt"

// Publisher turns recorded attempts into events for the game's watchers
type Publisher struct {
	manager *HubManager
	logger  *slog.Logger
}

// NewPublisher creates a new Publisher
func NewPublisher(manager *HubManager, logger *slog.Logger) *Publisher {
	return &Publisher{
		manager: manager,
		logger:  logger,
	}
}

// AttemptRecorded broadcasts the attempt in its API form. Games nobody is
// watching are skipped.
func (p *Publisher) AttemptRecorded(attempt *model.Attempt) {
	hub := p.manager.GetHub(attempt.GameID)
	if hub == nil {
		return
	}

	data, err := json.Marshal(response.AttemptFromModel(attempt))
	if err != nil {
		p.logger.Error("failed to encode attempt event",
			slog.String("attempt_id", string(attempt.ID)),
			slog.String("error", err.Error()),
		)
		return
	}

	hub.BroadcastEvent(EventAttempt, string(data))
}
