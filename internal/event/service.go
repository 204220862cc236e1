package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/catalog-search/internal/storage/mq"
)

// Service consumes the search analytics stream.
type Service struct {
	logger     *slog.Logger
	topic      string
	mqConsumer mq.Consumer
}

// New creates a new event service.
func New(
	logger *slog.Logger,
	topic string,
	mqConsumer mq.Consumer,
) *Service {
	return &Service{
		logger:     logger.With(slog.String("service", "event")),
		topic:      topic,
		mqConsumer: mqConsumer,
	}
}

func (s *Service) Run(ctx context.Context) (mq.CleanupFunc, error) {
	if err := s.mqConsumer.RegisterHandler(s.topic, s.handle); err != nil {
		return nil, fmt.Errorf("register search performed event handler: %w", err)
	}

	mqCleanup, err := s.mqConsumer.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("run mq consumer: %w", err)
	}

	return mqCleanup, nil
}

func (s *Service) handle(ctx context.Context, _ string, payload []byte) error {
	var ev SearchPerformedEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return fmt.Errorf("unmarshal search performed event: %w", err)
	}

	if err := s.handleSearchPerformedEvent(ctx, ev); err != nil {
		return fmt.Errorf("handle search performed event: %w", err)
	}

	return nil
}
