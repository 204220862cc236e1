package event

import (
	"context"
	"time"
)

// SearchPerformedEvent is published after every successful search.
type SearchPerformedEvent struct {
	SearchID   string    `json:"search_id"`
	Entrypoint string    `json:"entrypoint"`
	Query      string    `json:"query"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalItems int64     `json:"total_items"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	EntrypointBrowse = "browse"
	EntrypointChat   = "chat"
)

// Publisher hands search events to the analytics stream. Publishing never
// fails the search that produced the event.
type Publisher interface {
	Publish(ctx context.Context, ev SearchPerformedEvent)
}

var _ Publisher = NopPublisher{}

// NopPublisher discards events. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, SearchPerformedEvent) {}
