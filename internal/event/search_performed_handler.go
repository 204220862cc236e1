package event

import (
	"context"
	"log/slog"
)

func (s *Service) handleSearchPerformedEvent(ctx context.Context, ev SearchPerformedEvent) error {
	s.logger.InfoContext(ctx, "search performed",
		slog.String("search_id", ev.SearchID),
		slog.String("entrypoint", ev.Entrypoint),
		slog.String("query", ev.Query),
		slog.Int("page", ev.Page),
		slog.Int("limit", ev.Limit),
		slog.Int64("total_items", ev.TotalItems),
	)
	return nil
}
