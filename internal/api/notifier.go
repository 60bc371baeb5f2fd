package api

import (
	"context"
	"log/slog"

	"folio/internal/api/middleware"
	"folio/internal/editor"
	"folio/internal/events"
)

// snapshotScheduler is implemented by *tasks.SnapshotScheduler.
type snapshotScheduler interface {
	Schedule(ctx context.Context, section, action, correlationID string)
}

// ChangeNotifier fans committed edits out to websocket subscribers and the
// snapshot queue. Neither failure affects the edit that triggered it.
type ChangeNotifier struct {
	Publisher events.Publisher
	Snapshots snapshotScheduler
	Logger    *slog.Logger
}

// Notify matches portfolio.Options.OnChange.
func (n *ChangeNotifier) Notify(ctx context.Context, change editor.Change) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	correlationID := middleware.CorrelationIDFromContext(ctx)

	if n.Publisher != nil {
		if err := events.PublishChange(ctx, n.Publisher, change); err != nil {
			logger.Warn("publish section update failed",
				slog.String("correlation_id", correlationID),
				slog.String("section", change.Section),
				slog.Any("error", err),
			)
		}
	}
	if n.Snapshots != nil {
		n.Snapshots.Schedule(ctx, change.Section, string(change.Action), correlationID)
	}
}
