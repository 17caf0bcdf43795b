package command

import (
	"context"

	"github.com/tair/warehouse-inbound/kafka"
	"github.com/tair/warehouse-inbound/pkg/logger"
)

// EventPublisher publishes note lifecycle events
type EventPublisher interface {
	PublishNoteEvent(ctx context.Context, event kafka.NoteEvent) error
}

// publish sends an event best-effort: a broker failure never fails the
// request that triggered it.
func publish(ctx context.Context, publisher EventPublisher, event kafka.NoteEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.PublishNoteEvent(ctx, event); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("event_type", event.EventType).
			Str("note_id", event.NoteID).
			Msg("Failed to publish note event")
	}
}
