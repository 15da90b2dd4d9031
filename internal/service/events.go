package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/blog-service/internal/events"
)

// publish emits an event; dispatch failures never fail the request.
func publish(ctx context.Context, d events.Dispatcher, logger *zap.Logger, t events.EventType, actorID string, payload interface{}) {
	if d == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      t,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	if err := d.Publish(ctx, event); err != nil {
		logger.Warn("event handlers failed", zap.String("event_type", string(t)), zap.Error(err))
	}
}
