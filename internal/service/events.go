package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/clothing-store/internal/events"
)

// publish delivers an event after the change is committed. Handler failures
// are logged; the change itself has already succeeded.
func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event handler failed",
			zap.String("type", string(event.Type)),
			zap.String("entity_id", event.EntityID),
			zap.Error(err))
	}
}
