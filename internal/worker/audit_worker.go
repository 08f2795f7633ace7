package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/clothing-store/internal/events"
)

var auditedEvents = []events.EventType{
	events.EventUserRegistered,
	events.EventUserUpdated,
	events.EventUserDeleted,
	events.EventProductCreated,
	events.EventProductUpdated,
	events.EventProductDeleted,
}

// StartAuditWorker subscribes a structured audit log to every catalog and account event.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}
	auditLogger := logger.Named("audit")
	for _, eventType := range auditedEvents {
		dispatcher.Subscribe(eventType, func(_ context.Context, event events.Event) error {
			auditLogger.Info("event",
				zap.String("event_id", event.ID),
				zap.String("type", string(event.Type)),
				zap.String("entity_id", event.EntityID),
				zap.String("actor_id", event.Actor.UserID),
				zap.String("actor_role", event.Actor.Role.String()),
				zap.Time("timestamp", event.Timestamp),
				zap.Any("payload", event.Payload),
			)
			return nil
		})
	}
}
