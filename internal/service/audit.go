package service

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"valuepm/internal/mq"
)

// EventPublisher is satisfied by *mq.Producer.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// publishAudit emits an audit event; best-effort, a publish failure never
// fails the originating request.
func publishAudit(pub EventPublisher, logger *zap.Logger, userID *string, action, resourceType, resourceID string, changes any) {
	payload := mq.AuditEventPayload{
		EventID:      uuid.NewString(),
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Changes:      changes,
		OccurredAt:   time.Now().UTC(),
	}
	if err := pub.Publish(mq.RoutingKeyAuditEvent, payload); err != nil {
		logger.Warn("Failed to publish audit event",
			zap.String("action", action),
			zap.String("resource_type", resourceType),
			zap.String("resource_id", resourceID),
			zap.Error(err),
		)
	}
}
