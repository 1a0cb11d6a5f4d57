package mqhandler

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"valuepm/internal/model"
	"valuepm/internal/mq"
	"valuepm/internal/repository"
	"valuepm/internal/util"
)

// AuditEventHandler appends audit.event messages to the audit log. Inserts
// are keyed on the event ID so redelivered messages are no-ops.
type AuditEventHandler struct {
	auditRepo *repository.AuditLogRepository
	deduper   *util.Deduper
	logger    *zap.Logger
}

func NewAuditEventHandler(auditRepo *repository.AuditLogRepository, deduper *util.Deduper, logger *zap.Logger) *AuditEventHandler {
	return &AuditEventHandler{
		auditRepo: auditRepo,
		deduper:   deduper,
		logger:    logger,
	}
}

func (h *AuditEventHandler) Handle(ctx context.Context, raw json.RawMessage) error {
	var p mq.AuditEventPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.logger.Error("Failed to unmarshal AuditEventPayload", zap.Error(err))
		return err
	}

	if !h.deduper.AcquireOnce(ctx, "audit_event", p.EventID) {
		h.logger.Info("Duplicate audit.event, skipping", zap.String("event_id", p.EventID))
		return nil
	}

	var changes []byte
	if p.Changes != nil {
		b, err := json.Marshal(p.Changes)
		if err != nil {
			h.logger.Error("Failed to marshal audit changes", zap.Error(err))
			return err
		}
		changes = b
	}

	entry := &model.AuditLog{
		ID:           p.EventID,
		UserID:       p.UserID,
		Action:       p.Action,
		ResourceType: p.ResourceType,
		ResourceID:   p.ResourceID,
		Changes:      changes,
		CreatedAt:    p.OccurredAt,
	}

	if err := h.auditRepo.Insert(ctx, entry); err != nil {
		h.logger.Error("Failed to insert audit log",
			zap.String("event_id", p.EventID),
			zap.Error(err),
		)
		return err
	}

	h.logger.Info("Audit event stored",
		zap.String("action", p.Action),
		zap.String("resource_type", p.ResourceType),
		zap.String("resource_id", p.ResourceID),
	)
	return nil
}
