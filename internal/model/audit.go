package model

import "time"

// AuditLog records an entity change, appended asynchronously by the worker.
type AuditLog struct {
	ID           string
	UserID       *string
	Action       string
	ResourceType string
	ResourceID   string
	Changes      []byte // JSON blob, nullable
	CreatedAt    time.Time
}
