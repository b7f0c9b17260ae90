package models

import "encoding/json"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

type AuditLog struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"` // epoch ms

	// who
	UserID   string `json:"userId,omitempty"`
	Username string `json:"username,omitempty"`

	// what (e.g. "menu_item", "user", "expense", "settings")
	EntityType string      `json:"entityType"`
	EntityID   string      `json:"entityId"`
	Action     AuditAction `json:"action"`

	Description string `json:"description,omitempty"`

	// state before and after the change
	Before json.RawMessage `json:"before,omitempty"`
	After  json.RawMessage `json:"after,omitempty"`
}
