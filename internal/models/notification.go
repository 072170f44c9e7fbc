// internal/models/notification.go
package models

import "time"

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"` // recipient
	Content   string    `json:"content"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuditLog records a committed lifecycle event.
type AuditLog struct {
	ID           string                 `json:"id"`
	EventType    string                 `json:"eventType"`
	ResourceType string                 `json:"resourceType"`
	ResourceID   string                 `json:"resourceId"`
	Details      map[string]interface{} `json:"details"`
	CreatedAt    time.Time              `json:"createdAt"`
}
