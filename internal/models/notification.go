// internal/models/notification.go
package models

import "time"

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

type Notification struct {
	ID          string           `json:"id"`
	Message     string           `json:"message"`
	Kind        NotificationKind `json:"kind"`
	DownloadURL string           `json:"downloadUrl,omitempty"`
	IsRead      bool             `json:"isRead"`
	ReceivedAt  time.Time        `json:"receivedAt"`
}

// NewNotification is the caller-supplied part of a notification.
type NewNotification struct {
	Message     string
	Kind        NotificationKind
	DownloadURL string
}
