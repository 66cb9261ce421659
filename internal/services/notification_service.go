// internal/services/notification_service.go
package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/netflix100plus/admin-console/internal/models"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService keeps the in-memory inbox, newest first.
type NotificationService struct {
	mu            sync.RWMutex
	notifications []models.Notification
	now           func() time.Time
}

func NewNotificationService() *NotificationService {
	return &NotificationService{now: time.Now}
}

func (s *NotificationService) Add(n models.NewNotification) models.Notification {
	record := models.Notification{
		ID:          uuid.NewString(),
		Message:     n.Message,
		Kind:        n.Kind,
		DownloadURL: n.DownloadURL,
		ReceivedAt:  s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = append([]models.Notification{record}, s.notifications...)
	return record
}

func (s *NotificationService) MarkRead(id string) (models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].IsRead = true
			return s.notifications[i], nil
		}
	}
	return models.Notification{}, ErrNotificationNotFound
}

func (s *NotificationService) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.notifications {
		if !n.IsRead {
			count++
		}
	}
	return count
}

func (s *NotificationService) List() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}
