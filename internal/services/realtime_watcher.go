// internal/services/realtime_watcher.go
package services

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/netflix100plus/admin-console/internal/i18n"
	"github.com/netflix100plus/admin-console/internal/models"
)

// RealtimeWatcher keeps the realtime channel in step with the session:
// open while authenticated, closed otherwise.
type RealtimeWatcher struct {
	auth    *AuthService
	channel *RealtimeChannel
	log     *logrus.Entry

	mu          sync.Mutex
	desired     models.SessionState
	wake        chan struct{}
	unsubscribe func()
	cancel      context.CancelFunc
	done        chan struct{}
}

func NewRealtimeWatcher(auth *AuthService, channel *RealtimeChannel, log *logrus.Entry) *RealtimeWatcher {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &RealtimeWatcher{
		auth:    auth,
		channel: channel,
		log:     log.WithField("component", "realtime_watcher"),
		wake:    make(chan struct{}, 1),
	}
}

func (w *RealtimeWatcher) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	w.mu.Lock()
	w.cancel = cancel
	w.done = make(chan struct{})
	w.mu.Unlock()

	w.unsubscribe = w.auth.Subscribe(w.observe)
	w.observe(w.auth.State())

	go w.run(ctx)
}

// Stop unsubscribes and closes the channel.
func (w *RealtimeWatcher) Stop() {
	if w.unsubscribe != nil {
		w.unsubscribe()
	}
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	w.channel.Disconnect()
}

func (w *RealtimeWatcher) observe(state models.SessionState) {
	w.mu.Lock()
	w.desired = state
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *RealtimeWatcher) run(ctx context.Context) {
	defer close(w.done)

	var connectedAdmin int64
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.wake:
		}

		w.mu.Lock()
		state := w.desired
		w.mu.Unlock()

		switch {
		case state.IsAuthenticated() && state.Admin != nil:
			if connectedAdmin != 0 && connectedAdmin != state.Admin.ID {
				w.channel.Disconnect()
			}
			if err := w.channel.Connect(ctx, state.Admin.ID); err != nil {
				w.log.WithError(err).Warn("Failed to open realtime channel")
				continue
			}
			connectedAdmin = state.Admin.ID
		case state.Status == models.SessionUnauthenticated:
			w.channel.Disconnect()
			connectedAdmin = 0
		}
	}
}

// NotificationDispatcher turns realtime events into inbox notifications.
type NotificationDispatcher struct {
	notifications *NotificationService
	lang          string
	log           *logrus.Entry
}

func NewNotificationDispatcher(notifications *NotificationService, lang string, log *logrus.Entry) *NotificationDispatcher {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &NotificationDispatcher{
		notifications: notifications,
		lang:          lang,
		log:           log.WithField("component", "notification_dispatcher"),
	}
}

func (d *NotificationDispatcher) Handle(event RealtimeEvent) {
	var n models.NewNotification

	switch e := event.(type) {
	case ExportCompleted:
		n = models.NewNotification{
			Message:     i18n.T(d.lang, i18n.KeyExportCompleted, e.JobID),
			Kind:        models.NotificationSuccess,
			DownloadURL: e.DownloadURL,
		}
	case ExportFailed:
		n = models.NewNotification{
			Message: i18n.T(d.lang, i18n.KeyExportFailed, e.JobID, e.Error),
			Kind:    models.NotificationError,
		}
	default:
		return
	}

	record := d.notifications.Add(n)
	d.log.WithFields(logrus.Fields{
		"event":           event.EventName(),
		"notification_id": record.ID,
	}).Info("Export notification received")
}
