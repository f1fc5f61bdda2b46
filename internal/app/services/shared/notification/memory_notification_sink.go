package notification

import (
	"context"
	"doccare-service/internal/app/models"
	"doccare-service/internal/pkg/constvars"
	"sync"

	"go.uber.org/zap"
)

// LogSink writes notifications to the logger. It is the sink of the memory storage driver.
type LogSink struct {
	Log *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{Log: logger}
}

func (s *LogSink) Notify(ctx context.Context, notification models.Notification) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("LogSink.Notify",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRecipientIDKey, notification.RecipientID),
		zap.String(constvars.LoggingNotificationTypeKey, string(notification.Type)),
		zap.String(constvars.LoggingAppointmentIDKey, notification.RelatedAppointmentID),
		zap.String("title", notification.Title),
		zap.String("message", notification.Message),
	)
	return nil
}

// RecordingSink keeps every notification it receives.
type RecordingSink struct {
	mu            sync.Mutex
	notifications []models.Notification
	Err           error
}

func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

func (s *RecordingSink) Notify(ctx context.Context, notification models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.notifications = append(s.notifications, notification)
	return nil
}

func (s *RecordingSink) Notifications() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

func (s *RecordingSink) ByType(notificationType models.NotificationType) []models.Notification {
	var out []models.Notification
	for _, n := range s.Notifications() {
		if n.Type == notificationType {
			out = append(out, n)
		}
	}
	return out
}

func (s *RecordingSink) ForRecipient(recipientID string) []models.Notification {
	var out []models.Notification
	for _, n := range s.Notifications() {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out
}
