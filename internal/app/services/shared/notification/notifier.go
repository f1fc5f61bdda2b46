package notification

import (
	"context"
	"doccare-service/internal/app/contracts"
	"doccare-service/internal/app/models"
	"doccare-service/internal/pkg/constvars"
	"doccare-service/internal/pkg/utils"
	"strings"

	"go.uber.org/zap"
)

type Message struct {
	Type          models.NotificationType
	Title         string
	Body          string
	AppointmentID string
	// Event distinguishes repeated events of the same type on one appointment.
	Event string
}

// Notifier fans a message out to recipients. Every recipient is attempted;
// the first delivery error is returned after all of them.
type Notifier struct {
	Sink  contracts.NotificationSink
	Log   *zap.Logger
	Clock utils.Clock
}

func NewNotifier(sink contracts.NotificationSink, logger *zap.Logger, clock utils.Clock) *Notifier {
	return &Notifier{Sink: sink, Log: logger, Clock: clock}
}

func (n *Notifier) Send(ctx context.Context, msg Message, recipientIDs ...string) error {
	var firstErr error
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	for _, recipientID := range recipientIDs {
		if recipientID == "" {
			continue
		}
		notification := models.Notification{
			ID:                   utils.GenerateNotificationID(),
			RecipientID:          recipientID,
			Type:                 msg.Type,
			Title:                msg.Title,
			Message:              msg.Body,
			RelatedAppointmentID: msg.AppointmentID,
			DedupKey:             dedupKey(msg, recipientID),
			CreatedAt:            n.Clock.Now(),
		}
		if err := n.Sink.Notify(ctx, notification); err != nil {
			n.Log.Warn("Notifier.Send delivery failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRecipientIDKey, recipientID),
				zap.String(constvars.LoggingNotificationTypeKey, string(msg.Type)),
				zap.String(constvars.LoggingAppointmentIDKey, msg.AppointmentID),
				zap.Error(err),
			)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func dedupKey(msg Message, recipientID string) string {
	if msg.AppointmentID == "" {
		return ""
	}
	parts := []string{msg.AppointmentID, string(msg.Type)}
	if msg.Event != "" {
		parts = append(parts, msg.Event)
	}
	return strings.Join(append(parts, recipientID), ":")
}
