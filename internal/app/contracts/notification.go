package contracts

import (
	"context"
	"doccare-service/internal/app/models"
)

// NotificationSink delivers notifications at least once. Callers do not
// depend on the outcome beyond logging it.
type NotificationSink interface {
	Notify(ctx context.Context, notification models.Notification) error
}
