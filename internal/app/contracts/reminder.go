package contracts

import (
	"context"
	"doccare-service/internal/app/models"
	"time"
)

type ReminderUsecase interface {
	CreateAppointmentReminders(ctx context.Context, appointmentID string) ([]models.Reminder, error)
	CancelAppointmentReminders(ctx context.Context, appointmentID string) (int64, error)
	UpdateAppointmentReminders(ctx context.Context, oldAppointmentID, newAppointmentID string) ([]models.Reminder, error)
	DispatchDueReminders(ctx context.Context, now time.Time) (models.SweepStats, error)
}

type ReminderRepository interface {
	// CreateReminders inserts the batch and skips reminders that already exist for the same appointment and type.
	CreateReminders(ctx context.Context, reminders []models.Reminder) (int, error)
	FindByAppointmentID(ctx context.Context, appointmentID string) ([]models.Reminder, error)
	DeleteUnsentByAppointmentID(ctx context.Context, appointmentID string) (int64, error)
	FindDueReminders(ctx context.Context, now time.Time, limit int) ([]models.Reminder, error)
	MarkSent(ctx context.Context, reminderID string, at time.Time) (bool, error)
}
