package reminders

import (
	"context"
	"doccare-service/internal/app/config"
	"doccare-service/internal/app/contracts"
	"doccare-service/internal/app/models"
	"doccare-service/internal/app/services/shared/notification"
	"doccare-service/internal/pkg/constvars"
	"doccare-service/internal/pkg/exceptions"
	"doccare-service/internal/pkg/utils"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type reminderUsecase struct {
	ReminderRepository    contracts.ReminderRepository
	AppointmentRepository contracts.AppointmentRepository
	Notifier              *notification.Notifier
	Clock                 utils.Clock
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
	// Limiter throttles dispatch towards the notification sink; nil means unthrottled.
	Limiter *rate.Limiter
}

func NewReminderUsecase(
	reminderRepository contracts.ReminderRepository,
	appointmentRepository contracts.AppointmentRepository,
	notifier *notification.Notifier,
	clock utils.Clock,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ReminderUsecase {
	var limiter *rate.Limiter
	if perSecond := internalConfig.Watchers.ReminderDispatchPerSecond; perSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(perSecond), perSecond)
	}
	return &reminderUsecase{
		ReminderRepository:    reminderRepository,
		AppointmentRepository: appointmentRepository,
		Notifier:              notifier,
		Clock:                 clock,
		InternalConfig:        internalConfig,
		Log:                   logger,
		Limiter:               limiter,
	}
}

func (uc *reminderUsecase) CreateAppointmentReminders(ctx context.Context, appointmentID string) ([]models.Reminder, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("reminderUsecase.CreateAppointmentReminders called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		uc.Log.Error("reminderUsecase.CreateAppointmentReminders error fetching appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil, appointmentID)
	}

	candidates := BuildReminders(appointment, uc.Clock.Now())
	if len(candidates) == 0 {
		uc.Log.Info("reminderUsecase.CreateAppointmentReminders no future reminder to create",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		)
		return candidates, nil
	}

	inserted, err := uc.ReminderRepository.CreateReminders(ctx, candidates)
	if err != nil {
		uc.Log.Error("reminderUsecase.CreateAppointmentReminders error creating reminders",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("reminderUsecase.CreateAppointmentReminders succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.Int(constvars.LoggingReminderCountKey, inserted),
	)
	return uc.ReminderRepository.FindByAppointmentID(ctx, appointmentID)
}

// BuildReminders returns one reminder per offset whose fire time is strictly after now.
func BuildReminders(appointment *models.Appointment, now time.Time) []models.Reminder {
	reminders := []models.Reminder{}
	for _, reminderType := range models.ReminderTypes {
		fireAt := appointment.StartAt.Add(-reminderType.Offset())
		if !fireAt.After(now) {
			continue
		}
		reminder := models.Reminder{
			AppointmentID: appointment.ID,
			PatientID:     appointment.PatientID,
			DoctorID:      appointment.DoctorID,
			Type:          reminderType,
			ReminderTime:  fireAt,
		}
		reminder.SetCreatedAtUpdatedAt(now)
		reminders = append(reminders, reminder)
	}
	return reminders
}

func (uc *reminderUsecase) CancelAppointmentReminders(ctx context.Context, appointmentID string) (int64, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("reminderUsecase.CancelAppointmentReminders called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	deleted, err := uc.ReminderRepository.DeleteUnsentByAppointmentID(ctx, appointmentID)
	if err != nil {
		uc.Log.Error("reminderUsecase.CancelAppointmentReminders error deleting reminders",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		return 0, err
	}

	uc.Log.Info("reminderUsecase.CancelAppointmentReminders succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.Int64(constvars.LoggingReminderCountKey, deleted),
	)
	return deleted, nil
}

func (uc *reminderUsecase) UpdateAppointmentReminders(ctx context.Context, oldAppointmentID, newAppointmentID string) ([]models.Reminder, error) {
	_, err := uc.CancelAppointmentReminders(ctx, oldAppointmentID)
	if err != nil {
		return nil, err
	}
	return uc.CreateAppointmentReminders(ctx, newAppointmentID)
}

func (uc *reminderUsecase) DispatchDueReminders(ctx context.Context, now time.Time) (models.SweepStats, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	stats := models.SweepStats{Name: constvars.WatcherNameReminderDispatch, RanAt: now}

	due, err := uc.ReminderRepository.FindDueReminders(ctx, now, uc.InternalConfig.Scheduling.ReminderDispatchBatchSize)
	if err != nil {
		uc.Log.Error("reminderUsecase.DispatchDueReminders error fetching due reminders",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return stats, err
	}

	for i := range due {
		if uc.Limiter != nil {
			if err := uc.Limiter.Wait(ctx); err != nil {
				return stats, err
			}
		}
		if uc.dispatchReminder(ctx, &due[i]) {
			stats.Processed++
		} else {
			stats.Failed++
		}
	}
	return stats, nil
}

func (uc *reminderUsecase) dispatchReminder(ctx context.Context, reminder *models.Reminder) bool {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	appointment, err := uc.AppointmentRepository.FindByID(ctx, reminder.AppointmentID)
	if err != nil || appointment == nil {
		uc.Log.Warn("reminderUsecase.dispatchReminder appointment unavailable",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReminderIDKey, reminder.ID),
			zap.String(constvars.LoggingAppointmentIDKey, reminder.AppointmentID),
			zap.Error(err),
		)
		return false
	}

	switch appointment.Status {
	case models.AppointmentStatusPending, models.AppointmentStatusConfirmed:
	default:
		// A cancellation whose reminder cleanup failed leaves orphans behind; drop them here.
		_, err := uc.ReminderRepository.DeleteUnsentByAppointmentID(ctx, appointment.ID)
		return err == nil
	}

	msg := notification.Message{
		Type:          models.NotificationTypeAppointmentReminder,
		Title:         constvars.NotificationTitleAppointmentReminder,
		Body:          fmt.Sprintf(reminderTemplate(reminder.Type), appointment.Date, appointment.Slot),
		AppointmentID: appointment.ID,
		Event:         string(reminder.Type),
	}
	if err := uc.Notifier.Send(ctx, msg, appointment.PatientID, appointment.DoctorID); err != nil {
		return false
	}

	_, err = uc.ReminderRepository.MarkSent(ctx, reminder.ID, uc.Clock.Now())
	if err != nil {
		uc.Log.Error("reminderUsecase.dispatchReminder error marking reminder sent",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReminderIDKey, reminder.ID),
			zap.Error(err),
		)
		return false
	}
	return true
}

func reminderTemplate(reminderType models.ReminderType) string {
	switch reminderType {
	case models.ReminderType24Hours:
		return constvars.NotificationMessageReminder24Hours
	case models.ReminderType1Hour:
		return constvars.NotificationMessageReminder1Hour
	}
	return constvars.NotificationMessageReminder5Minutes
}
