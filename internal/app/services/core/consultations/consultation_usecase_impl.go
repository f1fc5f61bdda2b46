package consultations

import (
	"context"
	"doccare-service/internal/app/config"
	"doccare-service/internal/app/contracts"
	"doccare-service/internal/app/models"
	"doccare-service/internal/app/services/shared/notification"
	"doccare-service/internal/pkg/constvars"
	"doccare-service/internal/pkg/dto/responses"
	"doccare-service/internal/pkg/exceptions"
	"doccare-service/internal/pkg/utils"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// consultationUsecase drives the live consultation window of a confirmed
// appointment. The completion timer armed on start is best effort; the
// consultation expiry sweep is what guarantees completion.
type consultationUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	Notifier              *notification.Notifier
	Clock                 utils.Clock
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

func NewConsultationUsecase(
	appointmentRepository contracts.AppointmentRepository,
	notifier *notification.Notifier,
	clock utils.Clock,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ConsultationUsecase {
	return &consultationUsecase{
		AppointmentRepository: appointmentRepository,
		Notifier:              notifier,
		Clock:                 clock,
		InternalConfig:        internalConfig,
		Log:                   logger,
	}
}

func (uc *consultationUsecase) duration() time.Duration {
	return uc.InternalConfig.Scheduling.ConsultationDuration()
}

func (uc *consultationUsecase) StartConsultation(ctx context.Context, actor models.Actor, appointmentID string) (*responses.ConsultationState, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("consultationUsecase.StartConsultation called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingActorIDKey, actor.ID),
	)

	appointment, err := uc.findParticipantAppointment(ctx, actor, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.ConsultationStatus != models.ConsultationStatusNotStarted {
		return uc.stateOf(appointment), nil
	}
	if appointment.Status != models.AppointmentStatusConfirmed {
		return nil, exceptions.ErrConsultationNotConfirmed(nil, appointment.ID, string(appointment.Status))
	}

	now := uc.Clock.Now()
	if now.Before(appointment.StartAt) {
		return nil, exceptions.ErrConsultationNotReady(nil, appointment.ID, appointment.StartAt)
	}

	started, err := uc.AppointmentRepository.StartConsultation(ctx, appointment.ID, now)
	if err != nil {
		uc.Log.Error("consultationUsecase.StartConsultation error starting consultation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
		return nil, err
	}

	appointment, err = uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil, appointmentID)
	}
	if !started {
		// Someone else started it first, or the appointment moved on meanwhile.
		if appointment.ConsultationStatus == models.ConsultationStatusNotStarted {
			return nil, exceptions.ErrConsultationNotConfirmed(nil, appointment.ID, string(appointment.Status))
		}
		return uc.stateOf(appointment), nil
	}

	uc.armCompletionTimer(requestID, appointment.ID)

	uc.Notifier.Send(ctx, notification.Message{
		Type:          models.NotificationTypeConsultationStarted,
		Title:         constvars.NotificationTitleConsultationStarted,
		Body:          fmt.Sprintf(constvars.NotificationMessageConsultationStarted, int(uc.duration().Minutes())),
		AppointmentID: appointment.ID,
	}, appointment.PatientID, appointment.DoctorID)

	uc.Log.Info("consultationUsecase.StartConsultation succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.Time(constvars.LoggingStartTimeKey, now),
	)
	return uc.stateOf(appointment), nil
}

func (uc *consultationUsecase) armCompletionTimer(requestID, appointmentID string) {
	timerCtx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, requestID)
	uc.Clock.AfterFunc(uc.duration(), func() {
		if _, err := uc.CompleteConsultation(timerCtx, appointmentID); err != nil {
			uc.Log.Warn("consultationUsecase completion timer failed, sweep will retry",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
				zap.Error(err),
			)
		}
	})
}

func (uc *consultationUsecase) CompleteConsultation(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil, appointmentID)
	}
	if appointment.ConsultationStatus != models.ConsultationStatusInProgress || appointment.ConsultationStartTime == nil {
		return appointment, nil
	}

	endedAt := uc.Clock.Now()
	if deadline := appointment.ConsultationStartTime.Add(uc.duration()); endedAt.After(deadline) {
		endedAt = deadline
	}

	completed, err := uc.AppointmentRepository.CompleteConsultation(ctx, appointment.ID, endedAt)
	if err != nil {
		uc.Log.Error("consultationUsecase.CompleteConsultation error completing consultation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
		return nil, err
	}
	if !completed {
		return uc.AppointmentRepository.FindByID(ctx, appointmentID)
	}

	if err := uc.settleAppointment(ctx, appointment.ID, endedAt); err != nil {
		uc.Log.Warn("consultationUsecase.CompleteConsultation appointment status left for the sweep",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
	}

	uc.Notifier.Send(ctx, notification.Message{
		Type:          models.NotificationTypeConsultationCompleted,
		Title:         constvars.NotificationTitleConsultationCompleted,
		Body:          constvars.NotificationMessageConsultationCompleted,
		AppointmentID: appointment.ID,
	}, appointment.PatientID, appointment.DoctorID)

	uc.Log.Info("consultationUsecase.CompleteConsultation succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.Time(constvars.LoggingEndTimeKey, endedAt),
	)
	return uc.AppointmentRepository.FindByID(ctx, appointmentID)
}

func (uc *consultationUsecase) CompleteExpiredConsultations(ctx context.Context, now time.Time) (models.SweepStats, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	stats := models.SweepStats{Name: constvars.WatcherNameConsultationExpiry, RanAt: now}

	expired, err := uc.AppointmentRepository.FindExpiredConsultations(ctx, now.Add(-uc.duration()))
	if err != nil {
		uc.Log.Error("consultationUsecase.CompleteExpiredConsultations error fetching consultations",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return stats, err
	}

	for _, appointment := range expired {
		if _, err := uc.CompleteConsultation(ctx, appointment.ID); err != nil {
			stats.Failed++
			continue
		}
		stats.Processed++
	}

	unsettled, err := uc.AppointmentRepository.FindUnsettledConsultations(ctx)
	if err != nil {
		uc.Log.Error("consultationUsecase.CompleteExpiredConsultations error fetching unsettled appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return stats, err
	}
	for _, appointment := range unsettled {
		endedAt := now
		if appointment.ConsultationEndTime != nil {
			endedAt = *appointment.ConsultationEndTime
		}
		if err := uc.settleAppointment(ctx, appointment.ID, endedAt); err != nil {
			uc.Log.Error("consultationUsecase.CompleteExpiredConsultations error settling appointment",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
				zap.Error(err),
			)
			stats.Failed++
			continue
		}
		stats.Processed++
	}
	return stats, nil
}

// settleAppointment moves the appointment of a finished consultation to completed.
func (uc *consultationUsecase) settleAppointment(ctx context.Context, appointmentID string, endedAt time.Time) error {
	_, err := uc.AppointmentRepository.UpdateStatus(ctx, appointmentID, models.AppointmentTransition{
		From: models.SourcesOf(models.AppointmentStatusCompleted),
		To:   models.AppointmentStatusCompleted,
		At:   endedAt,
	})
	return err
}

func (uc *consultationUsecase) GetConsultationState(ctx context.Context, actor models.Actor, appointmentID string) (*responses.ConsultationState, error) {
	appointment, err := uc.findParticipantAppointment(ctx, actor, appointmentID)
	if err != nil {
		return nil, err
	}

	// An elapsed window is closed on read so chat gating never waits for the sweep.
	if appointment.ConsultationStatus == models.ConsultationStatusInProgress &&
		appointment.ConsultationStartTime != nil &&
		!uc.IsConsultationActive(*appointment.ConsultationStartTime) {
		completed, err := uc.CompleteConsultation(ctx, appointment.ID)
		if err != nil {
			return nil, err
		}
		appointment = completed
	}
	return uc.stateOf(appointment), nil
}

func (uc *consultationUsecase) CanRateConsultation(ctx context.Context, actor models.Actor, appointmentID string) (bool, error) {
	appointment, err := uc.findParticipantAppointment(ctx, actor, appointmentID)
	if err != nil {
		return false, err
	}
	return appointment.ConsultationStatus == models.ConsultationStatusCompleted, nil
}

func (uc *consultationUsecase) IsConsultationActive(start time.Time) bool {
	return uc.Clock.Now().Sub(start) < uc.duration()
}

func (uc *consultationUsecase) RemainingTime(start time.Time) time.Duration {
	remaining := uc.duration() - uc.Clock.Now().Sub(start)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (uc *consultationUsecase) findParticipantAppointment(ctx context.Context, actor models.Actor, appointmentID string) (*models.Appointment, error) {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil, appointmentID)
	}
	if !appointment.IsParticipant(actor.ID) {
		return nil, exceptions.ErrNotAppointmentParticipant(nil, actor.ID, appointmentID)
	}
	return appointment, nil
}

func (uc *consultationUsecase) stateOf(appointment *models.Appointment) *responses.ConsultationState {
	now := uc.Clock.Now()
	state := &responses.ConsultationState{
		AppointmentID:      appointment.ID,
		AppointmentStatus:  string(appointment.Status),
		ConsultationStatus: string(appointment.ConsultationStatus),
		StartTime:          appointment.ConsultationStartTime,
		EndTime:            appointment.ConsultationEndTime,
		CanStart: appointment.Status == models.AppointmentStatusConfirmed &&
			appointment.ConsultationStatus == models.ConsultationStatusNotStarted &&
			!now.Before(appointment.StartAt),
	}
	if appointment.ConsultationStatus == models.ConsultationStatusInProgress && appointment.ConsultationStartTime != nil {
		state.IsActive = uc.IsConsultationActive(*appointment.ConsultationStartTime)
		state.RemainingSeconds = int64(uc.RemainingTime(*appointment.ConsultationStartTime).Seconds())
	}
	return state
}
