package appointments

import (
	"context"
	"doccare-service/internal/app/models"
	"doccare-service/internal/app/services/core/slot"
	"doccare-service/internal/pkg/constvars"
	"doccare-service/internal/pkg/exceptions"
	"doccare-service/internal/pkg/utils"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type resolvedBooking struct {
	label   string
	startAt time.Time
}

// resolveBooking checks a requested date and time against the doctor's
// working hours and returns the canonical slot label and its start instant.
func (uc *appointmentUsecase) resolveBooking(ctx context.Context, doctorID, date, timeOfDay, slotLabel string) (*resolvedBooking, error) {
	requested := slotLabel
	if requested == "" {
		requested = timeOfDay
	}
	label, ok := slot.NormalizeLabel(requested)
	if !ok {
		return nil, exceptions.ErrInputValidation(fmt.Errorf("invalid time of day %q", requested))
	}

	startAt, err := utils.CombineDateAndTime(date, label, uc.InternalConfig.App.Location())
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	if !startAt.After(uc.Clock.Now()) {
		return nil, exceptions.ErrDateInPast(nil, startAt)
	}

	hours, err := uc.DoctorDirectory.GetWorkingHours(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if hours == nil {
		return nil, exceptions.ErrDoctorHasNoWorkingHours(nil, doctorID)
	}
	if !slot.IsValidSlot(hours.Start, hours.End, uc.InternalConfig.Scheduling.SlotInterval(), label) {
		return nil, exceptions.ErrSlotUnavailable(nil, doctorID, label)
	}
	return &resolvedBooking{label: label, startAt: startAt}, nil
}

func (uc *appointmentUsecase) findForParticipant(ctx context.Context, actor models.Actor, appointmentID string) (*models.Appointment, error) {
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

// findMutable loads an appointment the actor may cancel or reschedule. Doctors
// must act at least the configured notice before the start; patients may act any time.
func (uc *appointmentUsecase) findMutable(ctx context.Context, actor models.Actor, appointmentID string) (*models.Appointment, error) {
	appointment, err := uc.findForParticipant(ctx, actor, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.Status.IsTerminal() {
		return nil, exceptions.ErrAppointmentTerminal(nil, appointment.ID, string(appointment.Status))
	}

	if actor.ID == appointment.DoctorID {
		notice := uc.InternalConfig.Scheduling.DoctorNotice()
		remaining := appointment.StartAt.Sub(uc.Clock.Now())
		if remaining < notice {
			return nil, exceptions.ErrDoctorNoticeTooShort(nil, uc.InternalConfig.Scheduling.DoctorNoticeInHours, remaining)
		}
	}
	return appointment, nil
}

// abandon cancels an appointment whose booking could not be completed so its slot is released.
func (uc *appointmentUsecase) abandon(ctx context.Context, appointmentID, reason string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	_, err := uc.AppointmentRepository.UpdateStatus(ctx, appointmentID, models.AppointmentTransition{
		From:               models.SourcesOf(models.AppointmentStatusCancelled),
		To:                 models.AppointmentStatusCancelled,
		CancellationReason: reason,
		CancelledBy:        models.SystemActorID,
		At:                 uc.Clock.Now(),
	})
	if err != nil {
		uc.Log.Error("appointmentUsecase.abandon error releasing appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
	}
}
