package appointments

import (
	"context"
	"doccare-service/internal/app/models"
	"doccare-service/internal/app/services/shared/notification"
	"doccare-service/internal/pkg/constvars"
	"doccare-service/internal/pkg/dto/requests"
	"doccare-service/internal/pkg/dto/responses"
	"doccare-service/internal/pkg/exceptions"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

func (uc *appointmentUsecase) CancelAppointment(ctx context.Context, actor models.Actor, appointmentID string, request *requests.CancelAppointment) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CancelAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingActorIDKey, actor.ID),
	)

	appointment, err := uc.findMutable(ctx, actor, appointmentID)
	if err != nil {
		return nil, err
	}

	reason := request.Reason
	if reason == "" {
		reason = models.AppointmentReasonCancelledByPatient
		if actor.ID == appointment.DoctorID {
			reason = models.AppointmentReasonCancelledByDoctor
		}
	}

	applied, err := uc.AppointmentRepository.UpdateStatus(ctx, appointment.ID, models.AppointmentTransition{
		From:               []models.AppointmentStatus{appointment.Status},
		To:                 models.AppointmentStatusCancelled,
		CancellationReason: reason,
		CancelledBy:        actor.ID,
		At:                 uc.Clock.Now(),
	})
	if err != nil {
		uc.Log.Error("appointmentUsecase.CancelAppointment error updating status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
		return nil, err
	}
	if !applied {
		return nil, exceptions.ErrAppointmentChanged(nil, appointment.ID, string(appointment.Status))
	}

	if _, err := uc.ReminderUsecase.CancelAppointmentReminders(ctx, appointment.ID); err != nil {
		uc.Log.Warn("appointmentUsecase.CancelAppointment reminders left for dispatcher cleanup",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
	}

	uc.Notifier.Send(ctx, notification.Message{
		Type:          models.NotificationTypeAppointmentCancelled,
		Title:         constvars.NotificationTitleAppointmentCancelled,
		Body:          fmt.Sprintf(constvars.NotificationMessageAppointmentCancelled, appointment.Date, appointment.Slot, reason),
		AppointmentID: appointment.ID,
	}, appointment.CounterpartyOf(actor.ID))

	uc.Log.Info("appointmentUsecase.CancelAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
	)
	return uc.AppointmentRepository.FindByID(ctx, appointment.ID)
}

// RescheduleAppointment copies the appointment forward to a new slot. The
// successor is inserted first so the unique slot index arbitrates races, and
// its payment record is prepared before the original is retired with a
// conditional write. Any failure up to that write rolls the successor back.
func (uc *appointmentUsecase) RescheduleAppointment(ctx context.Context, actor models.Actor, appointmentID string, request *requests.RescheduleAppointment) (*responses.RescheduleAppointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.RescheduleAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingActorIDKey, actor.ID),
		zap.String(constvars.LoggingDateKey, request.Date),
		zap.String(constvars.LoggingSlotKey, request.Time),
	)

	original, err := uc.findMutable(ctx, actor, appointmentID)
	if err != nil {
		return nil, err
	}

	booking, err := uc.resolveBooking(ctx, original.DoctorID, request.Date, request.Time, request.Slot)
	if err != nil {
		return nil, err
	}
	if booking.label == original.Slot && request.Date == original.Date {
		return nil, exceptions.ErrSameSlot(nil)
	}

	occupant, err := uc.AppointmentRepository.FindActiveBySlot(ctx, original.DoctorID, request.Date, booking.label)
	if err != nil {
		return nil, err
	}
	if occupant != nil && occupant.ID != original.ID {
		return nil, exceptions.ErrSlotAlreadyBooked(nil, original.DoctorID, request.Date, booking.label)
	}

	now := uc.Clock.Now()
	successor := &models.Appointment{
		PatientID:          original.PatientID,
		DoctorID:           original.DoctorID,
		Date:               request.Date,
		Time:               booking.label,
		Slot:               booking.label,
		StartAt:            booking.startAt,
		Reason:             original.Reason,
		Notes:              original.Notes,
		Status:             models.AppointmentStatusPending,
		IsActive:           true,
		ConsultationStatus: models.ConsultationStatusNotStarted,
		RescheduledFrom:    original.ID,
	}
	successor.SetCreatedAtUpdatedAt(now)

	err = uc.AppointmentRepository.CreateAppointment(ctx, successor)
	if err != nil {
		if errors.Is(err, exceptions.ErrDuplicateDocument) {
			return nil, exceptions.ErrSlotAlreadyBooked(nil, successor.DoctorID, successor.Date, successor.Slot)
		}
		return nil, err
	}

	if _, err := uc.PaymentUsecase.PrepareRescheduledPayment(ctx, original.ID, successor.ID); err != nil {
		uc.Log.Error("appointmentUsecase.RescheduleAppointment error preparing payment, rolling back successor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingNewAppointmentIDKey, successor.ID),
			zap.Error(err),
		)
		uc.abandon(ctx, successor.ID, models.AppointmentReasonRescheduleAborted)
		return nil, err
	}

	applied, err := uc.AppointmentRepository.UpdateStatus(ctx, original.ID, models.AppointmentTransition{
		From:               []models.AppointmentStatus{original.Status},
		To:                 models.AppointmentStatusCancelled,
		CancellationReason: fmt.Sprintf(models.AppointmentReasonRescheduledFormat, successor.ID),
		CancelledBy:        actor.ID,
		RescheduledTo:      successor.ID,
		At:                 now,
	})
	if err != nil || !applied {
		uc.Log.Warn("appointmentUsecase.RescheduleAppointment original changed, rolling back successor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, original.ID),
			zap.String(constvars.LoggingNewAppointmentIDKey, successor.ID),
			zap.Error(err),
		)
		uc.abandon(ctx, successor.ID, models.AppointmentReasonRescheduleAborted)
		if discardErr := uc.PaymentUsecase.DiscardRescheduledPayment(ctx, successor.ID); discardErr != nil {
			uc.Log.Error("appointmentUsecase.RescheduleAppointment error discarding successor payment",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingNewAppointmentIDKey, successor.ID),
				zap.Error(discardErr),
			)
		}
		if err != nil {
			return nil, err
		}
		return nil, exceptions.ErrAppointmentChanged(nil, original.ID, string(original.Status))
	}

	if _, err := uc.ReminderUsecase.UpdateAppointmentReminders(ctx, original.ID, successor.ID); err != nil {
		uc.Log.Warn("appointmentUsecase.RescheduleAppointment reminders not regenerated",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingNewAppointmentIDKey, successor.ID),
			zap.Error(err),
		)
	}

	// The reschedule is committed once the original is retired; the payment
	// sweep settles whatever the transfer leaves unfinished.
	payment, err := uc.PaymentUsecase.TransferPaymentToRescheduledAppointment(ctx, original.ID, successor.ID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.RescheduleAppointment error transferring payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingNewAppointmentIDKey, successor.ID),
			zap.Error(err),
		)
		payment, err = uc.PaymentUsecase.PrepareRescheduledPayment(ctx, original.ID, successor.ID)
		if err != nil {
			return nil, err
		}
	}

	uc.Notifier.Send(ctx, notification.Message{
		Type:          models.NotificationTypeAppointmentRescheduled,
		Title:         constvars.NotificationTitleAppointmentRescheduled,
		Body:          fmt.Sprintf(constvars.NotificationMessageAppointmentRescheduled, original.Date, original.Slot, successor.Date, successor.Slot),
		AppointmentID: successor.ID,
	}, original.PatientID, original.DoctorID)

	retired, err := uc.AppointmentRepository.FindByID(ctx, original.ID)
	if err != nil {
		return nil, err
	}
	current, err := uc.AppointmentRepository.FindByID(ctx, successor.ID)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("appointmentUsecase.RescheduleAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, original.ID),
		zap.String(constvars.LoggingNewAppointmentIDKey, successor.ID),
	)
	return &responses.RescheduleAppointment{Original: retired, Appointment: current, Payment: payment}, nil
}

func (uc *appointmentUsecase) UpdateAppointmentStatus(ctx context.Context, actor models.Actor, appointmentID string, request *requests.UpdateAppointmentStatus) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.UpdateAppointmentStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingAppointmentStatusKey, request.Status),
	)

	next := models.AppointmentStatus(request.Status)
	if !models.IsDoctorSettableStatus(next) {
		return nil, exceptions.ErrStatusNotAllowed(nil, request.Status)
	}

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil, appointmentID)
	}
	if !actor.IsDoctor() || appointment.DoctorID != actor.ID {
		return nil, exceptions.ErrDoctorOnly(nil, actor.ID, appointmentID)
	}
	if appointment.Status.IsTerminal() {
		return nil, exceptions.ErrAppointmentTerminal(nil, appointment.ID, string(appointment.Status))
	}
	if !appointment.Status.CanTransitionTo(next) {
		return nil, exceptions.ErrInvalidStatusTransition(nil, string(appointment.Status), string(next))
	}

	applied, err := uc.AppointmentRepository.UpdateStatus(ctx, appointment.ID, models.AppointmentTransition{
		From: []models.AppointmentStatus{appointment.Status},
		To:   next,
		At:   uc.Clock.Now(),
	})
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, exceptions.ErrAppointmentChanged(nil, appointment.ID, string(appointment.Status))
	}

	uc.Notifier.Send(ctx, notification.Message{
		Type:          models.NotificationTypeAppointmentStatus,
		Title:         constvars.NotificationTitleAppointmentStatus,
		Body:          fmt.Sprintf(statusTemplate(next), appointment.Date, appointment.Slot),
		AppointmentID: appointment.ID,
		Event:         string(next),
	}, appointment.PatientID)

	uc.Log.Info("appointmentUsecase.UpdateAppointmentStatus succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingAppointmentStatusKey, string(next)),
	)
	return uc.AppointmentRepository.FindByID(ctx, appointment.ID)
}

func statusTemplate(status models.AppointmentStatus) string {
	switch status {
	case models.AppointmentStatusConfirmed:
		return constvars.NotificationMessageAppointmentConfirmed
	case models.AppointmentStatusCompleted:
		return constvars.NotificationMessageAppointmentCompleted
	}
	return constvars.NotificationMessageAppointmentPending
}
