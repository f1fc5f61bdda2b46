package appointments

import (
	"context"
	"doccare-service/internal/app/config"
	"doccare-service/internal/app/contracts"
	"doccare-service/internal/app/models"
	"doccare-service/internal/app/services/core/slot"
	"doccare-service/internal/app/services/shared/notification"
	"doccare-service/internal/pkg/constvars"
	"doccare-service/internal/pkg/dto/requests"
	"doccare-service/internal/pkg/dto/responses"
	"doccare-service/internal/pkg/exceptions"
	"doccare-service/internal/pkg/utils"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	PaymentUsecase        contracts.PaymentUsecase
	ReminderUsecase       contracts.ReminderUsecase
	DoctorDirectory       contracts.DoctorDirectory
	Notifier              *notification.Notifier
	Clock                 utils.Clock
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	paymentUsecase contracts.PaymentUsecase,
	reminderUsecase contracts.ReminderUsecase,
	doctorDirectory contracts.DoctorDirectory,
	notifier *notification.Notifier,
	clock utils.Clock,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	return &appointmentUsecase{
		AppointmentRepository: appointmentRepository,
		PaymentUsecase:        paymentUsecase,
		ReminderUsecase:       reminderUsecase,
		DoctorDirectory:       doctorDirectory,
		Notifier:              notifier,
		Clock:                 clock,
		InternalConfig:        internalConfig,
		Log:                   logger,
	}
}

func (uc *appointmentUsecase) BookAppointment(ctx context.Context, actor models.Actor, request *requests.BookAppointment) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.BookAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, actor.ID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.String(constvars.LoggingDateKey, request.Date),
		zap.String(constvars.LoggingSlotKey, request.Time),
	)

	if !actor.IsPatient() {
		return nil, exceptions.ErrPatientOnly(nil, actor.ID, string(actor.Role))
	}

	booking, err := uc.resolveBooking(ctx, request.DoctorID, request.Date, request.Time, request.Slot)
	if err != nil {
		uc.Log.Error("appointmentUsecase.BookAppointment error resolving slot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	now := uc.Clock.Now()
	appointment := &models.Appointment{
		PatientID:          actor.ID,
		DoctorID:           request.DoctorID,
		Date:               request.Date,
		Time:               booking.label,
		Slot:               booking.label,
		StartAt:            booking.startAt,
		Reason:             request.Reason,
		Notes:              request.Notes,
		Status:             models.AppointmentStatusPending,
		IsActive:           true,
		ConsultationStatus: models.ConsultationStatusNotStarted,
	}
	appointment.SetCreatedAtUpdatedAt(now)

	err = uc.AppointmentRepository.CreateAppointment(ctx, appointment)
	if err != nil {
		if errors.Is(err, exceptions.ErrDuplicateDocument) {
			return nil, exceptions.ErrSlotAlreadyBooked(nil, appointment.DoctorID, appointment.Date, appointment.Slot)
		}
		uc.Log.Error("appointmentUsecase.BookAppointment error creating appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	_, err = uc.PaymentUsecase.CreatePaymentRecord(ctx, appointment.ID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.BookAppointment error creating payment, releasing slot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
		uc.abandon(ctx, appointment.ID, models.AppointmentReasonBookingFailed)
		return nil, err
	}

	_, err = uc.ReminderUsecase.CreateAppointmentReminders(ctx, appointment.ID)
	if err != nil {
		uc.Log.Warn("appointmentUsecase.BookAppointment reminders not created",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
	}

	uc.Notifier.Send(ctx, notification.Message{
		Type:          models.NotificationTypeAppointmentBooked,
		Title:         constvars.NotificationTitleAppointmentBooked,
		Body:          fmt.Sprintf(constvars.NotificationMessageAppointmentBooked, appointment.Date, appointment.Slot),
		AppointmentID: appointment.ID,
	}, appointment.PatientID, appointment.DoctorID)

	uc.Log.Info("appointmentUsecase.BookAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
	)
	return appointment, nil
}

func (uc *appointmentUsecase) GetAppointment(ctx context.Context, actor models.Actor, appointmentID string) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.GetAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	return uc.findForParticipant(ctx, actor, appointmentID)
}

func (uc *appointmentUsecase) ListAppointments(ctx context.Context, actor models.Actor, filter models.AppointmentFilter) ([]models.Appointment, *responses.Pagination, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.ListAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingActorIDKey, actor.ID),
		zap.String(constvars.LoggingActorRoleKey, string(actor.Role)),
	)

	switch {
	case actor.IsDoctor():
		filter.DoctorID, filter.PatientID = actor.ID, ""
	case actor.IsPatient():
		filter.PatientID, filter.DoctorID = actor.ID, ""
	default:
		return nil, nil, exceptions.ErrTokenInvalidRole(nil)
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, nil, exceptions.ErrStatusNotAllowed(nil, string(filter.Status))
	}
	if filter.Date != "" {
		if _, err := utils.ParseDate(filter.Date, uc.InternalConfig.App.Location()); err != nil {
			return nil, nil, exceptions.ErrURLParamValidation(err, "date")
		}
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 10
	}

	appointments, total, err := uc.AppointmentRepository.FindAll(ctx, filter)
	if err != nil {
		uc.Log.Error("appointmentUsecase.ListAppointments error fetching appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, nil, err
	}

	baseURL := strings.TrimSuffix(uc.InternalConfig.App.BaseUrl, "/") + "/" + constvars.ResourceAppointments
	pagination := utils.BuildPaginationResponse(total, filter.Page, filter.PageSize, baseURL)
	return appointments, pagination, nil
}

func (uc *appointmentUsecase) ListAvailableSlots(ctx context.Context, doctorID, date string) (*responses.AvailableSlots, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.ListAvailableSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingDateKey, date),
	)

	location := uc.InternalConfig.App.Location()
	if _, err := utils.ParseDate(date, location); err != nil {
		return nil, exceptions.ErrURLParamValidation(err, "date")
	}

	hours, err := uc.DoctorDirectory.GetWorkingHours(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if hours == nil {
		return nil, exceptions.ErrDoctorHasNoWorkingHours(nil, doctorID)
	}

	booked, err := uc.AppointmentRepository.FindBookedSlots(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	available, err := slot.AvailableSlots(hours.Start, hours.End, uc.InternalConfig.Scheduling.SlotInterval(), booked)
	if err != nil {
		return nil, exceptions.ErrServerProcess(err)
	}

	now := uc.Clock.Now()
	upcoming := make([]string, 0, len(available))
	for _, label := range available {
		startAt, err := utils.CombineDateAndTime(date, label, location)
		if err != nil || !startAt.After(now) {
			continue
		}
		upcoming = append(upcoming, label)
	}

	uc.Log.Info("appointmentUsecase.ListAvailableSlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingSlotCountKey, len(upcoming)),
	)
	return &responses.AvailableSlots{DoctorID: doctorID, Date: date, Slots: upcoming}, nil
}
