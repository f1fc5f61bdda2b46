package payments

import (
	"context"
	"doccare-service/internal/app/config"
	"doccare-service/internal/app/contracts"
	"doccare-service/internal/app/models"
	"doccare-service/internal/app/services/shared/notification"
	"doccare-service/internal/pkg/constvars"
	"doccare-service/internal/pkg/dto/requests"
	"doccare-service/internal/pkg/exceptions"
	"doccare-service/internal/pkg/utils"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type paymentUsecase struct {
	PaymentRepository     contracts.PaymentRepository
	AppointmentRepository contracts.AppointmentRepository
	ReminderUsecase       contracts.ReminderUsecase
	DoctorDirectory       contracts.DoctorDirectory
	Notifier              *notification.Notifier
	Clock                 utils.Clock
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

func NewPaymentUsecase(
	paymentRepository contracts.PaymentRepository,
	appointmentRepository contracts.AppointmentRepository,
	reminderUsecase contracts.ReminderUsecase,
	doctorDirectory contracts.DoctorDirectory,
	notifier *notification.Notifier,
	clock utils.Clock,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	return &paymentUsecase{
		PaymentRepository:     paymentRepository,
		AppointmentRepository: appointmentRepository,
		ReminderUsecase:       reminderUsecase,
		DoctorDirectory:       doctorDirectory,
		Notifier:              notifier,
		Clock:                 clock,
		InternalConfig:        internalConfig,
		Log:                   logger,
	}
}

func (uc *paymentUsecase) CreatePaymentRecord(ctx context.Context, appointmentID string) (*models.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.CreatePaymentRecord called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	existing, err := uc.PaymentRepository.FindByAppointmentID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil, appointmentID)
	}

	fee, err := uc.DoctorDirectory.GetConsultationFee(ctx, appointment.DoctorID)
	if err != nil {
		uc.Log.Warn("paymentUsecase.CreatePaymentRecord fee lookup failed, using zero",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, appointment.DoctorID),
			zap.Error(err),
		)
		fee = 0
	}

	now := uc.Clock.Now()
	payment := &models.Payment{
		AppointmentID:   appointment.ID,
		PatientID:       appointment.PatientID,
		DoctorID:        appointment.DoctorID,
		Amount:          fee,
		Method:          models.PaymentMethodNone,
		Status:          models.PaymentStatusPending,
		PaymentDeadline: appointment.StartAt,
	}
	payment.SetCreatedAtUpdatedAt(now)

	err = uc.PaymentRepository.CreatePayment(ctx, payment)
	if errors.Is(err, exceptions.ErrDuplicateDocument) {
		return uc.PaymentRepository.FindByAppointmentID(ctx, appointmentID)
	}
	if err != nil {
		uc.Log.Error("paymentUsecase.CreatePaymentRecord error creating payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Notifier.Send(ctx, notification.Message{
		Type:          models.NotificationTypePaymentDue,
		Title:         constvars.NotificationTitlePaymentDue,
		Body:          fmt.Sprintf(constvars.NotificationMessagePaymentDue, payment.Amount, payment.PaymentDeadline.In(uc.InternalConfig.App.Location()).Format(time.RFC1123)),
		AppointmentID: appointment.ID,
	}, appointment.PatientID)

	uc.Log.Info("paymentUsecase.CreatePaymentRecord succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, payment.ID),
		zap.Float64(constvars.LoggingPaymentAmountKey, payment.Amount),
		zap.Time(constvars.LoggingPaymentDeadlineKey, payment.PaymentDeadline),
	)
	return payment, nil
}

func (uc *paymentUsecase) SubmitPayment(ctx context.Context, actor models.Actor, appointmentID string, request *requests.SubmitPayment) (*models.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.SubmitPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingActorIDKey, actor.ID),
		zap.String(constvars.LoggingPaymentMethodKey, request.Method),
	)

	payment, err := uc.PaymentRepository.FindByAppointmentID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrPaymentNotFound(nil, appointmentID)
	}
	if !actor.IsPatient() || payment.PatientID != actor.ID {
		return nil, exceptions.ErrNotPayingPatient(nil, actor.ID, payment.PatientID)
	}

	switch payment.Status {
	case models.PaymentStatusCompleted:
		return nil, exceptions.ErrPaymentAlreadyCompleted(nil, payment.ID)
	case models.PaymentStatusExpired, models.PaymentStatusFailed:
		return nil, exceptions.ErrPaymentNotPayable(nil, payment.ID, string(payment.Status))
	}

	now := uc.Clock.Now()
	if payment.IsOverdue(now) {
		uc.Log.Info("paymentUsecase.SubmitPayment deadline passed, expiring payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentIDKey, payment.ID),
			zap.Time(constvars.LoggingPaymentDeadlineKey, payment.PaymentDeadline),
		)
		if err := uc.ExpirePayment(ctx, payment); err != nil {
			return nil, err
		}
		return nil, exceptions.ErrPaymentDeadlinePassed(nil, payment.ID, payment.PaymentDeadline)
	}

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil, appointmentID)
	}
	if appointment.Status.IsTerminal() {
		return nil, exceptions.ErrAppointmentTerminal(nil, appointment.ID, string(appointment.Status))
	}

	method := models.PaymentMethod(request.Method)
	details := models.PaymentDetails{
		WalletNumber:     request.WalletNumber,
		TransactionID:    request.TransactionID,
		CardLast4:        request.CardLast4,
		CardHolderName:   request.CardHolderName,
		GatewayReference: request.GatewayReference,
	}
	if !method.IsValid() || !details.SatisfiesMethod(method) {
		return nil, exceptions.ErrPaymentDetailsInvalid(nil, request.Method)
	}

	applied, err := uc.PaymentRepository.CompletePayment(ctx, payment.ID, method, details, now)
	if err != nil {
		uc.Log.Error("paymentUsecase.SubmitPayment error completing payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentIDKey, payment.ID),
			zap.Error(err),
		)
		return nil, err
	}
	if !applied {
		current, err := uc.PaymentRepository.FindByAppointmentID(ctx, appointmentID)
		if err != nil {
			return nil, err
		}
		switch {
		case current == nil:
			return nil, exceptions.ErrPaymentNotFound(nil, appointmentID)
		case current.Status == models.PaymentStatusCompleted:
			return nil, exceptions.ErrPaymentAlreadyCompleted(nil, payment.ID)
		case current.ExpiredByDeadline():
			return nil, exceptions.ErrPaymentDeadlinePassed(nil, payment.ID, payment.PaymentDeadline)
		}
		return nil, exceptions.ErrPaymentNotPayable(nil, payment.ID, string(current.Status))
	}

	if appointment.Status == models.AppointmentStatusPending {
		confirmed, err := uc.AppointmentRepository.UpdateStatus(ctx, appointment.ID, models.AppointmentTransition{
			From: []models.AppointmentStatus{models.AppointmentStatusPending},
			To:   models.AppointmentStatusConfirmed,
			At:   now,
		})
		if err != nil || !confirmed {
			// The payment stands; there is no refund path.
			uc.Log.Warn("paymentUsecase.SubmitPayment appointment not confirmed after payment",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
				zap.Bool("applied", confirmed),
				zap.Error(err),
			)
		}
	}

	uc.Notifier.Send(ctx, notification.Message{
		Type:          models.NotificationTypePaymentCompleted,
		Title:         constvars.NotificationTitlePaymentCompleted,
		Body:          fmt.Sprintf(constvars.NotificationMessagePaymentCompleted, payment.Amount, appointment.Date, appointment.Slot),
		AppointmentID: appointment.ID,
	}, appointment.PatientID, appointment.DoctorID)

	completed, err := uc.PaymentRepository.FindByAppointmentID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("paymentUsecase.SubmitPayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, payment.ID),
		zap.String(constvars.LoggingPaymentMethodKey, string(method)),
	)
	return completed, nil
}

func (uc *paymentUsecase) GetPaymentByAppointment(ctx context.Context, actor models.Actor, appointmentID string) (*models.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.GetPaymentByAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	payment, err := uc.PaymentRepository.FindByAppointmentID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrPaymentNotFound(nil, appointmentID)
	}
	if payment.PatientID != actor.ID && payment.DoctorID != actor.ID {
		return nil, exceptions.ErrNotAppointmentParticipant(nil, actor.ID, appointmentID)
	}
	return payment, nil
}

// PrepareRescheduledPayment gives the successor of a rescheduled appointment
// its payment record without touching the old one: a clone of a completed
// payment, or a fresh pending record. Calling it again returns the existing record.
func (uc *paymentUsecase) PrepareRescheduledPayment(ctx context.Context, oldAppointmentID, newAppointmentID string) (*models.Payment, error) {
	_, newPayment, err := uc.prepareRescheduledPayment(ctx, oldAppointmentID, newAppointmentID)
	return newPayment, err
}

func (uc *paymentUsecase) prepareRescheduledPayment(ctx context.Context, oldAppointmentID, newAppointmentID string) (*models.Payment, *models.Payment, error) {
	oldPayment, err := uc.PaymentRepository.FindByAppointmentID(ctx, oldAppointmentID)
	if err != nil {
		return nil, nil, err
	}

	existing, err := uc.PaymentRepository.FindByAppointmentID(ctx, newAppointmentID)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return oldPayment, existing, nil
	}

	var newPayment *models.Payment
	if oldPayment != nil && oldPayment.Status == models.PaymentStatusCompleted {
		newPayment, err = uc.clonePaidPayment(ctx, oldPayment, newAppointmentID)
	} else {
		newPayment, err = uc.CreatePaymentRecord(ctx, newAppointmentID)
	}
	if err != nil {
		return nil, nil, err
	}
	return oldPayment, newPayment, nil
}

// TransferPaymentToRescheduledAppointment moves the payment obligation of a
// rescheduled appointment onto its successor and retires the old record. The
// old record is retired from the status it was read in; a payment completed
// on the old appointment meanwhile is carried over before it is retired.
func (uc *paymentUsecase) TransferPaymentToRescheduledAppointment(ctx context.Context, oldAppointmentID, newAppointmentID string) (*models.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.TransferPaymentToRescheduledAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, oldAppointmentID),
		zap.String(constvars.LoggingNewAppointmentIDKey, newAppointmentID),
	)

	oldPayment, newPayment, err := uc.prepareRescheduledPayment(ctx, oldAppointmentID, newAppointmentID)
	if err != nil {
		uc.Log.Error("paymentUsecase.TransferPaymentToRescheduledAppointment error preparing successor payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingNewAppointmentIDKey, newAppointmentID),
			zap.Error(err),
		)
		return nil, err
	}

	now := uc.Clock.Now()
	for attempt := 0; attempt < 2 && oldPayment != nil && oldPayment.Status.CanTransferOut(); attempt++ {
		if oldPayment.Status == models.PaymentStatusCompleted && newPayment.Status == models.PaymentStatusPending {
			newPayment, err = uc.carryCompletedPayment(ctx, oldPayment, newPayment, now)
			if err != nil {
				return nil, err
			}
		}

		retired, err := uc.PaymentRepository.RetirePayment(ctx, oldPayment.ID, oldPayment.Status, models.PaymentReasonTransferred, newAppointmentID, now)
		if err != nil {
			uc.Log.Error("paymentUsecase.TransferPaymentToRescheduledAppointment error retiring old payment",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPaymentIDKey, oldPayment.ID),
				zap.Error(err),
			)
			return nil, err
		}
		if retired {
			break
		}
		oldPayment, err = uc.PaymentRepository.FindByAppointmentID(ctx, oldAppointmentID)
		if err != nil {
			return nil, err
		}
	}
	if newPayment.Status == models.PaymentStatusCompleted {
		if err := uc.confirmPaidAppointment(ctx, newAppointmentID, now); err != nil {
			return nil, err
		}
	}

	uc.Log.Info("paymentUsecase.TransferPaymentToRescheduledAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, newPayment.ID),
		zap.String(constvars.LoggingPaymentStatusKey, string(newPayment.Status)),
	)
	return newPayment, nil
}

// DiscardRescheduledPayment retires the payment prepared for a successor whose
// reschedule was rolled back.
func (uc *paymentUsecase) DiscardRescheduledPayment(ctx context.Context, newAppointmentID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	payment, err := uc.PaymentRepository.FindByAppointmentID(ctx, newAppointmentID)
	if err != nil {
		return err
	}
	if payment == nil || !payment.Status.CanTransferOut() {
		return nil
	}

	_, err = uc.PaymentRepository.RetirePayment(ctx, payment.ID, payment.Status, models.PaymentReasonRescheduleAborted, "", uc.Clock.Now())
	if err != nil {
		uc.Log.Error("paymentUsecase.DiscardRescheduledPayment error retiring payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentIDKey, payment.ID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (uc *paymentUsecase) clonePaidPayment(ctx context.Context, oldPayment *models.Payment, newAppointmentID string) (*models.Payment, error) {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, newAppointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil, newAppointmentID)
	}

	now := uc.Clock.Now()
	payment := &models.Payment{
		AppointmentID:   appointment.ID,
		PatientID:       appointment.PatientID,
		DoctorID:        appointment.DoctorID,
		Amount:          oldPayment.Amount,
		Method:          oldPayment.Method,
		Details:         oldPayment.Details,
		Status:          models.PaymentStatusCompleted,
		PaymentDeadline: appointment.StartAt,
		CompletedAt:     oldPayment.CompletedAt,
		TransferredFrom: oldPayment.ID,
	}
	payment.SetCreatedAtUpdatedAt(now)

	err = uc.PaymentRepository.CreatePayment(ctx, payment)
	if errors.Is(err, exceptions.ErrDuplicateDocument) {
		return uc.PaymentRepository.FindByAppointmentID(ctx, newAppointmentID)
	}
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// carryCompletedPayment completes the successor's pending record with the
// method and details of the payment made on the old appointment.
func (uc *paymentUsecase) carryCompletedPayment(ctx context.Context, oldPayment, newPayment *models.Payment, now time.Time) (*models.Payment, error) {
	var details models.PaymentDetails
	if oldPayment.Details != nil {
		details = *oldPayment.Details
	}
	if _, err := uc.PaymentRepository.CompletePayment(ctx, newPayment.ID, oldPayment.Method, details, now); err != nil {
		return nil, err
	}
	return uc.PaymentRepository.FindByAppointmentID(ctx, newPayment.AppointmentID)
}

func (uc *paymentUsecase) confirmPaidAppointment(ctx context.Context, appointmentID string, now time.Time) error {
	_, err := uc.AppointmentRepository.UpdateStatus(ctx, appointmentID, models.AppointmentTransition{
		From: []models.AppointmentStatus{models.AppointmentStatusPending},
		To:   models.AppointmentStatusConfirmed,
		At:   now,
	})
	return err
}

// ExpirePayment is the single expiry routine behind lazy detection and the
// expiry sweep. The payment write decides the outcome: the appointment is
// cancelled only when the payment is, or already was, expired for its
// deadline. A payment completed in the meantime leaves the appointment alone.
func (uc *paymentUsecase) ExpirePayment(ctx context.Context, payment *models.Payment) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	now := uc.Clock.Now()

	expired, err := uc.PaymentRepository.ExpirePayment(ctx, payment.ID, models.PaymentReasonDeadlinePassed, now)
	if err != nil {
		uc.Log.Error("paymentUsecase.ExpirePayment error expiring payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentIDKey, payment.ID),
			zap.Error(err),
		)
		return err
	}
	if !expired {
		current, err := uc.PaymentRepository.FindByAppointmentID(ctx, payment.AppointmentID)
		if err != nil {
			return err
		}
		if current == nil || current.ID != payment.ID || !current.ExpiredByDeadline() {
			uc.Log.Info("paymentUsecase.ExpirePayment payment no longer expirable",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPaymentIDKey, payment.ID),
			)
			return nil
		}
	}

	if err := uc.cancelUnpaidAppointment(ctx, payment.AppointmentID, now); err != nil {
		return err
	}
	if !expired {
		return nil
	}

	appointment, err := uc.AppointmentRepository.FindByID(ctx, payment.AppointmentID)
	if err == nil && appointment != nil {
		uc.Notifier.Send(ctx, notification.Message{
			Type:          models.NotificationTypePaymentExpired,
			Title:         constvars.NotificationTitlePaymentExpired,
			Body:          fmt.Sprintf(constvars.NotificationMessagePaymentExpired, appointment.Date, appointment.Slot),
			AppointmentID: appointment.ID,
		}, appointment.PatientID, appointment.DoctorID)
	}

	uc.Log.Info("paymentUsecase.ExpirePayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, payment.ID),
		zap.String(constvars.LoggingAppointmentIDKey, payment.AppointmentID),
	)
	return nil
}

func (uc *paymentUsecase) cancelUnpaidAppointment(ctx context.Context, appointmentID string, now time.Time) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	cancelled, err := uc.AppointmentRepository.UpdateStatus(ctx, appointmentID, models.AppointmentTransition{
		From:               models.SourcesOf(models.AppointmentStatusCancelled),
		To:                 models.AppointmentStatusCancelled,
		CancellationReason: models.AppointmentReasonPaymentFailure,
		CancelledBy:        models.SystemActorID,
		At:                 now,
	})
	if err != nil {
		uc.Log.Error("paymentUsecase.cancelUnpaidAppointment error cancelling appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		return err
	}
	if !cancelled {
		return nil
	}

	if _, err := uc.ReminderUsecase.CancelAppointmentReminders(ctx, appointmentID); err != nil {
		uc.Log.Warn("paymentUsecase.cancelUnpaidAppointment reminders left for dispatcher cleanup",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
	}
	return nil
}

func (uc *paymentUsecase) ExpireOverduePayments(ctx context.Context, now time.Time) (models.SweepStats, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	stats := models.SweepStats{Name: constvars.WatcherNamePaymentExpiry, RanAt: now}

	overdue, err := uc.PaymentRepository.FindOverduePayments(ctx, now)
	if err != nil {
		uc.Log.Error("paymentUsecase.ExpireOverduePayments error fetching overdue payments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return stats, err
	}

	for i := range overdue {
		if err := uc.ExpirePayment(ctx, &overdue[i]); err != nil {
			stats.Failed++
			continue
		}
		stats.Processed++
	}

	stale, err := uc.AppointmentRepository.FindPendingStartedBefore(ctx, now)
	if err != nil {
		uc.Log.Error("paymentUsecase.ExpireOverduePayments error fetching unsettled appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return stats, err
	}
	for i := range stale {
		settled, err := uc.settlePendingAppointment(ctx, &stale[i], now)
		if err != nil {
			stats.Failed++
			continue
		}
		if settled {
			stats.Processed++
		}
	}
	return stats, nil
}

// settlePendingAppointment brings a pending appointment whose start has
// passed in line with its payment. It finishes work an interrupted expiry,
// payment or reschedule left behind.
func (uc *paymentUsecase) settlePendingAppointment(ctx context.Context, appointment *models.Appointment, now time.Time) (bool, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	payment, err := uc.PaymentRepository.FindByAppointmentID(ctx, appointment.ID)
	if err != nil {
		return false, err
	}

	switch {
	case payment == nil, payment.ExpiredByDeadline(), payment.Status == models.PaymentStatusFailed:
		uc.Log.Info("paymentUsecase.settlePendingAppointment cancelling unpaid appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		)
		return true, uc.cancelUnpaidAppointment(ctx, appointment.ID, now)
	case payment.Status == models.PaymentStatusCompleted:
		uc.Log.Info("paymentUsecase.settlePendingAppointment confirming paid appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		)
		return true, uc.confirmPaidAppointment(ctx, appointment.ID, now)
	}
	return false, nil
}
