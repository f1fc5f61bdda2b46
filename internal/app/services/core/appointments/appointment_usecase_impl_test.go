package appointments

import (
	"context"
	"doccare-service/internal/app/config"
	"doccare-service/internal/app/contracts"
	"doccare-service/internal/app/models"
	"doccare-service/internal/app/services/core/consultations"
	"doccare-service/internal/app/services/core/doctors"
	"doccare-service/internal/app/services/core/payments"
	"doccare-service/internal/app/services/core/reminders"
	"doccare-service/internal/app/services/shared/notification"
	"doccare-service/internal/pkg/dto/requests"
	"doccare-service/internal/pkg/exceptions"
	"doccare-service/internal/pkg/utils"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	patient      = models.Actor{ID: "patient-1", Role: models.ActorRolePatient}
	otherPatient = models.Actor{ID: "patient-2", Role: models.ActorRolePatient}
	doctor       = models.Actor{ID: "doctor-1", Role: models.ActorRoleDoctor}
	cardPayment  = &requests.SubmitPayment{Method: "card", CardLast4: "4242", CardHolderName: "Rahim Uddin"}
)

type fixture struct {
	clock         *utils.ManualClock
	sink          *notification.RecordingSink
	appointments  contracts.AppointmentRepository
	payments      contracts.PaymentRepository
	reminders     contracts.ReminderRepository
	usecase       contracts.AppointmentUsecase
	payment       contracts.PaymentUsecase
	consultation  contracts.ConsultationUsecase
	reminderUsage contracts.ReminderUsecase
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	return newFixtureWithPayments(t, now, nil)
}

// newFixtureWithPayments lets a test interpose on the payment store used by
// the usecases. f.payments stays the underlying store.
func newFixtureWithPayments(t *testing.T, now time.Time, wrap func(contracts.PaymentRepository) contracts.PaymentRepository) *fixture {
	t.Helper()
	internalConfig := &config.InternalConfig{
		App: config.App{Timezone: "UTC", BaseUrl: "http://localhost:8080/api/v1"},
		Scheduling: config.AppScheduling{
			SlotIntervalInMinutes:         3,
			ConsultationDurationInMinutes: 3,
			DoctorNoticeInHours:           24,
			ReminderDispatchBatchSize:     100,
		},
	}
	logger := zap.NewNop()
	clock := utils.NewManualClock(now)
	sink := notification.NewRecordingSink()
	notifier := notification.NewNotifier(sink, logger, clock)

	ctx := context.Background()
	doctorRepository := doctors.NewDoctorMemoryRepository()
	require.NoError(t, doctorRepository.UpsertDoctor(ctx, &models.Doctor{
		ID:              doctor.ID,
		Name:            "Dr. Karim",
		WorkingHours:    &models.WorkingHours{Start: "09:00", End: "17:00"},
		ConsultationFee: 500,
	}))
	require.NoError(t, doctorRepository.UpsertDoctor(ctx, &models.Doctor{ID: "doctor-2", Name: "Dr. Unscheduled"}))
	directory := doctors.NewDoctorDirectory(doctorRepository, nil, 0, logger)

	appointmentRepository := NewAppointmentMemoryRepository()
	paymentRepository := payments.NewPaymentMemoryRepository()
	reminderRepository := reminders.NewReminderMemoryRepository()

	reminderUsecase := reminders.NewReminderUsecase(reminderRepository, appointmentRepository, notifier, clock, internalConfig, logger)
	var usecasePayments contracts.PaymentRepository = paymentRepository
	if wrap != nil {
		usecasePayments = wrap(paymentRepository)
	}
	paymentUsecase := payments.NewPaymentUsecase(usecasePayments, appointmentRepository, reminderUsecase, directory, notifier, clock, internalConfig, logger)
	consultationUsecase := consultations.NewConsultationUsecase(appointmentRepository, notifier, clock, internalConfig, logger)

	return &fixture{
		clock:         clock,
		sink:          sink,
		appointments:  appointmentRepository,
		payments:      paymentRepository,
		reminders:     reminderRepository,
		usecase:       NewAppointmentUsecase(appointmentRepository, paymentUsecase, reminderUsecase, directory, notifier, clock, internalConfig, logger),
		payment:       paymentUsecase,
		consultation:  consultationUsecase,
		reminderUsage: reminderUsecase,
	}
}

func (f *fixture) book(t *testing.T, actor models.Actor, date, timeOfDay string) *models.Appointment {
	t.Helper()
	appointment, err := f.usecase.BookAppointment(context.Background(), actor, &requests.BookAppointment{
		DoctorID: doctor.ID,
		Date:     date,
		Time:     timeOfDay,
		Reason:   "fever",
		Notes:    "since monday",
	})
	require.NoError(t, err)
	return appointment
}

var monday = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func TestBookAppointment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, monday)

	appointment := f.book(t, patient, "2025-03-10", "10:00")
	assert.Equal(t, models.AppointmentStatusPending, appointment.Status)
	assert.Equal(t, models.ConsultationStatusNotStarted, appointment.ConsultationStatus)
	assert.Equal(t, "10:00", appointment.Slot)
	assert.True(t, appointment.StartAt.Equal(time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)))

	payment, err := f.payments.FindByAppointmentID(ctx, appointment.ID)
	require.NoError(t, err)
	require.NotNil(t, payment)
	assert.Equal(t, 500.0, payment.Amount)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.True(t, payment.PaymentDeadline.Equal(appointment.StartAt))

	batch, err := f.reminders.FindByAppointmentID(ctx, appointment.ID)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, models.ReminderType1Hour, batch[0].Type)
	assert.Equal(t, models.ReminderType5Minutes, batch[1].Type)

	booked := f.sink.ByType(models.NotificationTypeAppointmentBooked)
	assert.Len(t, booked, 2)
}

func TestBookAppointment_Rejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, monday)
	f.book(t, patient, "2025-03-10", "10:00")

	tests := []struct {
		name    string
		actor   models.Actor
		request requests.BookAppointment
		check   func(error) bool
	}{
		{"date in the past", patient, requests.BookAppointment{DoctorID: doctor.ID, Date: "2025-03-09", Time: "10:00"}, exceptions.IsValidation},
		{"earlier today", patient, requests.BookAppointment{DoctorID: doctor.ID, Date: "2025-03-10", Time: "07:00"}, exceptions.IsValidation},
		{"doctor without working hours", patient, requests.BookAppointment{DoctorID: "doctor-2", Date: "2025-03-11", Time: "10:00"}, exceptions.IsValidation},
		{"off the slot grid", patient, requests.BookAppointment{DoctorID: doctor.ID, Date: "2025-03-11", Time: "10:01"}, exceptions.IsValidation},
		{"outside working hours", patient, requests.BookAppointment{DoctorID: doctor.ID, Date: "2025-03-11", Time: "17:00"}, exceptions.IsValidation},
		{"slot taken", otherPatient, requests.BookAppointment{DoctorID: doctor.ID, Date: "2025-03-10", Time: "10:00"}, exceptions.IsConflict},
		{"doctors cannot book", doctor, requests.BookAppointment{DoctorID: doctor.ID, Date: "2025-03-11", Time: "10:00"}, exceptions.IsForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := tt.request
			_, err := f.usecase.BookAppointment(ctx, tt.actor, &request)
			require.Error(t, err)
			assert.True(t, tt.check(err), err.Error())
		})
	}
}

func TestBookAppointment_ConcurrentBookingsOfOneSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, monday)

	const contenders = 25
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			actor := models.Actor{ID: fmt.Sprintf("patient-%d", i), Role: models.ActorRolePatient}
			_, err := f.usecase.BookAppointment(ctx, actor, &requests.BookAppointment{DoctorID: doctor.ID, Date: "2025-03-11", Time: "11:00"})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if exceptions.IsConflict(err) {
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, contenders-1, conflicts)

	slots, err := f.appointments.FindBookedSlots(ctx, doctor.ID, "2025-03-11")
	require.NoError(t, err)
	assert.Equal(t, []string{"11:00"}, slots)
}

func TestCancelAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("patient cancels, reminders go, payment stays", func(t *testing.T) {
		f := newFixture(t, monday)
		appointment := f.book(t, patient, "2025-03-10", "10:00")
		_, err := f.payment.SubmitPayment(ctx, patient, appointment.ID, cardPayment)
		require.NoError(t, err)

		cancelled, err := f.usecase.CancelAppointment(ctx, patient, appointment.ID, &requests.CancelAppointment{Reason: "feeling better"})
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentStatusCancelled, cancelled.Status)
		assert.Equal(t, "feeling better", cancelled.CancellationReason)
		assert.Equal(t, patient.ID, cancelled.CancelledBy)

		remaining, err := f.reminders.FindByAppointmentID(ctx, appointment.ID)
		require.NoError(t, err)
		assert.Empty(t, remaining)

		payment, err := f.payments.FindByAppointmentID(ctx, appointment.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusCompleted, payment.Status)

		notices := f.sink.ByType(models.NotificationTypeAppointmentCancelled)
		require.Len(t, notices, 1)
		assert.Equal(t, doctor.ID, notices[0].RecipientID)

		f.book(t, otherPatient, "2025-03-10", "10:00")
	})

	t.Run("terminal appointments cannot be cancelled again", func(t *testing.T) {
		f := newFixture(t, monday)
		appointment := f.book(t, patient, "2025-03-10", "10:00")
		_, err := f.usecase.CancelAppointment(ctx, patient, appointment.ID, &requests.CancelAppointment{})
		require.NoError(t, err)

		_, err = f.usecase.CancelAppointment(ctx, patient, appointment.ID, &requests.CancelAppointment{})
		assert.True(t, exceptions.IsConflict(err))
	})

	t.Run("strangers are rejected", func(t *testing.T) {
		f := newFixture(t, monday)
		appointment := f.book(t, patient, "2025-03-10", "10:00")
		_, err := f.usecase.CancelAppointment(ctx, otherPatient, appointment.ID, &requests.CancelAppointment{})
		assert.True(t, exceptions.IsForbidden(err))
	})
}

func TestCancelAppointment_DoctorNotice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, monday)

	soon := f.book(t, patient, "2025-03-10", "15:00")
	later := f.book(t, patient, "2025-03-12", "09:00")

	_, err := f.usecase.CancelAppointment(ctx, doctor, soon.ID, &requests.CancelAppointment{})
	require.Error(t, err)
	assert.True(t, exceptions.IsForbidden(err))

	_, err = f.usecase.CancelAppointment(ctx, patient, soon.ID, &requests.CancelAppointment{})
	require.NoError(t, err)

	cancelled, err := f.usecase.CancelAppointment(ctx, doctor, later.ID, &requests.CancelAppointment{})
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentReasonCancelledByDoctor, cancelled.CancellationReason)

	notices := f.sink.ByType(models.NotificationTypeAppointmentCancelled)
	require.Len(t, notices, 2)
	assert.Equal(t, patient.ID, notices[1].RecipientID)
}

func TestRescheduleAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("paid appointment carries its payment forward", func(t *testing.T) {
		f := newFixture(t, monday)
		original := f.book(t, patient, "2025-03-10", "10:00")
		paid, err := f.payment.SubmitPayment(ctx, patient, original.ID, cardPayment)
		require.NoError(t, err)

		result, err := f.usecase.RescheduleAppointment(ctx, patient, original.ID, &requests.RescheduleAppointment{Date: "2025-03-12", Time: "14:00"})
		require.NoError(t, err)

		successor := result.Appointment
		assert.Equal(t, models.AppointmentStatusConfirmed, successor.Status)
		assert.Equal(t, original.ID, successor.RescheduledFrom)
		assert.Equal(t, "fever", successor.Reason)
		assert.Equal(t, "since monday", successor.Notes)

		assert.Equal(t, models.AppointmentStatusCancelled, result.Original.Status)
		assert.Equal(t, successor.ID, result.Original.RescheduledTo)
		assert.Equal(t, "Rescheduled to "+successor.ID, result.Original.CancellationReason)

		require.NotNil(t, result.Payment)
		assert.Equal(t, models.PaymentStatusCompleted, result.Payment.Status)
		assert.Equal(t, paid.Amount, result.Payment.Amount)

		old, err := f.payments.FindByAppointmentID(ctx, original.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusExpired, old.Status)
		assert.Equal(t, models.PaymentReasonTransferred, old.FailureReason)

		oldReminders, err := f.reminders.FindByAppointmentID(ctx, original.ID)
		require.NoError(t, err)
		assert.Empty(t, oldReminders)
		newReminders, err := f.reminders.FindByAppointmentID(ctx, successor.ID)
		require.NoError(t, err)
		assert.Len(t, newReminders, 3)

		assert.Len(t, f.sink.ByType(models.NotificationTypeAppointmentRescheduled), 2)

		f.book(t, otherPatient, "2025-03-10", "10:00")
	})

	t.Run("pending payment is recreated against the new start", func(t *testing.T) {
		f := newFixture(t, monday)
		original := f.book(t, patient, "2025-03-10", "10:00")

		result, err := f.usecase.RescheduleAppointment(ctx, patient, original.ID, &requests.RescheduleAppointment{Date: "2025-03-12", Time: "14:00"})
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentStatusPending, result.Appointment.Status)
		assert.Equal(t, models.PaymentStatusPending, result.Payment.Status)
		assert.True(t, result.Payment.PaymentDeadline.Equal(result.Appointment.StartAt))
	})

	t.Run("destination must be free", func(t *testing.T) {
		f := newFixture(t, monday)
		original := f.book(t, patient, "2025-03-10", "10:00")
		f.book(t, otherPatient, "2025-03-12", "14:00")

		_, err := f.usecase.RescheduleAppointment(ctx, patient, original.ID, &requests.RescheduleAppointment{Date: "2025-03-12", Time: "14:00"})
		assert.True(t, exceptions.IsConflict(err))

		stored, err := f.appointments.FindByID(ctx, original.ID)
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentStatusPending, stored.Status)
	})

	t.Run("same slot and invalid slot are rejected", func(t *testing.T) {
		f := newFixture(t, monday)
		original := f.book(t, patient, "2025-03-10", "10:00")

		_, err := f.usecase.RescheduleAppointment(ctx, patient, original.ID, &requests.RescheduleAppointment{Date: "2025-03-10", Time: "10:00"})
		assert.True(t, exceptions.IsValidation(err))

		_, err = f.usecase.RescheduleAppointment(ctx, patient, original.ID, &requests.RescheduleAppointment{Date: "2025-03-12", Time: "08:00"})
		assert.True(t, exceptions.IsValidation(err))
	})

	t.Run("doctor needs notice", func(t *testing.T) {
		f := newFixture(t, monday)
		original := f.book(t, patient, "2025-03-10", "10:00")

		_, err := f.usecase.RescheduleAppointment(ctx, doctor, original.ID, &requests.RescheduleAppointment{Date: "2025-03-12", Time: "14:00"})
		assert.True(t, exceptions.IsForbidden(err))
	})
}

type flakyPaymentRepository struct {
	contracts.PaymentRepository
	failCreate bool
	failRetire bool
}

func (r *flakyPaymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if r.failCreate {
		return fmt.Errorf("payment store unavailable")
	}
	return r.PaymentRepository.CreatePayment(ctx, payment)
}

func (r *flakyPaymentRepository) RetirePayment(ctx context.Context, paymentID string, from models.PaymentStatus, reason, transferredTo string, at time.Time) (bool, error) {
	if r.failRetire {
		return false, fmt.Errorf("payment store unavailable")
	}
	return r.PaymentRepository.RetirePayment(ctx, paymentID, from, reason, transferredTo, at)
}

func TestRescheduleAppointment_PaymentFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("successor payment failure leaves the original untouched", func(t *testing.T) {
		flaky := &flakyPaymentRepository{}
		f := newFixtureWithPayments(t, monday, func(inner contracts.PaymentRepository) contracts.PaymentRepository {
			flaky.PaymentRepository = inner
			return flaky
		})
		original := f.book(t, patient, "2025-03-10", "10:00")

		flaky.failCreate = true
		_, err := f.usecase.RescheduleAppointment(ctx, patient, original.ID, &requests.RescheduleAppointment{Date: "2025-03-12", Time: "14:00"})
		require.Error(t, err)

		stored, err := f.appointments.FindByID(ctx, original.ID)
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentStatusPending, stored.Status)
		assert.True(t, stored.IsActive)
		assert.Empty(t, stored.RescheduledTo)

		occupant, err := f.appointments.FindActiveBySlot(ctx, doctor.ID, "2025-03-12", "14:00")
		require.NoError(t, err)
		assert.Nil(t, occupant)

		payment, err := f.payments.FindByAppointmentID(ctx, original.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPending, payment.Status)

		flaky.failCreate = false
		f.book(t, otherPatient, "2025-03-12", "14:00")
	})

	t.Run("retire failure after commit still returns the successor", func(t *testing.T) {
		flaky := &flakyPaymentRepository{}
		f := newFixtureWithPayments(t, monday, func(inner contracts.PaymentRepository) contracts.PaymentRepository {
			flaky.PaymentRepository = inner
			return flaky
		})
		original := f.book(t, patient, "2025-03-10", "10:00")

		flaky.failRetire = true
		result, err := f.usecase.RescheduleAppointment(ctx, patient, original.ID, &requests.RescheduleAppointment{Date: "2025-03-12", Time: "14:00"})
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentStatusCancelled, result.Original.Status)
		assert.Equal(t, models.AppointmentStatusPending, result.Appointment.Status)
		require.NotNil(t, result.Payment)
		assert.Equal(t, result.Appointment.ID, result.Payment.AppointmentID)
		assert.Equal(t, models.PaymentStatusPending, result.Payment.Status)
	})
}

func TestUpdateAppointmentStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, monday)
	appointment := f.book(t, patient, "2025-03-10", "10:00")

	_, err := f.usecase.UpdateAppointmentStatus(ctx, patient, appointment.ID, &requests.UpdateAppointmentStatus{Status: "confirmed"})
	assert.True(t, exceptions.IsForbidden(err))

	_, err = f.usecase.UpdateAppointmentStatus(ctx, doctor, appointment.ID, &requests.UpdateAppointmentStatus{Status: "cancelled"})
	assert.True(t, exceptions.IsValidation(err))

	_, err = f.usecase.UpdateAppointmentStatus(ctx, doctor, appointment.ID, &requests.UpdateAppointmentStatus{Status: "completed"})
	assert.True(t, exceptions.IsConflict(err))

	confirmed, err := f.usecase.UpdateAppointmentStatus(ctx, doctor, appointment.ID, &requests.UpdateAppointmentStatus{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusConfirmed, confirmed.Status)

	notices := f.sink.ByType(models.NotificationTypeAppointmentStatus)
	require.Len(t, notices, 1)
	assert.Equal(t, patient.ID, notices[0].RecipientID)
	assert.True(t, strings.Contains(notices[0].Message, "confirmed"))

	completed, err := f.usecase.UpdateAppointmentStatus(ctx, doctor, appointment.ID, &requests.UpdateAppointmentStatus{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusCompleted, completed.Status)

	_, err = f.usecase.UpdateAppointmentStatus(ctx, doctor, appointment.ID, &requests.UpdateAppointmentStatus{Status: "pending"})
	assert.True(t, exceptions.IsConflict(err))
}

func TestListAppointments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, monday)
	f.book(t, patient, "2025-03-10", "10:00")
	f.book(t, patient, "2025-03-10", "10:03")
	f.book(t, patient, "2025-03-11", "10:00")
	f.book(t, otherPatient, "2025-03-10", "11:00")

	mine, pagination, err := f.usecase.ListAppointments(ctx, patient, models.AppointmentFilter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	assert.Equal(t, 3, pagination.Total)
	assert.NotEmpty(t, pagination.NextURL)
	for _, appointment := range mine {
		assert.Equal(t, patient.ID, appointment.PatientID)
	}

	assigned, _, err := f.usecase.ListAppointments(ctx, doctor, models.AppointmentFilter{Date: "2025-03-10"})
	require.NoError(t, err)
	assert.Len(t, assigned, 3)

	_, _, err = f.usecase.ListAppointments(ctx, patient, models.AppointmentFilter{Status: "archived"})
	assert.True(t, exceptions.IsValidation(err))

	_, _, err = f.usecase.ListAppointments(ctx, patient, models.AppointmentFilter{Date: "10/03/2025"})
	assert.True(t, exceptions.IsValidation(err))
}

func TestGetAppointment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, monday)
	appointment := f.book(t, patient, "2025-03-10", "10:00")

	found, err := f.usecase.GetAppointment(ctx, doctor, appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, appointment.ID, found.ID)

	_, err = f.usecase.GetAppointment(ctx, otherPatient, appointment.ID)
	assert.True(t, exceptions.IsForbidden(err))

	_, err = f.usecase.GetAppointment(ctx, patient, "missing")
	assert.True(t, exceptions.IsNotFound(err))
}

func TestListAvailableSlots(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.Date(2025, 3, 10, 16, 50, 0, 0, time.UTC))
	f.book(t, patient, "2025-03-10", "16:54")

	available, err := f.usecase.ListAvailableSlots(ctx, doctor.ID, "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, []string{"16:51", "16:57"}, available.Slots)

	tomorrow, err := f.usecase.ListAvailableSlots(ctx, doctor.ID, "2025-03-11")
	require.NoError(t, err)
	assert.Len(t, tomorrow.Slots, 160)
	assert.Equal(t, "09:00", tomorrow.Slots[0])

	_, err = f.usecase.ListAvailableSlots(ctx, "doctor-2", "2025-03-11")
	assert.True(t, exceptions.IsValidation(err))

	_, err = f.usecase.ListAvailableSlots(ctx, doctor.ID, "not-a-date")
	assert.True(t, exceptions.IsValidation(err))
}

// Book 10:00 with a 500 fee, pay by card, start the consultation at 10:00 and
// let the consultation window close at 10:03.
func TestAppointmentLifecycle_EndToEnd(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, monday)

	appointment := f.book(t, patient, "2025-03-10", "10:00")

	payment, err := f.payment.SubmitPayment(ctx, patient, appointment.ID, cardPayment)
	require.NoError(t, err)
	assert.Equal(t, 500.0, payment.Amount)

	f.clock.Set(time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC))
	state, err := f.consultation.StartConsultation(ctx, patient, appointment.ID)
	require.NoError(t, err)
	assert.True(t, state.IsActive)

	canRate, err := f.consultation.CanRateConsultation(ctx, patient, appointment.ID)
	require.NoError(t, err)
	assert.False(t, canRate)

	f.clock.Set(time.Date(2025, 3, 10, 10, 3, 0, 0, time.UTC))
	_, err = f.consultation.CompleteExpiredConsultations(ctx, f.clock.Now())
	require.NoError(t, err)

	stored, err := f.appointments.FindByID(ctx, appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusCompleted, stored.Status)
	assert.Equal(t, models.ConsultationStatusCompleted, stored.ConsultationStatus)

	canRate, err = f.consultation.CanRateConsultation(ctx, patient, appointment.ID)
	require.NoError(t, err)
	assert.True(t, canRate)

	_, err = f.usecase.CancelAppointment(ctx, patient, appointment.ID, &requests.CancelAppointment{})
	assert.True(t, exceptions.IsConflict(err))
}
