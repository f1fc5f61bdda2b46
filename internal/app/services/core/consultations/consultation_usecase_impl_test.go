package consultations

import (
	"context"
	"doccare-service/internal/app/config"
	"doccare-service/internal/app/contracts"
	"doccare-service/internal/app/models"
	"doccare-service/internal/app/services/core/appointments"
	"doccare-service/internal/app/services/shared/notification"
	"doccare-service/internal/pkg/exceptions"
	"doccare-service/internal/pkg/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	patient  = models.Actor{ID: "patient-1", Role: models.ActorRolePatient}
	doctor   = models.Actor{ID: "doctor-1", Role: models.ActorRoleDoctor}
	stranger = models.Actor{ID: "patient-9", Role: models.ActorRolePatient}
)

type consultationFixture struct {
	clock        *utils.ManualClock
	sink         *notification.RecordingSink
	appointments contracts.AppointmentRepository
	usecase      contracts.ConsultationUsecase
}

func newConsultationFixture(now time.Time) *consultationFixture {
	internalConfig := &config.InternalConfig{
		Scheduling: config.AppScheduling{ConsultationDurationInMinutes: 3},
	}
	logger := zap.NewNop()
	clock := utils.NewManualClock(now)
	sink := notification.NewRecordingSink()
	repository := appointments.NewAppointmentMemoryRepository()
	return &consultationFixture{
		clock:        clock,
		sink:         sink,
		appointments: repository,
		usecase:      NewConsultationUsecase(repository, notification.NewNotifier(sink, logger, clock), clock, internalConfig, logger),
	}
}

func (f *consultationFixture) seed(t *testing.T, id string, status models.AppointmentStatus, startAt time.Time) {
	t.Helper()
	require.NoError(t, f.appointments.CreateAppointment(context.Background(), &models.Appointment{
		ID:                 id,
		PatientID:          patient.ID,
		DoctorID:           doctor.ID,
		Date:               startAt.Format("2006-01-02"),
		Slot:               startAt.Format("15:04"),
		StartAt:            startAt,
		Status:             status,
		IsActive:           true,
		ConsultationStatus: models.ConsultationStatusNotStarted,
	}))
}

func TestStartConsultation_Preconditions(t *testing.T) {
	ctx := context.Background()
	startAt := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	f := newConsultationFixture(startAt.Add(-time.Minute))
	f.seed(t, "appt-confirmed", models.AppointmentStatusConfirmed, startAt)
	f.seed(t, "appt-pending", models.AppointmentStatusPending, startAt.Add(time.Hour))

	_, err := f.usecase.StartConsultation(ctx, patient, "appt-confirmed")
	require.Error(t, err)
	assert.True(t, exceptions.IsConflict(err))

	f.clock.Set(startAt.Add(2 * time.Hour))
	_, err = f.usecase.StartConsultation(ctx, patient, "appt-pending")
	assert.True(t, exceptions.IsConflict(err))

	_, err = f.usecase.StartConsultation(ctx, stranger, "appt-confirmed")
	assert.True(t, exceptions.IsForbidden(err))

	_, err = f.usecase.StartConsultation(ctx, patient, "missing")
	assert.True(t, exceptions.IsNotFound(err))
}

func TestStartConsultation_TimerCompletes(t *testing.T) {
	ctx := context.Background()
	startAt := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	f := newConsultationFixture(startAt)
	f.seed(t, "appt-1", models.AppointmentStatusConfirmed, startAt)

	state, err := f.usecase.StartConsultation(ctx, patient, "appt-1")
	require.NoError(t, err)
	assert.Equal(t, string(models.ConsultationStatusInProgress), state.ConsultationStatus)
	assert.True(t, state.IsActive)
	assert.EqualValues(t, 180, state.RemainingSeconds)
	assert.Equal(t, 1, f.clock.PendingTimers())
	assert.Len(t, f.sink.ByType(models.NotificationTypeConsultationStarted), 2)

	again, err := f.usecase.StartConsultation(ctx, doctor, "appt-1")
	require.NoError(t, err)
	assert.Equal(t, state.StartTime, again.StartTime)
	assert.Len(t, f.sink.ByType(models.NotificationTypeConsultationStarted), 2)
	assert.Equal(t, 1, f.clock.PendingTimers())

	f.clock.Advance(3 * time.Minute)

	appointment, err := f.appointments.FindByID(ctx, "appt-1")
	require.NoError(t, err)
	assert.Equal(t, models.ConsultationStatusCompleted, appointment.ConsultationStatus)
	assert.Equal(t, models.AppointmentStatusCompleted, appointment.Status)
	require.NotNil(t, appointment.ConsultationEndTime)
	assert.True(t, appointment.ConsultationEndTime.Equal(startAt.Add(3*time.Minute)))
	assert.Len(t, f.sink.ByType(models.NotificationTypeConsultationCompleted), 2)

	canRate, err := f.usecase.CanRateConsultation(ctx, patient, "appt-1")
	require.NoError(t, err)
	assert.True(t, canRate)
}

func TestCompleteConsultation_Idempotent(t *testing.T) {
	ctx := context.Background()
	startAt := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	f := newConsultationFixture(startAt)
	f.seed(t, "appt-1", models.AppointmentStatusConfirmed, startAt)

	_, err := f.usecase.StartConsultation(ctx, patient, "appt-1")
	require.NoError(t, err)

	f.clock.Set(startAt.Add(time.Minute))
	first, err := f.usecase.CompleteConsultation(ctx, "appt-1")
	require.NoError(t, err)
	assert.Equal(t, models.ConsultationStatusCompleted, first.ConsultationStatus)
	require.NotNil(t, first.ConsultationEndTime)
	endTime := *first.ConsultationEndTime

	f.clock.Advance(5 * time.Minute)
	second, err := f.usecase.CompleteConsultation(ctx, "appt-1")
	require.NoError(t, err)
	assert.True(t, second.ConsultationEndTime.Equal(endTime))
	assert.Len(t, f.sink.ByType(models.NotificationTypeConsultationCompleted), 2)
}

func TestCompleteConsultation_NotStartedIsNoop(t *testing.T) {
	ctx := context.Background()
	startAt := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	f := newConsultationFixture(startAt)
	f.seed(t, "appt-1", models.AppointmentStatusConfirmed, startAt)

	appointment, err := f.usecase.CompleteConsultation(ctx, "appt-1")
	require.NoError(t, err)
	assert.Equal(t, models.ConsultationStatusNotStarted, appointment.ConsultationStatus)
	assert.Equal(t, models.AppointmentStatusConfirmed, appointment.Status)
}

func TestCompleteExpiredConsultations(t *testing.T) {
	ctx := context.Background()
	startAt := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	f := newConsultationFixture(startAt)
	f.seed(t, "appt-stale", models.AppointmentStatusConfirmed, startAt)
	f.seed(t, "appt-fresh", models.AppointmentStatusConfirmed, startAt.Add(3*time.Minute))

	// Started without a timer, as after a restart.
	_, err := f.appointments.StartConsultation(ctx, "appt-stale", startAt)
	require.NoError(t, err)
	_, err = f.appointments.StartConsultation(ctx, "appt-fresh", startAt.Add(4*time.Minute))
	require.NoError(t, err)

	f.clock.Set(startAt.Add(5 * time.Minute))
	stats, err := f.usecase.CompleteExpiredConsultations(ctx, f.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Processed)
	assert.Zero(t, stats.Failed)

	stale, err := f.appointments.FindByID(ctx, "appt-stale")
	require.NoError(t, err)
	assert.Equal(t, models.ConsultationStatusCompleted, stale.ConsultationStatus)
	assert.True(t, stale.ConsultationEndTime.Equal(startAt.Add(3*time.Minute)))

	fresh, err := f.appointments.FindByID(ctx, "appt-fresh")
	require.NoError(t, err)
	assert.Equal(t, models.ConsultationStatusInProgress, fresh.ConsultationStatus)

	stats, err = f.usecase.CompleteExpiredConsultations(ctx, f.clock.Now())
	require.NoError(t, err)
	assert.Zero(t, stats.Processed)
}

func TestCompleteExpiredConsultations_SettlesAppointmentStatus(t *testing.T) {
	ctx := context.Background()
	startAt := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	f := newConsultationFixture(startAt)
	f.seed(t, "appt-1", models.AppointmentStatusConfirmed, startAt)

	// Consultation closed without the follow-up status write.
	_, err := f.appointments.StartConsultation(ctx, "appt-1", startAt)
	require.NoError(t, err)
	endedAt := startAt.Add(3 * time.Minute)
	completed, err := f.appointments.CompleteConsultation(ctx, "appt-1", endedAt)
	require.NoError(t, err)
	require.True(t, completed)

	f.clock.Set(startAt.Add(10 * time.Minute))
	stats, err := f.usecase.CompleteExpiredConsultations(ctx, f.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Processed)
	assert.Zero(t, stats.Failed)

	appointment, err := f.appointments.FindByID(ctx, "appt-1")
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusCompleted, appointment.Status)
	assert.Equal(t, models.ConsultationStatusCompleted, appointment.ConsultationStatus)

	stats, err = f.usecase.CompleteExpiredConsultations(ctx, f.clock.Now())
	require.NoError(t, err)
	assert.Zero(t, stats.Processed)
}

func TestGetConsultationState_ClosesElapsedWindow(t *testing.T) {
	ctx := context.Background()
	startAt := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	f := newConsultationFixture(startAt)
	f.seed(t, "appt-1", models.AppointmentStatusConfirmed, startAt)

	state, err := f.usecase.GetConsultationState(ctx, patient, "appt-1")
	require.NoError(t, err)
	assert.True(t, state.CanStart)

	_, err = f.appointments.StartConsultation(ctx, "appt-1", startAt)
	require.NoError(t, err)

	f.clock.Set(startAt.Add(4 * time.Minute))
	state, err = f.usecase.GetConsultationState(ctx, doctor, "appt-1")
	require.NoError(t, err)
	assert.Equal(t, string(models.ConsultationStatusCompleted), state.ConsultationStatus)
	assert.False(t, state.IsActive)
	assert.False(t, state.CanStart)
}

func TestConsultationWindowArithmetic(t *testing.T) {
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	f := newConsultationFixture(start)

	tests := []struct {
		elapsed   time.Duration
		active    bool
		remaining time.Duration
	}{
		{0, true, 3 * time.Minute},
		{time.Minute, true, 2 * time.Minute},
		{3*time.Minute - time.Second, true, time.Second},
		{3 * time.Minute, false, 0},
		{10 * time.Minute, false, 0},
	}
	for _, tt := range tests {
		f.clock.Set(start.Add(tt.elapsed))
		assert.Equal(t, tt.active, f.usecase.IsConsultationActive(start), tt.elapsed.String())
		assert.Equal(t, tt.remaining, f.usecase.RemainingTime(start), tt.elapsed.String())
	}
}
