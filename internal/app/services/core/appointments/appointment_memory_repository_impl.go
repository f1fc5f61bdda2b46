package appointments

import (
	"context"
	"doccare-service/internal/app/contracts"
	"doccare-service/internal/app/models"
	"doccare-service/internal/pkg/exceptions"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AppointmentMemoryRepository keeps appointments in process. The active slot
// map plays the role of the partial unique index of the Mongo repository.
type AppointmentMemoryRepository struct {
	mu           sync.RWMutex
	appointments map[string]*models.Appointment
	activeSlots  map[string]string
}

func NewAppointmentMemoryRepository() contracts.AppointmentRepository {
	return &AppointmentMemoryRepository{
		appointments: make(map[string]*models.Appointment),
		activeSlots:  make(map[string]string),
	}
}

func slotKey(doctorID, date, slot string) string {
	return doctorID + "|" + date + "|" + slot
}

func (repo *AppointmentMemoryRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if appointment.ID == "" {
		appointment.ID = uuid.NewString()
	}
	if _, exists := repo.appointments[appointment.ID]; exists {
		return exceptions.ErrDuplicateDocument
	}

	key := slotKey(appointment.DoctorID, appointment.Date, appointment.Slot)
	if appointment.IsActive {
		if _, taken := repo.activeSlots[key]; taken {
			return exceptions.ErrDuplicateDocument
		}
		repo.activeSlots[key] = appointment.ID
	}
	repo.appointments[appointment.ID] = cloneAppointment(appointment)
	return nil
}

func (repo *AppointmentMemoryRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	appointment, ok := repo.appointments[appointmentID]
	if !ok {
		return nil, nil
	}
	return cloneAppointment(appointment), nil
}

func (repo *AppointmentMemoryRepository) FindAll(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, int, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	matched := []models.Appointment{}
	for _, appointment := range repo.appointments {
		if filter.PatientID != "" && appointment.PatientID != filter.PatientID {
			continue
		}
		if filter.DoctorID != "" && appointment.DoctorID != filter.DoctorID {
			continue
		}
		if filter.Status != "" && appointment.Status != filter.Status {
			continue
		}
		if filter.Date != "" && appointment.Date != filter.Date {
			continue
		}
		matched = append(matched, *cloneAppointment(appointment))
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].StartAt.Equal(matched[j].StartAt) {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].StartAt.Before(matched[j].StartAt)
	})

	total := len(matched)
	if filter.PageSize <= 0 {
		return matched, total, nil
	}
	start := filter.Skip()
	if start >= total {
		return []models.Appointment{}, total, nil
	}
	end := start + filter.PageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (repo *AppointmentMemoryRepository) FindActiveBySlot(ctx context.Context, doctorID, date, slot string) (*models.Appointment, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	appointmentID, ok := repo.activeSlots[slotKey(doctorID, date, slot)]
	if !ok {
		return nil, nil
	}
	return cloneAppointment(repo.appointments[appointmentID]), nil
}

func (repo *AppointmentMemoryRepository) FindBookedSlots(ctx context.Context, doctorID, date string) ([]string, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	slots := []string{}
	for _, appointment := range repo.appointments {
		if appointment.IsActive && appointment.DoctorID == doctorID && appointment.Date == date {
			slots = append(slots, appointment.Slot)
		}
	}
	sort.Strings(slots)
	return slots, nil
}

func (repo *AppointmentMemoryRepository) UpdateStatus(ctx context.Context, appointmentID string, transition models.AppointmentTransition) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	appointment, ok := repo.appointments[appointmentID]
	if !ok || !statusIn(appointment.Status, transition.From) {
		return false, nil
	}

	appointment.Status = transition.To
	appointment.UpdatedAt = transition.At
	if transition.ReleasesSlot() && appointment.IsActive {
		appointment.IsActive = false
		delete(repo.activeSlots, slotKey(appointment.DoctorID, appointment.Date, appointment.Slot))
	}
	if transition.CancellationReason != "" {
		appointment.CancellationReason = transition.CancellationReason
	}
	if transition.CancelledBy != "" {
		appointment.CancelledBy = transition.CancelledBy
	}
	if transition.RescheduledTo != "" {
		appointment.RescheduledTo = transition.RescheduledTo
	}
	return true, nil
}

func (repo *AppointmentMemoryRepository) StartConsultation(ctx context.Context, appointmentID string, startedAt time.Time) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	appointment, ok := repo.appointments[appointmentID]
	if !ok || appointment.Status != models.AppointmentStatusConfirmed || appointment.ConsultationStatus != models.ConsultationStatusNotStarted {
		return false, nil
	}
	appointment.ConsultationStatus = models.ConsultationStatusInProgress
	appointment.ConsultationStartTime = &startedAt
	appointment.UpdatedAt = startedAt
	return true, nil
}

func (repo *AppointmentMemoryRepository) CompleteConsultation(ctx context.Context, appointmentID string, endedAt time.Time) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	appointment, ok := repo.appointments[appointmentID]
	if !ok || appointment.ConsultationStatus != models.ConsultationStatusInProgress {
		return false, nil
	}
	appointment.ConsultationStatus = models.ConsultationStatusCompleted
	appointment.ConsultationEndTime = &endedAt
	appointment.UpdatedAt = endedAt
	return true, nil
}

func (repo *AppointmentMemoryRepository) FindExpiredConsultations(ctx context.Context, startedBefore time.Time) ([]models.Appointment, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	expired := []models.Appointment{}
	for _, appointment := range repo.appointments {
		if appointment.ConsultationStatus != models.ConsultationStatusInProgress || appointment.ConsultationStartTime == nil {
			continue
		}
		if !appointment.ConsultationStartTime.After(startedBefore) {
			expired = append(expired, *cloneAppointment(appointment))
		}
	}
	return expired, nil
}

func (repo *AppointmentMemoryRepository) FindUnsettledConsultations(ctx context.Context) ([]models.Appointment, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	unsettled := []models.Appointment{}
	for _, appointment := range repo.appointments {
		if appointment.Status == models.AppointmentStatusConfirmed && appointment.ConsultationStatus == models.ConsultationStatusCompleted {
			unsettled = append(unsettled, *cloneAppointment(appointment))
		}
	}
	return unsettled, nil
}

func (repo *AppointmentMemoryRepository) FindPendingStartedBefore(ctx context.Context, startedBefore time.Time) ([]models.Appointment, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	stale := []models.Appointment{}
	for _, appointment := range repo.appointments {
		if appointment.Status == models.AppointmentStatusPending && appointment.StartAt.Before(startedBefore) {
			stale = append(stale, *cloneAppointment(appointment))
		}
	}
	return stale, nil
}

func statusIn(status models.AppointmentStatus, candidates []models.AppointmentStatus) bool {
	for _, candidate := range candidates {
		if candidate == status {
			return true
		}
	}
	return false
}

func cloneAppointment(appointment *models.Appointment) *models.Appointment {
	clone := *appointment
	if appointment.ConsultationStartTime != nil {
		start := *appointment.ConsultationStartTime
		clone.ConsultationStartTime = &start
	}
	if appointment.ConsultationEndTime != nil {
		end := *appointment.ConsultationEndTime
		clone.ConsultationEndTime = &end
	}
	return &clone
}
