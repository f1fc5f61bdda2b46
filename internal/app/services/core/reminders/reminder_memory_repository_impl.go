package reminders

import (
	"context"
	"doccare-service/internal/app/contracts"
	"doccare-service/internal/app/models"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type ReminderMemoryRepository struct {
	mu        sync.RWMutex
	reminders map[string]*models.Reminder
}

func NewReminderMemoryRepository() contracts.ReminderRepository {
	return &ReminderMemoryRepository{reminders: make(map[string]*models.Reminder)}
}

func (repo *ReminderMemoryRepository) CreateReminders(ctx context.Context, reminders []models.Reminder) (int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	inserted := 0
	for i := range reminders {
		if repo.existsLocked(reminders[i].AppointmentID, reminders[i].Type) {
			continue
		}
		if reminders[i].ID == "" {
			reminders[i].ID = uuid.NewString()
		}
		reminder := reminders[i]
		repo.reminders[reminder.ID] = &reminder
		inserted++
	}
	return inserted, nil
}

func (repo *ReminderMemoryRepository) existsLocked(appointmentID string, reminderType models.ReminderType) bool {
	for _, reminder := range repo.reminders {
		if reminder.AppointmentID == appointmentID && reminder.Type == reminderType {
			return true
		}
	}
	return false
}

func (repo *ReminderMemoryRepository) FindByAppointmentID(ctx context.Context, appointmentID string) ([]models.Reminder, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	found := []models.Reminder{}
	for _, reminder := range repo.reminders {
		if reminder.AppointmentID == appointmentID {
			found = append(found, cloneReminder(reminder))
		}
	}
	sortByReminderTime(found)
	return found, nil
}

func (repo *ReminderMemoryRepository) DeleteUnsentByAppointmentID(ctx context.Context, appointmentID string) (int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	var deleted int64
	for id, reminder := range repo.reminders {
		if reminder.AppointmentID == appointmentID && !reminder.IsSent {
			delete(repo.reminders, id)
			deleted++
		}
	}
	return deleted, nil
}

func (repo *ReminderMemoryRepository) FindDueReminders(ctx context.Context, now time.Time, limit int) ([]models.Reminder, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	due := []models.Reminder{}
	for _, reminder := range repo.reminders {
		if !reminder.IsSent && !reminder.ReminderTime.After(now) {
			due = append(due, cloneReminder(reminder))
		}
	}
	sortByReminderTime(due)
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (repo *ReminderMemoryRepository) MarkSent(ctx context.Context, reminderID string, at time.Time) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	reminder, ok := repo.reminders[reminderID]
	if !ok || reminder.IsSent {
		return false, nil
	}
	reminder.IsSent = true
	reminder.SentAt = &at
	reminder.UpdatedAt = at
	return true, nil
}

func cloneReminder(reminder *models.Reminder) models.Reminder {
	clone := *reminder
	if reminder.SentAt != nil {
		sentAt := *reminder.SentAt
		clone.SentAt = &sentAt
	}
	return clone
}

func sortByReminderTime(reminders []models.Reminder) {
	sort.Slice(reminders, func(i, j int) bool {
		return reminders[i].ReminderTime.Before(reminders[j].ReminderTime)
	})
}
