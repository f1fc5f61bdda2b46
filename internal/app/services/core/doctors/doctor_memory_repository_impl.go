package doctors

import (
	"context"
	"doccare-service/internal/app/contracts"
	"doccare-service/internal/app/models"
	"sync"
)

type DoctorMemoryRepository struct {
	mu      sync.RWMutex
	doctors map[string]models.Doctor
}

func NewDoctorMemoryRepository() contracts.DoctorRepository {
	return &DoctorMemoryRepository{doctors: make(map[string]models.Doctor)}
}

func (repo *DoctorMemoryRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	doctor, ok := repo.doctors[doctorID]
	if !ok {
		return nil, nil
	}
	if doctor.WorkingHours != nil {
		hours := *doctor.WorkingHours
		doctor.WorkingHours = &hours
	}
	return &doctor, nil
}

func (repo *DoctorMemoryRepository) UpsertDoctor(ctx context.Context, doctor *models.Doctor) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	stored := *doctor
	if doctor.WorkingHours != nil {
		hours := *doctor.WorkingHours
		stored.WorkingHours = &hours
	}
	repo.doctors[doctor.ID] = stored
	return nil
}
