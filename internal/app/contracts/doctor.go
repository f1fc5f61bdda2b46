package contracts

import (
	"context"
	"doccare-service/internal/app/models"
)

// DoctorDirectory is the read side of doctor profiles consumed by scheduling.
type DoctorDirectory interface {
	GetWorkingHours(ctx context.Context, doctorID string) (*models.WorkingHours, error)
	GetConsultationFee(ctx context.Context, doctorID string) (float64, error)
}

type DoctorRepository interface {
	FindByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	UpsertDoctor(ctx context.Context, doctor *models.Doctor) error
}
