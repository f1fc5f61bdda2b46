package contracts

import (
	"context"
	"doccare-service/internal/app/models"
	"doccare-service/internal/pkg/dto/responses"
	"time"
)

type ConsultationUsecase interface {
	StartConsultation(ctx context.Context, actor models.Actor, appointmentID string) (*responses.ConsultationState, error)
	CompleteConsultation(ctx context.Context, appointmentID string) (*models.Appointment, error)
	CompleteExpiredConsultations(ctx context.Context, now time.Time) (models.SweepStats, error)
	GetConsultationState(ctx context.Context, actor models.Actor, appointmentID string) (*responses.ConsultationState, error)
	CanRateConsultation(ctx context.Context, actor models.Actor, appointmentID string) (bool, error)
	IsConsultationActive(start time.Time) bool
	RemainingTime(start time.Time) time.Duration
}
