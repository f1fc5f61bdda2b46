package payments

import (
	"context"
	"doccare-service/internal/app/contracts"
	"doccare-service/internal/app/models"
	"doccare-service/internal/pkg/exceptions"
	"sync"
	"time"

	"github.com/google/uuid"
)

type PaymentMemoryRepository struct {
	mu            sync.RWMutex
	payments      map[string]*models.Payment
	byAppointment map[string]string
}

func NewPaymentMemoryRepository() contracts.PaymentRepository {
	return &PaymentMemoryRepository{
		payments:      make(map[string]*models.Payment),
		byAppointment: make(map[string]string),
	}
}

func (repo *PaymentMemoryRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, exists := repo.byAppointment[payment.AppointmentID]; exists {
		return exceptions.ErrDuplicateDocument
	}
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	repo.payments[payment.ID] = clonePayment(payment)
	repo.byAppointment[payment.AppointmentID] = payment.ID
	return nil
}

func (repo *PaymentMemoryRepository) FindByAppointmentID(ctx context.Context, appointmentID string) (*models.Payment, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	paymentID, ok := repo.byAppointment[appointmentID]
	if !ok {
		return nil, nil
	}
	return clonePayment(repo.payments[paymentID]), nil
}

func (repo *PaymentMemoryRepository) CompletePayment(ctx context.Context, paymentID string, method models.PaymentMethod, details models.PaymentDetails, at time.Time) (bool, error) {
	return repo.update(paymentID, []models.PaymentStatus{models.PaymentStatusPending}, func(payment *models.Payment) bool {
		if at.After(payment.PaymentDeadline) {
			return false
		}
		payment.Status = models.PaymentStatusCompleted
		payment.Method = method
		payment.Details = &details
		payment.CompletedAt = &at
		payment.UpdatedAt = at
		return true
	})
}

func (repo *PaymentMemoryRepository) ExpirePayment(ctx context.Context, paymentID, reason string, at time.Time) (bool, error) {
	return repo.update(paymentID, []models.PaymentStatus{models.PaymentStatusPending}, func(payment *models.Payment) bool {
		if !at.After(payment.PaymentDeadline) {
			return false
		}
		payment.Status = models.PaymentStatusExpired
		payment.FailureReason = reason
		payment.FailedAt = &at
		payment.UpdatedAt = at
		return true
	})
}

func (repo *PaymentMemoryRepository) RetirePayment(ctx context.Context, paymentID string, from models.PaymentStatus, reason, transferredTo string, at time.Time) (bool, error) {
	if !from.CanTransferOut() {
		return false, nil
	}
	return repo.update(paymentID, []models.PaymentStatus{from}, func(payment *models.Payment) bool {
		payment.Status = models.PaymentStatusExpired
		payment.FailureReason = reason
		if transferredTo != "" {
			payment.TransferredTo = transferredTo
		}
		payment.FailedAt = &at
		payment.UpdatedAt = at
		return true
	})
}

func (repo *PaymentMemoryRepository) FindOverduePayments(ctx context.Context, now time.Time) ([]models.Payment, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	overdue := []models.Payment{}
	for _, payment := range repo.payments {
		if payment.IsOverdue(now) {
			overdue = append(overdue, *clonePayment(payment))
		}
	}
	return overdue, nil
}

func (repo *PaymentMemoryRepository) update(paymentID string, from []models.PaymentStatus, apply func(*models.Payment) bool) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	payment, ok := repo.payments[paymentID]
	if !ok {
		return false, nil
	}
	for _, status := range from {
		if payment.Status == status {
			return apply(payment), nil
		}
	}
	return false, nil
}

func clonePayment(payment *models.Payment) *models.Payment {
	clone := *payment
	if payment.Details != nil {
		details := *payment.Details
		clone.Details = &details
	}
	if payment.CompletedAt != nil {
		completedAt := *payment.CompletedAt
		clone.CompletedAt = &completedAt
	}
	if payment.FailedAt != nil {
		failedAt := *payment.FailedAt
		clone.FailedAt = &failedAt
	}
	return &clone
}
