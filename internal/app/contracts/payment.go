package contracts

import (
	"context"
	"doccare-service/internal/app/models"
	"doccare-service/internal/pkg/dto/requests"
	"time"
)

type PaymentUsecase interface {
	CreatePaymentRecord(ctx context.Context, appointmentID string) (*models.Payment, error)
	SubmitPayment(ctx context.Context, actor models.Actor, appointmentID string, request *requests.SubmitPayment) (*models.Payment, error)
	GetPaymentByAppointment(ctx context.Context, actor models.Actor, appointmentID string) (*models.Payment, error)
	PrepareRescheduledPayment(ctx context.Context, oldAppointmentID, newAppointmentID string) (*models.Payment, error)
	TransferPaymentToRescheduledAppointment(ctx context.Context, oldAppointmentID, newAppointmentID string) (*models.Payment, error)
	DiscardRescheduledPayment(ctx context.Context, newAppointmentID string) error
	ExpirePayment(ctx context.Context, payment *models.Payment) error
	ExpireOverduePayments(ctx context.Context, now time.Time) (models.SweepStats, error)
}

// PaymentRepository writes are conditional on the stored status. CompletePayment
// and ExpirePayment also split on the deadline: a pending payment can be
// completed up to and including its deadline and expired only after it.
type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *models.Payment) error
	FindByAppointmentID(ctx context.Context, appointmentID string) (*models.Payment, error)
	CompletePayment(ctx context.Context, paymentID string, method models.PaymentMethod, details models.PaymentDetails, at time.Time) (bool, error)
	ExpirePayment(ctx context.Context, paymentID, reason string, at time.Time) (bool, error)
	RetirePayment(ctx context.Context, paymentID string, from models.PaymentStatus, reason, transferredTo string, at time.Time) (bool, error)
	FindOverduePayments(ctx context.Context, now time.Time) ([]models.Payment, error)
}
