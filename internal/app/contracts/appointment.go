package contracts

import (
	"context"
	"doccare-service/internal/app/models"
	"doccare-service/internal/pkg/dto/requests"
	"doccare-service/internal/pkg/dto/responses"
	"time"
)

type AppointmentUsecase interface {
	BookAppointment(ctx context.Context, actor models.Actor, request *requests.BookAppointment) (*models.Appointment, error)
	GetAppointment(ctx context.Context, actor models.Actor, appointmentID string) (*models.Appointment, error)
	ListAppointments(ctx context.Context, actor models.Actor, filter models.AppointmentFilter) ([]models.Appointment, *responses.Pagination, error)
	CancelAppointment(ctx context.Context, actor models.Actor, appointmentID string, request *requests.CancelAppointment) (*models.Appointment, error)
	RescheduleAppointment(ctx context.Context, actor models.Actor, appointmentID string, request *requests.RescheduleAppointment) (*responses.RescheduleAppointment, error)
	UpdateAppointmentStatus(ctx context.Context, actor models.Actor, appointmentID string, request *requests.UpdateAppointmentStatus) (*models.Appointment, error)
	ListAvailableSlots(ctx context.Context, doctorID, date string) (*responses.AvailableSlots, error)
}

// AppointmentRepository persists appointments. Status writes are conditional:
// they report false when the stored document no longer matches the expected state.
type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, appointment *models.Appointment) error
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindAll(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, int, error)
	FindActiveBySlot(ctx context.Context, doctorID, date, slot string) (*models.Appointment, error)
	FindBookedSlots(ctx context.Context, doctorID, date string) ([]string, error)
	UpdateStatus(ctx context.Context, appointmentID string, transition models.AppointmentTransition) (bool, error)
	StartConsultation(ctx context.Context, appointmentID string, startedAt time.Time) (bool, error)
	CompleteConsultation(ctx context.Context, appointmentID string, endedAt time.Time) (bool, error)
	FindExpiredConsultations(ctx context.Context, startedBefore time.Time) ([]models.Appointment, error)
	// FindUnsettledConsultations returns appointments whose consultation has
	// completed while the appointment itself is still confirmed.
	FindUnsettledConsultations(ctx context.Context) ([]models.Appointment, error)
	// FindPendingStartedBefore returns pending appointments whose start instant is before the given time.
	FindPendingStartedBefore(ctx context.Context, startedBefore time.Time) ([]models.Appointment, error)
}
