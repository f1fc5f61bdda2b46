package routers

import (
	"doccare-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

// attachAppointmentRoutes also carries the payment and consultation
// sub-resources, which are addressed by appointment id.
func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, handlers Controllers) {
	router.Use(middlewares.Authenticate)

	router.Post("/", handlers.Appointment.BookAppointment)
	router.Get("/", handlers.Appointment.ListAppointments)

	router.Route("/{appointmentId}", func(r chi.Router) {
		r.Get("/", handlers.Appointment.GetAppointment)
		r.Post("/cancel", handlers.Appointment.CancelAppointment)
		r.Post("/reschedule", handlers.Appointment.RescheduleAppointment)
		r.Patch("/status", handlers.Appointment.UpdateAppointmentStatus)

		r.Post("/payment", handlers.Payment.SubmitPayment)
		r.Get("/payment", handlers.Payment.GetPayment)

		r.Post("/consultation/start", handlers.Consultation.StartConsultation)
		r.Get("/consultation", handlers.Consultation.GetConsultationState)
		r.Get("/consultation/can-rate", handlers.Consultation.CanRateConsultation)
	})
}
