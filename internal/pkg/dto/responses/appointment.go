package responses

import "doccare-service/internal/app/models"

type RescheduleAppointment struct {
	Original    *models.Appointment `json:"original"`
	Appointment *models.Appointment `json:"appointment"`
	Payment     *models.Payment     `json:"payment,omitempty"`
}

type AvailableSlots struct {
	DoctorID string   `json:"doctor_id"`
	Date     string   `json:"date"`
	Slots    []string `json:"slots"`
}
