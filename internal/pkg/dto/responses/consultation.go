package responses

import "time"

type ConsultationState struct {
	AppointmentID      string     `json:"appointment_id"`
	AppointmentStatus  string     `json:"appointment_status"`
	ConsultationStatus string     `json:"consultation_status"`
	StartTime          *time.Time `json:"start_time,omitempty"`
	EndTime            *time.Time `json:"end_time,omitempty"`
	IsActive           bool       `json:"is_active"`
	RemainingSeconds   int64      `json:"remaining_seconds"`
	CanStart           bool       `json:"can_start"`
}

type CanRateConsultation struct {
	AppointmentID string `json:"appointment_id"`
	CanRate       bool   `json:"can_rate"`
}
