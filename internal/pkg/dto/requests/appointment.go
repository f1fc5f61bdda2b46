package requests

type BookAppointment struct {
	DoctorID string `json:"doctor_id" validate:"required"`
	Date     string `json:"date" validate:"required,date_only"`
	Time     string `json:"time" validate:"required,time_of_day"`
	Slot     string `json:"slot" validate:"omitempty,eqfield=Time"`
	Reason   string `json:"reason" validate:"max=500"`
	Notes    string `json:"notes" validate:"max=1000"`
}

type CancelAppointment struct {
	Reason string `json:"reason" validate:"max=500"`
}

type RescheduleAppointment struct {
	Date string `json:"date" validate:"required,date_only"`
	Time string `json:"time" validate:"required,time_of_day"`
	Slot string `json:"slot" validate:"omitempty,eqfield=Time"`
}

type UpdateAppointmentStatus struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed"`
}
