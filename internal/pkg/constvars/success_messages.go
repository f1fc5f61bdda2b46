package constvars

const (
	ResponseUnknown = "unknown"
)

const (
	BookAppointmentSuccessMessage         = "appointment booked successfully"
	GetAppointmentSuccessMessage          = "appointment retrieved successfully"
	ListAppointmentsSuccessMessage        = "appointments retrieved successfully"
	CancelAppointmentSuccessMessage       = "appointment cancelled successfully"
	RescheduleAppointmentSuccessMessage   = "appointment rescheduled successfully"
	UpdateAppointmentStatusSuccessMessage = "appointment status updated successfully"
	ListAvailableSlotsSuccessMessage      = "available slots retrieved successfully"
	SubmitPaymentSuccessMessage           = "payment completed successfully"
	GetPaymentSuccessMessage              = "payment retrieved successfully"
	StartConsultationSuccessMessage       = "consultation started"
	GetConsultationSuccessMessage         = "consultation state retrieved successfully"
	CanRateConsultationSuccessMessage     = "rating eligibility retrieved successfully"
	RunSweepSuccessMessage                = "sweep finished"
)
