package constvars

const (
	NotificationTitleAppointmentBooked      = "Appointment booked"
	NotificationTitleAppointmentCancelled   = "Appointment cancelled"
	NotificationTitleAppointmentRescheduled = "Appointment rescheduled"
	NotificationTitleAppointmentStatus      = "Appointment status updated"
	NotificationTitlePaymentDue             = "Payment due"
	NotificationTitlePaymentCompleted       = "Payment completed"
	NotificationTitlePaymentExpired         = "Payment expired"
	NotificationTitleConsultationStarted    = "Consultation started"
	NotificationTitleConsultationCompleted  = "Consultation completed"
	NotificationTitleAppointmentReminder    = "Appointment reminder"
)

const (
	NotificationMessageAppointmentBooked      = "Appointment on %s at %s has been booked"
	NotificationMessageAppointmentCancelled   = "Appointment on %s at %s was cancelled: %s"
	NotificationMessageAppointmentRescheduled = "Appointment on %s at %s was moved to %s at %s"
	NotificationMessageAppointmentConfirmed   = "Your appointment on %s at %s is confirmed"
	NotificationMessageAppointmentCompleted   = "Your appointment on %s at %s is completed"
	NotificationMessageAppointmentPending     = "Your appointment on %s at %s is pending"
	NotificationMessagePaymentDue             = "Please pay %.2f before %s to keep your appointment"
	NotificationMessagePaymentCompleted       = "Payment of %.2f for the appointment on %s at %s was received"
	NotificationMessagePaymentExpired         = "Payment deadline passed, the appointment on %s at %s was cancelled"
	NotificationMessageConsultationStarted    = "Consultation started and will close in %d minutes"
	NotificationMessageConsultationCompleted  = "Consultation finished, you can now rate it"
	NotificationMessageReminder24Hours        = "Reminder: appointment tomorrow, %s at %s"
	NotificationMessageReminder1Hour          = "Reminder: appointment in one hour, %s at %s"
	NotificationMessageReminder5Minutes       = "Reminder: appointment in five minutes, %s at %s"
)
