package constvars

const (
	MongoCollectionAppointments = "appointments"
	MongoCollectionPayments     = "payments"
	MongoCollectionReminders    = "reminders"
	MongoCollectionDoctors      = "doctors"
)

const (
	MongoIndexAppointmentActiveSlot  = "uniq_active_doctor_date_slot"
	MongoIndexPaymentAppointment     = "uniq_payment_appointment"
	MongoIndexReminderAppointment    = "uniq_reminder_appointment_type"
	MongoIndexReminderDue            = "idx_reminder_due"
	MongoIndexPaymentDue             = "idx_payment_due"
	MongoIndexConsultationRunning    = "idx_consultation_running"
	MongoIndexAppointmentStatusStart = "idx_appointment_status_start"
)
