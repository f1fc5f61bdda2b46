package models

import "time"

type NotificationType string

const (
	NotificationTypeAppointmentBooked      NotificationType = "appointment_booked"
	NotificationTypeAppointmentCancelled   NotificationType = "appointment_cancelled"
	NotificationTypeAppointmentRescheduled NotificationType = "appointment_rescheduled"
	NotificationTypeAppointmentStatus      NotificationType = "appointment_status"
	NotificationTypePaymentDue             NotificationType = "payment_due"
	NotificationTypePaymentCompleted       NotificationType = "payment_completed"
	NotificationTypePaymentExpired         NotificationType = "payment_expired"
	NotificationTypeConsultationStarted    NotificationType = "consultation_started"
	NotificationTypeConsultationCompleted  NotificationType = "consultation_completed"
	NotificationTypeAppointmentReminder    NotificationType = "appointment_reminder"
)

type Notification struct {
	ID                   string           `json:"id"`
	RecipientID          string           `json:"recipientId"`
	Type                 NotificationType `json:"type"`
	Title                string           `json:"title"`
	Message              string           `json:"message"`
	RelatedAppointmentID string           `json:"relatedAppointmentId,omitempty"`
	// DedupKey identifies the logical event so redelivered notifications can be dropped downstream.
	DedupKey  string    `json:"dedupKey,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
