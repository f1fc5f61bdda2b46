package models

import "time"

type ReminderType string

const (
	ReminderType24Hours  ReminderType = "24h"
	ReminderType1Hour    ReminderType = "1h"
	ReminderType5Minutes ReminderType = "5min"
)

// ReminderTypes is ordered from the earliest firing reminder to the latest.
var ReminderTypes = []ReminderType{ReminderType24Hours, ReminderType1Hour, ReminderType5Minutes}

func (t ReminderType) Offset() time.Duration {
	switch t {
	case ReminderType24Hours:
		return 24 * time.Hour
	case ReminderType1Hour:
		return time.Hour
	case ReminderType5Minutes:
		return 5 * time.Minute
	}
	return 0
}

type Reminder struct {
	ID            string       `json:"id" bson:"_id"`
	AppointmentID string       `json:"appointmentId" bson:"appointmentId"`
	PatientID     string       `json:"patientId" bson:"patientId"`
	DoctorID      string       `json:"doctorId" bson:"doctorId"`
	Type          ReminderType `json:"type" bson:"type"`
	ReminderTime  time.Time    `json:"reminderTime" bson:"reminderTime"`
	IsSent        bool         `json:"isSent" bson:"isSent"`
	SentAt        *time.Time   `json:"sentAt,omitempty" bson:"sentAt,omitempty"`
	TimeModel     `bson:",inline"`
}
