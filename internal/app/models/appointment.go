package models

import "time"

type AppointmentStatus string

const (
	AppointmentStatusPending     AppointmentStatus = "pending"
	AppointmentStatusConfirmed   AppointmentStatus = "confirmed"
	AppointmentStatusCancelled   AppointmentStatus = "cancelled"
	AppointmentStatusCompleted   AppointmentStatus = "completed"
	AppointmentStatusRescheduled AppointmentStatus = "rescheduled"
)

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:   {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed: {AppointmentStatusCompleted, AppointmentStatusCancelled},
}

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusCancelled,
		AppointmentStatusCompleted, AppointmentStatusRescheduled:
		return true
	}
	return false
}

func (s AppointmentStatus) IsTerminal() bool {
	return len(appointmentTransitions[s]) == 0
}

// CanTransitionTo is the single authority on appointment status changes.
// Every write path asks it before issuing a conditional update.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// SourcesOf lists every status from which next is reachable.
func SourcesOf(next AppointmentStatus) []AppointmentStatus {
	var sources []AppointmentStatus
	for _, from := range []AppointmentStatus{AppointmentStatusPending, AppointmentStatusConfirmed} {
		if from.CanTransitionTo(next) {
			sources = append(sources, from)
		}
	}
	return sources
}

// DoctorSettableStatuses are the statuses a doctor may request through a direct status update.
var DoctorSettableStatuses = []AppointmentStatus{
	AppointmentStatusPending,
	AppointmentStatusConfirmed,
	AppointmentStatusCompleted,
}

func IsDoctorSettableStatus(status AppointmentStatus) bool {
	for _, s := range DoctorSettableStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type ConsultationStatus string

const (
	ConsultationStatusNotStarted ConsultationStatus = "not_started"
	ConsultationStatusInProgress ConsultationStatus = "in_progress"
	ConsultationStatusCompleted  ConsultationStatus = "completed"
)

func (s ConsultationStatus) CanTransitionTo(next ConsultationStatus) bool {
	switch s {
	case ConsultationStatusNotStarted:
		return next == ConsultationStatusInProgress
	case ConsultationStatusInProgress:
		return next == ConsultationStatusCompleted
	}
	return false
}

type Appointment struct {
	ID                    string             `json:"id" bson:"_id"`
	PatientID             string             `json:"patientId" bson:"patientId"`
	DoctorID              string             `json:"doctorId" bson:"doctorId"`
	Date                  string             `json:"date" bson:"date"`
	Time                  string             `json:"time" bson:"time"`
	Slot                  string             `json:"slot" bson:"slot"`
	StartAt               time.Time          `json:"startAt" bson:"startAt"`
	Reason                string             `json:"reason,omitempty" bson:"reason,omitempty"`
	Notes                 string             `json:"notes,omitempty" bson:"notes,omitempty"`
	Status                AppointmentStatus  `json:"status" bson:"status"`
	IsActive              bool               `json:"-" bson:"isActive"`
	ConsultationStatus    ConsultationStatus `json:"consultationStatus" bson:"consultationStatus"`
	ConsultationStartTime *time.Time         `json:"consultationStartTime,omitempty" bson:"consultationStartTime,omitempty"`
	ConsultationEndTime   *time.Time         `json:"consultationEndTime,omitempty" bson:"consultationEndTime,omitempty"`
	CancellationReason    string             `json:"cancellationReason,omitempty" bson:"cancellationReason,omitempty"`
	CancelledBy           string             `json:"cancelledBy,omitempty" bson:"cancelledBy,omitempty"`
	RescheduledFrom       string             `json:"rescheduledFrom,omitempty" bson:"rescheduledFrom,omitempty"`
	RescheduledTo         string             `json:"rescheduledTo,omitempty" bson:"rescheduledTo,omitempty"`
	TimeModel             `bson:",inline"`
}

func (a *Appointment) IsParticipant(actorID string) bool {
	return actorID != "" && (a.PatientID == actorID || a.DoctorID == actorID)
}

// CounterpartyOf returns the other participant of the appointment.
func (a *Appointment) CounterpartyOf(actorID string) string {
	if actorID == a.DoctorID {
		return a.PatientID
	}
	return a.DoctorID
}

// AppointmentTransition describes a conditional status write: it applies only
// while the stored status is one of From.
type AppointmentTransition struct {
	From               []AppointmentStatus
	To                 AppointmentStatus
	CancellationReason string
	CancelledBy        string
	RescheduledTo      string
	At                 time.Time
}

// ReleasesSlot reports whether the target status frees the (doctor, date, slot) triple.
func (t AppointmentTransition) ReleasesSlot() bool {
	return t.To == AppointmentStatusCancelled
}

type AppointmentFilter struct {
	PatientID string
	DoctorID  string
	Status    AppointmentStatus
	Date      string
	Page      int
	PageSize  int
}

func (f AppointmentFilter) Skip() int {
	if f.Page <= 1 || f.PageSize <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// SystemActorID marks transitions performed by the service itself.
const SystemActorID = "system"

const (
	AppointmentReasonPaymentFailure     = "payment failure"
	AppointmentReasonRescheduledFormat  = "Rescheduled to %s"
	AppointmentReasonRescheduleAborted  = "reschedule aborted"
	AppointmentReasonBookingFailed      = "booking could not be completed"
	AppointmentReasonCancelledByPatient = "cancelled by patient"
	AppointmentReasonCancelledByDoctor  = "cancelled by doctor"
)
