package models

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusExpired   PaymentStatus = "expired"
)

func (s PaymentStatus) IsTerminal() bool {
	return s != PaymentStatusPending
}

// CanTransitionTo only lets a pending payment move, and only once.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	if s != PaymentStatusPending {
		return false
	}
	switch next {
	case PaymentStatusCompleted, PaymentStatusExpired, PaymentStatusFailed:
		return true
	}
	return false
}

// CanTransferOut reports whether a reschedule may retire this payment. A
// completed payment is retired to expired after its value has been cloned
// onto the successor appointment.
func (s PaymentStatus) CanTransferOut() bool {
	return s == PaymentStatusPending || s == PaymentStatusCompleted
}

type PaymentMethod string

const (
	PaymentMethodNone    PaymentMethod = ""
	PaymentMethodBkash   PaymentMethod = "bkash"
	PaymentMethodCard    PaymentMethod = "card"
	PaymentMethodGateway PaymentMethod = "gateway"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodBkash || m == PaymentMethodCard || m == PaymentMethodGateway
}

// PaymentDetails holds the method-specific payload of a submitted payment.
type PaymentDetails struct {
	WalletNumber     string `json:"walletNumber,omitempty" bson:"walletNumber,omitempty"`
	TransactionID    string `json:"transactionId,omitempty" bson:"transactionId,omitempty"`
	CardLast4        string `json:"cardLast4,omitempty" bson:"cardLast4,omitempty"`
	CardHolderName   string `json:"cardHolderName,omitempty" bson:"cardHolderName,omitempty"`
	GatewayReference string `json:"gatewayReference,omitempty" bson:"gatewayReference,omitempty"`
}

// SatisfiesMethod reports whether the fields required by method are present.
func (d PaymentDetails) SatisfiesMethod(method PaymentMethod) bool {
	switch method {
	case PaymentMethodBkash:
		return d.WalletNumber != "" && d.TransactionID != ""
	case PaymentMethodCard:
		return len(d.CardLast4) == 4 && isDigits(d.CardLast4) && d.CardHolderName != ""
	case PaymentMethodGateway:
		return d.GatewayReference != ""
	}
	return false
}

func isDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

const (
	PaymentReasonTransferred       = "transferred on reschedule"
	PaymentReasonDeadlinePassed    = "payment deadline passed"
	PaymentReasonRescheduleAborted = "reschedule aborted"
)

type Payment struct {
	ID              string          `json:"id" bson:"_id"`
	AppointmentID   string          `json:"appointmentId" bson:"appointmentId"`
	PatientID       string          `json:"patientId" bson:"patientId"`
	DoctorID        string          `json:"doctorId" bson:"doctorId"`
	Amount          float64         `json:"amount" bson:"amount"`
	Method          PaymentMethod   `json:"method,omitempty" bson:"method,omitempty"`
	Details         *PaymentDetails `json:"details,omitempty" bson:"details,omitempty"`
	Status          PaymentStatus   `json:"status" bson:"status"`
	PaymentDeadline time.Time       `json:"paymentDeadline" bson:"paymentDeadline"`
	CompletedAt     *time.Time      `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	FailedAt        *time.Time      `json:"failedAt,omitempty" bson:"failedAt,omitempty"`
	FailureReason   string          `json:"failureReason,omitempty" bson:"failureReason,omitempty"`
	TransferredTo   string          `json:"transferredTo,omitempty" bson:"transferredTo,omitempty"`
	TransferredFrom string          `json:"transferredFrom,omitempty" bson:"transferredFrom,omitempty"`
	TimeModel       `bson:",inline"`
}

// IsOverdue is the single deadline rule shared by lazy detection and the expiry sweep.
// A payment is still payable at the exact deadline instant.
func (p *Payment) IsOverdue(now time.Time) bool {
	return p.Status == PaymentStatusPending && now.After(p.PaymentDeadline)
}

// ExpiredByDeadline reports whether the payment was expired for missing its
// deadline, as opposed to being retired by a reschedule.
func (p *Payment) ExpiredByDeadline() bool {
	return p.Status == PaymentStatusExpired && p.FailureReason == PaymentReasonDeadlinePassed
}
