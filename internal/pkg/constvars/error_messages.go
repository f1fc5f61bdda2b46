package constvars

// Validation messages for request DTOs, mapped by validator tag.
var CustomValidationErrorMessages = map[string]string{
	"required":    "is required",
	"required_if": "is required for the selected method",
	"oneof":       "must be one of: %s",
	"min":         "must be at least %s characters long",
	"max":         "maximum at %s characters long",
	"len":         "must be exactly %s characters long",
	"numeric":     "must contain only digits",
	"date_only":   "must be a date formatted as YYYY-MM-DD",
	"time_of_day": "must be a time formatted as HH:MM",
	"eqfield":     "must match %s",
}

// Validation tags whose message embeds the tag parameter.
var TagsWithParams = map[string]bool{
	"oneof":   true,
	"min":     true,
	"max":     true,
	"len":     true,
	"eqfield": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientTooManyRequests               = "too many requests, please slow down"

	ErrClientAppointmentNotFound       = "appointment not found"
	ErrClientAppointmentTerminal       = "this appointment can no longer be changed"
	ErrClientAppointmentChanged        = "this appointment was changed by someone else, please refresh"
	ErrClientSlotAlreadyBooked         = "the selected slot is already booked"
	ErrClientSlotUnavailable           = "the selected slot is not offered by this doctor"
	ErrClientSameSlot                  = "the appointment is already scheduled at this slot"
	ErrClientDateInPast                = "the selected date and time is in the past"
	ErrClientDoctorHasNoWorkingHours   = "this doctor is not accepting appointments yet"
	ErrClientNotAppointmentParticipant = "you are not part of this appointment"
	ErrClientDoctorOnly                = "only the assigned doctor can do this"
	ErrClientDoctorNoticeTooShort      = "doctors must give at least %d hours notice"
	ErrClientInvalidStatusTransition   = "the appointment cannot move from %s to %s"
	ErrClientStatusNotAllowed          = "status %s cannot be set directly"
	ErrClientPaymentNotFound           = "payment not found"
	ErrClientPaymentAlreadyCompleted   = "this appointment is already paid"
	ErrClientPaymentNotPayable         = "this payment can no longer be paid"
	ErrClientPaymentDeadlinePassed     = "the payment deadline has passed and the appointment was cancelled"
	ErrClientNotPayingPatient          = "only the booking patient can pay for this appointment"
	ErrClientPaymentDetailsInvalid     = "payment details do not match the selected method"
	ErrClientPatientOnly               = "only patients can perform this action"
	ErrClientConsultationNotReady      = "the consultation is not available yet"
	ErrClientConsultationNotConfirmed  = "the appointment must be paid before the consultation can start"
	ErrClientUnknownSweep              = "unknown sweep"
)

// Error messages for developers
const (
	ErrDevInvalidInput           = "invalid input"
	ErrDevCannotParseJSON        = "cannot parse JSON"
	ErrDevCannotMarshalJSON      = "cannot marshal JSON"
	ErrDevValidationFailed       = "validation failed"
	ErrDevURLParamValidation     = "url param %s is invalid"
	ErrDevServerProcess          = "server failed to process the request"
	ErrDevServerDeadlineExceeded = "deadline exceeded"
	ErrDevMissingRequestID       = "request id missing from context"
	ErrDevMissingActor           = "actor missing from context"

	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthTokenInvalidOrExpired = "token invalid or expired"
	ErrDevAuthSigningMethod         = "unexpected signing method: %v"
	ErrDevAuthInvalidRole           = "token role is not patient or doctor"
	ErrDevInvalidAPIKey             = "invalid API key"
	ErrDevTooManyRequests           = "quota exceeded, retry after %d seconds"

	ErrDevAppointmentNotFound       = "appointment %s not found"
	ErrDevAppointmentTerminal       = "appointment %s is in terminal status %s"
	ErrDevAppointmentChanged        = "appointment %s no longer in expected status %s"
	ErrDevSlotAlreadyBooked         = "slot already booked for doctor %s on %s at %s"
	ErrDevSlotUnavailable           = "slot %s is not generated for doctor %s working hours"
	ErrDevSameSlot                  = "reschedule target equals the current slot"
	ErrDevDateInPast                = "appointment start %s is not in the future"
	ErrDevDoctorHasNoWorkingHours   = "doctor %s has no working hours configured"
	ErrDevNotAppointmentParticipant = "actor %s is neither patient nor doctor of appointment %s"
	ErrDevDoctorOnly                = "actor %s is not the doctor of appointment %s"
	ErrDevDoctorNoticeTooShort      = "doctor change rejected, appointment starts in %s"
	ErrDevInvalidStatusTransition   = "invalid status transition %s -> %s"
	ErrDevStatusNotAllowed          = "status %s is not settable by doctor"
	ErrDevPaymentNotFound           = "payment for appointment %s not found"
	ErrDevPaymentAlreadyCompleted   = "payment %s already completed"
	ErrDevPaymentNotPayable         = "payment %s is %s"
	ErrDevPaymentDeadlinePassed     = "payment %s deadline %s passed"
	ErrDevNotPayingPatient          = "actor %s is not the paying patient %s"
	ErrDevPaymentDetailsInvalid     = "payment details missing fields for method %s"
	ErrDevPatientOnly               = "actor %s with role %s is not a patient"
	ErrDevConsultationNotReady      = "appointment %s starts at %s"
	ErrDevConsultationNotConfirmed  = "appointment %s status is %s"
	ErrDevUnknownSweep              = "sweep %s is not registered"

	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument   = "failed to update document into database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToDeleteDocument   = "failed to delete document on database"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents on database"
	ErrDevDBFailedToCreateIndex      = "failed to create index %s"

	ErrDevRedisSetData    = "failed to set data into redis"
	ErrDevRedisGetData    = "failed to get data from redis"
	ErrDevRedisDeleteData = "failed to delete data from redis"

	ErrDevRabbitMQPublishMessage = "failed to publish message to queue %s"
)
