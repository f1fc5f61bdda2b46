package exceptions

import (
	"doccare-service/internal/pkg/constvars"
	"fmt"
	"time"
)

var (
	ErrURLParamValidation = func(err error, paramName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevURLParamValidation, paramName))
	}
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrServerProcess = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientCannotProcessRequest, constvars.ErrDevServerProcess)
	}
	ErrMissingRequestID = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMissingRequestID)
	}
	ErrMissingActor = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevMissingActor)
	}

	// Auth
	ErrTokenMissing = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenMissing)
	}
	ErrTokenInvalidOrExpired = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenInvalidOrExpired)
	}
	ErrTokenInvalidRole = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusForbidden, constvars.ErrClientNotAuthorized, constvars.ErrDevAuthInvalidRole)
	}
	ErrInvalidAPIKey = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevInvalidAPIKey)
	}
	ErrTooManyRequests = func(err error, retryAfterSecs int) *CustomError {
		return BuildNewCustomError(err, constvars.StatusTooManyRequests, constvars.ErrClientTooManyRequests, fmt.Sprintf(constvars.ErrDevTooManyRequests, retryAfterSecs))
	}

	// Appointment
	ErrAppointmentNotFound = func(err error, appointmentID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientAppointmentNotFound, fmt.Sprintf(constvars.ErrDevAppointmentNotFound, appointmentID))
	}
	ErrAppointmentTerminal = func(err error, appointmentID, status string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientAppointmentTerminal, fmt.Sprintf(constvars.ErrDevAppointmentTerminal, appointmentID, status))
	}
	ErrAppointmentChanged = func(err error, appointmentID, expectedStatus string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientAppointmentChanged, fmt.Sprintf(constvars.ErrDevAppointmentChanged, appointmentID, expectedStatus))
	}
	ErrSlotAlreadyBooked = func(err error, doctorID, date, slot string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientSlotAlreadyBooked, fmt.Sprintf(constvars.ErrDevSlotAlreadyBooked, doctorID, date, slot))
	}
	ErrSlotUnavailable = func(err error, doctorID, slot string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientSlotUnavailable, fmt.Sprintf(constvars.ErrDevSlotUnavailable, slot, doctorID))
	}
	ErrSameSlot = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientSameSlot, constvars.ErrDevSameSlot)
	}
	ErrDateInPast = func(err error, start time.Time) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientDateInPast, fmt.Sprintf(constvars.ErrDevDateInPast, start.Format(time.RFC3339)))
	}
	ErrDoctorHasNoWorkingHours = func(err error, doctorID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientDoctorHasNoWorkingHours, fmt.Sprintf(constvars.ErrDevDoctorHasNoWorkingHours, doctorID))
	}
	ErrNotAppointmentParticipant = func(err error, actorID, appointmentID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusForbidden, constvars.ErrClientNotAppointmentParticipant, fmt.Sprintf(constvars.ErrDevNotAppointmentParticipant, actorID, appointmentID))
	}
	ErrPatientOnly = func(err error, actorID, role string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusForbidden, constvars.ErrClientPatientOnly, fmt.Sprintf(constvars.ErrDevPatientOnly, actorID, role))
	}
	ErrDoctorOnly = func(err error, actorID, appointmentID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusForbidden, constvars.ErrClientDoctorOnly, fmt.Sprintf(constvars.ErrDevDoctorOnly, actorID, appointmentID))
	}
	ErrDoctorNoticeTooShort = func(err error, noticeHours int, remaining time.Duration) *CustomError {
		return BuildNewCustomError(err, constvars.StatusForbidden, fmt.Sprintf(constvars.ErrClientDoctorNoticeTooShort, noticeHours), fmt.Sprintf(constvars.ErrDevDoctorNoticeTooShort, remaining.Round(time.Minute)))
	}
	ErrInvalidStatusTransition = func(err error, from, to string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, fmt.Sprintf(constvars.ErrClientInvalidStatusTransition, from, to), fmt.Sprintf(constvars.ErrDevInvalidStatusTransition, from, to))
	}
	ErrStatusNotAllowed = func(err error, status string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, fmt.Sprintf(constvars.ErrClientStatusNotAllowed, status), fmt.Sprintf(constvars.ErrDevStatusNotAllowed, status))
	}

	// Payment
	ErrPaymentNotFound = func(err error, appointmentID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientPaymentNotFound, fmt.Sprintf(constvars.ErrDevPaymentNotFound, appointmentID))
	}
	ErrPaymentAlreadyCompleted = func(err error, paymentID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientPaymentAlreadyCompleted, fmt.Sprintf(constvars.ErrDevPaymentAlreadyCompleted, paymentID))
	}
	ErrPaymentNotPayable = func(err error, paymentID, status string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientPaymentNotPayable, fmt.Sprintf(constvars.ErrDevPaymentNotPayable, paymentID, status))
	}
	ErrPaymentDeadlinePassed = func(err error, paymentID string, deadline time.Time) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGone, constvars.ErrClientPaymentDeadlinePassed, fmt.Sprintf(constvars.ErrDevPaymentDeadlinePassed, paymentID, deadline.Format(time.RFC3339)))
	}
	ErrPaymentDetailsInvalid = func(err error, method string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientPaymentDetailsInvalid, fmt.Sprintf(constvars.ErrDevPaymentDetailsInvalid, method))
	}
	ErrNotPayingPatient = func(err error, actorID, patientID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusForbidden, constvars.ErrClientNotPayingPatient, fmt.Sprintf(constvars.ErrDevNotPayingPatient, actorID, patientID))
	}

	// Consultation
	ErrConsultationNotReady = func(err error, appointmentID string, start time.Time) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientConsultationNotReady, fmt.Sprintf(constvars.ErrDevConsultationNotReady, appointmentID, start.Format(time.RFC3339)))
	}
	ErrConsultationNotConfirmed = func(err error, appointmentID, status string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientConsultationNotConfirmed, fmt.Sprintf(constvars.ErrDevConsultationNotConfirmed, appointmentID, status))
	}

	// Watchers
	ErrUnknownSweep = func(err error, name string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientUnknownSweep, fmt.Sprintf(constvars.ErrDevUnknownSweep, name))
	}

	// Mongo DB
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindDocument)
	}
	ErrMongoDBDeleteDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToDeleteDocument)
	}
	ErrMongoDBIterateDocuments = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToIterateDocuments)
	}
	ErrMongoDBUpdateDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToUpdateDocument)
	}
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertDocument)
	}
	ErrMongoDBCreateIndex = func(err error, indexName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevDBFailedToCreateIndex, indexName))
	}

	// Redis
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData)
	}
	ErrRedisGet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisGetData)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDeleteData)
	}

	// RabbitMQ
	ErrRabbitMQPublishMessage = func(err error, queueName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQPublishMessage, queueName))
	}
)
