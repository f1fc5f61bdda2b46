package controllers

import (
	"context"
	"doccare-service/internal/app/config"
	"doccare-service/internal/app/contracts"
	"doccare-service/internal/pkg/constvars"
	"doccare-service/internal/pkg/dto/requests"
	"doccare-service/internal/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AppointmentController struct {
	Log                *zap.Logger
	AppointmentUsecase contracts.AppointmentUsecase
	InternalConfig     *config.InternalConfig
}

func NewAppointmentController(logger *zap.Logger, appointmentUsecase contracts.AppointmentUsecase, internalConfig *config.InternalConfig) *AppointmentController {
	return &AppointmentController{
		Log:                logger,
		AppointmentUsecase: appointmentUsecase,
		InternalConfig:     internalConfig,
	}
}

func (ctrl *AppointmentController) BookAppointment(w http.ResponseWriter, r *http.Request) {
	call, ok := beginActorCall(ctrl.Log, w, r, "AppointmentController.BookAppointment")
	if !ok {
		return
	}

	request := new(requests.BookAppointment)
	if !decodeAndValidate(ctrl.Log, w, r, "AppointmentController.BookAppointment", call.requestID, request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	appointment, err := ctrl.AppointmentUsecase.BookAppointment(ctx, call.actor, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, "AppointmentController.BookAppointment", call.requestID, err)
		return
	}

	ctrl.Log.Info("AppointmentController.BookAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, call.requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID))
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.BookAppointmentSuccessMessage, appointment)
}

func (ctrl *AppointmentController) ListAppointments(w http.ResponseWriter, r *http.Request) {
	call, ok := beginActorCall(ctrl.Log, w, r, "AppointmentController.ListAppointments")
	if !ok {
		return
	}

	filter := utils.BuildAppointmentFilterRequest(r)
	ctrl.Log.Info("AppointmentController.ListAppointments query parameters",
		zap.String(constvars.LoggingRequestIDKey, call.requestID),
		zap.Any(constvars.LoggingQueryParamsKey, filter))

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	appointments, pagination, err := ctrl.AppointmentUsecase.ListAppointments(ctx, call.actor, filter)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, "AppointmentController.ListAppointments", call.requestID, err)
		return
	}

	ctrl.Log.Info("AppointmentController.ListAppointments succeeded",
		zap.String(constvars.LoggingRequestIDKey, call.requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(appointments)))
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.ListAppointmentsSuccessMessage, pagination, appointments)
}

func (ctrl *AppointmentController) GetAppointment(w http.ResponseWriter, r *http.Request) {
	call, ok := beginActorCall(ctrl.Log, w, r, "AppointmentController.GetAppointment")
	if !ok {
		return
	}
	appointmentID := chi.URLParam(r, constvars.URLParamAppointmentID)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	appointment, err := ctrl.AppointmentUsecase.GetAppointment(ctx, call.actor, appointmentID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, "AppointmentController.GetAppointment", call.requestID, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentSuccessMessage, appointment)
}

func (ctrl *AppointmentController) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	call, ok := beginActorCall(ctrl.Log, w, r, "AppointmentController.CancelAppointment")
	if !ok {
		return
	}
	appointmentID := chi.URLParam(r, constvars.URLParamAppointmentID)

	// The reason is optional, so an empty body is accepted.
	request := new(requests.CancelAppointment)
	if r.ContentLength != 0 {
		if !decodeAndValidate(ctrl.Log, w, r, "AppointmentController.CancelAppointment", call.requestID, request) {
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	appointment, err := ctrl.AppointmentUsecase.CancelAppointment(ctx, call.actor, appointmentID, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, "AppointmentController.CancelAppointment", call.requestID, err)
		return
	}

	ctrl.Log.Info("AppointmentController.CancelAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, call.requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CancelAppointmentSuccessMessage, appointment)
}

func (ctrl *AppointmentController) RescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	call, ok := beginActorCall(ctrl.Log, w, r, "AppointmentController.RescheduleAppointment")
	if !ok {
		return
	}
	appointmentID := chi.URLParam(r, constvars.URLParamAppointmentID)

	request := new(requests.RescheduleAppointment)
	if !decodeAndValidate(ctrl.Log, w, r, "AppointmentController.RescheduleAppointment", call.requestID, request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	response, err := ctrl.AppointmentUsecase.RescheduleAppointment(ctx, call.actor, appointmentID, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, "AppointmentController.RescheduleAppointment", call.requestID, err)
		return
	}

	ctrl.Log.Info("AppointmentController.RescheduleAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, call.requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingNewAppointmentIDKey, response.Appointment.ID))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RescheduleAppointmentSuccessMessage, response)
}

func (ctrl *AppointmentController) UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	call, ok := beginActorCall(ctrl.Log, w, r, "AppointmentController.UpdateAppointmentStatus")
	if !ok {
		return
	}
	appointmentID := chi.URLParam(r, constvars.URLParamAppointmentID)

	request := new(requests.UpdateAppointmentStatus)
	if !decodeAndValidate(ctrl.Log, w, r, "AppointmentController.UpdateAppointmentStatus", call.requestID, request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	appointment, err := ctrl.AppointmentUsecase.UpdateAppointmentStatus(ctx, call.actor, appointmentID, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, "AppointmentController.UpdateAppointmentStatus", call.requestID, err)
		return
	}

	ctrl.Log.Info("AppointmentController.UpdateAppointmentStatus succeeded",
		zap.String(constvars.LoggingRequestIDKey, call.requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingAppointmentStatusKey, string(appointment.Status)))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateAppointmentStatusSuccessMessage, appointment)
}

func (ctrl *AppointmentController) ListAvailableSlots(w http.ResponseWriter, r *http.Request) {
	call, ok := beginActorCall(ctrl.Log, w, r, "AppointmentController.ListAvailableSlots")
	if !ok {
		return
	}
	doctorID := chi.URLParam(r, constvars.URLParamDoctorID)
	date := r.URL.Query().Get(constvars.QueryParamDate)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	slots, err := ctrl.AppointmentUsecase.ListAvailableSlots(ctx, doctorID, date)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, "AppointmentController.ListAvailableSlots", call.requestID, err)
		return
	}

	ctrl.Log.Info("AppointmentController.ListAvailableSlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, call.requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.Int(constvars.LoggingSlotCountKey, len(slots.Slots)))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ListAvailableSlotsSuccessMessage, slots)
}
