package controllers

import (
	"context"
	"doccare-service/internal/app/config"
	"doccare-service/internal/app/contracts"
	"doccare-service/internal/pkg/constvars"
	"doccare-service/internal/pkg/dto/responses"
	"doccare-service/internal/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ConsultationController struct {
	Log                 *zap.Logger
	ConsultationUsecase contracts.ConsultationUsecase
	InternalConfig      *config.InternalConfig
}

func NewConsultationController(logger *zap.Logger, consultationUsecase contracts.ConsultationUsecase, internalConfig *config.InternalConfig) *ConsultationController {
	return &ConsultationController{
		Log:                 logger,
		ConsultationUsecase: consultationUsecase,
		InternalConfig:      internalConfig,
	}
}

func (ctrl *ConsultationController) StartConsultation(w http.ResponseWriter, r *http.Request) {
	call, ok := beginActorCall(ctrl.Log, w, r, "ConsultationController.StartConsultation")
	if !ok {
		return
	}
	appointmentID := chi.URLParam(r, constvars.URLParamAppointmentID)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	state, err := ctrl.ConsultationUsecase.StartConsultation(ctx, call.actor, appointmentID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, "ConsultationController.StartConsultation", call.requestID, err)
		return
	}

	ctrl.Log.Info("ConsultationController.StartConsultation succeeded",
		zap.String(constvars.LoggingRequestIDKey, call.requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingConsultationStatusKey, state.ConsultationStatus))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.StartConsultationSuccessMessage, state)
}

func (ctrl *ConsultationController) GetConsultationState(w http.ResponseWriter, r *http.Request) {
	call, ok := beginActorCall(ctrl.Log, w, r, "ConsultationController.GetConsultationState")
	if !ok {
		return
	}
	appointmentID := chi.URLParam(r, constvars.URLParamAppointmentID)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	state, err := ctrl.ConsultationUsecase.GetConsultationState(ctx, call.actor, appointmentID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, "ConsultationController.GetConsultationState", call.requestID, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetConsultationSuccessMessage, state)
}

func (ctrl *ConsultationController) CanRateConsultation(w http.ResponseWriter, r *http.Request) {
	call, ok := beginActorCall(ctrl.Log, w, r, "ConsultationController.CanRateConsultation")
	if !ok {
		return
	}
	appointmentID := chi.URLParam(r, constvars.URLParamAppointmentID)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	canRate, err := ctrl.ConsultationUsecase.CanRateConsultation(ctx, call.actor, appointmentID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, "ConsultationController.CanRateConsultation", call.requestID, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CanRateConsultationSuccessMessage, responses.CanRateConsultation{
		AppointmentID: appointmentID,
		CanRate:       canRate,
	})
}
