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

type PaymentController struct {
	Log            *zap.Logger
	PaymentUsecase contracts.PaymentUsecase
	InternalConfig *config.InternalConfig
}

func NewPaymentController(logger *zap.Logger, paymentUsecase contracts.PaymentUsecase, internalConfig *config.InternalConfig) *PaymentController {
	return &PaymentController{
		Log:            logger,
		PaymentUsecase: paymentUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *PaymentController) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	call, ok := beginActorCall(ctrl.Log, w, r, "PaymentController.SubmitPayment")
	if !ok {
		return
	}
	appointmentID := chi.URLParam(r, constvars.URLParamAppointmentID)

	request := new(requests.SubmitPayment)
	if !decodeAndValidate(ctrl.Log, w, r, "PaymentController.SubmitPayment", call.requestID, request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	payment, err := ctrl.PaymentUsecase.SubmitPayment(ctx, call.actor, appointmentID, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, "PaymentController.SubmitPayment", call.requestID, err)
		return
	}

	ctrl.Log.Info("PaymentController.SubmitPayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, call.requestID),
		zap.String(constvars.LoggingPaymentIDKey, payment.ID),
		zap.String(constvars.LoggingPaymentMethodKey, string(payment.Method)))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SubmitPaymentSuccessMessage, payment)
}

func (ctrl *PaymentController) GetPayment(w http.ResponseWriter, r *http.Request) {
	call, ok := beginActorCall(ctrl.Log, w, r, "PaymentController.GetPayment")
	if !ok {
		return
	}
	appointmentID := chi.URLParam(r, constvars.URLParamAppointmentID)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	payment, err := ctrl.PaymentUsecase.GetPaymentByAppointment(ctx, call.actor, appointmentID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, "PaymentController.GetPayment", call.requestID, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPaymentSuccessMessage, payment)
}
