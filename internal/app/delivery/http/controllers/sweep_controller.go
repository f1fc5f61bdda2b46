package controllers

import (
	"context"
	"doccare-service/internal/app/models"
	"doccare-service/internal/pkg/constvars"
	"doccare-service/internal/pkg/exceptions"
	"doccare-service/internal/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SweepRunner runs one registered sweep by name.
type SweepRunner interface {
	Run(ctx context.Context, name string) (models.SweepStats, error)
}

type SweepController struct {
	Log    *zap.Logger
	Runner SweepRunner
}

func NewSweepController(logger *zap.Logger, runner SweepRunner) *SweepController {
	return &SweepController{Log: logger, Runner: runner}
}

// RunSweep is reached only through the API key middleware, so it carries no actor.
func (ctrl *SweepController) RunSweep(w http.ResponseWriter, r *http.Request) {
	requestID, ok := utils.RequestIDFromRequest(r)
	if !ok {
		ctrl.Log.Error("SweepController.RunSweep requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	name := chi.URLParam(r, constvars.URLParamSweepName)

	ctrl.Log.Info("SweepController.RunSweep called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWatcherNameKey, name))

	stats, err := ctrl.Runner.Run(r.Context(), name)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, "SweepController.RunSweep", requestID, err)
		return
	}

	ctrl.Log.Info("SweepController.RunSweep succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWatcherNameKey, name),
		zap.Int(constvars.LoggingSweepProcessedKey, stats.Processed),
		zap.Int(constvars.LoggingSweepFailedKey, stats.Failed))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RunSweepSuccessMessage, stats)
}
