package controllers

import (
	"context"
	"doccare-service/internal/app/models"
	"doccare-service/internal/pkg/constvars"
	"doccare-service/internal/pkg/exceptions"
	"doccare-service/internal/pkg/utils"
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const defaultRequestTimeout = 10 * time.Second

// callContext is the per-request state every handler starts from.
type callContext struct {
	requestID string
	actor     models.Actor
}

// beginActorCall resolves the request id and the authenticated actor, writing
// the error response itself when either is missing.
func beginActorCall(log *zap.Logger, w http.ResponseWriter, r *http.Request, handler string) (callContext, bool) {
	requestID, ok := utils.RequestIDFromRequest(r)
	if !ok {
		log.Error(handler + " requestID not found in context")
		utils.BuildErrorResponse(log, w, exceptions.ErrMissingRequestID(nil))
		return callContext{}, false
	}

	actor, ok := utils.ActorFromRequest(r)
	if !ok {
		log.Error(handler+" actor not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID))
		utils.BuildErrorResponse(log, w, exceptions.ErrMissingActor(nil))
		return callContext{}, false
	}

	log.Info(handler+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingActorIDKey, actor.ID),
		zap.String(constvars.LoggingActorRoleKey, string(actor.Role)))
	return callContext{requestID: requestID, actor: actor}, true
}

func decodeAndValidate(log *zap.Logger, w http.ResponseWriter, r *http.Request, handler, requestID string, request interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		log.Error(handler+" failed to decode JSON request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(log, w, exceptions.ErrCannotParseJSON(err))
		return false
	}

	if err := utils.ValidateStruct(request); err != nil {
		log.Error(handler+" validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(log, w, exceptions.ErrInputValidation(err))
		return false
	}
	return true
}

func requestTimeout(seconds int) time.Duration {
	if seconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(seconds) * time.Second
}

func writeUsecaseError(log *zap.Logger, w http.ResponseWriter, handler, requestID string, err error) {
	log.Error(handler+" usecase error",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Error(err))

	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}
