package middlewares

import (
	"doccare-service/internal/app/config"
	"doccare-service/internal/app/services/shared/jwtmanager"
	"doccare-service/internal/app/services/shared/ratelimiter"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log             *zap.Logger
	InternalConfig  *config.InternalConfig
	JWTManager      *jwtmanager.JWTManager
	ResourceLimiter *ratelimiter.ResourceLimiter
}

func NewMiddlewares(logger *zap.Logger, internalConfig *config.InternalConfig, jwtManager *jwtmanager.JWTManager, resourceLimiter *ratelimiter.ResourceLimiter) *Middlewares {
	return &Middlewares{
		Log:             logger,
		InternalConfig:  internalConfig,
		JWTManager:      jwtManager,
		ResourceLimiter: resourceLimiter,
	}
}
