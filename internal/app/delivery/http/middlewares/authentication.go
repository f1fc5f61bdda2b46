package middlewares

import (
	"context"
	"doccare-service/internal/app/services/shared/jwtmanager"
	"doccare-service/internal/pkg/constvars"
	"doccare-service/internal/pkg/exceptions"
	"doccare-service/internal/pkg/utils"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Authenticate resolves the bearer token into the actor stored under CONTEXT_ACTOR_KEY.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, constvars.AuthorizationBearerPrefix) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, constvars.AuthorizationBearerPrefix))

		verified, err := m.JWTManager.VerifyToken(r.Context(), &jwtmanager.VerifyTokenInput{Token: token})
		if err != nil {
			m.Log.Info("Middlewares.Authenticate rejected request",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			switch {
			case errors.Is(err, jwtmanager.ErrTokenRequired):
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(err))
			case errors.Is(err, jwtmanager.ErrInvalidRole):
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidRole(err))
			default:
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			}
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_ACTOR_KEY, verified.Actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
