package middlewares

import (
	"crypto/subtle"
	"doccare-service/internal/app/services/shared/ratelimiter"
	"doccare-service/internal/pkg/constvars"
	"doccare-service/internal/pkg/exceptions"
	"doccare-service/internal/pkg/utils"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RequireSweepAPIKey guards the on-demand sweep trigger. An unset key disables the endpoint.
func (m *Middlewares) RequireSweepAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := m.InternalConfig.App.SweepAPIKey
		apiKey := r.Header.Get(constvars.HeaderXAPIKey)

		if expected == "" || apiKey == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) != 1 {
			m.Log.Warn("Middlewares.RequireSweepAPIKey rejected request",
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// SweepQuota caps on-demand runs per sweep name in a one minute window.
func (m *Middlewares) SweepQuota(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.ResourceLimiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		out, err := m.ResourceLimiter.ApplyResourceLimiter(r.Context(), &ratelimiter.ApplyResourceLimiterInput{
			ResourceName:      chi.URLParam(r, constvars.URLParamSweepName),
			LimiterGroupName:  ratelimiter.LimiterGroupSweep,
			WindowDurationSec: 60,
			MaxQuota:          m.InternalConfig.App.SweepAPIKeyRateLimit,
		})
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrServerProcess(err))
			return
		}
		if !out.Allowed {
			w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(out.RetryAfterSecs))
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(nil, out.RetryAfterSecs))
			return
		}

		next.ServeHTTP(w, r)
	})
}
