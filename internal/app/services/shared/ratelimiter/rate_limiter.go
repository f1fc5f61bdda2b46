package ratelimiter

import (
	"context"
	"doccare-service/internal/app/contracts"
	"doccare-service/internal/pkg/constvars"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// LimiterGroupSweep namespaces quotas of the on-demand sweep trigger.
	LimiterGroupSweep = "sweep"
	defaultWindowSec  = 60
)

// ResourceLimiter is a fixed-window counter stored in Redis, shared by every
// instance pointing at the same Redis.
type ResourceLimiter struct {
	redis contracts.RedisRepository
	log   *zap.Logger
	now   func() time.Time
}

func NewResourceLimiter(redis contracts.RedisRepository, log *zap.Logger) *ResourceLimiter {
	return &ResourceLimiter{redis: redis, log: log, now: time.Now}
}

type ApplyResourceLimiterInput struct {
	// ResourceName is the limited entity, e.g. the sweep name.
	ResourceName      string
	LimiterGroupName  string
	WindowDurationSec int
	// MaxQuota <= 0 disables the limit.
	MaxQuota int
}

type ApplyResourceLimiterOutput struct {
	Allowed        bool
	Count          int
	RetryAfterSecs int
}

func (l *ResourceLimiter) ApplyResourceLimiter(ctx context.Context, in *ApplyResourceLimiterInput) (*ApplyResourceLimiterOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("nil limiter input")
	}

	windowSec := in.WindowDurationSec
	if windowSec <= 0 {
		windowSec = defaultWindowSec
	}
	if in.MaxQuota <= 0 {
		return &ApplyResourceLimiterOutput{Allowed: true}, nil
	}

	resource := strings.ToLower(strings.TrimSpace(in.ResourceName))
	group := strings.ToLower(strings.TrimSpace(in.LimiterGroupName))
	if resource == "" || group == "" {
		return &ApplyResourceLimiterOutput{Allowed: false, RetryAfterSecs: windowSec}, nil
	}

	now := l.now().UTC()
	windowID := now.Unix() / int64(windowSec)
	key := fmt.Sprintf(constvars.RedisKeyRateLimitFormat, group, resource, windowID)

	count, err := l.redis.IncrementWithTTL(ctx, key, time.Duration(windowSec+1)*time.Second)
	if err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		l.log.Error("ResourceLimiter.ApplyResourceLimiter error incrementing window counter",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return nil, err
	}

	if count > in.MaxQuota {
		nextWindow := (windowID + 1) * int64(windowSec)
		return &ApplyResourceLimiterOutput{
			Allowed:        false,
			Count:          count,
			RetryAfterSecs: int(nextWindow-now.Unix()) + 1,
		}, nil
	}
	return &ApplyResourceLimiterOutput{Allowed: true, Count: count}, nil
}
