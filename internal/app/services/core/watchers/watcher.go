package watchers

import (
	"context"
	"doccare-service/internal/app/models"
	"doccare-service/internal/pkg/constvars"
	"doccare-service/internal/pkg/utils"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SweepFunc performs one pass of a sweep as of now.
type SweepFunc func(ctx context.Context, now time.Time) (models.SweepStats, error)

// Watcher runs a sweep on a fixed interval, once after a startup delay, and
// on demand. Runs never overlap.
type Watcher struct {
	name         string
	interval     time.Duration
	startupDelay time.Duration
	sweep        SweepFunc
	clock        utils.Clock
	log          *zap.Logger

	mu      sync.Mutex
	running bool
	cron    *cron.Cron
	warmup  utils.Timer
	cancel  context.CancelFunc
}

func NewWatcher(name string, interval, startupDelay time.Duration, sweep SweepFunc, clock utils.Clock, logger *zap.Logger) *Watcher {
	return &Watcher{
		name:         name,
		interval:     interval,
		startupDelay: startupDelay,
		sweep:        sweep,
		clock:        clock,
		log:          logger,
	}
}

func (w *Watcher) Name() string {
	return w.name
}

func (w *Watcher) Interval() time.Duration {
	return w.interval
}

// Start schedules the watcher. The first sweep runs after the startup delay.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cron != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	cronLogger := newCronLogger(w.log)
	c := cron.New(cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)))
	_, err := c.AddFunc(fmt.Sprintf("@every %s", w.interval), func() { w.tick(runCtx) })
	if err != nil {
		w.log.Error("watcher: failed to schedule sweep",
			zap.String(constvars.LoggingWatcherNameKey, w.name),
			zap.Duration(constvars.LoggingWatcherIntervalKey, w.interval),
			zap.Error(err),
		)
		cancel()
		return
	}
	c.Start()
	w.cron = c
	w.warmup = w.clock.AfterFunc(w.startupDelay, func() { w.tick(runCtx) })

	w.log.Info("watcher: started",
		zap.String(constvars.LoggingWatcherNameKey, w.name),
		zap.Duration(constvars.LoggingWatcherIntervalKey, w.interval),
	)
}

// Stop cancels the schedule and waits for an in-flight sweep to finish.
func (w *Watcher) Stop() {
	w.mu.Lock()
	c, cancel, warmup := w.cron, w.cancel, w.warmup
	w.cron, w.cancel, w.warmup = nil, nil, nil
	w.mu.Unlock()

	if warmup != nil {
		warmup.Stop()
	}
	if cancel != nil {
		cancel()
	}
	if c != nil {
		<-c.Stop().Done()
		w.log.Info("watcher: stopped", zap.String(constvars.LoggingWatcherNameKey, w.name))
	}
}

func (w *Watcher) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	ctx = context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, utils.GenerateRequestID())
	_, _ = w.RunOnce(ctx)
}

// RunOnce performs a single sweep. A sweep already in progress makes it a
// no-op, and a panic inside the sweep is reported as an error.
func (w *Watcher) RunOnce(ctx context.Context) (stats models.SweepStats, err error) {
	if !w.acquire() {
		w.log.Info("watcher: sweep already running, skipping", zap.String(constvars.LoggingWatcherNameKey, w.name))
		return models.SweepStats{Name: w.name, RanAt: w.clock.Now()}, nil
	}
	defer w.release()

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	now := w.clock.Now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("watcher %s panicked: %v", w.name, r)
			w.log.Error("watcher: sweep panicked",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingWatcherNameKey, w.name),
				zap.Any("panic", r),
			)
		}
	}()

	stats, err = w.sweep(ctx, now)
	if err != nil {
		w.log.Error("watcher: sweep failed, retrying next interval",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingWatcherNameKey, w.name),
			zap.Error(err),
		)
		return stats, err
	}

	w.log.Info("watcher: sweep finished",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWatcherNameKey, w.name),
		zap.Time(constvars.LoggingSweepNowKey, now),
		zap.Int(constvars.LoggingSweepProcessedKey, stats.Processed),
		zap.Int(constvars.LoggingSweepFailedKey, stats.Failed),
	)
	return stats, nil
}

func (w *Watcher) acquire() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return false
	}
	w.running = true
	return true
}

func (w *Watcher) release() {
	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
}

// cronLogger routes robfig/cron diagnostics into zap.
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func newCronLogger(logger *zap.Logger) cron.Logger {
	return cronLogger{sugar: logger.Sugar()}
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
