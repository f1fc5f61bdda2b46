package watchers

import (
	"context"
	"doccare-service/internal/app/config"
	"doccare-service/internal/app/contracts"
	"doccare-service/internal/app/models"
	"doccare-service/internal/pkg/constvars"
	"doccare-service/internal/pkg/exceptions"
	"doccare-service/internal/pkg/utils"

	"go.uber.org/zap"
)

func NewPaymentExpiryWatcher(paymentUsecase contracts.PaymentUsecase, clock utils.Clock, internalConfig *config.InternalConfig, logger *zap.Logger) *Watcher {
	watchers := internalConfig.Watchers
	return NewWatcher(
		constvars.WatcherNamePaymentExpiry,
		watchers.IntervalOf(watchers.PaymentExpiryIntervalInSeconds),
		watchers.StartupDelay(),
		paymentUsecase.ExpireOverduePayments,
		clock,
		logger,
	)
}

func NewConsultationExpiryWatcher(consultationUsecase contracts.ConsultationUsecase, clock utils.Clock, internalConfig *config.InternalConfig, logger *zap.Logger) *Watcher {
	watchers := internalConfig.Watchers
	return NewWatcher(
		constvars.WatcherNameConsultationExpiry,
		watchers.IntervalOf(watchers.ConsultationExpiryIntervalInSeconds),
		watchers.StartupDelay(),
		consultationUsecase.CompleteExpiredConsultations,
		clock,
		logger,
	)
}

func NewReminderDispatchWatcher(reminderUsecase contracts.ReminderUsecase, clock utils.Clock, internalConfig *config.InternalConfig, logger *zap.Logger) *Watcher {
	watchers := internalConfig.Watchers
	return NewWatcher(
		constvars.WatcherNameReminderDispatch,
		watchers.IntervalOf(watchers.ReminderDispatchIntervalInSeconds),
		watchers.StartupDelay(),
		reminderUsecase.DispatchDueReminders,
		clock,
		logger,
	)
}

// Registry indexes watchers by name for on-demand sweeps and joint lifecycle.
type Registry struct {
	watchers map[string]contracts.Watcher
	order    []string
}

func NewRegistry(watchers ...contracts.Watcher) *Registry {
	registry := &Registry{watchers: make(map[string]contracts.Watcher, len(watchers))}
	for _, watcher := range watchers {
		if _, exists := registry.watchers[watcher.Name()]; !exists {
			registry.order = append(registry.order, watcher.Name())
		}
		registry.watchers[watcher.Name()] = watcher
	}
	return registry
}

func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

func (r *Registry) Get(name string) (contracts.Watcher, bool) {
	watcher, ok := r.watchers[name]
	return watcher, ok
}

// Run performs one sweep of the named watcher.
func (r *Registry) Run(ctx context.Context, name string) (models.SweepStats, error) {
	watcher, ok := r.watchers[name]
	if !ok {
		return models.SweepStats{}, exceptions.ErrUnknownSweep(nil, name)
	}
	return watcher.RunOnce(ctx)
}

// StartAll starts every watcher and returns a function stopping them all.
func (r *Registry) StartAll(ctx context.Context) func() {
	for _, name := range r.order {
		r.watchers[name].Start(ctx)
	}
	return func() {
		for _, name := range r.order {
			r.watchers[name].Stop()
		}
	}
}
