package contracts

import (
	"context"
	"doccare-service/internal/app/models"
)

// Watcher is a periodic sweep that can also be run on demand.
type Watcher interface {
	Name() string
	Start(ctx context.Context)
	Stop()
	RunOnce(ctx context.Context) (models.SweepStats, error)
}
