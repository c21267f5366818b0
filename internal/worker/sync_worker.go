// Package worker hosts the background loops that run alongside the HTTP
// server.
package worker

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/internship-service/internal/service"
)

// SyncWorker triggers roster reconciliation passes on a fixed interval. The
// first pass runs immediately at startup.
type SyncWorker struct {
	engine   *service.SyncService
	interval time.Duration
	logger   *zap.Logger
}

// NewSyncWorker constructs the worker.
func NewSyncWorker(engine *service.SyncService, interval time.Duration, logger *zap.Logger) *SyncWorker {
	return &SyncWorker{engine: engine, interval: interval, logger: logger}
}

// Start runs the scheduler loop until ctx is cancelled. It blocks, so callers
// run it in its own goroutine.
func (w *SyncWorker) Start(ctx context.Context) {
	w.logger.Info("roster sync worker started", zap.Duration("interval", w.interval))

	w.runOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("roster sync worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *SyncWorker) runOnce(ctx context.Context) {
	if _, err := w.engine.Run(ctx); err != nil {
		if errors.Is(err, service.ErrSyncInProgress) {
			w.logger.Warn("previous sync pass still running; skipping tick")
			return
		}
		w.logger.Error("roster sync pass failed", zap.Error(err))
	}
}
