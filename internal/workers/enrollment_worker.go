package workers

import (
	"context"
	"time"

	"workhub_backend/internal/logger"
	"workhub_backend/internal/services"
)

// EnrollmentWorker sweeps stale enrollments in the background. Entitlement
// resolution never waits for it; the sweep only keeps stored statuses aligned
// with reality for reporting.
type EnrollmentWorker struct {
	enrollments services.EnrollmentService
	interval    time.Duration
}

func NewEnrollmentWorker(enrollments services.EnrollmentService) *EnrollmentWorker {
	return &EnrollmentWorker{
		enrollments: enrollments,
		interval:    6 * time.Hour,
	}
}

func (w *EnrollmentWorker) Start(ctx context.Context) {
	go w.sweepExpired(ctx)
}

func (w *EnrollmentWorker) sweepExpired(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("enrollment worker stopped")
			return
		case <-ticker.C:
			swept, err := w.enrollments.ExpireStale(time.Now())
			if err != nil {
				logger.WorkerLog("enrollment", "sweep expired", err)
			} else if swept > 0 {
				logger.Info("marked enrollments as expired", "count", swept)
			}
		}
	}
}
