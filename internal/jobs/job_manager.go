package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	pendingNotificationJob *PendingNotificationJob
	staleOrderAlertJob     *StaleOrderAlertJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	notifyHandler commands.NotifyPendingOrdersCommandHandler,
	orders ports.OrderRepository,
	systemActorID kernel.UUID,
	notifyAfter time.Duration,
	staleAfter time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		pendingNotificationJob: NewPendingNotificationJob(notifyHandler, systemActorID, notifyAfter, logger),
		staleOrderAlertJob:     NewStaleOrderAlertJob(orders, staleAfter, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.pendingNotificationJob.Start(); err != nil {
		return fmt.Errorf("failed to start pending notification job: %w", err)
	}

	if err := jm.staleOrderAlertJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.pendingNotificationJob.Stop()
		return fmt.Errorf("failed to start stale order alert job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleOrderAlertJob.Stop()
	jm.pendingNotificationJob.Stop()
}
