package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// PendingNotificationJob sweeps orders that sat unassigned past the
// configured threshold and marks them notified so the dispatcher board
// surfaces them. Runs every 30 seconds.
type PendingNotificationJob struct {
	handler     commands.NotifyPendingOrdersCommandHandler
	actorID     kernel.UUID
	notifyAfter time.Duration
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewPendingNotificationJob creates the sweep job. actorID identifies the
// system user recorded on the resulting history entries; notifyAfter is how
// long an order may sit pending before it is flagged.
func NewPendingNotificationJob(
	handler commands.NotifyPendingOrdersCommandHandler,
	actorID kernel.UUID,
	notifyAfter time.Duration,
	logger *slog.Logger,
) *PendingNotificationJob {
	return &PendingNotificationJob{
		handler:     handler,
		actorID:     actorID,
		notifyAfter: notifyAfter,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "pending_notification_job"),
	}
}

// Start schedules the sweep to run every 30 seconds.
func (j *PendingNotificationJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().Add(-j.notifyAfter)

		cmd, err := commands.NewNotifyPendingOrdersCommand(j.actorID, cutoff)
		if err != nil {
			j.logger.ErrorContext(ctx, "Pending notification sweep misconfigured", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// Orders claimed mid-sweep are picked up next round.
			if !errors.Is(err, errs.ErrConflict) {
				j.logger.ErrorContext(ctx, "Pending notification sweep failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending notification job started (running every 30 seconds)")
	return nil
}

// Stop stops the sweep.
func (j *PendingNotificationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pending notification job stopped")
}
