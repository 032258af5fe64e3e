package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// StaleOrderAlertJob watches for orders stuck in an assigned or en-route
// status beyond the configured age and logs a warning per order. Read only;
// operators decide whether to reassign or cancel.
type StaleOrderAlertJob struct {
	orders     ports.OrderRepository
	staleAfter time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewStaleOrderAlertJob creates the watchdog. staleAfter is how long an
// in-flight order may go without an update before it is flagged.
func NewStaleOrderAlertJob(
	orders ports.OrderRepository,
	staleAfter time.Duration,
	logger *slog.Logger,
) *StaleOrderAlertJob {
	return &StaleOrderAlertJob{
		orders:     orders,
		staleAfter: staleAfter,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "stale_order_alert_job"),
	}
}

// Start schedules the watchdog to run every minute.
func (j *StaleOrderAlertJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().Add(-j.staleAfter)

		stale, err := j.orders.GetAllActiveUpdatedBefore(ctx, cutoff)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale order scan failed", "error", err)
			return
		}

		for _, aggregate := range stale {
			courierID := ""
			if id := aggregate.CourierID(); id != nil {
				courierID = id.String()
			}
			j.logger.WarnContext(ctx, "Order has not progressed",
				"order_id", aggregate.ID().String(),
				"status", aggregate.Status().String(),
				"courier_id", courierID,
				"last_update", aggregate.UpdatedAt(),
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order alert job started (running every minute)")
	return nil
}

// Stop stops the watchdog.
func (j *StaleOrderAlertJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale order alert job stopped")
}
