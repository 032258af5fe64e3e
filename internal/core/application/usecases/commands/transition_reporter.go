package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/history"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// TransitionReporter records the audit trail and broker notification for a
// committed order transition. It runs after the transaction commits, so a
// failed trail write or publish never unwinds the transition itself. Both
// failures are logged and swallowed.
type TransitionReporter struct {
	history   ports.HistoryRepository
	publisher ports.OrderEventPublisher
	logger    *slog.Logger
}

// NewTransitionReporter creates a reporter. publisher may be nil when the
// broker is not configured.
func NewTransitionReporter(historyRepo ports.HistoryRepository,
	publisher ports.OrderEventPublisher, logger *slog.Logger) TransitionReporter {
	if logger == nil {
		logger = slog.Default()
	}

	return TransitionReporter{
		history:   historyRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Report appends one trail entry for the state aggregate currently holds
// and announces the change to the broker.
func (r TransitionReporter) Report(ctx context.Context, aggregate *order.Order,
	changedBy kernel.UUID, note *string) {
	entry, err := history.NewEntry(kernel.NewUUID(), aggregate.ID(), aggregate.Status(),
		changedBy, note, time.Now().UTC())
	if err != nil {
		r.logger.Error("order history entry rejected",
			"orderID", aggregate.ID().String(),
			"status", aggregate.Status().String(),
			"error", err)
	} else if err := r.history.Add(ctx, entry); err != nil {
		r.logger.Error("order history write failed",
			"orderID", aggregate.ID().String(),
			"status", aggregate.Status().String(),
			"error", err)
	}

	if r.publisher == nil {
		return
	}

	if err := r.publisher.PublishOrderChanged(ctx, aggregate); err != nil {
		r.logger.Warn("order changed event publish failed",
			"orderID", aggregate.ID().String(),
			"status", aggregate.Status().String(),
			"error", err)
	}
}
