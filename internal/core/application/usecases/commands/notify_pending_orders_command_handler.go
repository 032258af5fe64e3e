package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// NotifyPendingOrdersCommandHandler flags overdue Pending orders as
// Notified. Each flip is a conditional write, an order claimed while the
// sweep runs is skipped rather than treated as a failure.
type NotifyPendingOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	reporter   TransitionReporter
}

// NewNotifyPendingOrdersCommandHandler creates a handler for the
// notification sweep.
func NewNotifyPendingOrdersCommandHandler(uowFactory OrderUoWFactory, reporter TransitionReporter) NotifyPendingOrdersCommandHandler {
	return NotifyPendingOrdersCommandHandler{
		uowFactory: uowFactory,
		reporter:   reporter,
	}
}

// Handle processes the sweep.
func (h *NotifyPendingOrdersCommandHandler) Handle(ctx context.Context, cmd NotifyPendingOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	overdue, err := orderRepo.GetAllPendingBefore(ctx, cmd.Cutoff())
	if err != nil {
		return err
	}

	notified := make([]*order.Order, 0, len(overdue))
	for _, aggregate := range overdue {
		if err = aggregate.Notify(time.Now().UTC()); err != nil {
			continue
		}

		err = orderRepo.UpdateInStatus(ctx, aggregate, order.Pending)
		if errors.Is(err, errs.ErrConflict) {
			continue
		}
		if err != nil {
			return err
		}

		notified = append(notified, aggregate)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	note := "awaiting assignment"
	for _, aggregate := range notified {
		h.reporter.Report(ctx, aggregate, cmd.ActorID(), &note)
	}

	return nil
}
