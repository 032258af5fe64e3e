package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels a non-terminal order, stores the reason
// and the cancelling party, and frees the assigned courier when there is one.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	reporter   TransitionReporter
	assigner   services.Assigner
}

// NewCancelOrderCommandHandler creates a handler for order cancellations.
func NewCancelOrderCommandHandler(uowFactory UoWFactory, reporter TransitionReporter) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		reporter:   reporter,
		assigner:   services.NewAssigner(),
	}
}

// Handle processes the cancellation. Fails with an invalid state error when
// the order already reached a terminal status.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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
	courierRepo := uow.CourierRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	expected := aggregate.Status()
	if err = aggregate.Cancel(cmd.Reason(), cmd.ActorID(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.UpdateInStatus(ctx, aggregate, expected); err != nil {
		return err
	}

	if aggregate.CourierID() != nil {
		assignee, getErr := courierRepo.Get(ctx, *aggregate.CourierID())
		if getErr != nil && !errors.Is(getErr, errs.ErrObjectNotFound) {
			return getErr
		}
		if assignee != nil {
			h.assigner.Release(aggregate, assignee)
			if err = courierRepo.Update(ctx, assignee); err != nil {
				return err
			}
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	reason := cmd.Reason()
	h.reporter.Report(ctx, aggregate, cmd.ActorID(), &reason)

	return nil
}
