package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// AdvanceOrderCommandHandler moves an order one step forward. Reaching
// Delivered stamps the delivery time, computes the commission from the
// percentage frozen at creation and frees the assigned courier, all within
// one transaction.
type AdvanceOrderCommandHandler struct {
	uowFactory UoWFactory
	reporter   TransitionReporter
	assigner   services.Assigner
}

// NewAdvanceOrderCommandHandler creates a handler for order progression.
func NewAdvanceOrderCommandHandler(uowFactory UoWFactory, reporter TransitionReporter) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
		reporter:   reporter,
		assigner:   services.NewAssigner(),
	}
}

// Handle processes the progression. Fails with an invalid state error when
// the order is not in Assigned or EnRoute status.
func (h *AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) error {
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
	if err = aggregate.Advance(time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.UpdateInStatus(ctx, aggregate, expected); err != nil {
		return err
	}

	if aggregate.Status() == order.Delivered && aggregate.CourierID() != nil {
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

	h.reporter.Report(ctx, aggregate, cmd.ActorID(), nil)

	return nil
}
