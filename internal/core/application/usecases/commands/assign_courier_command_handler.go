package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// AssignCourierCommandHandler attaches a courier to an order on behalf of a
// dispatcher. Unlike a courier claim it also accepts orders in Notified
// status, but it competes under the same conditional write, an order that
// was grabbed in the meantime yields a conflict.
type AssignCourierCommandHandler struct {
	uowFactory UoWFactory
	reporter   TransitionReporter
	assigner   services.Assigner
}

// NewAssignCourierCommandHandler creates a handler for dispatcher assignments.
func NewAssignCourierCommandHandler(uowFactory UoWFactory, reporter TransitionReporter) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		reporter:   reporter,
		assigner:   services.NewAssigner(),
	}
}

// Handle processes the assignment.
func (h *AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) error {
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

	assignee, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = h.assigner.Assign(aggregate, assignee, time.Now().UTC()); err != nil {
		if errors.Is(err, errs.ErrInvalidState) {
			return errs.NewConflictErrorWithCause("order", cmd.OrderID().String(), err)
		}
		return err
	}

	if err = orderRepo.ClaimUnassigned(ctx, aggregate, []order.Status{order.Pending, order.Notified}); err != nil {
		return err
	}

	if err = courierRepo.ClaimAvailable(ctx, assignee); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	note := "assigned by dispatcher"
	h.reporter.Report(ctx, aggregate, cmd.ActorID(), &note)

	return nil
}
