package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// ReassignCourierCommandHandler hands an active order over to a replacement
// courier. The write is conditional on the order still being in the status
// the handler read, a concurrent advance or cancellation yields a conflict.
type ReassignCourierCommandHandler struct {
	uowFactory UoWFactory
	reporter   TransitionReporter
	assigner   services.Assigner
}

// NewReassignCourierCommandHandler creates a handler for courier handovers.
func NewReassignCourierCommandHandler(uowFactory UoWFactory, reporter TransitionReporter) ReassignCourierCommandHandler {
	return ReassignCourierCommandHandler{
		uowFactory: uowFactory,
		reporter:   reporter,
		assigner:   services.NewAssigner(),
	}
}

// Handle processes the handover. Fails with a not found error when the
// order has no current assignment.
func (h *ReassignCourierCommandHandler) Handle(ctx context.Context, cmd ReassignCourierCommand) error {
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

	next, err := courierRepo.Get(ctx, cmd.NewCourierID())
	if err != nil {
		return err
	}

	// The previous courier may have been removed from the roster, the
	// handover still proceeds in that case.
	var previous *courier.Courier
	if previousID := aggregate.CourierID(); previousID != nil {
		previous, err = courierRepo.Get(ctx, *previousID)
		if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
			return err
		}
	}

	expected := aggregate.Status()
	if err = h.assigner.Reassign(aggregate, previous, next, time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.UpdateInStatus(ctx, aggregate, expected); err != nil {
		return err
	}

	if previous != nil {
		if err = courierRepo.Update(ctx, previous); err != nil {
			return err
		}
	}

	if err = courierRepo.ClaimAvailable(ctx, next); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	note := "reassigned"
	h.reporter.Report(ctx, aggregate, cmd.ActorID(), &note)

	return nil
}
