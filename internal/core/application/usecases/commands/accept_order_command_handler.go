package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// AcceptOrderCommandHandler lets a courier claim a pending unassigned order.
// The claim is written as a conditional update keyed on the order still
// being Pending with no courier, so when several couriers grab the same
// order only the first write lands and the rest observe a conflict. The
// courier row is occupied through the same kind of conditional write,
// keyed on it still being available.
type AcceptOrderCommandHandler struct {
	uowFactory UoWFactory
	reporter   TransitionReporter
	assigner   services.Assigner
}

// NewAcceptOrderCommandHandler creates a handler for courier self-service claims.
func NewAcceptOrderCommandHandler(uowFactory UoWFactory, reporter TransitionReporter) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		reporter:   reporter,
		assigner:   services.NewAssigner(),
	}
}

// Handle processes the claim. Returns a conflict error when the order was
// taken, moved or cancelled since the courier saw it on the list.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
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

	claimant, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if aggregate.Status() != order.Pending {
		return errs.NewConflictError("order", cmd.OrderID().String())
	}

	if err = h.assigner.Assign(aggregate, claimant, time.Now().UTC()); err != nil {
		if errors.Is(err, errs.ErrInvalidState) {
			return errs.NewConflictErrorWithCause("order", cmd.OrderID().String(), err)
		}
		return err
	}

	if err = orderRepo.ClaimUnassigned(ctx, aggregate, []order.Status{order.Pending}); err != nil {
		return err
	}

	if err = courierRepo.ClaimAvailable(ctx, claimant); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	note := "accepted by courier"
	h.reporter.Report(ctx, aggregate, cmd.CourierID(), &note)

	return nil
}
