package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// New orders start in Pending status with no courier and no commission
// amount, the commission percentage is frozen at this point.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	reporter   TransitionReporter
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, reporter TransitionReporter) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		reporter:   reporter,
	}
}

// Handle processes the order creation command.
// Uses a transaction to ensure the order is properly persisted or rolled
// back on error. The Pending trail entry is recorded after commit.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := order.NewOrder(cmd.OrderID(), cmd.RestaurantID(), cmd.CreatedBy(),
		cmd.ClientName(), cmd.ClientPhone(), cmd.DeliveryAddress(),
		cmd.AddressReference(), cmd.Notes(),
		cmd.OrderValue(), cmd.CommissionPercent(), time.Now().UTC())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	actor := cmd.RestaurantID()
	if cmd.CreatedBy() != nil {
		actor = *cmd.CreatedBy()
	}
	h.reporter.Report(ctx, aggregate, actor, nil)

	return nil
}
