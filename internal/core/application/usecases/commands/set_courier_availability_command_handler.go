package commands

import (
	"context"
)

// SetCourierAvailabilityCommandHandler applies a courier's manual
// availability toggle.
type SetCourierAvailabilityCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewSetCourierAvailabilityCommandHandler creates a handler for manual
// availability toggles.
func NewSetCourierAvailabilityCommandHandler(uowFactory CourierUoWFactory) SetCourierAvailabilityCommandHandler {
	return SetCourierAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the toggle.
func (h *SetCourierAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetCourierAvailabilityCommand) error {
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

	courierRepo := uow.CourierRepository()

	aggregate, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	aggregate.SetAvailability(cmd.Available())

	if err = courierRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
