package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrSetCourierAvailabilityCommandIsNotConstructed = errors.New(
	"SetCourierAvailabilityCommand must be created via NewSetCourierAvailabilityCommand constructor",
)

// SetCourierAvailabilityCommand represents a courier manually toggling their
// own availability. This write path is last-writer-wins and deliberately not
// linearized with assignment activity, a stale flag self-corrects on the
// next claim attempt.
type SetCourierAvailabilityCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	available bool

	guard guard.ConstructorGuard
}

// NewSetCourierAvailabilityCommand creates a command to toggle availability.
func NewSetCourierAvailabilityCommand(courierID kernel.UUID, available bool) (SetCourierAvailabilityCommand, error) {
	command := SetCourierAvailabilityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setCourierID(courierID); err != nil {
		return SetCourierAvailabilityCommand{}, err
	}

	command.available = available

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SetCourierAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierAvailabilityCommandIsNotConstructed)
}

// CourierID returns the identifier of the toggling courier.
func (c SetCourierAvailabilityCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Available returns the requested availability value.
func (c SetCourierAvailabilityCommand) Available() bool {
	return c.available
}

func (c *SetCourierAvailabilityCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("courierID")
	}

	c.courierID = courierID
	return nil
}
