package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand represents a dispatcher or administrator attaching a
// courier to a pending or notified order on the courier's behalf.
type AssignCourierCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID
	actorID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates a command to attach a courier to an order.
// actorID identifies the dispatcher performing the action for the audit trail.
func NewAssignCourierCommand(orderID, courierID, actorID kernel.UUID) (AssignCourierCommand, error) {
	command := AssignCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCourierID(courierID),
		command.setActorID(actorID),
	); err != nil {
		return AssignCourierCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being assigned.
func (c AssignCourierCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the identifier of the courier being attached.
func (c AssignCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// ActorID returns the identifier of the dispatcher performing the action.
func (c AssignCourierCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *AssignCourierCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("orderID")
	}

	c.orderID = orderID
	return nil
}

func (c *AssignCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("courierID")
	}

	c.courierID = courierID
	return nil
}

func (c *AssignCourierCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("actorID")
	}

	c.actorID = actorID
	return nil
}
