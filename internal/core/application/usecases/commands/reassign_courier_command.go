package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrReassignCourierCommandIsNotConstructed = errors.New(
	"ReassignCourierCommand must be created via NewReassignCourierCommand constructor",
)

// ReassignCourierCommand represents a dispatcher moving an active order
// from its current courier to a replacement. The previous courier becomes
// available again, the order status is unchanged.
type ReassignCourierCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	newCourierID kernel.UUID
	actorID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewReassignCourierCommand creates a command to replace an order's courier.
func NewReassignCourierCommand(orderID, newCourierID, actorID kernel.UUID) (ReassignCourierCommand, error) {
	command := ReassignCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setNewCourierID(newCourierID),
		command.setActorID(actorID),
	); err != nil {
		return ReassignCourierCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ReassignCourierCommand) Validate() error {
	return c.guard.Validate(ErrReassignCourierCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being handed over.
func (c ReassignCourierCommand) OrderID() kernel.UUID {
	return c.orderID
}

// NewCourierID returns the identifier of the replacement courier.
func (c ReassignCourierCommand) NewCourierID() kernel.UUID {
	return c.newCourierID
}

// ActorID returns the identifier of the dispatcher performing the action.
func (c ReassignCourierCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *ReassignCourierCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("orderID")
	}

	c.orderID = orderID
	return nil
}

func (c *ReassignCourierCommand) setNewCourierID(newCourierID kernel.UUID) error {
	if err := newCourierID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("newCourierID")
	}

	c.newCourierID = newCourierID
	return nil
}

func (c *ReassignCourierCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("actorID")
	}

	c.actorID = actorID
	return nil
}
