package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAdvanceOrderCommandIsNotConstructed = errors.New(
	"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
)

// AdvanceOrderCommand represents moving an order one step forward along
// Assigned, EnRoute, Delivered. Delivery computes the commission and frees
// the courier.
type AdvanceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAdvanceOrderCommand creates a command to advance an order.
func NewAdvanceOrderCommand(orderID, actorID kernel.UUID) (AdvanceOrderCommand, error) {
	command := AdvanceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActorID(actorID),
	); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the advancing order.
func (c AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the identifier of the party advancing the order.
func (c AdvanceOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *AdvanceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("orderID")
	}

	c.orderID = orderID
	return nil
}

func (c *AdvanceOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("actorID")
	}

	c.actorID = actorID
	return nil
}
