package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrNotifyPendingOrdersCommandIsNotConstructed = errors.New(
	"NotifyPendingOrdersCommand must be created via NewNotifyPendingOrdersCommand constructor",
)

// NotifyPendingOrdersCommand represents the periodic sweep that flags
// Pending orders created at or before a cutoff as Notified, signalling to
// dispatchers that the order sat unclaimed long enough to need attention.
type NotifyPendingOrdersCommand struct { //nolint:recvcheck //using for validation
	actorID kernel.UUID
	cutoff  time.Time

	guard guard.ConstructorGuard
}

// NewNotifyPendingOrdersCommand creates a sweep command. actorID identifies
// the system account recorded in the trail for these transitions.
func NewNotifyPendingOrdersCommand(actorID kernel.UUID, cutoff time.Time) (NotifyPendingOrdersCommand, error) {
	command := NotifyPendingOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setActorID(actorID),
		command.setCutoff(cutoff),
	); err != nil {
		return NotifyPendingOrdersCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c NotifyPendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrNotifyPendingOrdersCommandIsNotConstructed)
}

// ActorID returns the system account identifier used in the trail.
func (c NotifyPendingOrdersCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Cutoff returns the creation time threshold for the sweep.
func (c NotifyPendingOrdersCommand) Cutoff() time.Time {
	return c.cutoff
}

func (c *NotifyPendingOrdersCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("actorID")
	}

	c.actorID = actorID
	return nil
}

func (c *NotifyPendingOrdersCommand) setCutoff(cutoff time.Time) error {
	if cutoff.IsZero() {
		return errs.NewValueIsRequiredError("cutoff")
	}

	c.cutoff = cutoff
	return nil
}
