package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrReportIncidentCommandIsNotConstructed = errors.New(
	"ReportIncidentCommand must be created via NewReportIncidentCommand constructor",
)

// ReportIncidentCommand represents flagging a problem on an order. The
// description is mandatory, the order keeps its current status.
type ReportIncidentCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	description string
	actorID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewReportIncidentCommand creates a command to report a problem on an
// order. Validates that the description is not empty.
func NewReportIncidentCommand(orderID kernel.UUID, description string, actorID kernel.UUID) (ReportIncidentCommand, error) {
	command := ReportIncidentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setDescription(description),
		command.setActorID(actorID),
	); err != nil {
		return ReportIncidentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportIncidentCommand) Validate() error {
	return c.guard.Validate(ErrReportIncidentCommandIsNotConstructed)
}

// OrderID returns the identifier of the order the problem is about.
func (c ReportIncidentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Description returns the free-form description of the problem.
func (c ReportIncidentCommand) Description() string {
	return c.description
}

// ActorID returns the identifier of the reporting party.
func (c ReportIncidentCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *ReportIncidentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("orderID")
	}

	c.orderID = orderID
	return nil
}

func (c *ReportIncidentCommand) setDescription(description string) error {
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}

	c.description = description
	return nil
}

func (c *ReportIncidentCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("actorID")
	}

	c.actorID = actorID
	return nil
}
