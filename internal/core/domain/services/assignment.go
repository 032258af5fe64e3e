package services

import (
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// Assigner is a domain service that couples an order transition with the
// availability flip of the couriers involved. It keeps the rule that a
// courier is unavailable exactly while an active order points at them in
// one place instead of spreading it over the command handlers.
//
// Business rules:
//   - A courier can only take an order while marked available
//   - Taking an order marks the courier busy
//   - Reassignment frees the previous courier and occupies the new one
//   - A courier is freed again when the order reaches a terminal status
type Assigner struct{}

// NewAssigner creates a new Assigner instance.
func NewAssigner() Assigner {
	return Assigner{}
}

// Assign moves o to Assigned under c and marks c busy.
// Returns a conflict error when c is already occupied.
func (a Assigner) Assign(o *order.Order, c *courier.Courier, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}

	if !c.Available() {
		return errs.NewConflictError("courier", c.ID().String())
	}

	if err := o.Assign(c.ID(), now); err != nil {
		return err
	}

	c.MarkBusy()
	return nil
}

// Reassign hands o over from previous to next. previous is freed even
// when it no longer exists in storage, callers pass nil in that case.
func (a Assigner) Reassign(o *order.Order, previous *courier.Courier, next *courier.Courier, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}

	if !next.Available() {
		return errs.NewConflictError("courier", next.ID().String())
	}

	if _, err := o.Reassign(next.ID(), now); err != nil {
		return err
	}

	if previous != nil {
		previous.MarkAvailable()
	}
	next.MarkBusy()
	return nil
}

// Release frees c after o reached a terminal status. It is a no-op when
// o is still active so callers can invoke it unconditionally.
func (a Assigner) Release(o *order.Order, c *courier.Courier) {
	if c == nil {
		return
	}
	if o.Status().IsTerminal() {
		c.MarkAvailable()
	}
}
