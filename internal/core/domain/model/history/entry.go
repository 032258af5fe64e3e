package history

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrEntryIsNotConstructed is returned when an Entry was created as a zero
// value instead of through NewEntry or RestoreEntry.
var ErrEntryIsNotConstructed = errors.New("entry is not constructed")

// Entry is a single record in an order's status trail. Entries are
// append only: they are created when a transition happens and never
// changed afterwards.
type Entry struct {
	id        kernel.UUID
	orderID   kernel.UUID
	status    order.Status
	changedBy kernel.UUID
	note      *string
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewEntry records that orderID entered status at now, caused by
// changedBy. note is an optional free-form remark, for cancellations
// it carries the reason.
func NewEntry(id kernel.UUID, orderID kernel.UUID, status order.Status,
	changedBy kernel.UUID, note *string, now time.Time) (*Entry, error) {
	e := &Entry{
		guard: guard.NewConstructorGuard(),
	}

	err := errors.Join(
		e.setID(id),
		e.setOrderID(orderID),
		e.setStatus(status),
		e.setChangedBy(changedBy),
	)
	if err != nil {
		return nil, err
	}

	e.note = note
	e.createdAt = now
	return e, nil
}

// RestoreEntry recreates an entry from persisted state.
func RestoreEntry(id kernel.UUID, orderID kernel.UUID, status order.Status,
	changedBy kernel.UUID, note *string, createdAt time.Time) (*Entry, error) {
	e, err := NewEntry(id, orderID, status, changedBy, note, createdAt)
	if err != nil {
		return nil, err
	}
	e.createdAt = createdAt
	return e, nil
}

// Validate ensures the Entry instance was properly constructed.
func (e *Entry) Validate() error {
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// OrderID returns the identifier of the order the entry belongs to.
func (e *Entry) OrderID() kernel.UUID {
	return e.orderID
}

// Status returns the order status recorded by the entry.
func (e *Entry) Status() order.Status {
	return e.status
}

// ChangedBy returns the identifier of the actor who caused the transition.
func (e *Entry) ChangedBy() kernel.UUID {
	return e.changedBy
}

// Note returns the optional remark attached to the transition, nil when none
// was given.
func (e *Entry) Note() *string {
	return e.note
}

// CreatedAt returns when the transition happened.
func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredError("id")
	}
	e.id = id
	return nil
}

func (e *Entry) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("orderID")
	}
	e.orderID = orderID
	return nil
}

func (e *Entry) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	e.status = status
	return nil
}

func (e *Entry) setChangedBy(changedBy kernel.UUID) error {
	if err := changedBy.Validate(); err != nil {
		return errs.NewValueIsRequiredError("changedBy")
	}
	e.changedBy = changedBy
	return nil
}
