package order

import (
	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery order.
// It implements a state machine with defined transitions to ensure orders
// follow the dispatch workflow.
//
// State transitions:
//
//	Pending ──┬──> Notified ──┐
//	          │               ├──> Assigned ──> EnRoute ──> Delivered
//	          └───────────────┘
//
//	any non-terminal state ──> Cancelled
//
// Transitions are monotonic: there are no back-transitions, and Delivered and
// Cancelled are permanent resting states. Notified is a labelled sibling of
// Pending with no extra side effects; it exists so dispatch screens can show
// that a pending order has already been pushed to couriers.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	// Orders in this status are waiting to be taken by or assigned to a courier.
	Pending

	// Notified marks a pending order that couriers have been alerted about.
	// It behaves exactly like Pending for transition purposes.
	Notified

	// Assigned indicates the order has a courier and is being picked up.
	Assigned

	// EnRoute indicates the courier is on the way to the client.
	EnRoute

	// Delivered indicates the order reached the client. Terminal.
	Delivered

	// Cancelled indicates the order was abandoned with a recorded reason. Terminal.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Notified:  "Notified",
		Assigned:  "Assigned",
		EnRoute:   "EnRoute",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Notified:  "Notified",
		Assigned:  "Assigned",
		EnRoute:   "EnRoute",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
// Unknown (0) and any other values are invalid. Used to vet Status values
// coming from external sources such as the database.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			errs.NewValueIsOutOfRangeError("status", int(s), int(Pending), int(Cancelled)))
	}
	return nil
}

// String returns the human-readable name of the status, or "Unknown" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status is a permanent resting state.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsAssignable reports whether a courier may be attached from this status.
// Only Pending and Notified orders can receive their first courier.
func (s Status) IsAssignable() bool {
	return s == Pending || s == Notified
}

// IsActive reports whether the order currently occupies a courier,
// i.e. it has been assigned and is not yet in a terminal state.
func (s Status) IsActive() bool {
	return s == Assigned || s == EnRoute
}

// Notify transitions the status to Notified.
//
// Valid transitions:
//   - Pending -> Notified
//
// Returns (0, InvalidStateError) for any other starting status.
func (s Status) Notify() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidStateError("notify", s.String())
	}
	return Notified, nil
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Pending -> Assigned (courier accepted or dispatcher assigned)
//   - Notified -> Assigned
//
// Returns (0, InvalidStateError) for any other starting status. Reassignment
// of an already-assigned order keeps the status unchanged and is handled by
// Order.Reassign, not by this transition.
func (s Status) Assign() (Status, error) {
	if !s.IsAssignable() {
		return 0, errs.NewInvalidStateError("assign", s.String())
	}
	return Assigned, nil
}

// Advance moves the status one step forward along the delivery path.
//
// Valid transitions:
//   - Assigned -> EnRoute
//   - EnRoute  -> Delivered
//
// Returns (0, InvalidStateError) for Pending, Notified, and terminal states:
// an order cannot skip the assignment step or leave a terminal state.
func (s Status) Advance() (Status, error) {
	switch s {
	case Assigned:
		return EnRoute, nil
	case EnRoute:
		return Delivered, nil
	default:
		return 0, errs.NewInvalidStateError("advance", s.String())
	}
}

// Cancel transitions the status to Cancelled.
//
// Valid from any non-terminal status. Returns (0, InvalidStateError) when the
// order is already Delivered or Cancelled.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, errs.NewInvalidStateErrorWithCause("cancel", s.String(), err)
	}
	if s.IsTerminal() {
		return 0, errs.NewInvalidStateError("cancel", s.String())
	}
	return Cancelled, nil
}
