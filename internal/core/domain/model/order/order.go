package order

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrNoCourierAssigned is returned when an operation expects a current
	// courier assignment (e.g. Reassign) but the order has none.
	ErrNoCourierAssigned = errs.NewObjectNotFoundError("assigned courier", "none")
)

// Order represents a delivery request from a restaurant to a client. It is the
// aggregate root that manages the order lifecycle from creation through
// assignment to delivery or cancellation.
//
// Order maintains these invariants:
//   - Commission amount is set exactly once, on the transition into Delivered,
//     as round(orderValue * commissionPercent / 100) using the percentage
//     snapshotted at creation time.
//   - Cancel reason is non-empty exactly when the status is Cancelled.
//   - A courier is attached whenever the status is Assigned or EnRoute; the
//     reference survives into Delivered for reporting.
//   - Status transitions are monotonic along the graph defined by Status.
//
// The struct uses private fields so all mutation flows through the validated
// transition methods, and can only be created through its factory functions.
type Order struct {
	id           kernel.UUID
	restaurantID kernel.UUID

	// createdBy is the dispatcher who submitted the order on the restaurant's
	// behalf; nil means the restaurant submitted it directly.
	createdBy *kernel.UUID

	clientName       string
	clientPhone      string
	deliveryAddress  string
	addressReference *string
	notes            *string

	orderValue        kernel.Money
	commissionPercent kernel.CommissionPercent

	status    Status
	courierID *kernel.UUID

	// commissionAmount stays nil until the order is delivered.
	commissionAmount *kernel.Money

	cancelReason *string
	cancelledBy  *kernel.UUID

	deliveredAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Pending status with the commission
// percentage snapshotted from the caller-supplied configuration value.
// The commission amount is left unset until delivery.
//
// Returns a validation error when any required client field is empty or the
// order value is not positive. Multiple violations are joined.
func NewOrder(
	id kernel.UUID,
	restaurantID kernel.UUID,
	createdBy *kernel.UUID,
	clientName string,
	clientPhone string,
	deliveryAddress string,
	addressReference *string,
	notes *string,
	orderValue kernel.Money,
	commissionPercent kernel.CommissionPercent,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:           Pending,
		addressReference: addressReference,
		notes:            notes,
		createdAt:        now,
		updatedAt:        now,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setRestaurantID(restaurantID),
		o.setCreatedBy(createdBy),
		o.setClientName(clientName),
		o.setClientPhone(clientPhone),
		o.setDeliveryAddress(deliveryAddress),
		o.setOrderValue(orderValue),
		o.setCommissionPercent(commissionPercent),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage,
// including its lifecycle fields. The restored order behaves identically to
// one that reached the same state through domain operations.
func RestoreOrder(
	id kernel.UUID,
	restaurantID kernel.UUID,
	createdBy *kernel.UUID,
	clientName string,
	clientPhone string,
	deliveryAddress string,
	addressReference *string,
	notes *string,
	orderValue kernel.Money,
	commissionPercent kernel.CommissionPercent,
	status Status,
	courierID *kernel.UUID,
	commissionAmount *kernel.Money,
	cancelReason *string,
	cancelledBy *kernel.UUID,
	deliveredAt *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		addressReference: addressReference,
		notes:            notes,
		commissionAmount: commissionAmount,
		cancelReason:     cancelReason,
		cancelledBy:      cancelledBy,
		deliveredAt:      deliveredAt,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setRestaurantID(restaurantID),
		o.setCreatedBy(createdBy),
		o.setClientName(clientName),
		o.setClientPhone(clientPhone),
		o.setDeliveryAddress(deliveryAddress),
		o.setOrderValue(orderValue),
		o.setCommissionPercent(commissionPercent),
		o.setStatus(status),
		o.setCourierID(courierID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory function. Call when reconstructing orders from external input.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// RestaurantID returns the originating restaurant's identifier.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// CreatedBy returns the dispatcher who created the order on the restaurant's
// behalf, or nil when the restaurant self-submitted.
func (o *Order) CreatedBy() *kernel.UUID {
	return o.createdBy
}

// ClientName returns the delivery recipient's name.
func (o *Order) ClientName() string {
	return o.clientName
}

// ClientPhone returns the delivery recipient's phone number.
func (o *Order) ClientPhone() string {
	return o.clientPhone
}

// DeliveryAddress returns the destination address.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// AddressReference returns the optional address landmark note.
func (o *Order) AddressReference() *string {
	return o.addressReference
}

// Notes returns the optional free-text delivery instructions.
func (o *Order) Notes() *string {
	return o.notes
}

// OrderValue returns the order's monetary value.
func (o *Order) OrderValue() kernel.Money {
	return o.orderValue
}

// CommissionPercent returns the commission percentage snapshotted at creation.
func (o *Order) CommissionPercent() kernel.CommissionPercent {
	return o.commissionPercent
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CourierID returns the assigned courier's ID, or nil when unassigned.
func (o *Order) CourierID() *kernel.UUID {
	return o.courierID
}

// CommissionAmount returns the computed commission, or nil until delivered.
func (o *Order) CommissionAmount() *kernel.Money {
	return o.commissionAmount
}

// CancelReason returns the cancellation reason, or nil unless cancelled.
func (o *Order) CancelReason() *string {
	return o.cancelReason
}

// CancelledBy returns the actor who cancelled the order, or nil.
func (o *Order) CancelledBy() *kernel.UUID {
	return o.cancelledBy
}

// DeliveredAt returns the delivery timestamp, or nil until delivered.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Notify marks a pending order as pushed to couriers. The status becomes
// Notified; no other field changes. Returns InvalidStateError unless the
// order is Pending.
func (o *Order) Notify(now time.Time) error {
	newStatus, err := o.status.Notify()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now
	return nil
}

// Assign attaches the first courier to the order and moves it to Assigned.
//
// Business rules:
//   - The courier ID must be valid.
//   - The order must be Pending or Notified.
//   - The order must not already have a courier; racing callers that find one
//     here lost the claim.
//
// The caller is responsible for flipping the courier's availability in the
// same unit of work.
func (o *Order) Assign(courierID kernel.UUID, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if o.courierID != nil {
		return errs.NewInvalidStateErrorWithCause("assign", o.status.String(),
			errors.New("order already has a courier"))
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courierID
	o.updatedAt = now
	return nil
}

// Reassign swaps the assigned courier while the order is in flight.
// The status is unchanged; only Assigned and EnRoute orders can be
// reassigned. Returns the previous courier's ID so the caller can free them,
// or ErrNoCourierAssigned when there is nothing to reassign from.
func (o *Order) Reassign(newCourierID kernel.UUID, now time.Time) (kernel.UUID, error) {
	if err := newCourierID.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	if o.courierID == nil {
		return kernel.UUID{}, ErrNoCourierAssigned
	}

	if !o.status.IsActive() {
		return kernel.UUID{}, errs.NewInvalidStateError("reassign", o.status.String())
	}

	previous := *o.courierID
	o.courierID = &newCourierID
	o.updatedAt = now
	return previous, nil
}

// Advance moves the order one step forward: Assigned -> EnRoute -> Delivered.
//
// On reaching Delivered, the delivery timestamp is recorded and the
// commission amount is computed once from the snapshotted percentage.
// Returns InvalidStateError when the order cannot advance (pending or
// terminal states).
func (o *Order) Advance(now time.Time) error {
	newStatus, err := o.status.Advance()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now

	if newStatus == Delivered {
		deliveredAt := now
		o.deliveredAt = &deliveredAt

		commission := o.commissionPercent.CommissionFor(o.orderValue)
		o.commissionAmount = &commission
	}

	return nil
}

// Cancel abandons a non-terminal order, recording the reason and the actor.
// An empty reason is a validation error and causes no state change.
func (o *Order) Cancel(reason string, cancelledBy kernel.UUID, now time.Time) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("cancel reason")
	}
	if err := cancelledBy.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.cancelReason = &reason
	o.cancelledBy = &cancelledBy
	o.updatedAt = now
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantID", err)
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setCreatedBy(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("createdBy", err)
	}
	o.createdBy = id
	return nil
}

func (o *Order) setClientName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("clientName")
	}
	o.clientName = name
	return nil
}

func (o *Order) setClientPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("clientPhone")
	}
	o.clientPhone = phone
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setOrderValue(value kernel.Money) error {
	if value.Amount() <= 0 {
		return errs.NewValueIsInvalidError("orderValue")
	}
	o.orderValue = value
	return nil
}

func (o *Order) setCommissionPercent(pct kernel.CommissionPercent) error {
	// Range is enforced by the CommissionPercent constructor; a zero value is
	// a legal zero-commission configuration.
	o.commissionPercent = pct
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setCourierID(courierID *kernel.UUID) error {
	if courierID == nil {
		return nil
	}
	if err := courierID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("courierID", err)
	}
	o.courierID = courierID
	return nil
}
