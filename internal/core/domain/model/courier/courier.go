package courier

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPhoneIsRequired is returned when attempting to create a courier without a phone.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrNationalIDIsRequired is returned when attempting to create a courier without a national ID.
	ErrNationalIDIsRequired = errs.NewValueIsRequiredError("nationalID")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier")
)

// Courier represents a delivery person registered on the platform.
//
// Its single mutable attribute is the availability flag. The flag is false
// exactly while the courier carries an order in a non-terminal state; this is
// not a database constraint but an invariant maintained procedurally by the
// assignment command handlers, which flip the flag inside the same unit of
// work as the order mutation. Couriers may also toggle the flag manually
// (opting in or out of work); manual toggles are last-writer-wins and are
// allowed to race harmlessly with assignment.
//
// Identity fields come from onboarding: legal name, contact phone, national
// ID (cédula), and an optional motorcycle plate.
type Courier struct {
	id           kernel.UUID
	name         string
	phone        string
	nationalID   string
	vehiclePlate *string
	available    bool

	guard guard.ConstructorGuard
}

// NewCourier creates a newly onboarded Courier. New couriers start available
// so they immediately appear in the dispatcher's assignment list.
//
// Returns a validation error when the ID, name, phone, or national ID is
// missing; multiple violations are joined.
func NewCourier(id kernel.UUID, name, phone, nationalID string, vehiclePlate *string) (*Courier, error) {
	c := &Courier{
		available:    true,
		vehiclePlate: vehiclePlate,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setPhone(phone),
		c.setNationalID(nationalID),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a Courier from persistent storage, preserving
// its availability state at the time of persistence.
func RestoreCourier(
	id kernel.UUID,
	name, phone, nationalID string,
	vehiclePlate *string,
	available bool,
) (*Courier, error) {
	c := &Courier{
		available:    available,
		vehiclePlate: vehiclePlate,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setPhone(phone),
		c.setNationalID(nationalID),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate ensures the Courier instance was properly constructed.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's legal name.
func (c *Courier) Name() string {
	return c.name
}

// Phone returns the courier's contact phone.
func (c *Courier) Phone() string {
	return c.phone
}

// NationalID returns the courier's national ID (cédula).
func (c *Courier) NationalID() string {
	return c.nationalID
}

// VehiclePlate returns the motorcycle plate, or nil when not registered.
func (c *Courier) VehiclePlate() *string {
	return c.vehiclePlate
}

// Available reports whether the courier can take a new order.
func (c *Courier) Available() bool {
	return c.available
}

// MarkBusy flags the courier as occupied by an order. Called by the
// assignment handlers when the courier claims or is given an order.
func (c *Courier) MarkBusy() {
	c.available = false
}

// MarkAvailable flags the courier as free for new orders. Called when their
// order is delivered or cancelled, or when they are reassigned away.
func (c *Courier) MarkAvailable() {
	c.available = true
}

// SetAvailability applies a manual opt-in/opt-out toggle by the courier.
func (c *Courier) SetAvailability(available bool) {
	c.available = available
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}
	c.phone = phone
	return nil
}

func (c *Courier) setNationalID(nationalID string) error {
	if nationalID == "" {
		return ErrNationalIDIsRequired
	}
	c.nationalID = nationalID
	return nil
}
