// Package guard provides the constructor guard pattern used by domain objects.
// Embedding a ConstructorGuard in an entity or value object makes zero-value
// instances detectable, so objects that bypassed their constructor fail
// validation instead of silently carrying invalid state.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller does not
// supply a specific validation error for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard distinguishes properly constructed domain objects from
// zero values. The internal flag can only be set through NewConstructorGuard,
// which constructors call as their last step.
//
// Example usage:
//
//	type Courier struct {
//	    id    kernel.UUID
//	    guard guard.ConstructorGuard
//	}
//
//	func NewCourier(id kernel.UUID) (*Courier, error) {
//	    // validation...
//	    return &Courier{id: id, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c *Courier) Validate() error {
//	    return c.guard.Validate(ErrCourierIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the enclosing object as
// properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for constructed objects. For zero values it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
