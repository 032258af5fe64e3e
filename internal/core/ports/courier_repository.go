// Package ports defines the contracts between the application core and
// infrastructure adapters, enabling dependency inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	// The courier must be valid and not already exist in the repository.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	// The courier must exist in the repository and be valid.
	Update(ctx context.Context, courier *courier.Courier) error

	// ClaimAvailable persists courier conditionally on the stored row
	// still being marked available. When another transaction occupied the
	// courier first the write affects zero rows and a ConflictError is
	// returned, so two assignments can never both take the same courier.
	ClaimAvailable(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllAvailable retrieves all couriers currently marked available,
	// ordered by name. A courier is unavailable exactly while an active
	// order points at them or while an admin switched them off manually.
	GetAllAvailable(ctx context.Context) ([]*courier.Courier, error)
}
