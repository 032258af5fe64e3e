package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their status and assignment state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateInStatus persists changes to an existing order only while its
	// stored status still equals expected. When another writer moved the
	// order first, no row is touched and a conflict error is returned.
	UpdateInStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// ClaimUnassigned persists an assignment only while the stored order
	// is still unassigned and in one of the expected statuses. Exactly one
	// of several concurrent claimants succeeds, the rest get a conflict
	// error.
	ClaimUnassigned(ctx context.Context, aggregate *order.Order, expected []order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its current status and assignment.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllPendingBefore retrieves orders still in Pending status that
	// were created at or before cutoff. Used by the notification job.
	GetAllPendingBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)

	// GetAllActiveUpdatedBefore retrieves Assigned and EnRoute orders whose
	// last change happened at or before cutoff. Used by the stale order
	// alert job.
	GetAllActiveUpdatedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
