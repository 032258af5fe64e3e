package ports

import (
	"context"

	"dispatch/internal/core/domain/model/history"
	"dispatch/internal/core/domain/model/kernel"
)

// HistoryRepository defines the persistence contract for the append-only
// order status trail. Entries are never updated or removed once written.
type HistoryRepository interface {
	// Add appends a new entry to the trail.
	Add(ctx context.Context, entry *history.Entry) error

	// GetAllByOrder retrieves the trail of one order, oldest first.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*history.Entry, error)
}
