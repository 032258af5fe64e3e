package ports

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// OrderEventPublisher pushes order change notifications to the message
// broker. Publishing is best effort: a failed publish must never undo a
// committed transition, implementations report the error and move on.
type OrderEventPublisher interface {
	// PublishOrderChanged announces that aggregate reached its current status.
	PublishOrderChanged(ctx context.Context, aggregate *order.Order) error
}
