// Package queries contains read-only operations against the database.
// Query handlers bypass the domain model and read projections directly,
// implementing the read side of the CQRS architecture.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves all orders that have not reached a
// terminal status, optionally narrowed to one restaurant. Backs the
// dispatcher and restaurant dashboards.
//
// Example:
//
//	query := NewGetActiveOrdersQuery(nil)
//	handler := NewGetActiveOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get active orders: %w", err)
//	}
//	fmt.Printf("%d orders in flight\n", len(orders))
type GetActiveOrdersQuery struct {
	restaurantID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query for in-flight orders.
// Pass a restaurantID to narrow the result to one restaurant, nil for all.
func NewGetActiveOrdersQuery(restaurantID *kernel.UUID) GetActiveOrdersQuery {
	return GetActiveOrdersQuery{
		restaurantID: restaurantID,
		guard:        guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// RestaurantID returns the optional restaurant filter.
func (q GetActiveOrdersQuery) RestaurantID() *kernel.UUID {
	return q.restaurantID
}

// GetActiveOrdersQueryResponse represents one in-flight order row.
type GetActiveOrdersQueryResponse struct {
	ID              kernel.UUID
	RestaurantID    kernel.UUID
	ClientName      string
	ClientPhone     string
	DeliveryAddress string
	OrderValue      int64
	Status          order.Status
	CourierID       *kernel.UUID
	CreatedAt       time.Time
}
