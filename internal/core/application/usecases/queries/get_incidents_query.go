package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrGetIncidentsQueryIsNotConstructed = errors.New(
	"GetIncidentsQuery must be created via NewGetIncidentsQuery constructor",
)

// GetIncidentsQuery retrieves problem reports together with the client and
// status of the affected order, newest report first, optionally narrowed to
// one order. Backs the back-office incident board.
type GetIncidentsQuery struct {
	orderID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetIncidentsQuery creates a query for problem reports.
// Pass an orderID to narrow the result to one order, nil for all.
func NewGetIncidentsQuery(orderID *kernel.UUID) GetIncidentsQuery {
	return GetIncidentsQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetIncidentsQuery) Validate() error {
	return q.guard.Validate(ErrGetIncidentsQueryIsNotConstructed)
}

// OrderID returns the optional order filter.
func (q GetIncidentsQuery) OrderID() *kernel.UUID {
	return q.orderID
}

// GetIncidentsQueryResponse represents one problem report row enriched with
// the affected order's client name, delivery address and current status.
type GetIncidentsQueryResponse struct {
	ID              kernel.UUID
	OrderID         kernel.UUID
	ReportedBy      kernel.UUID
	Description     string
	ClientName      string
	DeliveryAddress string
	OrderStatus     order.Status
	CreatedAt       time.Time
}
