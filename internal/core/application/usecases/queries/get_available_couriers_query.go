package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetAvailableCouriersQueryIsNotConstructed = errors.New(
	"GetAvailableCouriersQuery must be created via NewGetAvailableCouriersQuery constructor",
)

// GetAvailableCouriersQuery retrieves all couriers currently marked
// available, for the dispatcher's assignment picker.
type GetAvailableCouriersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailableCouriersQuery creates a query for available couriers.
// This is a parameterless query.
func NewGetAvailableCouriersQuery() GetAvailableCouriersQuery {
	return GetAvailableCouriersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableCouriersQueryIsNotConstructed)
}

// GetAvailableCouriersQueryResponse represents one available courier row.
type GetAvailableCouriersQueryResponse struct {
	ID           kernel.UUID
	Name         string
	Phone        string
	VehiclePlate *string
}
