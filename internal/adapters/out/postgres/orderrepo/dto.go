// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with indexes on
// status and courier assignment for the dashboard queries.
type OrderDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RestaurantID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	CreatedBy         *uuid.UUID `gorm:"type:uuid"`
	ClientName        string     `gorm:"not null"`
	ClientPhone       string     `gorm:"not null"`
	DeliveryAddress   string     `gorm:"not null"`
	AddressReference  *string
	Notes             *string
	OrderValue        int64   `gorm:"not null"`
	CommissionPercent float64 `gorm:"not null"`
	Status            int     `gorm:"index;not null"`
	CourierID         *uuid.UUID `gorm:"type:uuid;index"`
	CommissionAmount  *int64
	CancelReason      *string
	CancelledBy       *uuid.UUID `gorm:"type:uuid"`
	DeliveredAt       *time.Time `gorm:"index"`
	CreatedAt         time.Time  `gorm:"not null"`
	UpdatedAt         time.Time  `gorm:"not null"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var commissionAmount *int64
	if amount := aggregate.CommissionAmount(); amount != nil {
		raw := amount.Amount()
		commissionAmount = &raw
	}

	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		RestaurantID:      aggregate.RestaurantID().Bytes(),
		CreatedBy:         uuidPtr(aggregate.CreatedBy()),
		ClientName:        aggregate.ClientName(),
		ClientPhone:       aggregate.ClientPhone(),
		DeliveryAddress:   aggregate.DeliveryAddress(),
		AddressReference:  aggregate.AddressReference(),
		Notes:             aggregate.Notes(),
		OrderValue:        aggregate.OrderValue().Amount(),
		CommissionPercent: aggregate.CommissionPercent().Value(),
		Status:            int(aggregate.Status()),
		CourierID:         uuidPtr(aggregate.CourierID()),
		CommissionAmount:  commissionAmount,
		CancelReason:      aggregate.CancelReason(),
		CancelledBy:       uuidPtr(aggregate.CancelledBy()),
		DeliveredAt:       aggregate.DeliveredAt(),
		CreatedAt:         aggregate.CreatedAt(),
		UpdatedAt:         aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	createdBy, err := kernelUUIDPtr(dto.CreatedBy)
	if err != nil {
		return nil, err
	}

	courierID, err := kernelUUIDPtr(dto.CourierID)
	if err != nil {
		return nil, err
	}

	cancelledBy, err := kernelUUIDPtr(dto.CancelledBy)
	if err != nil {
		return nil, err
	}

	orderValue, err := kernel.RestoreMoney(dto.OrderValue)
	if err != nil {
		return nil, err
	}

	commissionPercent, err := kernel.NewCommissionPercent(dto.CommissionPercent)
	if err != nil {
		return nil, err
	}

	var commissionAmount *kernel.Money
	if dto.CommissionAmount != nil {
		amount, amountErr := kernel.RestoreMoney(*dto.CommissionAmount)
		if amountErr != nil {
			return nil, amountErr
		}
		commissionAmount = &amount
	}

	return order.RestoreOrder(
		id,
		restaurantID,
		createdBy,
		dto.ClientName,
		dto.ClientPhone,
		dto.DeliveryAddress,
		dto.AddressReference,
		dto.Notes,
		orderValue,
		commissionPercent,
		order.Status(dto.Status),
		courierID,
		commissionAmount,
		dto.CancelReason,
		cancelledBy,
		dto.DeliveredAt,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelUUIDPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	converted, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}
