// Package courierrepo provides data transfer objects and mapping functions
// for courier persistence.
package courierrepo

import (
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier
// aggregates.
type CourierDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null"`
	Phone        string    `gorm:"not null"`
	NationalID   string    `gorm:"not null"`
	VehiclePlate *string
	Available    bool `gorm:"index;not null"`
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier domain aggregate to its database representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:           aggregate.ID().Bytes(),
		Name:         aggregate.Name(),
		Phone:        aggregate.Phone(),
		NationalID:   aggregate.NationalID(),
		VehiclePlate: aggregate.VehiclePlate(),
		Available:    aggregate.Available(),
	}
}

// toDomain converts a database DTO to a courier domain aggregate.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(id, dto.Name, dto.Phone, dto.NationalID,
		dto.VehiclePlate, dto.Available)
}
