// Package historyrepo provides data transfer objects and mapping functions
// for the append-only order status trail.
package historyrepo

import (
	"time"

	"dispatch/internal/core/domain/model/history"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// EntryDTO represents the database structure for persisting trail entries.
// Rows are insert only, there is no update path.
type EntryDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Status    int       `gorm:"not null"`
	ChangedBy uuid.UUID `gorm:"type:uuid;not null"`
	Note      *string
	CreatedAt time.Time `gorm:"index;not null"`
}

// TableName specifies the database table name for trail entries.
func (EntryDTO) TableName() string {
	return "order_history"
}

// fromDomain converts a trail entry to its database representation.
func fromDomain(entry *history.Entry) EntryDTO {
	return EntryDTO{
		ID:        entry.ID().Bytes(),
		OrderID:   entry.OrderID().Bytes(),
		Status:    int(entry.Status()),
		ChangedBy: entry.ChangedBy().Bytes(),
		Note:      entry.Note(),
		CreatedAt: entry.CreatedAt(),
	}
}

// toDomain converts a database DTO to a trail entry.
func toDomain(dto EntryDTO) (*history.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	changedBy, err := kernel.UUIDFromBytes(dto.ChangedBy[:])
	if err != nil {
		return nil, err
	}

	return history.RestoreEntry(id, orderID, order.Status(dto.Status),
		changedBy, dto.Note, dto.CreatedAt)
}
