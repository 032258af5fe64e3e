// Package incidentrepo provides data transfer objects and mapping functions
// for order problem reports.
package incidentrepo

import (
	"time"

	"dispatch/internal/core/domain/model/incident"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ReportDTO represents the database structure for persisting problem
// reports. Rows are insert only, there is no update path.
type ReportDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index;not null"`
	ReportedBy  uuid.UUID `gorm:"type:uuid;not null"`
	Description string    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"index;not null"`
}

// TableName specifies the database table name for problem reports.
func (ReportDTO) TableName() string {
	return "incidents"
}

// fromDomain converts a report to its database representation.
func fromDomain(report *incident.Report) ReportDTO {
	return ReportDTO{
		ID:          report.ID().Bytes(),
		OrderID:     report.OrderID().Bytes(),
		ReportedBy:  report.ReportedBy().Bytes(),
		Description: report.Description(),
		CreatedAt:   report.CreatedAt(),
	}
}

// toDomain converts a database DTO to a report.
func toDomain(dto ReportDTO) (*incident.Report, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	reportedBy, err := kernel.UUIDFromBytes(dto.ReportedBy[:])
	if err != nil {
		return nil, err
	}

	return incident.RestoreReport(id, orderID, reportedBy, dto.Description, dto.CreatedAt)
}
