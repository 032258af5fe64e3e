package incidentrepo

import (
	"context"

	"dispatch/internal/core/domain/model/incident"
	"dispatch/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormIncidentRepository implements IncidentRepository using GORM. A report
// is a single insert, so the repository holds its own connection and never
// joins a unit of work.
type GormIncidentRepository struct {
	db *gorm.DB
}

// NewGormIncidentRepository creates a new GORM incident repository.
func NewGormIncidentRepository(db *gorm.DB) *GormIncidentRepository {
	return &GormIncidentRepository{db: db}
}

// Add stores a new report.
func (r *GormIncidentRepository) Add(ctx context.Context, report *incident.Report) error {
	if err := report.Validate(); err != nil {
		return err
	}

	dto := fromDomain(report)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetAllByOrder retrieves the reports of one order, newest first.
func (r *GormIncidentRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*incident.Report, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ReportDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	reports := make([]*incident.Report, 0, len(dtos))
	for _, dto := range dtos {
		report, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	return reports, nil
}
