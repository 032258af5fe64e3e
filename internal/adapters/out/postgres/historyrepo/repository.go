package historyrepo

import (
	"context"

	"dispatch/internal/core/domain/model/history"
	"dispatch/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormHistoryRepository implements HistoryRepository using GORM. The trail
// is written outside the command transaction, so this repository holds its
// own connection and never joins a unit of work.
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new GORM history repository.
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Add appends a new entry to the trail.
func (r *GormHistoryRepository) Add(ctx context.Context, entry *history.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetAllByOrder retrieves the trail of one order, oldest first.
func (r *GormHistoryRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*history.Entry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*history.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}
