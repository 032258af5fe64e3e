package queries

import (
	"context"
	"database/sql"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableCouriersQueryHandler reads the available courier roster from
// the database.
type GetAvailableCouriersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableCouriersQueryHandler creates a handler for available
// courier queries.
func NewGetAvailableCouriersQueryHandler(db *gorm.DB) GetAvailableCouriersQueryHandler {
	return GetAvailableCouriersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by name.
func (h GetAvailableCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableCouriersQuery,
) ([]GetAvailableCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			phone,
			vehicle_plate
		FROM couriers
		WHERE available
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	couriers := make([]GetAvailableCouriersQueryResponse, 0)
	for rows.Next() {
		var resp GetAvailableCouriersQueryResponse
		var id uuid.UUID
		var plate sql.NullString

		if err = rows.Scan(&id, &resp.Name, &resp.Phone, &plate); err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		if plate.Valid {
			resp.VehiclePlate = &plate.String
		}

		couriers = append(couriers, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}
