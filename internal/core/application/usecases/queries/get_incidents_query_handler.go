package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// incidentBoardLimit caps the board at the most recent reports, matching
// what the back-office screen can show.
const incidentBoardLimit = 100

// GetIncidentsQueryHandler reads problem reports joined with their orders
// from the database.
type GetIncidentsQueryHandler struct {
	db *gorm.DB
}

// NewGetIncidentsQueryHandler creates a handler for incident board queries.
func NewGetIncidentsQueryHandler(db *gorm.DB) GetIncidentsQueryHandler {
	return GetIncidentsQueryHandler{db: db}
}

// Handle executes the query, newest report first, capped at the board limit.
func (h GetIncidentsQueryHandler) Handle(
	ctx context.Context,
	query GetIncidentsQuery,
) ([]GetIncidentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlText := `
		SELECT
			i.id,
			i.order_id,
			i.reported_by,
			i.description,
			o.client_name,
			o.delivery_address,
			o.status,
			i.created_at
		FROM incidents i
		JOIN orders o ON o.id = i.order_id
	`
	args := []any{}

	if query.OrderID() != nil {
		sqlText += " WHERE i.order_id = ?"
		args = append(args, query.OrderID().Bytes())
	}
	sqlText += " ORDER BY i.created_at DESC LIMIT ?"
	args = append(args, incidentBoardLimit)

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := make([]GetIncidentsQueryResponse, 0)
	for rows.Next() {
		var resp GetIncidentsQueryResponse
		var id, orderID, reportedBy uuid.UUID
		var status int
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&orderID,
			&reportedBy,
			&resp.Description,
			&resp.ClientName,
			&resp.DeliveryAddress,
			&status,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		resp.OrderID, err = kernel.UUIDFromBytes(orderID[:])
		if err != nil {
			return nil, err
		}
		resp.ReportedBy, err = kernel.UUIDFromBytes(reportedBy[:])
		if err != nil {
			return nil, err
		}

		resp.OrderStatus = order.Status(status)
		resp.CreatedAt = createdAt
		reports = append(reports, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return reports, nil
}
