package queries

import (
	"context"
	"database/sql"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler reads an order's status trail from the
// database.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for trail queries.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the query, oldest entry first.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			changed_by,
			note,
			created_at
		FROM order_history
		WHERE order_id = ?
		ORDER BY created_at
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]GetOrderHistoryQueryResponse, 0)
	for rows.Next() {
		var resp GetOrderHistoryQueryResponse
		var status int
		var changedBy uuid.UUID
		var note sql.NullString
		var createdAt time.Time

		if err = rows.Scan(&status, &changedBy, &note, &createdAt); err != nil {
			return nil, err
		}

		resp.ChangedBy, err = kernel.UUIDFromBytes(changedBy[:])
		if err != nil {
			return nil, err
		}
		if note.Valid {
			resp.Note = &note.String
		}

		resp.Status = order.Status(status)
		resp.CreatedAt = createdAt
		entries = append(entries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
