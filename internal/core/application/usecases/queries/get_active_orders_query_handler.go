package queries

import (
	"context"
	"database/sql"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler reads in-flight orders from the database.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
// Requires a GORM database connection for query execution.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query. Returns orders in Pending, Notified, Assigned
// or EnRoute status, oldest first.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	active := pq.Array([]int64{
		int64(order.Pending),
		int64(order.Notified),
		int64(order.Assigned),
		int64(order.EnRoute),
	})

	sqlText := `
		SELECT
			id,
			restaurant_id,
			client_name,
			client_phone,
			delivery_address,
			order_value,
			status,
			courier_id,
			created_at
		FROM orders
		WHERE status = ANY(?)
	`
	args := []any{active}

	if query.RestaurantID() != nil {
		sqlText += " AND restaurant_id = ?"
		args = append(args, query.RestaurantID().Bytes())
	}
	sqlText += " ORDER BY created_at"

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetActiveOrdersQueryResponse, 0)
	for rows.Next() {
		var resp GetActiveOrdersQueryResponse
		var id, restaurantID uuid.UUID
		var courierID uuid.NullUUID
		var status int
		var createdAt time.Time
		var orderValue sql.NullInt64

		err = rows.Scan(
			&id,
			&restaurantID,
			&resp.ClientName,
			&resp.ClientPhone,
			&resp.DeliveryAddress,
			&orderValue,
			&status,
			&courierID,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		resp.RestaurantID, err = kernel.UUIDFromBytes(restaurantID[:])
		if err != nil {
			return nil, err
		}
		if courierID.Valid {
			cid, idErr := kernel.UUIDFromBytes(courierID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.CourierID = &cid
		}

		resp.OrderValue = orderValue.Int64
		resp.Status = order.Status(status)
		resp.CreatedAt = createdAt
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
