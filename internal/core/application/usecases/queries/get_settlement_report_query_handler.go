package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetSettlementReportQueryHandler aggregates delivered orders per
// restaurant. Commission sums use the amounts frozen at delivery time,
// never the current configuration.
type GetSettlementReportQueryHandler struct {
	db *gorm.DB
}

// NewGetSettlementReportQueryHandler creates a handler for settlement
// queries.
func NewGetSettlementReportQueryHandler(db *gorm.DB) GetSettlementReportQueryHandler {
	return GetSettlementReportQueryHandler{db: db}
}

// Handle executes the aggregation over orders delivered within the
// interval, one line per restaurant.
func (h GetSettlementReportQueryHandler) Handle(
	ctx context.Context,
	query GetSettlementReportQuery,
) ([]GetSettlementReportQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			restaurant_id,
			COUNT(*),
			COALESCE(SUM(order_value), 0),
			COALESCE(SUM(commission_amount), 0)
		FROM orders
		WHERE status = ?
		  AND delivered_at >= ?
		  AND delivered_at <= ?
		GROUP BY restaurant_id
		ORDER BY restaurant_id
	`, order.Delivered, query.From(), query.To()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]GetSettlementReportQueryResponse, 0)
	for rows.Next() {
		var resp GetSettlementReportQueryResponse
		var restaurantID uuid.UUID

		err = rows.Scan(
			&restaurantID,
			&resp.DeliveredCount,
			&resp.TotalValue,
			&resp.TotalCommission,
		)
		if err != nil {
			return nil, err
		}

		resp.RestaurantID, err = kernel.UUIDFromBytes(restaurantID[:])
		if err != nil {
			return nil, err
		}

		lines = append(lines, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
