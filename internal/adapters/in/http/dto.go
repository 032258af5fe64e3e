package http

import (
	"time"

	"dispatch/internal/core/application/usecases/queries"
)

// Error is the uniform error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	RestaurantID      string  `json:"restaurant_id"`
	ClientName        string  `json:"client_name"`
	ClientPhone       string  `json:"client_phone"`
	DeliveryAddress   string  `json:"delivery_address"`
	AddressReference  *string `json:"address_reference,omitempty"`
	Notes             *string `json:"notes,omitempty"`
	OrderValue        int64   `json:"order_value"`
	CommissionPercent float64 `json:"commission_percent"`
}

// CreateOrderResponse returns the identifier of the new order.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// CourierActionRequest names the courier involved in an accept, assign or
// reassign action.
type CourierActionRequest struct {
	CourierID string `json:"courier_id"`
}

// CancelOrderRequest is the body of POST /api/v1/orders/:id/cancel.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// CreateCourierRequest is the body of POST /api/v1/couriers.
type CreateCourierRequest struct {
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	NationalID   string  `json:"national_id"`
	VehiclePlate *string `json:"vehicle_plate,omitempty"`
}

// CreateCourierResponse returns the identifier of the new courier.
type CreateCourierResponse struct {
	ID string `json:"id"`
}

// SetAvailabilityRequest is the body of PUT /api/v1/couriers/:id/availability.
type SetAvailabilityRequest struct {
	Available bool `json:"available"`
}

// ActiveOrder is one row of the dispatcher board.
type ActiveOrder struct {
	ID              string    `json:"id"`
	RestaurantID    string    `json:"restaurant_id"`
	ClientName      string    `json:"client_name"`
	ClientPhone     string    `json:"client_phone"`
	DeliveryAddress string    `json:"delivery_address"`
	OrderValue      int64     `json:"order_value"`
	Status          string    `json:"status"`
	CourierID       *string   `json:"courier_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// AvailableCourier is one row of the free-courier list.
type AvailableCourier struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	VehiclePlate *string `json:"vehicle_plate,omitempty"`
}

// HistoryEntry is one step of an order's status trail.
type HistoryEntry struct {
	Status    string    `json:"status"`
	ChangedBy string    `json:"changed_by"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ReportIncidentRequest is the body of POST /api/v1/orders/:id/incidents.
type ReportIncidentRequest struct {
	Description string `json:"description"`
}

// Incident is one row of the back-office incident board.
type Incident struct {
	ID              string    `json:"id"`
	OrderID         string    `json:"order_id"`
	ReportedBy      string    `json:"reported_by"`
	Description     string    `json:"description"`
	ClientName      string    `json:"client_name"`
	DeliveryAddress string    `json:"delivery_address"`
	OrderStatus     string    `json:"order_status"`
	CreatedAt       time.Time `json:"created_at"`
}

// SettlementLine aggregates one restaurant's delivered orders over the
// requested interval.
type SettlementLine struct {
	RestaurantID    string `json:"restaurant_id"`
	DeliveredCount  int64  `json:"delivered_count"`
	TotalValue      int64  `json:"total_value"`
	TotalCommission int64  `json:"total_commission"`
}

func toActiveOrder(row queries.GetActiveOrdersQueryResponse) ActiveOrder {
	resp := ActiveOrder{
		ID:              row.ID.String(),
		RestaurantID:    row.RestaurantID.String(),
		ClientName:      row.ClientName,
		ClientPhone:     row.ClientPhone,
		DeliveryAddress: row.DeliveryAddress,
		OrderValue:      row.OrderValue,
		Status:          row.Status.String(),
		CreatedAt:       row.CreatedAt,
	}
	if row.CourierID != nil {
		id := row.CourierID.String()
		resp.CourierID = &id
	}
	return resp
}
