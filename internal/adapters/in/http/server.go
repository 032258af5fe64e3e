// Package http exposes the dispatch application over a REST API.
package http

import (
	"errors"
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ActorHeader carries the identity of the caller. The surrounding auth
// layer is expected to set it; handlers treat it as opaque.
const ActorHeader = "X-Actor-ID"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrder     commands.CreateOrderCommandHandler
	acceptOrder     commands.AcceptOrderCommandHandler
	assignCourier   commands.AssignCourierCommandHandler
	reassignCourier commands.ReassignCourierCommandHandler
	advanceOrder    commands.AdvanceOrderCommandHandler
	cancelOrder     commands.CancelOrderCommandHandler
	createCourier   commands.CreateCourierCommandHandler
	setAvailability commands.SetCourierAvailabilityCommandHandler
	reportIncident  commands.ReportIncidentCommandHandler

	activeOrders      queries.GetActiveOrdersQueryHandler
	availableCouriers queries.GetAvailableCouriersQueryHandler
	orderHistory      queries.GetOrderHistoryQueryHandler
	settlementReport  queries.GetSettlementReportQueryHandler
	incidents         queries.GetIncidentsQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createOrder commands.CreateOrderCommandHandler,
	acceptOrder commands.AcceptOrderCommandHandler,
	assignCourier commands.AssignCourierCommandHandler,
	reassignCourier commands.ReassignCourierCommandHandler,
	advanceOrder commands.AdvanceOrderCommandHandler,
	cancelOrder commands.CancelOrderCommandHandler,
	createCourier commands.CreateCourierCommandHandler,
	setAvailability commands.SetCourierAvailabilityCommandHandler,
	reportIncident commands.ReportIncidentCommandHandler,
	activeOrders queries.GetActiveOrdersQueryHandler,
	availableCouriers queries.GetAvailableCouriersQueryHandler,
	orderHistory queries.GetOrderHistoryQueryHandler,
	settlementReport queries.GetSettlementReportQueryHandler,
	incidents queries.GetIncidentsQueryHandler,
) *Server {
	return &Server{
		createOrder:       createOrder,
		acceptOrder:       acceptOrder,
		assignCourier:     assignCourier,
		reassignCourier:   reassignCourier,
		advanceOrder:      advanceOrder,
		cancelOrder:       cancelOrder,
		createCourier:     createCourier,
		setAvailability:   setAvailability,
		reportIncident:    reportIncident,
		activeOrders:      activeOrders,
		availableCouriers: availableCouriers,
		orderHistory:      orderHistory,
		settlementReport:  settlementReport,
		incidents:         incidents,
	}
}

// RegisterRoutes attaches every endpoint to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/accept", s.AcceptOrder)
	api.POST("/orders/:id/assign", s.AssignCourier)
	api.POST("/orders/:id/reassign", s.ReassignCourier)
	api.POST("/orders/:id/advance", s.AdvanceOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/:id/history", s.GetOrderHistory)
	api.POST("/orders/:id/incidents", s.ReportIncident)
	api.GET("/incidents", s.GetIncidents)

	api.POST("/couriers", s.CreateCourier)
	api.PUT("/couriers/:id/availability", s.SetCourierAvailability)
	api.GET("/couriers/available", s.GetAvailableCouriers)

	api.GET("/reports/settlement", s.GetSettlementReport)

	e.GET("/health", s.Health)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return badRequest(ctx, "invalid restaurant_id")
	}

	// Absent actor header means the restaurant submitted the order itself.
	createdBy, err := optionalActor(ctx)
	if err != nil {
		return badRequest(ctx, "invalid "+ActorHeader+" header")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, restaurantID, createdBy,
		req.ClientName, req.ClientPhone, req.DeliveryAddress,
		req.AddressReference, req.Notes, req.OrderValue, req.CommissionPercent)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.createOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// AcceptOrder handles POST /api/v1/orders/:id/accept. The accepting courier
// is the actor.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req CourierActionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "invalid courier_id")
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, courierID)
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.acceptOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AssignCourier handles POST /api/v1/orders/:id/assign.
func (s *Server) AssignCourier(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}
	actorID, err := requiredActor(ctx)
	if err != nil {
		return badRequest(ctx, "missing or invalid "+ActorHeader+" header")
	}

	var req CourierActionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "invalid courier_id")
	}

	cmd, err := commands.NewAssignCourierCommand(orderID, courierID, actorID)
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.assignCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ReassignCourier handles POST /api/v1/orders/:id/reassign.
func (s *Server) ReassignCourier(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}
	actorID, err := requiredActor(ctx)
	if err != nil {
		return badRequest(ctx, "missing or invalid "+ActorHeader+" header")
	}

	var req CourierActionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "invalid courier_id")
	}

	cmd, err := commands.NewReassignCourierCommand(orderID, courierID, actorID)
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.reassignCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AdvanceOrder handles POST /api/v1/orders/:id/advance.
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}
	actorID, err := requiredActor(ctx)
	if err != nil {
		return badRequest(ctx, "missing or invalid "+ActorHeader+" header")
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID, actorID)
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.advanceOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}
	actorID, err := requiredActor(ctx)
	if err != nil {
		return badRequest(ctx, "missing or invalid "+ActorHeader+" header")
	}

	var req CancelOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, req.Reason, actorID)
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.cancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetActiveOrders handles GET /api/v1/orders/active. An optional
// restaurant_id query parameter narrows the board to one restaurant.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	var restaurantID *kernel.UUID
	if raw := ctx.QueryParam("restaurant_id"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(ctx, "invalid restaurant_id")
		}
		restaurantID = &id
	}

	rows, err := s.activeOrders.Handle(ctx.Request().Context(),
		queries.NewGetActiveOrdersQuery(restaurantID))
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]ActiveOrder, len(rows))
	for i, row := range rows {
		response[i] = toActiveOrder(row)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrderHistory handles GET /api/v1/orders/:id/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}
	rows, err := s.orderHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]HistoryEntry, len(rows))
	for i, row := range rows {
		response[i] = HistoryEntry{
			Status:    row.Status.String(),
			ChangedBy: row.ChangedBy.String(),
			Note:      row.Note,
			CreatedAt: row.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// ReportIncident handles POST /api/v1/orders/:id/incidents. The reporting
// party is the actor.
func (s *Server) ReportIncident(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}
	actorID, err := requiredActor(ctx)
	if err != nil {
		return badRequest(ctx, "missing or invalid "+ActorHeader+" header")
	}

	var req ReportIncidentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewReportIncidentCommand(orderID, req.Description, actorID)
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.reportIncident.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusCreated)
}

// GetIncidents handles GET /api/v1/incidents. An optional order_id query
// parameter narrows the board to one order.
func (s *Server) GetIncidents(ctx echo.Context) error {
	var orderID *kernel.UUID
	if raw := ctx.QueryParam("order_id"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(ctx, "invalid order_id")
		}
		orderID = &id
	}

	rows, err := s.incidents.Handle(ctx.Request().Context(),
		queries.NewGetIncidentsQuery(orderID))
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]Incident, len(rows))
	for i, row := range rows {
		response[i] = Incident{
			ID:              row.ID.String(),
			OrderID:         row.OrderID.String(),
			ReportedBy:      row.ReportedBy.String(),
			Description:     row.Description,
			ClientName:      row.ClientName,
			DeliveryAddress: row.DeliveryAddress,
			OrderStatus:     row.OrderStatus.String(),
			CreatedAt:       row.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateCourier handles POST /api/v1/couriers.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var req CreateCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCreateCourierCommand(req.Name, req.Phone,
		req.NationalID, req.VehiclePlate)
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.createCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, CreateCourierResponse{ID: cmd.CourierID().String()})
}

// SetCourierAvailability handles PUT /api/v1/couriers/:id/availability.
func (s *Server) SetCourierAvailability(ctx echo.Context) error {
	courierID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	var req SetAvailabilityRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewSetCourierAvailabilityCommand(courierID, req.Available)
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.setAvailability.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetAvailableCouriers handles GET /api/v1/couriers/available.
func (s *Server) GetAvailableCouriers(ctx echo.Context) error {
	rows, err := s.availableCouriers.Handle(ctx.Request().Context(),
		queries.NewGetAvailableCouriersQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]AvailableCourier, len(rows))
	for i, row := range rows {
		response[i] = AvailableCourier{
			ID:           row.ID.String(),
			Name:         row.Name,
			Phone:        row.Phone,
			VehiclePlate: row.VehiclePlate,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetSettlementReport handles GET /api/v1/reports/settlement?from=&to=.
// Bounds are dates in RFC 3339 or YYYY-MM-DD form, both inclusive.
func (s *Server) GetSettlementReport(ctx echo.Context) error {
	from, err := parseTimeParam(ctx.QueryParam("from"), false)
	if err != nil {
		return badRequest(ctx, "invalid from parameter")
	}
	to, err := parseTimeParam(ctx.QueryParam("to"), true)
	if err != nil {
		return badRequest(ctx, "invalid to parameter")
	}

	query, err := queries.NewGetSettlementReportQuery(from, to)
	if err != nil {
		return writeError(ctx, err)
	}
	rows, err := s.settlementReport.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]SettlementLine, len(rows))
	for i, row := range rows {
		response[i] = SettlementLine{
			RestaurantID:    row.RestaurantID.String(),
			DeliveredCount:  row.DeliveredCount,
			TotalValue:      row.TotalValue,
			TotalCommission: row.TotalCommission,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func pathID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

func requiredActor(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Request().Header.Get(ActorHeader))
}

func optionalActor(ctx echo.Context) (*kernel.UUID, error) {
	raw := ctx.Request().Header.Get(ActorHeader)
	if raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// parseTimeParam accepts RFC 3339 timestamps or bare dates. A bare date as
// an upper bound covers the whole day.
func parseTimeParam(raw string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps application errors onto HTTP statuses. Conflicts tell the
// client to refresh and retry because another actor won the race.
func writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrConflict):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error() + "; refresh and retry",
		})
	case errors.Is(err, errs.ErrInvalidState):
		return ctx.JSON(http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "internal error",
		})
	}
}
