package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/incident"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// ReportIncidentCommandHandler stores a problem report against an existing
// order. A report is a single insert outside any order transition, so the
// handler works on plain repositories without a unit of work.
type ReportIncidentCommandHandler struct {
	orders    ports.OrderRepository
	incidents ports.IncidentRepository
}

// NewReportIncidentCommandHandler creates a handler for problem reports.
func NewReportIncidentCommandHandler(orders ports.OrderRepository,
	incidents ports.IncidentRepository) ReportIncidentCommandHandler {
	return ReportIncidentCommandHandler{
		orders:    orders,
		incidents: incidents,
	}
}

// Handle processes the report. Fails with a not found error when the order
// does not exist.
func (h *ReportIncidentCommandHandler) Handle(ctx context.Context, cmd ReportIncidentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if _, err := h.orders.Get(ctx, cmd.OrderID()); err != nil {
		return err
	}

	report, err := incident.NewReport(kernel.NewUUID(), cmd.OrderID(),
		cmd.ActorID(), cmd.Description(), time.Now().UTC())
	if err != nil {
		return err
	}

	return h.incidents.Add(ctx, report)
}
