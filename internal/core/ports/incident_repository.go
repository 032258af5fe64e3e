package ports

import (
	"context"

	"dispatch/internal/core/domain/model/incident"
	"dispatch/internal/core/domain/model/kernel"
)

// IncidentRepository defines the persistence contract for problem reports.
// Reports are insert only, like the status trail.
type IncidentRepository interface {
	// Add stores a new report.
	Add(ctx context.Context, report *incident.Report) error

	// GetAllByOrder retrieves the reports of one order, newest first.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*incident.Report, error)
}
