package incident

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrReportIsNotConstructed is returned when a Report was created as a zero
// value instead of through NewReport or RestoreReport.
var ErrReportIsNotConstructed = errors.New("report is not constructed")

// Report is a problem raised against one order by a staff member or a
// courier. Reports are write once, there is no update or resolution flow.
type Report struct {
	id          kernel.UUID
	orderID     kernel.UUID
	reportedBy  kernel.UUID
	description string
	createdAt   time.Time

	guard guard.ConstructorGuard
}

// NewReport records that reportedBy flagged a problem on orderID at now.
// The description is mandatory.
func NewReport(id kernel.UUID, orderID kernel.UUID, reportedBy kernel.UUID,
	description string, now time.Time) (*Report, error) {
	r := &Report{
		guard: guard.NewConstructorGuard(),
	}

	err := errors.Join(
		r.setID(id),
		r.setOrderID(orderID),
		r.setReportedBy(reportedBy),
		r.setDescription(description),
	)
	if err != nil {
		return nil, err
	}

	r.createdAt = now
	return r, nil
}

// RestoreReport recreates a report from persisted state.
func RestoreReport(id kernel.UUID, orderID kernel.UUID, reportedBy kernel.UUID,
	description string, createdAt time.Time) (*Report, error) {
	return NewReport(id, orderID, reportedBy, description, createdAt)
}

// Validate ensures the Report instance was properly constructed.
func (r *Report) Validate() error {
	return r.guard.Validate(ErrReportIsNotConstructed)
}

// ID returns the report's unique identifier.
func (r *Report) ID() kernel.UUID {
	return r.id
}

// OrderID returns the identifier of the order the report is about.
func (r *Report) OrderID() kernel.UUID {
	return r.orderID
}

// ReportedBy returns the identifier of the actor who raised the report.
func (r *Report) ReportedBy() kernel.UUID {
	return r.reportedBy
}

// Description returns the free-form description of the problem.
func (r *Report) Description() string {
	return r.description
}

// CreatedAt returns when the report was raised.
func (r *Report) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Report) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredError("id")
	}
	r.id = id
	return nil
}

func (r *Report) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("orderID")
	}
	r.orderID = orderID
	return nil
}

func (r *Report) setReportedBy(reportedBy kernel.UUID) error {
	if err := reportedBy.Validate(); err != nil {
		return errs.NewValueIsRequiredError("reportedBy")
	}
	r.reportedBy = reportedBy
	return nil
}

func (r *Report) setDescription(description string) error {
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}
	r.description = description
	return nil
}
