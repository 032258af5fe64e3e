package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetSettlementReportQueryIsNotConstructed = errors.New(
	"GetSettlementReportQuery must be created via NewGetSettlementReportQuery constructor",
)

// GetSettlementReportQuery aggregates delivered orders per restaurant over
// a closed date interval, for commission settlement between the dispatch
// office and its member restaurants.
type GetSettlementReportQuery struct {
	from time.Time
	to   time.Time

	guard guard.ConstructorGuard
}

// NewGetSettlementReportQuery creates a settlement query for the interval
// [from, to]. Validates that both bounds are set and ordered.
func NewGetSettlementReportQuery(from, to time.Time) (GetSettlementReportQuery, error) {
	if from.IsZero() {
		return GetSettlementReportQuery{}, errs.NewValueIsRequiredError("from")
	}
	if to.IsZero() {
		return GetSettlementReportQuery{}, errs.NewValueIsRequiredError("to")
	}
	if to.Before(from) {
		return GetSettlementReportQuery{}, errs.NewValueIsInvalidError("to")
	}

	return GetSettlementReportQuery{
		from:  from,
		to:    to,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSettlementReportQuery) Validate() error {
	return q.guard.Validate(ErrGetSettlementReportQueryIsNotConstructed)
}

// From returns the inclusive lower bound of the interval.
func (q GetSettlementReportQuery) From() time.Time {
	return q.from
}

// To returns the inclusive upper bound of the interval.
func (q GetSettlementReportQuery) To() time.Time {
	return q.to
}

// GetSettlementReportQueryResponse represents the settlement line of one
// restaurant.
type GetSettlementReportQueryResponse struct {
	RestaurantID    kernel.UUID
	DeliveredCount  int64
	TotalValue      int64
	TotalCommission int64
}
