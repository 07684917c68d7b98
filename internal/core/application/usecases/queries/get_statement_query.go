package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrGetStatementQueryIsNotConstructed = errors.New(
	"GetStatementQuery must be created via NewGetStatementQuery constructor",
)

// GetStatementQuery requests a franchise's day-by-day COD statement for an
// inclusive date range. Time-of-day on the bounds is ignored.
type GetStatementQuery struct { //nolint:recvcheck //using for validation
	franchiseID kernel.UUID
	start       time.Time
	end         time.Time

	guard kernel.ConstructorGuard
}

// NewGetStatementQuery creates a statement query for the [start, end] range.
func NewGetStatementQuery(franchiseID kernel.UUID, start, end time.Time) (GetStatementQuery, error) {
	if err := franchiseID.Validate(); err != nil {
		return GetStatementQuery{}, err
	}
	if start.IsZero() {
		return GetStatementQuery{}, errs.NewValueIsRequiredError("start")
	}
	if end.IsZero() {
		return GetStatementQuery{}, errs.NewValueIsRequiredError("end")
	}
	if end.Before(start) {
		return GetStatementQuery{}, errs.NewValueIsInvalidError("end")
	}

	return GetStatementQuery{
		franchiseID: franchiseID,
		start:       start,
		end:         end,
		guard:       kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStatementQuery) Validate() error {
	return q.guard.Validate(ErrGetStatementQueryIsNotConstructed)
}

// FranchiseID returns the franchise whose statement is requested.
func (q GetStatementQuery) FranchiseID() kernel.UUID {
	return q.franchiseID
}

// Start returns the inclusive range start.
func (q GetStatementQuery) Start() time.Time {
	return q.start
}

// End returns the inclusive range end.
func (q GetStatementQuery) End() time.Time {
	return q.end
}
