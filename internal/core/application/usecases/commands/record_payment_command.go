package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrRecordPaymentCommandIsNotConstructed = errors.New(
	"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
)

// RecordPaymentCommand logs a payment event from the logistics operator to a
// franchise. The log is informational history; it does not reduce the
// franchise's reconciliation balance, which moves only on invoice approval.
type RecordPaymentCommand struct { //nolint:recvcheck //using for validation
	franchiseID kernel.UUID
	amount      decimal.Decimal
	note        string
	paidAt      time.Time

	guard kernel.ConstructorGuard
}

// NewRecordPaymentCommand creates a payment log command.
func NewRecordPaymentCommand(
	franchiseID kernel.UUID, amount decimal.Decimal, note string, paidAt time.Time,
) (RecordPaymentCommand, error) {
	if err := franchiseID.Validate(); err != nil {
		return RecordPaymentCommand{}, err
	}
	if !amount.IsPositive() {
		return RecordPaymentCommand{}, errs.NewValueIsInvalidError("amount")
	}
	if paidAt.IsZero() {
		return RecordPaymentCommand{}, errs.NewValueIsRequiredError("paidAt")
	}

	return RecordPaymentCommand{
		franchiseID: franchiseID,
		amount:      amount,
		note:        note,
		paidAt:      paidAt,
		guard:       kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

// FranchiseID returns the franchise that was paid.
func (c RecordPaymentCommand) FranchiseID() kernel.UUID {
	return c.franchiseID
}

// Amount returns the paid amount.
func (c RecordPaymentCommand) Amount() decimal.Decimal {
	return c.amount
}

// Note returns the optional free-form payment note.
func (c RecordPaymentCommand) Note() string {
	return c.note
}

// PaidAt returns when the payment happened.
func (c RecordPaymentCommand) PaidAt() time.Time {
	return c.paidAt
}
