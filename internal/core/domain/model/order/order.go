package order

import (
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errs.NewValueIsRequiredError(
	"Order must be created via NewOrder or RestoreOrder constructor")

// Customer holds the contact and address details needed to deliver an order.
type Customer struct {
	Name    string
	Phone   string
	Address string
}

// Validate checks the minimal contact details are present.
func (c Customer) Validate() error {
	if c.Name == "" {
		return errs.NewValueIsRequiredError("customer name")
	}
	if c.Phone == "" {
		return errs.NewValueIsRequiredError("customer phone")
	}
	return nil
}

// Line is one order position: a product and the quantity sold from the
// creator's inventory pool.
type Line struct {
	ProductID kernel.UUID
	Quantity  int
}

// Validate checks the line references a product and sells a positive quantity.
func (l Line) Validate() error {
	if err := l.ProductID.Validate(); err != nil {
		return err
	}
	if l.Quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", l.Quantity, 1, int(^uint(0)>>1))
	}
	return nil
}

// ChangeEntry is one immutable row of the order's transition log. The log is
// the source of truth for "when did this order first reach status X" queries
// used by reconciliation.
type ChangeEntry struct {
	OrderID    kernel.UUID
	OldStatus  Status
	NewStatus  Status
	ActorID    kernel.UUID
	Comment    string
	OccurredAt time.Time
}

// Remark is an observation attached to the order without changing its status,
// such as an unrecognized carrier webhook payload.
type Remark struct {
	OrderID    kernel.UUID
	Text       string
	OccurredAt time.Time
}

// Order is the central aggregate of the fulfillment pipeline. It owns the
// status lifecycle, the carrier selection coupling, rider assignment, and the
// transition log. Inventory side effects are signalled to the caller (the
// command layer) through Transition's restock result rather than performed
// here, keeping the aggregate free of persistence concerns.
type Order struct {
	id            kernel.UUID
	code          string
	owner         kernel.OwnerRef
	customer      Customer
	lines         []Line
	paymentMethod PaymentMethod
	totalAmount   decimal.Decimal
	prepaidAmount decimal.Decimal
	// deliveryCharge is what the customer pays for delivery, distinct from
	// the per-delivery charge the operator withholds in reconciliation.
	deliveryCharge decimal.Decimal
	status         Status
	logistics      *Carrier
	trackingCode   string
	riderID        *kernel.UUID
	createdAt      time.Time
	updatedAt      time.Time

	changes []ChangeEntry
	remarks []Remark

	guard kernel.ConstructorGuard
}

// NewOrder creates an order against the given owner's inventory pool.
//
// The initial status is Pending, except for payment methods that hand the
// goods over in the same transaction (office visit, Indrive), which start
// life Delivered. The human-shareable order code is derived from the order
// identifier.
//
// Checking and debiting the stock behind each line is the caller's job and
// must happen in the same transaction that persists the order.
func NewOrder(
	id kernel.UUID,
	owner kernel.OwnerRef,
	customer Customer,
	lines []Line,
	paymentMethod PaymentMethod,
	totalAmount decimal.Decimal,
	prepaidAmount decimal.Decimal,
	deliveryCharge decimal.Decimal,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("lines")
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return nil, err
		}
	}
	if err := paymentMethod.Validate(); err != nil {
		return nil, err
	}
	if totalAmount.IsNegative() {
		return nil, errs.NewValueIsInvalidError("totalAmount")
	}
	if prepaidAmount.IsNegative() || prepaidAmount.GreaterThan(totalAmount) {
		return nil, errs.NewValueIsInvalidError("prepaidAmount")
	}
	if deliveryCharge.IsNegative() {
		return nil, errs.NewValueIsInvalidError("deliveryCharge")
	}

	status := Pending
	if paymentMethod.DeliversImmediately() {
		status = Delivered
	}

	now := time.Now().UTC()
	return &Order{
		id:             id,
		code:           NewCode(id),
		owner:          owner,
		customer:       customer,
		lines:          lines,
		paymentMethod:  paymentMethod,
		totalAmount:    totalAmount,
		prepaidAmount:  prepaidAmount,
		deliveryCharge: deliveryCharge,
		status:         status,
		createdAt:      now,
		updatedAt:      now,
		guard:          kernel.NewConstructorGuard(),
	}, nil
}

// RestoreOrder reconstructs an order from persistence without emitting log
// entries. Used only by repository implementations.
func RestoreOrder(
	id kernel.UUID,
	code string,
	owner kernel.OwnerRef,
	customer Customer,
	lines []Line,
	paymentMethod PaymentMethod,
	totalAmount decimal.Decimal,
	prepaidAmount decimal.Decimal,
	deliveryCharge decimal.Decimal,
	status Status,
	logistics *Carrier,
	trackingCode string,
	riderID *kernel.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if logistics != nil {
		if err := logistics.Validate(); err != nil {
			return nil, err
		}
	}
	if riderID != nil {
		if err := riderID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:             id,
		code:           code,
		owner:          owner,
		customer:       customer,
		lines:          lines,
		paymentMethod:  paymentMethod,
		totalAmount:    totalAmount,
		prepaidAmount:  prepaidAmount,
		deliveryCharge: deliveryCharge,
		status:         status,
		logistics:      logistics,
		trackingCode:   trackingCode,
		riderID:        riderID,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		guard:          kernel.NewConstructorGuard(),
	}, nil
}

// NewCode derives the human-shareable order code from the order identifier.
func NewCode(id kernel.UUID) string {
	compact := strings.ReplaceAll(id.String(), "-", "")
	return "ORD-" + strings.ToUpper(compact[:10])
}

// Validate ensures the order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Code returns the human-shareable order code.
func (o *Order) Code() string {
	return o.code
}

// Owner returns the inventory pool this order sells from.
func (o *Order) Owner() kernel.OwnerRef {
	return o.owner
}

// Customer returns the delivery contact details.
func (o *Order) Customer() Customer {
	return o.customer
}

// Lines returns the order positions.
func (o *Order) Lines() []Line {
	return o.lines
}

// PaymentMethod returns how the customer settles the order.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// TotalAmount returns the gross order amount.
func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

// PrepaidAmount returns the amount settled before delivery.
func (o *Order) PrepaidAmount() decimal.Decimal {
	return o.prepaidAmount
}

// DeliveryCharge returns the delivery fee billed to the customer.
func (o *Order) DeliveryCharge() decimal.Decimal {
	return o.deliveryCharge
}

// CODAmount returns the cash collected at the door: total minus prepaid.
func (o *Order) CODAmount() decimal.Decimal {
	return o.totalAmount.Sub(o.prepaidAmount)
}

// Status returns the current canonical status.
func (o *Order) Status() Status {
	return o.status
}

// Logistics returns the selected carrier, or nil before selection.
func (o *Order) Logistics() *Carrier {
	return o.logistics
}

// TrackingCode returns the carrier's tracking identifier, empty before dispatch.
func (o *Order) TrackingCode() string {
	return o.trackingCode
}

// Rider returns the assigned rider's ID, or nil if unassigned.
func (o *Order) Rider() *kernel.UUID {
	return o.riderID
}

// CreatedAt returns when the order was created.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the order last changed.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Transition moves the order to newStatus on behalf of actorID.
//
// Moving to the current status is a no-op: nothing is logged and restock is
// false. Any other recognized target is accepted (terminal states are not
// hard-blocked so manual corrections remain possible) and appends one change
// entry.
//
// The returned restock flag is true exactly when the order enters the
// cancelled/returned family from outside it. Re-entering the family a second
// time, including hopping between its members, reports false, so duplicate
// cancel events can never double-credit inventory. The guarantee rests on the
// previous-status comparison, not on a flag stored with the order.
func (o *Order) Transition(newStatus Status, actorID kernel.UUID, comment string) (bool, error) {
	if err := newStatus.Validate(); err != nil {
		return false, errs.NewInvalidTransitionErrorWithCause(o.status.String(), newStatus.String(), err)
	}
	if err := actorID.Validate(); err != nil {
		return false, err
	}

	if newStatus == o.status {
		return false, nil
	}

	restock := newStatus.IsCancelledFamily() && !o.status.IsCancelledFamily()

	old := o.status
	o.status = newStatus
	o.touch()
	o.changes = append(o.changes, ChangeEntry{
		OrderID:    o.id,
		OldStatus:  old,
		NewStatus:  newStatus,
		ActorID:    actorID,
		Comment:    comment,
		OccurredAt: o.updatedAt,
	})

	return restock, nil
}

// SelectCarrier changes the logistics provider and applies the status
// coupling that goes with it, before any literal status write:
//
//   - choosing a third-party carrier (YDM, Pick&Drop) forces SentToCarrier;
//   - choosing DASH while the order sits in SentToCarrier resets it to
//     Pending, because the prior third-party dispatch is thereby invalidated.
func (o *Order) SelectCarrier(c Carrier, actorID kernel.UUID) error {
	if err := c.Validate(); err != nil {
		return err
	}

	switch {
	case c.IsThirdParty():
		if _, err := o.Transition(SentToCarrier, actorID, "carrier selected: "+c.String()); err != nil {
			return err
		}
	case o.status == SentToCarrier:
		if _, err := o.Transition(Pending, actorID, "carrier reassigned to "+c.String()); err != nil {
			return err
		}
	}

	o.logistics = &c
	o.touch()
	return nil
}

// AssignRider sets or replaces the rider carrying the order. There is at most
// one active assignment; reassignment updates in place. Assignment is only
// meaningful while the order is not terminal and forces the status to
// OutForDelivery if it is not there already.
func (o *Order) AssignRider(riderID, actorID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return errs.NewInvalidTransitionError(o.status.String(), OutForDelivery.String())
	}

	if _, err := o.Transition(OutForDelivery, actorID, "rider assigned"); err != nil {
		return err
	}

	o.riderID = &riderID
	o.touch()
	return nil
}

// SetTrackingCode records the carrier's tracking identifier after dispatch.
func (o *Order) SetTrackingCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("trackingCode")
	}
	o.trackingCode = code
	o.touch()
	return nil
}

// AddRemark attaches an observation to the order without touching its status,
// e.g. an unrecognized carrier status payload.
func (o *Order) AddRemark(text string) {
	if text == "" {
		return
	}
	o.remarks = append(o.remarks, Remark{
		OrderID:    o.id,
		Text:       text,
		OccurredAt: time.Now().UTC(),
	})
}

// Changes returns the change entries emitted since the last drain, oldest first.
func (o *Order) Changes() []ChangeEntry {
	return o.changes
}

// DrainChanges returns the pending change entries and clears the buffer.
// Called by the repository after persisting them.
func (o *Order) DrainChanges() []ChangeEntry {
	out := o.changes
	o.changes = nil
	return out
}

// Remarks returns the remarks recorded since the last drain.
func (o *Order) Remarks() []Remark {
	return o.remarks
}

// DrainRemarks returns the pending remarks and clears the buffer.
func (o *Order) DrainRemarks() []Remark {
	out := o.remarks
	o.remarks = nil
	return out
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}
