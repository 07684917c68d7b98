package inventory

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrRecordIsNotConstructed is returned when a Record instance was not created
// through NewRecord or RestoreRecord.
var ErrRecordIsNotConstructed = errs.NewValueIsRequiredError(
	"Record must be created via NewRecord or RestoreRecord constructor")

// StockStatus tags the condition of the stock a record holds.
type StockStatus string

const (
	// StockIncoming is stock in transit towards the owner.
	StockIncoming StockStatus = "incoming"

	// StockRawMaterial is unprocessed factory input.
	StockRawMaterial StockStatus = "raw_material"

	// StockReadyToDispatch is sellable stock available for order creation.
	StockReadyToDispatch StockStatus = "ready_to_dispatch"

	// StockDamagedReturned is stock returned in unsellable condition.
	StockDamagedReturned StockStatus = "damaged_returned"
)

// Validate checks that the status tag is one of the known values.
func (s StockStatus) Validate() error {
	switch s {
	case StockIncoming, StockRawMaterial, StockReadyToDispatch, StockDamagedReturned:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("stock status",
			fmt.Errorf("%q is not a valid stock status", string(s)))
	}
}

// Action names the cause of an inventory mutation in the change log.
type Action string

const (
	// ActionAdd records the first stock addition for an (owner, product) pair.
	ActionAdd Action = "add"

	// ActionUpdate records a manual quantity correction.
	ActionUpdate Action = "update"

	// ActionDeleted records the retirement of a record (quantity forced to zero).
	ActionDeleted Action = "deleted"

	// ActionOrderCreated records a debit caused by order creation.
	ActionOrderCreated Action = "order_created"

	// ActionOrderCancelled records a credit caused by order cancellation or return.
	ActionOrderCancelled Action = "order_cancelled"
)

// Validate checks that the action is one of the known values.
func (a Action) Validate() error {
	switch a {
	case ActionAdd, ActionUpdate, ActionDeleted, ActionOrderCreated, ActionOrderCancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("inventory action",
			fmt.Errorf("%q is not a valid inventory action", string(a)))
	}
}

// ChangeEntry is one immutable row of a record's audit trail. Entries are
// produced by record mutations and persisted alongside the record in the
// same transaction.
type ChangeEntry struct {
	RecordID    kernel.UUID
	OldQuantity int
	NewQuantity int
	Action      Action
	ActorID     kernel.UUID
	OccurredAt  time.Time
}

// Record is the aggregate tracking the quantity of one product held by one
// owner under a status tag. All mutations go through Debit, Credit, and
// Adjust, which enforce the non-negative invariant and emit change entries.
//
// Record follows these invariants:
//   - Quantity is never negative
//   - Every mutation emits exactly one ChangeEntry
//   - Owner and product identity are immutable after construction
type Record struct {
	id          kernel.UUID
	owner       kernel.OwnerRef
	productID   kernel.UUID
	productName string
	status      StockStatus
	quantity    int

	// changes holds entries emitted since the last DrainChanges call.
	changes []ChangeEntry

	guard kernel.ConstructorGuard
}

// NewRecord creates a stock record for the first addition of a product to an
// owner's pool. The initial quantity must not be negative; the creation is
// logged with the "add" action attributed to actorID.
func NewRecord(
	id kernel.UUID,
	owner kernel.OwnerRef,
	productID kernel.UUID,
	productName string,
	status StockStatus,
	quantity int,
	actorID kernel.UUID,
) (*Record, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if productName == "" {
		return nil, errs.NewValueIsRequiredError("productName")
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, errs.NewValueIsOutOfRangeError("quantity", quantity, 0, int(^uint(0)>>1))
	}
	if err := actorID.Validate(); err != nil {
		return nil, err
	}

	r := &Record{
		id:          id,
		owner:       owner,
		productID:   productID,
		productName: productName,
		status:      status,
		quantity:    quantity,
		guard:       kernel.NewConstructorGuard(),
	}
	r.appendChange(0, quantity, ActionAdd, actorID)
	return r, nil
}

// RestoreRecord reconstructs a record from persistence without emitting a
// change entry. Used only by repository implementations.
func RestoreRecord(
	id kernel.UUID,
	owner kernel.OwnerRef,
	productID kernel.UUID,
	productName string,
	status StockStatus,
	quantity int,
) (*Record, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, errs.NewValueIsOutOfRangeError("quantity", quantity, 0, int(^uint(0)>>1))
	}

	return &Record{
		id:          id,
		owner:       owner,
		productID:   productID,
		productName: productName,
		status:      status,
		quantity:    quantity,
		guard:       kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the record was created through a constructor.
func (r *Record) Validate() error {
	if r == nil {
		return ErrRecordIsNotConstructed
	}
	return r.guard.Validate(ErrRecordIsNotConstructed)
}

// ID returns the record's unique identifier.
func (r *Record) ID() kernel.UUID {
	return r.id
}

// Owner returns the inventory-holding entity reference.
func (r *Record) Owner() kernel.OwnerRef {
	return r.owner
}

// ProductID returns the identifier of the tracked product.
func (r *Record) ProductID() kernel.UUID {
	return r.productID
}

// ProductName returns the denormalized product name carried for reporting
// and error messages.
func (r *Record) ProductName() string {
	return r.productName
}

// Status returns the stock condition tag.
func (r *Record) Status() StockStatus {
	return r.status
}

// Quantity returns the current stock quantity.
func (r *Record) Quantity() int {
	return r.quantity
}

// Debit removes qty units from the pool, typically at order creation.
//
// Returns InsufficientStockError and leaves the quantity unchanged when the
// debit would overdraw the pool. The mutation is logged with the
// "order_created" action.
func (r *Record) Debit(qty int, actorID kernel.UUID) error {
	if qty <= 0 {
		return errs.NewValueIsOutOfRangeError("qty", qty, 1, int(^uint(0)>>1))
	}
	if err := actorID.Validate(); err != nil {
		return err
	}
	if r.quantity-qty < 0 {
		return errs.NewInsufficientStockError(r.productName, r.quantity, qty)
	}

	old := r.quantity
	r.quantity -= qty
	r.appendChange(old, r.quantity, ActionOrderCreated, actorID)
	return nil
}

// Credit returns qty units to the pool under the given action, typically
// "order_cancelled" for restocks or "add" for manual additions.
func (r *Record) Credit(qty int, actorID kernel.UUID, action Action) error {
	if qty <= 0 {
		return errs.NewValueIsOutOfRangeError("qty", qty, 1, int(^uint(0)>>1))
	}
	if err := actorID.Validate(); err != nil {
		return err
	}
	if err := action.Validate(); err != nil {
		return err
	}

	old := r.quantity
	r.quantity += qty
	r.appendChange(old, r.quantity, action, actorID)
	return nil
}

// Adjust overwrites the quantity with a manual correction. Logged with the
// "update" action.
func (r *Record) Adjust(newQty int, actorID kernel.UUID) error {
	if newQty < 0 {
		return errs.NewValueIsOutOfRangeError("newQty", newQty, 0, int(^uint(0)>>1))
	}
	if err := actorID.Validate(); err != nil {
		return err
	}
	if newQty == r.quantity {
		return nil
	}

	old := r.quantity
	r.quantity = newQty
	r.appendChange(old, newQty, ActionUpdate, actorID)
	return nil
}

// Retire forces the quantity to zero and logs the "deleted" action. Records
// referenced by history are never physically deleted; this is the soft
// lifecycle end.
func (r *Record) Retire(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if r.quantity == 0 {
		return nil
	}

	old := r.quantity
	r.quantity = 0
	r.appendChange(old, 0, ActionDeleted, actorID)
	return nil
}

// Changes returns the entries emitted since the last drain, oldest first.
func (r *Record) Changes() []ChangeEntry {
	return r.changes
}

// DrainChanges returns the pending entries and clears the buffer. Called by
// the repository after persisting the entries.
func (r *Record) DrainChanges() []ChangeEntry {
	out := r.changes
	r.changes = nil
	return out
}

func (r *Record) appendChange(oldQty, newQty int, action Action, actorID kernel.UUID) {
	r.changes = append(r.changes, ChangeEntry{
		RecordID:    r.id,
		OldQuantity: oldQty,
		NewQuantity: newQty,
		Action:      action,
		ActorID:     actorID,
		OccurredAt:  time.Now().UTC(),
	})
}
