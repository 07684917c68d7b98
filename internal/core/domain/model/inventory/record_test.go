package inventory_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecord(t *testing.T, qty int) (*inventory.Record, kernel.UUID) {
	t.Helper()
	owner, err := kernel.NewOwnerRef(kernel.OwnerFranchise, kernel.NewUUID())
	require.NoError(t, err)
	actor := kernel.NewUUID()
	rec, err := inventory.NewRecord(
		kernel.NewUUID(), owner, kernel.NewUUID(), "Herbal Shampoo",
		inventory.StockReadyToDispatch, qty, actor)
	require.NoError(t, err)
	return rec, actor
}

func TestNewRecord(t *testing.T) {
	t.Run("logs the initial addition", func(t *testing.T) {
		rec, actor := newTestRecord(t, 10)

		require.Len(t, rec.Changes(), 1)
		entry := rec.Changes()[0]
		assert.Equal(t, 0, entry.OldQuantity)
		assert.Equal(t, 10, entry.NewQuantity)
		assert.Equal(t, inventory.ActionAdd, entry.Action)
		assert.True(t, entry.ActorID.IsEqual(actor))
	})

	t.Run("negative quantity is rejected", func(t *testing.T) {
		owner, err := kernel.NewOwnerRef(kernel.OwnerFactory, kernel.NewUUID())
		require.NoError(t, err)
		_, err = inventory.NewRecord(
			kernel.NewUUID(), owner, kernel.NewUUID(), "Soap",
			inventory.StockReadyToDispatch, -1, kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("unknown stock status is rejected", func(t *testing.T) {
		owner, err := kernel.NewOwnerRef(kernel.OwnerFactory, kernel.NewUUID())
		require.NoError(t, err)
		_, err = inventory.NewRecord(
			kernel.NewUUID(), owner, kernel.NewUUID(), "Soap",
			inventory.StockStatus("floating"), 1, kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRecord_Debit(t *testing.T) {
	t.Run("reduces quantity and logs order_created", func(t *testing.T) {
		rec, actor := newTestRecord(t, 10)

		require.NoError(t, rec.Debit(4, actor))
		assert.Equal(t, 6, rec.Quantity())

		changes := rec.Changes()
		require.Len(t, changes, 2)
		assert.Equal(t, 10, changes[1].OldQuantity)
		assert.Equal(t, 6, changes[1].NewQuantity)
		assert.Equal(t, inventory.ActionOrderCreated, changes[1].Action)
	})

	t.Run("overdraw fails and leaves quantity unchanged", func(t *testing.T) {
		rec, actor := newTestRecord(t, 3)

		err := rec.Debit(5, actor)
		require.ErrorIs(t, err, errs.ErrInsufficientStock)

		var stockErr *errs.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, "Herbal Shampoo", stockErr.ProductName)
		assert.Equal(t, 3, stockErr.Available)
		assert.Equal(t, 5, stockErr.Requested)

		assert.Equal(t, 3, rec.Quantity())
		assert.Len(t, rec.Changes(), 1) // only the initial add
	})

	t.Run("debit to exactly zero is allowed", func(t *testing.T) {
		rec, actor := newTestRecord(t, 3)
		require.NoError(t, rec.Debit(3, actor))
		assert.Equal(t, 0, rec.Quantity())
	})

	t.Run("non-positive qty is rejected", func(t *testing.T) {
		rec, actor := newTestRecord(t, 3)
		require.Error(t, rec.Debit(0, actor))
		require.Error(t, rec.Debit(-1, actor))
	})
}

func TestRecord_Credit(t *testing.T) {
	t.Run("restock logs order_cancelled", func(t *testing.T) {
		rec, actor := newTestRecord(t, 5)
		require.NoError(t, rec.Debit(5, actor))

		require.NoError(t, rec.Credit(5, actor, inventory.ActionOrderCancelled))
		assert.Equal(t, 5, rec.Quantity())

		changes := rec.Changes()
		require.Len(t, changes, 3)
		assert.Equal(t, 0, changes[2].OldQuantity)
		assert.Equal(t, 5, changes[2].NewQuantity)
		assert.Equal(t, inventory.ActionOrderCancelled, changes[2].Action)
	})

	t.Run("unknown action is rejected", func(t *testing.T) {
		rec, actor := newTestRecord(t, 5)
		require.ErrorIs(t, rec.Credit(1, actor, inventory.Action("restocked")), errs.ErrValueIsInvalid)
	})
}

func TestRecord_Adjust(t *testing.T) {
	t.Run("manual correction logs update", func(t *testing.T) {
		rec, actor := newTestRecord(t, 5)

		require.NoError(t, rec.Adjust(12, actor))
		assert.Equal(t, 12, rec.Quantity())

		changes := rec.Changes()
		require.Len(t, changes, 2)
		assert.Equal(t, inventory.ActionUpdate, changes[1].Action)
		assert.Equal(t, 5, changes[1].OldQuantity)
		assert.Equal(t, 12, changes[1].NewQuantity)
	})

	t.Run("same quantity is a no-op", func(t *testing.T) {
		rec, actor := newTestRecord(t, 5)
		require.NoError(t, rec.Adjust(5, actor))
		assert.Len(t, rec.Changes(), 1)
	})

	t.Run("negative target is rejected", func(t *testing.T) {
		rec, actor := newTestRecord(t, 5)
		require.ErrorIs(t, rec.Adjust(-1, actor), errs.ErrValueIsOutOfRange)
	})
}

func TestRecord_ChangeLogReplay(t *testing.T) {
	// The change log must be a complete, order-preserving replay: the final
	// quantity equals the initial quantity plus the sum of signed deltas, and
	// each entry's old quantity matches the previous entry's new quantity.
	rec, actor := newTestRecord(t, 20)

	require.NoError(t, rec.Debit(5, actor))
	require.NoError(t, rec.Credit(2, actor, inventory.ActionOrderCancelled))
	require.NoError(t, rec.Debit(7, actor))
	require.NoError(t, rec.Adjust(25, actor))

	changes := rec.Changes()
	require.NotEmpty(t, changes)
	for i := 1; i < len(changes); i++ {
		assert.Equal(t, changes[i-1].NewQuantity, changes[i].OldQuantity)
	}
	assert.Equal(t, rec.Quantity(), changes[len(changes)-1].NewQuantity)
}

func TestRecord_DrainChanges(t *testing.T) {
	rec, actor := newTestRecord(t, 5)
	require.NoError(t, rec.Debit(1, actor))

	drained := rec.DrainChanges()
	assert.Len(t, drained, 2)
	assert.Empty(t, rec.Changes())
}

func TestRecord_Retire(t *testing.T) {
	rec, actor := newTestRecord(t, 5)
	require.NoError(t, rec.Retire(actor))
	assert.Equal(t, 0, rec.Quantity())

	changes := rec.Changes()
	require.Len(t, changes, 2)
	assert.Equal(t, inventory.ActionDeleted, changes[1].Action)

	// Retiring an empty record logs nothing further.
	require.NoError(t, rec.Retire(actor))
	assert.Len(t, rec.Changes(), 2)
}
