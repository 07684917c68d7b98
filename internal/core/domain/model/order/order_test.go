package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCustomer() order.Customer {
	return order.Customer{Name: "Sita Rai", Phone: "+977-9812345678", Address: "Lakeside, Pokhara"}
}

func testLines(t *testing.T) []order.Line {
	t.Helper()
	return []order.Line{{ProductID: kernel.NewUUID(), Quantity: 2}}
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	owner, err := kernel.NewOwnerRef(kernel.OwnerFranchise, kernel.NewUUID())
	require.NoError(t, err)
	o, err := order.NewOrder(
		kernel.NewUUID(), owner, testCustomer(), testLines(t),
		order.PaymentCashOnDelivery,
		decimal.NewFromInt(1000), decimal.NewFromInt(200), decimal.NewFromInt(100))
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("starts pending with a shareable code", func(t *testing.T) {
		o := newTestOrder(t)
		assert.Equal(t, order.Pending, o.Status())
		assert.Regexp(t, `^ORD-[0-9A-F]{10}$`, o.Code())
		assert.Empty(t, o.Changes())
		assert.Nil(t, o.Logistics())
		assert.Nil(t, o.Rider())
	})

	t.Run("office visit delivers in the same transaction", func(t *testing.T) {
		owner, err := kernel.NewOwnerRef(kernel.OwnerFranchise, kernel.NewUUID())
		require.NoError(t, err)
		o, err := order.NewOrder(
			kernel.NewUUID(), owner, testCustomer(), testLines(t),
			order.PaymentOfficeVisit,
			decimal.NewFromInt(500), decimal.Zero, decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("prepaid above total is rejected", func(t *testing.T) {
		owner, err := kernel.NewOwnerRef(kernel.OwnerFranchise, kernel.NewUUID())
		require.NoError(t, err)
		_, err = order.NewOrder(
			kernel.NewUUID(), owner, testCustomer(), testLines(t),
			order.PaymentCashOnDelivery,
			decimal.NewFromInt(100), decimal.NewFromInt(200), decimal.Zero)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("empty lines are rejected", func(t *testing.T) {
		owner, err := kernel.NewOwnerRef(kernel.OwnerFranchise, kernel.NewUUID())
		require.NoError(t, err)
		_, err = order.NewOrder(
			kernel.NewUUID(), owner, testCustomer(), nil,
			order.PaymentCashOnDelivery,
			decimal.NewFromInt(100), decimal.Zero, decimal.Zero)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestOrder_CODAmount(t *testing.T) {
	o := newTestOrder(t)
	assert.True(t, o.CODAmount().Equal(decimal.NewFromInt(800)))
}

func TestOrder_Transition(t *testing.T) {
	actor := kernel.NewUUID()

	t.Run("accepted transition appends one log entry", func(t *testing.T) {
		o := newTestOrder(t)
		restock, err := o.Transition(order.Processing, actor, "verified by phone")
		require.NoError(t, err)
		assert.False(t, restock)

		require.Len(t, o.Changes(), 1)
		entry := o.Changes()[0]
		assert.Equal(t, order.Pending, entry.OldStatus)
		assert.Equal(t, order.Processing, entry.NewStatus)
		assert.Equal(t, "verified by phone", entry.Comment)
		assert.True(t, entry.ActorID.IsEqual(actor))
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		o := newTestOrder(t)
		restock, err := o.Transition(order.Pending, actor, "")
		require.NoError(t, err)
		assert.False(t, restock)
		assert.Empty(t, o.Changes())
	})

	t.Run("unrecognized status fails loudly", func(t *testing.T) {
		o := newTestOrder(t)
		_, err := o.Transition(order.Status(42), actor, "")
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Pending, o.Status())
		assert.Empty(t, o.Changes())
	})

	t.Run("entering cancelled family signals restock once", func(t *testing.T) {
		o := newTestOrder(t)
		_, err := o.Transition(order.Processing, actor, "")
		require.NoError(t, err)

		restock, err := o.Transition(order.Cancelled, actor, "customer called off")
		require.NoError(t, err)
		assert.True(t, restock)
	})

	t.Run("re-entering cancelled family never restocks again", func(t *testing.T) {
		o := newTestOrder(t)
		restock, err := o.Transition(order.Cancelled, actor, "")
		require.NoError(t, err)
		assert.True(t, restock)

		// Same status again: no-op, no restock.
		restock, err = o.Transition(order.Cancelled, actor, "")
		require.NoError(t, err)
		assert.False(t, restock)

		// Hopping within the family: logged, but still no second restock.
		restock, err = o.Transition(order.ReturnedByCarrier, actor, "corrected classification")
		require.NoError(t, err)
		assert.False(t, restock)
		assert.Len(t, o.Changes(), 2)
	})

	t.Run("terminal states allow manual correction", func(t *testing.T) {
		o := newTestOrder(t)
		_, err := o.Transition(order.Delivered, actor, "")
		require.NoError(t, err)

		restock, err := o.Transition(order.ReturnedByCustomer, actor, "wrong item shipped")
		require.NoError(t, err)
		assert.True(t, restock)
	})
}

func TestOrder_SelectCarrier(t *testing.T) {
	actor := kernel.NewUUID()

	t.Run("third-party carrier forces SentToCarrier", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.SelectCarrier(order.CarrierYDM, actor))

		assert.Equal(t, order.SentToCarrier, o.Status())
		require.NotNil(t, o.Logistics())
		assert.Equal(t, order.CarrierYDM, *o.Logistics())
		require.Len(t, o.Changes(), 1)
	})

	t.Run("reassigning to DASH from SentToCarrier resets to Pending", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.SelectCarrier(order.CarrierPickNDrop, actor))
		require.Equal(t, order.SentToCarrier, o.Status())

		require.NoError(t, o.SelectCarrier(order.CarrierDash, actor))
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, order.CarrierDash, *o.Logistics())
	})

	t.Run("DASH selection outside SentToCarrier keeps the status", func(t *testing.T) {
		o := newTestOrder(t)
		_, err := o.Transition(order.Verified, actor, "")
		require.NoError(t, err)

		require.NoError(t, o.SelectCarrier(order.CarrierDash, actor))
		assert.Equal(t, order.Verified, o.Status())
	})

	t.Run("unknown carrier is rejected", func(t *testing.T) {
		o := newTestOrder(t)
		require.Error(t, o.SelectCarrier(order.Carrier("pigeon"), actor))
	})
}

func TestOrder_AssignRider(t *testing.T) {
	actor := kernel.NewUUID()

	t.Run("forces OutForDelivery", func(t *testing.T) {
		o := newTestOrder(t)
		rider := kernel.NewUUID()
		require.NoError(t, o.AssignRider(rider, actor))

		assert.Equal(t, order.OutForDelivery, o.Status())
		require.NotNil(t, o.Rider())
		assert.True(t, o.Rider().IsEqual(rider))
	})

	t.Run("reassignment updates in place without a second transition", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AssignRider(kernel.NewUUID(), actor))
		require.Len(t, o.Changes(), 1)

		second := kernel.NewUUID()
		require.NoError(t, o.AssignRider(second, actor))
		assert.True(t, o.Rider().IsEqual(second))
		assert.Len(t, o.Changes(), 1)
	})

	t.Run("terminal order cannot take a rider", func(t *testing.T) {
		o := newTestOrder(t)
		_, err := o.Transition(order.Cancelled, actor, "")
		require.NoError(t, err)

		err = o.AssignRider(kernel.NewUUID(), actor)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Nil(t, o.Rider())
	})
}

func TestOrder_Remarks(t *testing.T) {
	o := newTestOrder(t)
	o.AddRemark(`unrecognized carrier status "package_lost_in_transit"`)
	o.AddRemark("")

	require.Len(t, o.Remarks(), 1)
	assert.Equal(t, order.Pending, o.Status())

	drained := o.DrainRemarks()
	assert.Len(t, drained, 1)
	assert.Empty(t, o.Remarks())
}

func TestOrder_SetTrackingCode(t *testing.T) {
	o := newTestOrder(t)
	require.Error(t, o.SetTrackingCode(""))
	require.NoError(t, o.SetTrackingCode("YDM-112233"))
	assert.Equal(t, "YDM-112233", o.TrackingCode())
}

func TestOrder_DrainChanges(t *testing.T) {
	o := newTestOrder(t)
	actor := kernel.NewUUID()
	_, err := o.Transition(order.Processing, actor, "")
	require.NoError(t, err)

	drained := o.DrainChanges()
	assert.Len(t, drained, 1)
	assert.Empty(t, o.Changes())
}
