package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func logEntry(id kernel.UUID, from, to order.Status, when time.Time) order.ChangeEntry {
	return order.ChangeEntry{
		OrderID:    id,
		OldStatus:  from,
		NewStatus:  to,
		ActorID:    kernel.NewUUID(),
		OccurredAt: when,
	}
}

// deliveredOrder builds an order dispatched and delivered on the given days.
func deliveredOrder(total, prepaid int64, dispatched, delivered time.Time) services.OrderActivity {
	id := kernel.NewUUID()
	return services.OrderActivity{
		OrderID:       id,
		TotalAmount:   decimal.NewFromInt(total),
		PrepaidAmount: decimal.NewFromInt(prepaid),
		CurrentStatus: order.Delivered,
		CreatedAt:     dispatched.Add(-24 * time.Hour),
		UpdatedAt:     delivered,
		StatusLog: []order.ChangeEntry{
			logEntry(id, order.Pending, order.SentToCarrier, dispatched),
			logEntry(id, order.SentToCarrier, order.OutForDelivery, delivered.Add(-2*time.Hour)),
			logEntry(id, order.OutForDelivery, order.Delivered, delivered),
		},
	}
}

func TestReconciler_Statement_SingleDeliveredOrder(t *testing.T) {
	// Order of 1000 with 200 prepaid delivered on day D: the statement shows
	// one delivery, 800 cash in, a 100 charge, and a day delta of 700.
	r := services.NewReconciler()
	d := day(2026, time.March, 5)

	orders := []services.OrderActivity{
		deliveredOrder(1000, 200, at(2026, time.March, 4, 11), at(2026, time.March, 5, 16)),
	}

	st := r.Statement(orders, nil, day(2026, time.March, 4), day(2026, time.March, 5))
	require.Len(t, st.Days, 2)

	dispatchDay := st.Days[0]
	assert.Equal(t, 1, dispatchDay.DispatchedCount)
	assert.True(t, dispatchDay.DispatchedAmount.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 0, dispatchDay.DeliveredCount)
	assert.True(t, dispatchDay.Balance.Equal(decimal.Zero))

	deliveryDay := st.Days[1]
	assert.Equal(t, d, deliveryDay.Date)
	assert.Equal(t, 1, deliveryDay.DeliveredCount)
	assert.True(t, deliveryDay.CashIn.Equal(decimal.NewFromInt(800)))
	assert.True(t, deliveryDay.DeliveryCharges.Equal(decimal.NewFromInt(100)))
	assert.True(t, deliveryDay.Balance.Equal(decimal.NewFromInt(700)))
	assert.True(t, st.ClosingBalance.Equal(decimal.NewFromInt(700)))
}

func TestReconciler_Statement_OpeningBalanceSeedsTheRange(t *testing.T) {
	r := services.NewReconciler()

	orders := []services.OrderActivity{
		deliveredOrder(1000, 0, at(2026, time.February, 1, 9), at(2026, time.February, 2, 15)),
		deliveredOrder(500, 0, at(2026, time.March, 9, 9), at(2026, time.March, 10, 15)),
	}
	payments := []services.InvoicePayment{
		{Amount: decimal.NewFromInt(300), ApprovedAt: at(2026, time.February, 20, 12)},
	}

	st := r.Statement(orders, payments, day(2026, time.March, 10), day(2026, time.March, 10))
	// Pre-range: 1000 - 100 - 300 = 600.
	assert.True(t, st.OpeningBalance.Equal(decimal.NewFromInt(600)))
	require.Len(t, st.Days, 1)
	// 600 + (500 - 100) = 1000.
	assert.True(t, st.ClosingBalance.Equal(decimal.NewFromInt(1000)))
}

func TestReconciler_FirstDeliveryCountedOnce(t *testing.T) {
	// Rescheduled then delivered twice: only the earliest Delivered entry
	// counts under the default policy.
	r := services.NewReconciler()
	id := kernel.NewUUID()

	oa := services.OrderActivity{
		OrderID:       id,
		TotalAmount:   decimal.NewFromInt(400),
		PrepaidAmount: decimal.Zero,
		CurrentStatus: order.Delivered,
		CreatedAt:     at(2026, time.March, 1, 8),
		UpdatedAt:     at(2026, time.March, 4, 17),
		StatusLog: []order.ChangeEntry{
			logEntry(id, order.OutForDelivery, order.Delivered, at(2026, time.March, 2, 17)),
			logEntry(id, order.Delivered, order.Rescheduled, at(2026, time.March, 3, 9)),
			logEntry(id, order.Rescheduled, order.Delivered, at(2026, time.March, 4, 17)),
		},
	}

	st := r.Statement([]services.OrderActivity{oa}, nil, day(2026, time.March, 1), day(2026, time.March, 5))
	totalDelivered := 0
	for _, row := range st.Days {
		totalDelivered += row.DeliveredCount
	}
	assert.Equal(t, 1, totalDelivered)
	assert.Equal(t, 1, st.Days[1].DeliveredCount, "counted on the earliest delivery day")

	// 400 - 100 once, not twice.
	assert.True(t, r.PendingCOD([]services.OrderActivity{oa}, nil).Equal(decimal.NewFromInt(300)))
}

func TestReconciler_CountEveryDeliveryPolicy(t *testing.T) {
	r := services.NewReconcilerWithPolicy(decimal.NewFromInt(100), services.CountEveryDelivery)
	id := kernel.NewUUID()

	oa := services.OrderActivity{
		OrderID:       id,
		TotalAmount:   decimal.NewFromInt(400),
		PrepaidAmount: decimal.Zero,
		CurrentStatus: order.Delivered,
		StatusLog: []order.ChangeEntry{
			logEntry(id, order.OutForDelivery, order.Delivered, at(2026, time.March, 2, 17)),
			logEntry(id, order.Delivered, order.Rescheduled, at(2026, time.March, 3, 9)),
			logEntry(id, order.Rescheduled, order.Delivered, at(2026, time.March, 4, 17)),
		},
	}

	st := r.Statement([]services.OrderActivity{oa}, nil, day(2026, time.March, 1), day(2026, time.March, 5))
	totalDelivered := 0
	for _, row := range st.Days {
		totalDelivered += row.DeliveredCount
	}
	assert.Equal(t, 2, totalDelivered)
}

func TestReconciler_FallbackToOrderTimestamps(t *testing.T) {
	// An office-visit order is Delivered from creation and has no log rows:
	// it still counts, dated by the order's own timestamp.
	r := services.NewReconciler()

	oa := services.OrderActivity{
		OrderID:       kernel.NewUUID(),
		TotalAmount:   decimal.NewFromInt(250),
		PrepaidAmount: decimal.Zero,
		CurrentStatus: order.Delivered,
		CreatedAt:     at(2026, time.March, 7, 10),
		UpdatedAt:     at(2026, time.March, 7, 10),
	}

	st := r.Statement([]services.OrderActivity{oa}, nil, day(2026, time.March, 7), day(2026, time.March, 7))
	require.Len(t, st.Days, 1)
	assert.Equal(t, 1, st.Days[0].DeliveredCount)
	assert.True(t, st.Days[0].CashIn.Equal(decimal.NewFromInt(250)))
}

func TestReconciler_PendingCODMatchesFullHistoryClosingBalance(t *testing.T) {
	// Delivered orders, approved invoices, and an interleaved cancellation:
	// the standalone aggregate and the full-history running balance agree.
	r := services.NewReconciler()

	cancelledID := kernel.NewUUID()
	cancelled := services.OrderActivity{
		OrderID:       cancelledID,
		TotalAmount:   decimal.NewFromInt(900),
		PrepaidAmount: decimal.Zero,
		CurrentStatus: order.Cancelled,
		StatusLog: []order.ChangeEntry{
			logEntry(cancelledID, order.Pending, order.SentToCarrier, at(2026, time.March, 2, 10)),
			logEntry(cancelledID, order.SentToCarrier, order.Cancelled, at(2026, time.March, 3, 10)),
		},
	}

	orders := []services.OrderActivity{
		deliveredOrder(1200, 200, at(2026, time.March, 1, 9), at(2026, time.March, 2, 18)),
		cancelled,
		deliveredOrder(700, 0, at(2026, time.March, 3, 9), at(2026, time.March, 5, 18)),
	}
	payments := []services.InvoicePayment{
		{Amount: decimal.NewFromInt(450), ApprovedAt: at(2026, time.March, 4, 12)},
	}

	pending := r.PendingCOD(orders, payments)
	st := r.Statement(orders, payments, day(2026, time.January, 1), day(2026, time.March, 31))

	// (1000-100) + (700-100) - 450 = 1050; the cancelled order contributes
	// nothing despite its dispatch entry.
	assert.True(t, pending.Equal(decimal.NewFromInt(1050)))
	assert.True(t, st.ClosingBalance.Equal(pending))
}

func TestReconciler_PendingCODFlooredAtZero(t *testing.T) {
	r := services.NewReconciler()

	orders := []services.OrderActivity{
		deliveredOrder(150, 0, at(2026, time.March, 1, 9), at(2026, time.March, 2, 18)),
	}
	payments := []services.InvoicePayment{
		{Amount: decimal.NewFromInt(500), ApprovedAt: at(2026, time.March, 3, 12)},
	}

	assert.True(t, r.PendingCOD(orders, payments).Equal(decimal.Zero))
}

func TestReconciler_EmptyRange(t *testing.T) {
	r := services.NewReconciler()
	st := r.Statement(nil, nil, day(2026, time.March, 10), day(2026, time.March, 1))
	assert.Empty(t, st.Days)
	assert.True(t, st.OpeningBalance.Equal(decimal.Zero))
	assert.True(t, st.ClosingBalance.Equal(decimal.Zero))
}
