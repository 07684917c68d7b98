package services

import (
	"sort"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// DefaultDeliveryCharge is the fixed per-delivery fee the operator withholds
// from each delivered order's COD amount.
var DefaultDeliveryCharge = decimal.NewFromInt(100)

// DeliveredCountPolicy decides how an order that was rescheduled and then
// delivered more than once counts toward delivered statistics.
type DeliveredCountPolicy int

const (
	// CountFirstDelivery counts each order at most once, on the day of the
	// earliest Delivered log entry. Default.
	CountFirstDelivery DeliveredCountPolicy = iota

	// CountEveryDelivery counts every Delivered log entry separately.
	CountEveryDelivery
)

// OrderActivity is the reconciliation-relevant slice of one order: its
// amounts, its current status, and its full transition log. The query layer
// assembles these from storage; the Reconciler itself stays pure.
type OrderActivity struct {
	OrderID       kernel.UUID
	TotalAmount   decimal.Decimal
	PrepaidAmount decimal.Decimal
	CurrentStatus order.Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
	StatusLog     []order.ChangeEntry
}

// InvoicePayment is one approved invoice payment, dated by its approval.
type InvoicePayment struct {
	Amount     decimal.Decimal
	ApprovedAt time.Time
}

// DayStatement is one row of a franchise statement.
type DayStatement struct {
	// Date is the statement day at midnight UTC.
	Date time.Time

	// DispatchedCount and DispatchedAmount cover orders first reaching
	// SentToCarrier that day; the amount is the gross order total.
	DispatchedCount  int
	DispatchedAmount decimal.Decimal

	// DeliveredCount covers orders reaching Delivered that day under the
	// configured policy. CashIn is the COD collected for them
	// (total minus prepaid); DeliveryCharges is the per-delivery fee
	// multiplied by the delivered count.
	DeliveredCount  int
	CashIn          decimal.Decimal
	DeliveryCharges decimal.Decimal

	// ApprovedPayments is the sum of invoice payments approved that day.
	ApprovedPayments decimal.Decimal

	// Balance is the running balance at the end of the day: previous
	// balance plus CashIn minus DeliveryCharges minus ApprovedPayments.
	Balance decimal.Decimal
}

// Statement is a franchise's day-by-day reconciliation over an inclusive
// date range.
type Statement struct {
	// OpeningBalance is the balance carried into the range, computed the
	// same way over all activity strictly before the range start.
	OpeningBalance decimal.Decimal

	Days []DayStatement

	// ClosingBalance is the last day's running balance. Over a full-history
	// range it equals the pending-COD figure before flooring.
	ClosingBalance decimal.Decimal
}

// Reconciler turns order activity and invoice payments into statements and
// the single "pending COD" figure.
//
// Both outputs are derived from one event extraction, so the standalone
// aggregate and the running balance of a full-history statement are the same
// number by construction; there is no second formula to drift and no final-day
// patch step.
type Reconciler struct {
	deliveryCharge decimal.Decimal
	policy         DeliveredCountPolicy
}

// NewReconciler creates a Reconciler with the standard delivery charge and
// the first-delivery counting policy.
func NewReconciler() Reconciler {
	return Reconciler{
		deliveryCharge: DefaultDeliveryCharge,
		policy:         CountFirstDelivery,
	}
}

// NewReconcilerWithPolicy creates a Reconciler with an explicit charge and
// delivered-count policy.
func NewReconcilerWithPolicy(deliveryCharge decimal.Decimal, policy DeliveredCountPolicy) Reconciler {
	return Reconciler{
		deliveryCharge: deliveryCharge,
		policy:         policy,
	}
}

// dispatchEvent marks an order first handed to a third-party carrier.
type dispatchEvent struct {
	day    time.Time
	amount decimal.Decimal
}

// deliveryEvent marks an order counted as delivered under the policy.
type deliveryEvent struct {
	day time.Time
	cod decimal.Decimal
}

// Statement computes the day-by-day statement for the inclusive [start, end]
// range. Both bounds are interpreted as UTC dates; time-of-day is ignored.
func (r Reconciler) Statement(
	orders []OrderActivity, payments []InvoicePayment, start, end time.Time,
) Statement {
	startDay := dayOf(start)
	endDay := dayOf(end)

	dispatches, deliveries := r.extract(orders)

	opening := decimal.Zero
	for _, d := range deliveries {
		if d.day.Before(startDay) {
			opening = opening.Add(d.cod).Sub(r.deliveryCharge)
		}
	}
	for _, p := range payments {
		if dayOf(p.ApprovedAt).Before(startDay) {
			opening = opening.Sub(p.Amount)
		}
	}

	st := Statement{OpeningBalance: opening, ClosingBalance: opening}
	if endDay.Before(startDay) {
		return st
	}

	balance := opening
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		row := DayStatement{
			Date:             day,
			DispatchedAmount: decimal.Zero,
			CashIn:           decimal.Zero,
			DeliveryCharges:  decimal.Zero,
			ApprovedPayments: decimal.Zero,
		}
		for _, d := range dispatches {
			if d.day.Equal(day) {
				row.DispatchedCount++
				row.DispatchedAmount = row.DispatchedAmount.Add(d.amount)
			}
		}
		for _, d := range deliveries {
			if d.day.Equal(day) {
				row.DeliveredCount++
				row.CashIn = row.CashIn.Add(d.cod)
			}
		}
		row.DeliveryCharges = r.deliveryCharge.Mul(decimal.NewFromInt(int64(row.DeliveredCount)))
		for _, p := range payments {
			if dayOf(p.ApprovedAt).Equal(day) {
				row.ApprovedPayments = row.ApprovedPayments.Add(p.Amount)
			}
		}

		balance = balance.Add(row.CashIn).Sub(row.DeliveryCharges).Sub(row.ApprovedPayments)
		row.Balance = balance
		st.Days = append(st.Days, row)
	}

	st.ClosingBalance = balance
	return st
}

// PendingCOD computes the amount the operator currently owes the franchise:
// all-time delivered COD minus delivered-count times the delivery charge
// minus all-time approved payments, floored at zero.
//
// The un-floored value is exactly the closing balance a full-history
// Statement would produce, because both walk the same extracted events.
func (r Reconciler) PendingCOD(orders []OrderActivity, payments []InvoicePayment) decimal.Decimal {
	_, deliveries := r.extract(orders)

	pending := decimal.Zero
	for _, d := range deliveries {
		pending = pending.Add(d.cod).Sub(r.deliveryCharge)
	}
	for _, p := range payments {
		pending = pending.Sub(p.Amount)
	}

	if pending.IsNegative() {
		return decimal.Zero
	}
	return pending
}

// extract turns order activity into dated dispatch and delivery events.
//
// "First reaching a status" is the earliest log entry whose NewStatus matches;
// an order whose current status matches but has no such log entry (legacy
// data, or orders delivered in their creation transaction) falls back to its
// own timestamps.
func (r Reconciler) extract(orders []OrderActivity) ([]dispatchEvent, []deliveryEvent) {
	var dispatches []dispatchEvent
	var deliveries []deliveryEvent

	for _, oa := range orders {
		if at, ok := firstReached(oa, order.SentToCarrier); ok {
			dispatches = append(dispatches, dispatchEvent{day: dayOf(at), amount: oa.TotalAmount})
		}

		cod := oa.TotalAmount.Sub(oa.PrepaidAmount)
		switch r.policy {
		case CountEveryDelivery:
			logged := false
			for _, entry := range sortedLog(oa.StatusLog) {
				if entry.NewStatus == order.Delivered {
					deliveries = append(deliveries, deliveryEvent{day: dayOf(entry.OccurredAt), cod: cod})
					logged = true
				}
			}
			if !logged && oa.CurrentStatus == order.Delivered {
				deliveries = append(deliveries, deliveryEvent{day: dayOf(fallbackTime(oa)), cod: cod})
			}
		default:
			if at, ok := firstReached(oa, order.Delivered); ok {
				deliveries = append(deliveries, deliveryEvent{day: dayOf(at), cod: cod})
			}
		}
	}

	return dispatches, deliveries
}

// firstReached finds when the order first entered the target status: the
// earliest matching log entry, else the order's own timestamps when the
// current status matches without a log trace.
func firstReached(oa OrderActivity, target order.Status) (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, entry := range oa.StatusLog {
		if entry.NewStatus != target {
			continue
		}
		if !found || entry.OccurredAt.Before(earliest) {
			earliest = entry.OccurredAt
			found = true
		}
	}
	if found {
		return earliest, true
	}
	if oa.CurrentStatus == target {
		return fallbackTime(oa), true
	}
	return time.Time{}, false
}

func fallbackTime(oa OrderActivity) time.Time {
	if !oa.UpdatedAt.IsZero() {
		return oa.UpdatedAt
	}
	return oa.CreatedAt
}

func sortedLog(entries []order.ChangeEntry) []order.ChangeEntry {
	out := make([]order.ChangeEntry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool {
		return out[i].OccurredAt.Before(out[j].OccurredAt)
	})
	return out
}

// dayOf truncates a timestamp to its UTC date.
func dayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
