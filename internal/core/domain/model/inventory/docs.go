// Package inventory implements the stock ledger for the fulfillment network.
//
// A Record tracks the quantity of one product held by exactly one owner
// (factory, distributor, or franchise). Records enforce the core invariant
// that quantity never goes below zero: a debit that would overdraw the pool
// fails with InsufficientStockError and leaves the quantity untouched.
//
// Every mutation of a record pairs with exactly one ChangeEntry capturing the
// pre- and post-quantity, the action that caused it, the acting user, and the
// time. Mutations accumulate on the aggregate and are drained by the
// persistence layer within the same transaction that writes the new quantity,
// so the change log is a complete, order-preserving replay of the record's
// history.
//
// Records are never physically deleted once referenced by history; retiring
// stock is expressed as an adjustment to zero plus its log entry.
package inventory
