package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the canonical order-lifecycle vocabulary. Raw carrier status
// strings never appear outside the carrier adapters; everything past that
// boundary speaks Status.
//
// The vocabulary is fixed, not user-configurable. Terminal statuses
// (Delivered, Cancelled, and the Returned family) expect no further
// transitions, but nothing hard-blocks a manual correction.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a freshly created order.
	Pending

	// Processing means the order is being prepared for dispatch.
	Processing

	// Verified means the customer and payment details were confirmed.
	Verified

	// SentToDash means the order was handed to the DASH carrier.
	SentToDash

	// SentToCarrier means the order was handed to a third-party carrier
	// (YDM or Pick&Drop).
	SentToCarrier

	// OutForDelivery means a rider is carrying the order to the customer.
	OutForDelivery

	// Rescheduled means a delivery attempt failed and another was booked.
	Rescheduled

	// Delivered means the customer received the order. Terminal.
	Delivered

	// Cancelled means the order was called off before delivery. Terminal.
	Cancelled

	// ReturnedByCustomer means the customer refused or sent the order back. Terminal.
	ReturnedByCustomer

	// ReturnedByCarrier means the carrier returned the undeliverable order. Terminal.
	ReturnedByCarrier

	// ReturnPending means a return is underway but stock has not arrived back yet.
	ReturnPending
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "Unknown",
		Pending:            "Pending",
		Processing:         "Processing",
		Verified:           "Verified",
		SentToDash:         "SentToDash",
		SentToCarrier:      "SentToCarrier",
		OutForDelivery:     "OutForDelivery",
		Rescheduled:        "Rescheduled",
		Delivered:          "Delivered",
		Cancelled:          "Cancelled",
		ReturnedByCustomer: "ReturnedByCustomer",
		ReturnedByCarrier:  "ReturnedByCarrier",
		ReturnPending:      "ReturnPending",
	}
}

// StatusFromString parses a canonical status name. Unrecognized names fail
// with a value-is-invalid error, never a silent fallback.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a recognized order status", s))
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks that the status is part of the canonical vocabulary.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether the status ends the expected lifecycle.
func (s Status) IsTerminal() bool {
	switch s {
	case Delivered, Cancelled, ReturnedByCustomer, ReturnedByCarrier:
		return true
	default:
		return false
	}
}

// IsCancelledFamily reports whether entering this status from outside the
// family returns the order's stock to inventory.
func (s Status) IsCancelledFamily() bool {
	switch s {
	case Cancelled, ReturnedByCustomer, ReturnedByCarrier:
		return true
	default:
		return false
	}
}
