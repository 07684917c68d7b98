package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Carrier selects which external logistics provider moves an order.
type Carrier string

const (
	// CarrierDash is the in-network DASH delivery fleet.
	CarrierDash Carrier = "DASH"

	// CarrierYDM is the YDM third-party logistics provider.
	CarrierYDM Carrier = "YDM"

	// CarrierPickNDrop is the Pick&Drop third-party logistics provider.
	CarrierPickNDrop Carrier = "PICKNDROP"
)

// CarrierFromString parses a carrier name, case-sensitively.
func CarrierFromString(s string) (Carrier, error) {
	c := Carrier(s)
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// String returns the carrier's wire name.
func (c Carrier) String() string {
	return string(c)
}

// Validate checks that the carrier is one of the integrated providers.
func (c Carrier) Validate() error {
	switch c {
	case CarrierDash, CarrierYDM, CarrierPickNDrop:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("carrier",
			fmt.Errorf("%q is not an integrated carrier", string(c)))
	}
}

// IsThirdParty reports whether handing the order to this carrier moves the
// order into SentToCarrier (as opposed to DASH's own SentToDash flow).
func (c Carrier) IsThirdParty() bool {
	return c == CarrierYDM || c == CarrierPickNDrop
}

// PaymentMethod is how the customer settles the order amount.
type PaymentMethod string

const (
	// PaymentCashOnDelivery collects the balance at the door. Default.
	PaymentCashOnDelivery PaymentMethod = "COD"

	// PaymentOfficeVisit settles in person at the office; the order is
	// handed over in the same transaction.
	PaymentOfficeVisit PaymentMethod = "OFFICE_VISIT"

	// PaymentIndrive settles through an Indrive courier run arranged by the
	// customer; the order leaves the building immediately.
	PaymentIndrive PaymentMethod = "INDRIVE"
)

// Validate checks that the payment method is recognized.
func (m PaymentMethod) Validate() error {
	switch m {
	case PaymentCashOnDelivery, PaymentOfficeVisit, PaymentIndrive:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment method",
			fmt.Errorf("%q is not a recognized payment method", string(m)))
	}
}

// DeliversImmediately reports whether orders paid this way start life in
// Delivered rather than Pending.
func (m PaymentMethod) DeliversImmediately() bool {
	return m == PaymentOfficeVisit || m == PaymentIndrive
}
