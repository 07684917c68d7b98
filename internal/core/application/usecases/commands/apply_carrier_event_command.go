package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

var ErrApplyCarrierEventCommandIsNotConstructed = errors.New(
	"ApplyCarrierEventCommand must be created via NewApplyCarrierEventCommand constructor",
)

// ApplyCarrierEventCommand represents one inbound status event from a
// carrier, delivered by webhook or collected by the polling job. The raw
// status string stays untouched until the carrier's own adapter maps it.
type ApplyCarrierEventCommand struct { //nolint:recvcheck //using for validation
	carrier      order.Carrier
	trackingCode string
	rawStatus    string
	comment      string
	actorID      kernel.UUID

	guard kernel.ConstructorGuard
}

// NewApplyCarrierEventCommand creates a carrier-event command. The actor is
// the system identity that carrier-driven transitions are attributed to.
func NewApplyCarrierEventCommand(
	carrier order.Carrier, trackingCode, rawStatus, comment string, actorID kernel.UUID,
) (ApplyCarrierEventCommand, error) {
	if err := errors.Join(
		carrier.Validate(),
		actorID.Validate(),
	); err != nil {
		return ApplyCarrierEventCommand{}, err
	}
	if trackingCode == "" {
		return ApplyCarrierEventCommand{}, errs.NewValueIsRequiredError("trackingCode")
	}
	if rawStatus == "" {
		return ApplyCarrierEventCommand{}, errs.NewValueIsRequiredError("rawStatus")
	}

	return ApplyCarrierEventCommand{
		carrier:      carrier,
		trackingCode: trackingCode,
		rawStatus:    rawStatus,
		comment:      comment,
		actorID:      actorID,
		guard:        kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyCarrierEventCommand) Validate() error {
	return c.guard.Validate(ErrApplyCarrierEventCommandIsNotConstructed)
}

// Carrier returns which carrier sent the event.
func (c ApplyCarrierEventCommand) Carrier() order.Carrier {
	return c.carrier
}

// TrackingCode returns the carrier's reference for the order.
func (c ApplyCarrierEventCommand) TrackingCode() string {
	return c.trackingCode
}

// RawStatus returns the carrier's native status string.
func (c ApplyCarrierEventCommand) RawStatus() string {
	return c.rawStatus
}

// Comment returns the optional carrier-provided note.
func (c ApplyCarrierEventCommand) Comment() string {
	return c.comment
}

// ActorID returns the system identity attributed to the transition.
func (c ApplyCarrierEventCommand) ActorID() kernel.UUID {
	return c.actorID
}
