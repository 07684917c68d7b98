package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// Branch is a serviceable carrier location, as reported by the carrier's
// branch listing endpoint.
type Branch struct {
	ID   string
	Name string
	City string
}

// CarrierClient is the outbound contract implemented once per external
// logistics provider. Implementations own their carrier's raw-status
// vocabulary; no raw status string crosses this boundary.
type CarrierClient interface {
	// Name identifies the carrier this client talks to.
	Name() order.Carrier

	// Dispatch registers the order with the carrier and returns the
	// carrier's tracking identifier. Network failures and timeouts surface
	// as CarrierUnavailableError; the caller must leave the order in its
	// pre-dispatch state.
	Dispatch(ctx context.Context, o *order.Order) (string, error)

	// MapStatus translates the carrier's raw status string into the
	// canonical vocabulary. The second result is false for statuses the
	// adapter does not recognize; the caller records a remark and performs
	// no transition.
	MapStatus(raw string) (order.Status, bool)

	// Track fetches the carrier's current raw status for a tracking code.
	// The raw string feeds MapStatus; the poll job treats the pair as one
	// carrier event.
	Track(ctx context.Context, trackingCode string) (string, error)

	// Branches fetches the carrier's serviceable branch list.
	Branches(ctx context.Context) ([]Branch, error)
}

// CarrierResolver looks up the client for a carrier.
type CarrierResolver interface {
	// Resolve returns the client registered for the carrier, or an
	// object-not-found error for carriers without an integration.
	Resolve(c order.Carrier) (CarrierClient, error)
}

// CarrierCredential is a carrier session credential cached between dispatches.
type CarrierCredential struct {
	Carrier   order.Carrier
	Token     string
	ExpiresAt time.Time
}

// Expired reports whether the credential is unusable at the given time.
func (c CarrierCredential) Expired(now time.Time) bool {
	return c.Token == "" || !now.Before(c.ExpiresAt)
}

// CredentialStore persists carrier session credentials so a refreshed token
// is reused across requests instead of re-authenticating every dispatch.
type CredentialStore interface {
	// Get returns the cached credential for a carrier, or nil when none is stored.
	Get(ctx context.Context, c order.Carrier) (*CarrierCredential, error)

	// Put stores or replaces the credential for a carrier.
	Put(ctx context.Context, cred CarrierCredential) error
}
