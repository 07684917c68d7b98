// Package carriers wires the per-carrier clients into a single resolver.
package carriers

import (
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// Registry maps carriers to their clients. The registry is assembled once
// in the composition root and read-only afterwards.
type Registry struct {
	clients map[order.Carrier]ports.CarrierClient
}

// NewRegistry creates a registry over the given clients, keyed by each
// client's own Name.
func NewRegistry(clients ...ports.CarrierClient) *Registry {
	registry := &Registry{clients: make(map[order.Carrier]ports.CarrierClient, len(clients))}
	for _, client := range clients {
		registry.clients[client.Name()] = client
	}
	return registry
}

// Resolve returns the client registered for the carrier.
func (r *Registry) Resolve(c order.Carrier) (ports.CarrierClient, error) {
	client, ok := r.clients[c]
	if !ok {
		return nil, errs.NewObjectNotFoundError("carrier", c)
	}
	return client, nil
}
