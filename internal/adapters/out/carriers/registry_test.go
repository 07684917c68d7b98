package carriers_test

import (
	"testing"

	"fulfillment/internal/adapters/out/carriers"
	"fulfillment/internal/adapters/out/carriers/dash"
	"fulfillment/internal/adapters/out/carriers/ydm"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Resolve(t *testing.T) {
	registry := carriers.NewRegistry(
		dash.NewClient(dash.Config{}),
		ydm.NewClient(ydm.Config{}, nil),
	)

	client, err := registry.Resolve(order.CarrierDash)
	require.NoError(t, err)
	assert.Equal(t, order.CarrierDash, client.Name())

	client, err = registry.Resolve(order.CarrierYDM)
	require.NoError(t, err)
	assert.Equal(t, order.CarrierYDM, client.Name())
}

func TestRegistry_Resolve_UnknownCarrier(t *testing.T) {
	registry := carriers.NewRegistry(dash.NewClient(dash.Config{}))

	_, err := registry.Resolve(order.CarrierPickNDrop)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}
