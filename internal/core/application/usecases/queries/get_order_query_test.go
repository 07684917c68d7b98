package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQueryByID(t *testing.T) {
	orderID := kernel.NewUUID()

	query, err := queries.NewGetOrderQueryByID(orderID)
	require.NoError(t, err)
	assert.NoError(t, query.Validate())
	assert.True(t, orderID.IsEqual(query.OrderID()))
	assert.Empty(t, query.Code())
}

func TestNewGetOrderQueryByCode(t *testing.T) {
	query, err := queries.NewGetOrderQueryByCode("ORD-2024-0001")
	require.NoError(t, err)
	assert.NoError(t, query.Validate())
	assert.Equal(t, "ORD-2024-0001", query.Code())
}

func TestNewGetOrderQuery_Invalid(t *testing.T) {
	t.Run("zero id", func(t *testing.T) {
		_, err := queries.NewGetOrderQueryByID(kernel.UUID{})
		assert.Error(t, err)
	})

	t.Run("empty code", func(t *testing.T) {
		_, err := queries.NewGetOrderQueryByCode("")
		assert.Error(t, err)
	})
}

func TestGetOrderQuery_NotConstructed(t *testing.T) {
	var query queries.GetOrderQuery
	assert.ErrorIs(t, query.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
}

func TestNewGetOrdersQuery(t *testing.T) {
	owner, err := kernel.NewOwnerRef(kernel.OwnerFranchise, kernel.NewUUID())
	require.NoError(t, err)

	t.Run("without status filter", func(t *testing.T) {
		query, queryErr := queries.NewGetOrdersQuery(owner, nil)
		require.NoError(t, queryErr)
		assert.NoError(t, query.Validate())
		assert.True(t, owner.IsEqual(query.Owner()))
		assert.Nil(t, query.Status())
	})

	t.Run("with status filter", func(t *testing.T) {
		status := order.Pending
		query, queryErr := queries.NewGetOrdersQuery(owner, &status)
		require.NoError(t, queryErr)
		require.NotNil(t, query.Status())
		assert.Equal(t, order.Pending, *query.Status())
	})

	t.Run("invalid owner", func(t *testing.T) {
		_, queryErr := queries.NewGetOrdersQuery(kernel.OwnerRef{}, nil)
		assert.Error(t, queryErr)
	})

	t.Run("invalid status", func(t *testing.T) {
		status := order.Status(99)
		_, queryErr := queries.NewGetOrdersQuery(owner, &status)
		assert.Error(t, queryErr)
	})
}

func TestGetOrdersQuery_NotConstructed(t *testing.T) {
	var query queries.GetOrdersQuery
	assert.ErrorIs(t, query.Validate(), queries.ErrGetOrdersQueryIsNotConstructed)
}
