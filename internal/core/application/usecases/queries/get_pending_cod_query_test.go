package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetPendingCODQuery(t *testing.T) {
	franchiseID := kernel.NewUUID()

	query, err := queries.NewGetPendingCODQuery(franchiseID)
	require.NoError(t, err)
	assert.NoError(t, query.Validate())
	assert.True(t, franchiseID.IsEqual(query.FranchiseID()))
}

func TestNewGetPendingCODQuery_ZeroFranchise(t *testing.T) {
	_, err := queries.NewGetPendingCODQuery(kernel.UUID{})
	assert.Error(t, err)
}

func TestGetPendingCODQuery_NotConstructed(t *testing.T) {
	var query queries.GetPendingCODQuery
	assert.ErrorIs(t, query.Validate(), queries.ErrGetPendingCODQueryIsNotConstructed)
}
