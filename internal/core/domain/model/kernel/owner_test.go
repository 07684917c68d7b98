package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnerKind_Validate(t *testing.T) {
	tests := []struct {
		name    string
		kind    kernel.OwnerKind
		wantErr bool
	}{
		{"factory is valid", kernel.OwnerFactory, false},
		{"distributor is valid", kernel.OwnerDistributor, false},
		{"franchise is valid", kernel.OwnerFranchise, false},
		{"unknown is invalid", kernel.OwnerUnknown, true},
		{"out of range is invalid", kernel.OwnerKind(99), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.kind.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNewOwnerRef(t *testing.T) {
	t.Run("valid reference", func(t *testing.T) {
		id := kernel.NewUUID()
		ref, err := kernel.NewOwnerRef(kernel.OwnerFranchise, id)
		require.NoError(t, err)
		assert.Equal(t, kernel.OwnerFranchise, ref.Kind())
		assert.True(t, ref.ID().IsEqual(id))
	})

	t.Run("invalid kind", func(t *testing.T) {
		_, err := kernel.NewOwnerRef(kernel.OwnerUnknown, kernel.NewUUID())
		require.Error(t, err)
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := kernel.NewOwnerRef(kernel.OwnerFactory, kernel.UUID{})
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var ref kernel.OwnerRef
		require.Error(t, ref.Validate())
	})
}

func TestOwnerRef_IsEqual(t *testing.T) {
	id := kernel.NewUUID()
	a, err := kernel.NewOwnerRef(kernel.OwnerFranchise, id)
	require.NoError(t, err)
	b, err := kernel.NewOwnerRef(kernel.OwnerFranchise, id)
	require.NoError(t, err)
	c, err := kernel.NewOwnerRef(kernel.OwnerDistributor, id)
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestRole_CanCreateOrderFor(t *testing.T) {
	tests := []struct {
		name string
		role kernel.Role
		kind kernel.OwnerKind
		want bool
	}{
		{"franchise sells own stock", kernel.RoleFranchise, kernel.OwnerFranchise, true},
		{"franchise cannot sell factory stock", kernel.RoleFranchise, kernel.OwnerFactory, false},
		{"distributor sells own stock", kernel.RoleDistributor, kernel.OwnerDistributor, true},
		{"factory sells own stock", kernel.RoleFactory, kernel.OwnerFactory, true},
		{"factory cannot sell franchise stock", kernel.RoleFactory, kernel.OwnerFranchise, false},
		{"staff may sell any pool", kernel.RoleStaff, kernel.OwnerDistributor, true},
		{"unknown role has no capabilities", kernel.RoleUnknown, kernel.OwnerFranchise, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.CanCreateOrderFor(tt.kind))
		})
	}
}
