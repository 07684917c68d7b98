package commands_test

import (
	"context"
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockInventoryUoW struct{ mock.Mock }

func (m *MockInventoryUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockInventoryUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockInventoryUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockInventoryUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}

type MockInventoryUoWFactory struct{ mock.Mock }

func (m *MockInventoryUoWFactory) Create() commands.InventoryUoW {
	args := m.Called()
	return args.Get(0).(commands.InventoryUoW)
}

func TestAddStockCommandHandler_Handle_CreditsExistingRecord(t *testing.T) {
	ctx := t.Context()
	owner := testOwner(t, kernel.OwnerDistributor)
	productID := kernel.NewUUID()
	actor := kernel.NewUUID()
	cmd, err := commands.NewAddStockCommand(owner, productID, "Incense Pack", inventory.StockReadyToDispatch, 25, actor)
	require.NoError(t, err)

	record := testRecord(t, owner, productID, 5)

	invRepo := new(MockInventoryRepository)
	uow := new(MockInventoryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("InventoryRepository").Return(invRepo).Once(),
		invRepo.On("GetForUpdate", mock.Anything, owner, productID).Return(record, nil).Once(),
		invRepo.On("Update", mock.Anything, record).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockInventoryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddStockCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 30, updated.Quantity())
	invRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAddStockCommandHandler_Handle_CreatesMissingRecord(t *testing.T) {
	ctx := t.Context()
	owner := testOwner(t, kernel.OwnerFranchise)
	productID := kernel.NewUUID()
	actor := kernel.NewUUID()
	cmd, err := commands.NewAddStockCommand(owner, productID, "Incense Pack", inventory.StockIncoming, 12, actor)
	require.NoError(t, err)

	invRepo := new(MockInventoryRepository)
	uow := new(MockInventoryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("InventoryRepository").Return(invRepo).Once(),
		invRepo.On("GetForUpdate", mock.Anything, owner, productID).
			Return(nil, errs.NewObjectNotFoundError("productID", productID)).Once(),
		invRepo.On("Add", mock.Anything, mock.AnythingOfType("*inventory.Record")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockInventoryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddStockCommandHandler(factory)
	created, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 12, created.Quantity())
	require.Equal(t, inventory.StockIncoming, created.Status())
	require.True(t, owner.IsEqual(created.Owner()))
	invRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAddStockCommandHandler_Handle_LookupError(t *testing.T) {
	ctx := t.Context()
	owner := testOwner(t, kernel.OwnerFranchise)
	productID := kernel.NewUUID()
	cmd, err := commands.NewAddStockCommand(
		owner, productID, "Incense Pack", inventory.StockReadyToDispatch, 3, kernel.NewUUID(),
	)
	require.NoError(t, err)

	invRepo := new(MockInventoryRepository)
	uow := new(MockInventoryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("InventoryRepository").Return(invRepo).Once(),
		invRepo.On("GetForUpdate", mock.Anything, owner, productID).
			Return(nil, errors.New("connection reset")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockInventoryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddStockCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertExpectations(t)
}

func TestNewAddStockCommand_NonPositiveQuantity(t *testing.T) {
	owner := testOwner(t, kernel.OwnerFranchise)
	_, err := commands.NewAddStockCommand(
		owner, kernel.NewUUID(), "Incense Pack", inventory.StockReadyToDispatch, 0, kernel.NewUUID(),
	)
	require.Error(t, err)
}
