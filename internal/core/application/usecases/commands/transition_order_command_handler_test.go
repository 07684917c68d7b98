package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testPendingOrder(t *testing.T, owner kernel.OwnerRef, lines []order.Line) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), owner, testCustomer(), lines,
		order.PaymentCashOnDelivery, decimal.NewFromInt(1000), decimal.NewFromInt(200), decimal.NewFromInt(100),
	)
	require.NoError(t, err)
	return o
}

func TestTransitionOrderCommandHandler_Handle_NoRestock(t *testing.T) {
	ctx := t.Context()
	owner := testOwner(t, kernel.OwnerFranchise)
	o := testPendingOrder(t, owner, []order.Line{{ProductID: kernel.NewUUID(), Quantity: 1}})
	actor := kernel.NewUUID()
	cmd, err := commands.NewTransitionOrderCommand(o.ID(), order.Verified, actor, "checked by phone")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, order.Verified, updated.Status())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_CancelRestocksEveryLine(t *testing.T) {
	ctx := t.Context()
	owner := testOwner(t, kernel.OwnerFranchise)
	first := kernel.NewUUID()
	second := kernel.NewUUID()
	o := testPendingOrder(t, owner, []order.Line{
		{ProductID: first, Quantity: 2},
		{ProductID: second, Quantity: 5},
	})
	actor := kernel.NewUUID()
	cmd, err := commands.NewTransitionOrderCommand(o.ID(), order.Cancelled, actor, "customer declined")
	require.NoError(t, err)

	firstRecord := testRecord(t, owner, first, 0)
	secondRecord := testRecord(t, owner, second, 3)

	orderRepo := new(MockOrderRepository)
	invRepo := new(MockInventoryRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("InventoryRepository").Return(invRepo).Once(),
		invRepo.On("GetForUpdate", mock.Anything, owner, first).Return(firstRecord, nil).Once(),
		invRepo.On("Update", mock.Anything, firstRecord).Return(nil).Once(),
		invRepo.On("GetForUpdate", mock.Anything, owner, second).Return(secondRecord, nil).Once(),
		invRepo.On("Update", mock.Anything, secondRecord).Return(nil).Once(),
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, order.Cancelled, updated.Status())
	require.Equal(t, 2, firstRecord.Quantity())
	require.Equal(t, 8, secondRecord.Quantity())
	orderRepo.AssertExpectations(t)
	invRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_FamilyHopDoesNotRestock(t *testing.T) {
	ctx := t.Context()
	owner := testOwner(t, kernel.OwnerFranchise)
	o := testPendingOrder(t, owner, []order.Line{{ProductID: kernel.NewUUID(), Quantity: 2}})
	actor := kernel.NewUUID()

	// Already inside the cancelled family.
	_, err := o.Transition(order.Cancelled, actor, "")
	require.NoError(t, err)

	cmd, err := commands.NewTransitionOrderCommand(o.ID(), order.ReturnedByCustomer, actor, "came back")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, order.ReturnedByCustomer, updated.Status())
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_SameStatusIsNoOp(t *testing.T) {
	ctx := t.Context()
	owner := testOwner(t, kernel.OwnerFranchise)
	o := testPendingOrder(t, owner, []order.Line{{ProductID: kernel.NewUUID(), Quantity: 1}})
	actor := kernel.NewUUID()
	cmd, err := commands.NewTransitionOrderCommand(o.ID(), order.Pending, actor, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Empty(t, updated.Changes())
	orderRepo.AssertExpectations(t)
}
