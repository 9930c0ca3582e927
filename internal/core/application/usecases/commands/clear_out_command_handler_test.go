package commands_test

import (
	"context"
	"errors"
	"testing"

	"basket/internal/core/application/usecases/commands"
	"basket/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClearOutCommandHandler_Handle_DeletesEveryLine(t *testing.T) {
	ctx := context.Background()
	cmd, _ := commands.NewClearOutCommand(7)
	aggregate := newStoredOrder(t, "PRODUCT-1", "PRODUCT-2")
	first, second := aggregate.Line("PRODUCT-1"), aggregate.Line("PRODUCT-2")

	orderRepo := new(MockOrderRepository)
	lineRepo := new(MockOrderLineRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, int64(7)).Return(aggregate, nil).Once(),
		uow.On("OrderLineRepository").Return(lineRepo).Once(),
		lineRepo.On("Delete", ctx, first).Return(nil).Once(),
		lineRepo.On("Delete", ctx, second).Return(nil).Once(),
		orderRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewClearOutCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, aggregate.HasLineCollection())
	assert.Empty(t, aggregate.Lines())
	lineRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestClearOutCommandHandler_Handle_EmptyOrder(t *testing.T) {
	ctx := context.Background()
	cmd, _ := commands.NewClearOutCommand(7)
	aggregate := newStoredOrder(t)

	orderRepo := new(MockOrderRepository)
	lineRepo := new(MockOrderLineRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, int64(7)).Return(aggregate, nil).Once()
	uow.On("OrderLineRepository").Return(lineRepo).Once()
	orderRepo.On("Update", ctx, aggregate).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewClearOutCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	lineRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestClearOutCommandHandler_Handle_MissingLineCollection(t *testing.T) {
	ctx := context.Background()
	cmd, _ := commands.NewClearOutCommand(7)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, int64(7)).Return(newOrderWithoutLines(t), nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewClearOutCommandHandler(factory)
	require.ErrorIs(t, h.Handle(ctx, cmd), ports.ErrProductNotFound)
}

func TestClearOutCommandHandler_Handle_DeleteError(t *testing.T) {
	ctx := context.Background()
	cmd, _ := commands.NewClearOutCommand(7)

	orderRepo := new(MockOrderRepository)
	lineRepo := new(MockOrderLineRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, int64(7)).Return(newStoredOrder(t, "PRODUCT-1", "PRODUCT-2"), nil).Once()
	uow.On("OrderLineRepository").Return(lineRepo).Once()
	lineRepo.On("Delete", ctx, mock.Anything).Return(errors.New("delete error")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewClearOutCommandHandler(factory)
	require.EqualError(t, h.Handle(ctx, cmd), "delete error")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
