package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/history"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdvanceOrderCommandHandler_Handle_ToEnRoute(t *testing.T) {
	ctx := t.Context()

	testOrder := newTestOrder(t)
	testCourier := newTestCourier(t)
	require.NoError(t, testOrder.Assign(testCourier.ID(), time.Now().UTC()))
	testCourier.MarkBusy()

	actorID := kernel.NewUUID()
	cmd, err := commands.NewAdvanceOrderCommand(testOrder.ID(), actorID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	historyRepo := new(MockHistoryRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("UpdateInStatus", ctx, testOrder, order.Assigned).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		historyRepo.On("Add", ctx, mock.MatchedBy(func(e *history.Entry) bool {
			return e.Status() == order.EnRoute
		})).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdvanceOrderCommandHandler(factory, silentReporter(historyRepo))
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.EnRoute, testOrder.Status())
	assert.Nil(t, testOrder.CommissionAmount())
	courierRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	orderRepo.AssertExpectations(t)
	historyRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAdvanceOrderCommandHandler_Handle_ToDelivered(t *testing.T) {
	ctx := t.Context()

	testOrder := newTestOrder(t)
	testCourier := newTestCourier(t)
	now := time.Now().UTC()
	require.NoError(t, testOrder.Assign(testCourier.ID(), now))
	require.NoError(t, testOrder.Advance(now))
	testCourier.MarkBusy()

	actorID := kernel.NewUUID()
	cmd, err := commands.NewAdvanceOrderCommand(testOrder.ID(), actorID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	historyRepo := new(MockHistoryRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("UpdateInStatus", ctx, testOrder, order.EnRoute).Return(nil).Once(),
		courierRepo.On("Get", ctx, testCourier.ID()).Return(testCourier, nil).Once(),
		courierRepo.On("Update", ctx, testCourier).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		historyRepo.On("Add", ctx, mock.MatchedBy(func(e *history.Entry) bool {
			return e.Status() == order.Delivered
		})).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdvanceOrderCommandHandler(factory, silentReporter(historyRepo))
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, testOrder.Status())
	require.NotNil(t, testOrder.CommissionAmount())
	assert.Equal(t, int64(10000), testOrder.CommissionAmount().Amount())
	require.NotNil(t, testOrder.DeliveredAt())
	assert.True(t, testCourier.Available())
	orderRepo.AssertExpectations(t)
	courierRepo.AssertExpectations(t)
	historyRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAdvanceOrderCommandHandler_Handle_PendingOrderInvalidState(t *testing.T) {
	ctx := t.Context()

	testOrder := newTestOrder(t)
	cmd, err := commands.NewAdvanceOrderCommand(testOrder.ID(), kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	historyRepo := new(MockHistoryRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdvanceOrderCommandHandler(factory, silentReporter(historyRepo))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Equal(t, order.Pending, testOrder.Status())
	historyRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAdvanceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AdvanceOrderCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	historyRepo := new(MockHistoryRepository)
	handler := commands.NewAdvanceOrderCommandHandler(factory, silentReporter(historyRepo))
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAdvanceOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
