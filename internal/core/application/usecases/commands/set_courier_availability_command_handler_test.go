package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSetCourierAvailabilityCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	testCourier := newTestCourier(t)
	cmd, err := commands.NewSetCourierAvailabilityCommand(testCourier.ID(), false)
	require.NoError(t, err)

	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", ctx, testCourier.ID()).Return(testCourier, nil).Once(),
		courierRepo.On("Update", ctx, testCourier).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSetCourierAvailabilityCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, testCourier.Available())
	courierRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSetCourierAvailabilityCommandHandler_Handle_CourierNotFound(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewSetCourierAvailabilityCommand(newTestCourier(t).ID(), true)
	require.NoError(t, err)

	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", ctx, cmd.CourierID()).
			Return(nil, errs.NewObjectNotFoundError("courierID", cmd.CourierID().String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSetCourierAvailabilityCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestSetCourierAvailabilityCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.SetCourierAvailabilityCommand{} // not constructed properly

	factory := new(MockCourierUoWFactory)
	handler := commands.NewSetCourierAvailabilityCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrSetCourierAvailabilityCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
