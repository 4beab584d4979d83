package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	ord := testOrder(t, time.Now().Add(-time.Hour))
	del := confirmedDelivery(t, ord)

	cmd, err := commands.NewCancelDeliveryCommand(del.ID(), "customer requested")
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	courier := new(MockCourierGateway)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, del.ID()).Return(del, nil).Once(),
		courier.On("CancelJob", ctx, "job_12").Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Update", ctx, del).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelDeliveryCommandHandler(factory, courier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.Cancelled, del.Status())
	assert.Equal(t, "customer requested", del.CancelReason())
	uow.AssertExpectations(t)
	courier.AssertExpectations(t)
}

func TestCancelDeliveryCommandHandler_Handle_CourierRefusalPropagates(t *testing.T) {
	ctx := t.Context()
	ord := testOrder(t, time.Now().Add(-time.Hour))
	del := confirmedDelivery(t, ord)

	cmd, err := commands.NewCancelDeliveryCommand(del.ID(), "customer requested")
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	courier := new(MockCourierGateway)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, del.ID()).Return(del, nil).Once(),
		courier.On("CancelJob", ctx, "job_12").
			Return(errs.NewUpstreamFailureError("courier", `{"error":"already picked up"}`)).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelDeliveryCommandHandler(factory, courier)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrUpstreamFailure)
	assert.Equal(t, delivery.Confirmed, del.Status())
	deliveryRepo.AssertNotCalled(t, "Update")
}

func TestCancelDeliveryCommandHandler_Handle_TerminalDelivery(t *testing.T) {
	ctx := t.Context()
	ord := testOrder(t, time.Now().Add(-time.Hour))
	del := confirmedDelivery(t, ord)
	require.NoError(t, del.AdvanceTo(delivery.Delivered))

	cmd, err := commands.NewCancelDeliveryCommand(del.ID(), "too late")
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	courier := new(MockCourierGateway)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, del.ID()).Return(del, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelDeliveryCommandHandler(factory, courier)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidState)
	courier.AssertNotCalled(t, "CancelJob")
}
