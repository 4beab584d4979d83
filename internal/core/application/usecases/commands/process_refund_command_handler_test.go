package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func receivedReturn(t *testing.T, ord *order.Order) *returns.Return {
	t.Helper()

	r := pendingReturn(t, orderFixture{id: ord.ID(), customerID: ord.CustomerID(), total: ord.Total()})
	require.NoError(t, r.Approve(nil, time.Now()))
	require.NoError(t, r.SchedulePickup("job_9", time.Now().Add(time.Hour)))
	require.NoError(t, r.AdvanceTo(returns.Received))
	return r
}

func TestProcessRefundCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	ord := testOrder(t, time.Now().Add(-48*time.Hour))
	ret := receivedReturn(t, ord)

	cmd, err := commands.NewProcessRefundCommand(ret.ID())
	require.NoError(t, err)

	returnRepo := new(MockReturnRepository)
	orderRepo := new(MockOrderRepository)
	refundRepo := new(MockRefundRecordRepository)
	uow := new(MockReturnUoW)
	payments := new(MockPaymentsGateway)
	notifier := new(MockNotifier)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ReturnRepository").Return(returnRepo).Once(),
		returnRepo.On("Get", ctx, ret.ID()).Return(ret, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		payments.On("Refund", ctx, ord.PaymentRef(), ret.Amount()).Return("re_8812", nil).Once(),
		uow.On("ReturnRepository").Return(returnRepo).Once(),
		returnRepo.On("Update", ctx, ret).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, ord).Return(nil).Once(),
		uow.On("RefundRecordRepository").Return(refundRepo).Once(),
		refundRepo.On("Add", ctx, mock.AnythingOfType("*returns.RefundRecord")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	notifier.On("NotifyCustomer", ctx, ret.CustomerID(), "refund_processed", mock.AnythingOfType("string")).Once()

	factory := new(MockReturnUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewProcessRefundCommandHandler(factory, payments, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, returns.Refunded, ret.Status())
	assert.Equal(t, order.Refunded, ord.Status())

	record := refundRepo.Calls[0].Arguments[1].(*returns.RefundRecord)
	assert.Equal(t, "re_8812", record.ProviderRefundID())
	assert.Equal(t, ret.Amount().Amount(), record.Amount().Amount())

	uow.AssertExpectations(t)
	payments.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestProcessRefundCommandHandler_Handle_NotReceived(t *testing.T) {
	ctx := t.Context()
	ord := testOrder(t, time.Now().Add(-48*time.Hour))
	ret := pendingReturn(t, orderFixture{id: ord.ID(), customerID: ord.CustomerID(), total: ord.Total()})

	cmd, err := commands.NewProcessRefundCommand(ret.ID())
	require.NoError(t, err)

	returnRepo := new(MockReturnRepository)
	uow := new(MockReturnUoW)
	payments := new(MockPaymentsGateway)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ReturnRepository").Return(returnRepo).Once(),
		returnRepo.On("Get", ctx, ret.ID()).Return(ret, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReturnUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewProcessRefundCommandHandler(factory, payments, new(MockNotifier))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidState)
	// the payment provider is never reached from the wrong status
	payments.AssertNotCalled(t, "Refund")
}

func TestProcessRefundCommandHandler_Handle_ProviderFailure(t *testing.T) {
	ctx := t.Context()
	ord := testOrder(t, time.Now().Add(-48*time.Hour))
	ret := receivedReturn(t, ord)

	cmd, err := commands.NewProcessRefundCommand(ret.ID())
	require.NoError(t, err)

	returnRepo := new(MockReturnRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockReturnUoW)
	payments := new(MockPaymentsGateway)
	notifier := new(MockNotifier)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ReturnRepository").Return(returnRepo).Once(),
		returnRepo.On("Get", ctx, ret.ID()).Return(ret, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		payments.On("Refund", ctx, ord.PaymentRef(), ret.Amount()).
			Return("", errs.NewUpstreamFailureError("payments", `{"error":"insufficient balance"}`)).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReturnUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewProcessRefundCommandHandler(factory, payments, notifier)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrUpstreamFailure)
	assert.Equal(t, returns.Received, ret.Status())
	notifier.AssertNotCalled(t, "NotifyCustomer")
}
