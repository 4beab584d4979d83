package commands_test

import (
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testOrder(t *testing.T, createdAt time.Time) *order.Order {
	t.Helper()

	total, err := kernel.NewMoney(4500)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), total, "pay_777", "9 Elm Street", createdAt)
	require.NoError(t, err)
	return o
}

func TestInitiateReturnCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	ord := testOrder(t, time.Now().Add(-48*time.Hour))

	cmd, err := commands.NewInitiateReturnCommand(ord.ID(), "damaged on arrival", []string{"item-1"}, "box was crushed")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	returnRepo := new(MockReturnRepository)
	uow := new(MockReturnUoW)
	notifier := new(MockNotifier)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		uow.On("ReturnRepository").Return(returnRepo).Once(),
		returnRepo.On("Add", ctx, mock.AnythingOfType("*returns.Return")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	notifier.On("NotifyCustomer", ctx, ord.CustomerID(), "return_initiated", mock.AnythingOfType("string")).Once()
	notifier.On("NotifyMerchant", ctx, "return_initiated", mock.AnythingOfType("string")).Return(nil).Once()

	factory := new(MockReturnUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewInitiateReturnCommandHandler(factory, notifier)
	returnID, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)

	// the stored return starts Initiated with the order total, and the
	// caller gets its id back
	addCall := returnRepo.Calls[0]
	stored := addCall.Arguments[1].(*returns.Return)
	assert.True(t, returnID.IsEqual(stored.ID()))
	assert.Equal(t, returns.Initiated, stored.Status())
	assert.Equal(t, ord.Total().Amount(), stored.Amount().Amount())
	assert.Equal(t, []string{"item-1"}, stored.ItemIDs())

	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestInitiateReturnCommandHandler_Handle_WindowExpired(t *testing.T) {
	ctx := t.Context()
	ord := testOrder(t, time.Now().Add(-45*24*time.Hour))

	cmd, err := commands.NewInitiateReturnCommand(ord.ID(), "changed my mind", []string{"item-1"}, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockReturnUoW)
	notifier := new(MockNotifier)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReturnUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewInitiateReturnCommandHandler(factory, notifier)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrWindowExpired)
	notifier.AssertNotCalled(t, "NotifyCustomer")
}

func TestInitiateReturnCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	cmd, err := commands.NewInitiateReturnCommand(orderID, "damaged", []string{"item-1"}, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockReturnUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(nil, errs.NewObjectNotFoundError("orderId", orderID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReturnUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewInitiateReturnCommandHandler(factory, new(MockNotifier))
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestInitiateReturnCommandHandler_Handle_MerchantNotifyFailure(t *testing.T) {
	ctx := t.Context()
	ord := testOrder(t, time.Now().Add(-time.Hour))

	cmd, err := commands.NewInitiateReturnCommand(ord.ID(), "damaged", []string{"item-1"}, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	returnRepo := new(MockReturnRepository)
	uow := new(MockReturnUoW)
	notifier := new(MockNotifier)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		uow.On("ReturnRepository").Return(returnRepo).Once(),
		returnRepo.On("Add", ctx, mock.AnythingOfType("*returns.Return")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	notifier.On("NotifyCustomer", ctx, ord.CustomerID(), "return_initiated", mock.AnythingOfType("string")).Once()
	notifier.On("NotifyMerchant", ctx, "return_initiated", mock.AnythingOfType("string")).
		Return(errors.New("smtp down")).Once()

	factory := new(MockReturnUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewInitiateReturnCommandHandler(factory, notifier)
	_, err = handler.Handle(ctx, cmd)

	// merchant failures surface even though the return is persisted
	require.EqualError(t, err, "smtp down")
}

func TestNewInitiateReturnCommand_Validation(t *testing.T) {
	orderID := kernel.NewUUID()

	t.Run("requires_reason", func(t *testing.T) {
		_, err := commands.NewInitiateReturnCommand(orderID, "", []string{"item-1"}, "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires_items", func(t *testing.T) {
		_, err := commands.NewInitiateReturnCommand(orderID, "damaged", nil, "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_blank_item", func(t *testing.T) {
		_, err := commands.NewInitiateReturnCommand(orderID, "damaged", []string{""}, "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero_value_command_fails_validation", func(t *testing.T) {
		cmd := commands.InitiateReturnCommand{}
		require.ErrorIs(t, cmd.Validate(), commands.ErrInitiateReturnCommandIsNotConstructed)
	})
}
