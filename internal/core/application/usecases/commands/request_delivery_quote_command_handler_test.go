package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRequestDeliveryQuoteCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	ord := testOrder(t, time.Now().Add(-time.Hour))

	cmd, err := commands.NewRequestDeliveryQuoteCommand(ord.ID(), "", 2)
	require.NoError(t, err)

	price, err := kernel.NewMoney(1250)
	require.NoError(t, err)
	expiresAt := time.Now().Add(15 * time.Minute)

	orderRepo := new(MockOrderRepository)
	quoteRepo := new(MockQuoteRepository)
	uow := new(MockDeliveryUoW)
	courier := new(MockCourierGateway)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		courier.On("Quote", ctx, mock.AnythingOfType("ports.CourierQuoteRequest")).
			Return(ports.CourierQuote{ProviderQuoteID: "q_19", Price: price, ETAMinutes: 25, ExpiresAt: expiresAt}, nil).
			Once(),
		uow.On("QuoteRepository").Return(quoteRepo).Once(),
		quoteRepo.On("Add", ctx, mock.AnythingOfType("*delivery.Quote")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRequestDeliveryQuoteCommandHandler(factory, courier, "1 Warehouse Way")
	quoteID, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NoError(t, quoteID.Validate())

	// dropoff defaults to the order's shipping address
	quoteReq := courier.Calls[0].Arguments[1].(ports.CourierQuoteRequest)
	assert.Equal(t, "1 Warehouse Way", quoteReq.PickupAddress)
	assert.Equal(t, ord.ShippingAddress(), quoteReq.DropoffAddress)

	stored := quoteRepo.Calls[0].Arguments[1].(*delivery.Quote)
	assert.Equal(t, delivery.QuoteActive, stored.Status())
	assert.Equal(t, int64(1250), stored.Price().Amount())
	assert.Equal(t, 25, stored.ETAMinutes())
	assert.True(t, stored.ExpiresAt().Equal(expiresAt))

	uow.AssertExpectations(t)
}

func TestRequestDeliveryQuoteCommandHandler_Handle_DropoffOverride(t *testing.T) {
	ctx := t.Context()
	ord := testOrder(t, time.Now().Add(-time.Hour))

	cmd, err := commands.NewRequestDeliveryQuoteCommand(ord.ID(), "77 Pine Road", 1)
	require.NoError(t, err)

	price, err := kernel.NewMoney(900)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	quoteRepo := new(MockQuoteRepository)
	uow := new(MockDeliveryUoW)
	courier := new(MockCourierGateway)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("QuoteRepository").Return(quoteRepo)
	orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil)
	quoteRepo.On("Add", ctx, mock.Anything).Return(nil)
	courier.On("Quote", ctx, mock.Anything).
		Return(ports.CourierQuote{Price: price, ETAMinutes: 10, ExpiresAt: time.Now().Add(time.Minute)}, nil)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow)

	handler := commands.NewRequestDeliveryQuoteCommandHandler(factory, courier, "1 Warehouse Way")
	_, err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	quoteReq := courier.Calls[0].Arguments[1].(ports.CourierQuoteRequest)
	assert.Equal(t, "77 Pine Road", quoteReq.DropoffAddress)
}

func TestRequestDeliveryQuoteCommandHandler_Handle_CourierFailure(t *testing.T) {
	ctx := t.Context()
	ord := testOrder(t, time.Now().Add(-time.Hour))

	cmd, err := commands.NewRequestDeliveryQuoteCommand(ord.ID(), "", 1)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	quoteRepo := new(MockQuoteRepository)
	uow := new(MockDeliveryUoW)
	courier := new(MockCourierGateway)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		courier.On("Quote", ctx, mock.Anything).
			Return(ports.CourierQuote{}, errs.NewUpstreamFailureError("courier", `{"error":"rate limited"}`)).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRequestDeliveryQuoteCommandHandler(factory, courier, "1 Warehouse Way")
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrUpstreamFailure)
	quoteRepo.AssertNotCalled(t, "Add")
}

func TestNewRequestDeliveryQuoteCommand_ItemCount(t *testing.T) {
	_, err := commands.NewRequestDeliveryQuoteCommand(kernel.NewUUID(), "", 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
