package commands_test

import (
	"log/slog"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/delivery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExpireQuotesCommandHandler_Handle_NothingStale(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewExpireQuotesCommand()

	quoteRepo := new(MockQuoteRepository)
	uow := new(MockDeliveryUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("QuoteRepository").Return(quoteRepo).Once(),
		quoteRepo.On("GetAllActiveExpiredBefore", ctx, mock.AnythingOfType("time.Time")).
			Return([]*delivery.Quote{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewExpireQuotesCommandHandler(factory, slog.Default())
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	uow.AssertExpectations(t)
	quoteRepo.AssertExpectations(t)
}

func TestExpireQuotesCommandHandler_Handle_ExpiresStaleQuotes(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewExpireQuotesCommand()

	ord := testOrder(t, time.Now().Add(-time.Hour))
	first := activeQuote(t, ord.ID(), time.Now().Add(-10*time.Minute))
	second := activeQuote(t, ord.ID(), time.Now().Add(-time.Minute))

	quoteRepo := new(MockQuoteRepository)
	uow := new(MockDeliveryUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("QuoteRepository").Return(quoteRepo).Once(),
		quoteRepo.On("GetAllActiveExpiredBefore", ctx, mock.AnythingOfType("time.Time")).
			Return([]*delivery.Quote{first, second}, nil).Once(),
		uow.On("QuoteRepository").Return(quoteRepo).Once(),
		quoteRepo.On("Update", ctx, first).Return(nil).Once(),
		uow.On("QuoteRepository").Return(quoteRepo).Once(),
		quoteRepo.On("Update", ctx, second).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewExpireQuotesCommandHandler(factory, slog.Default())
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.QuoteExpired, first.Status())
	assert.Equal(t, delivery.QuoteExpired, second.Status())
	uow.AssertExpectations(t)
	quoteRepo.AssertExpectations(t)
}

func TestExpireQuotesCommandHandler_Handle_RepositoryErrorPropagates(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewExpireQuotesCommand()

	quoteRepo := new(MockQuoteRepository)
	uow := new(MockDeliveryUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("QuoteRepository").Return(quoteRepo).Once(),
		quoteRepo.On("GetAllActiveExpiredBefore", ctx, mock.AnythingOfType("time.Time")).
			Return([]*delivery.Quote(nil), assert.AnError).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewExpireQuotesCommandHandler(factory, slog.Default())
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, assert.AnError)
	uow.AssertExpectations(t)
}

func TestExpireQuotesCommandHandler_Handle_ZeroValueCommandRejected(t *testing.T) {
	ctx := t.Context()

	factory := new(MockDeliveryUoWFactory)
	handler := commands.NewExpireQuotesCommandHandler(factory, slog.Default())

	err := handler.Handle(ctx, commands.ExpireQuotesCommand{})

	require.ErrorIs(t, err, commands.ErrExpireQuotesCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
