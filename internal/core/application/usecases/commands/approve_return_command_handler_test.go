package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingReturn(t *testing.T, ord orderFixture) *returns.Return {
	t.Helper()

	r, err := returns.NewReturn(
		kernel.NewUUID(), ord.id, ord.customerID, "damaged",
		[]string{"item-1"}, "", ord.total, time.Now().Add(-time.Hour),
	)
	require.NoError(t, err)
	return r
}

type orderFixture struct {
	id         kernel.UUID
	customerID kernel.UUID
	total      kernel.Money
}

func TestApproveReturnCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	ord := testOrder(t, time.Now().Add(-48*time.Hour))
	ret := pendingReturn(t, orderFixture{id: ord.ID(), customerID: ord.CustomerID(), total: ord.Total()})

	cmd, err := commands.NewApproveReturnCommand(ret.ID(), nil)
	require.NoError(t, err)

	pickupAt := time.Now().Add(24 * time.Hour)
	job := ports.CourierJob{JobID: "job_551", PickupAt: pickupAt, RawResponse: `{"id":"job_551"}`}

	returnRepo := new(MockReturnRepository)
	orderRepo := new(MockOrderRepository)
	jobRecordRepo := new(MockJobRecordRepository)
	approveUoW := new(MockReturnUoW)
	scheduleUoW := new(MockReturnUoW)
	courier := new(MockCourierGateway)
	notifier := new(MockNotifier)

	mock.InOrder(
		approveUoW.On("Begin", ctx).Return(nil).Once(),
		approveUoW.On("ReturnRepository").Return(returnRepo).Once(),
		returnRepo.On("Get", ctx, ret.ID()).Return(ret, nil).Once(),
		approveUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		approveUoW.On("ReturnRepository").Return(returnRepo).Once(),
		returnRepo.On("Update", ctx, ret).Return(nil).Once(),
		approveUoW.On("Commit", ctx).Return(nil).Once(),
		approveUoW.On("Rollback", ctx).Return(nil).Once(),

		courier.On("CreateJob", ctx, mock.AnythingOfType("ports.CourierJobRequest")).Return(job, nil).Once(),

		scheduleUoW.On("Begin", ctx).Return(nil).Once(),
		scheduleUoW.On("ReturnRepository").Return(returnRepo).Once(),
		returnRepo.On("Get", ctx, ret.ID()).Return(ret, nil).Once(),
		scheduleUoW.On("ReturnRepository").Return(returnRepo).Once(),
		returnRepo.On("Update", ctx, ret).Return(nil).Once(),
		scheduleUoW.On("JobRecordRepository").Return(jobRecordRepo).Once(),
		jobRecordRepo.On("Add", ctx, mock.AnythingOfType("*delivery.JobRecord")).Return(nil).Once(),
		scheduleUoW.On("Commit", ctx).Return(nil).Once(),
		scheduleUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	notifier.On("NotifyCustomer", ctx, ret.CustomerID(), "return_approved", mock.AnythingOfType("string")).Once()

	factory := new(MockReturnUoWFactory)
	factory.On("Create").Return(approveUoW).Once()
	factory.On("Create").Return(scheduleUoW).Once()

	handler := commands.NewApproveReturnCommandHandler(factory, courier, notifier, "1 Warehouse Way")
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, returns.PickupScheduled, ret.Status())
	require.NotNil(t, ret.CourierJobID())
	assert.Equal(t, "job_551", *ret.CourierJobID())

	// the courier picks up at the customer's shipping address
	jobReq := courier.Calls[0].Arguments[1].(ports.CourierJobRequest)
	assert.Equal(t, ord.ShippingAddress(), jobReq.PickupAddress)
	assert.Equal(t, "1 Warehouse Way", jobReq.DropoffAddress)

	approveUoW.AssertExpectations(t)
	scheduleUoW.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestApproveReturnCommandHandler_Handle_AmountOverride(t *testing.T) {
	ctx := t.Context()
	ord := testOrder(t, time.Now().Add(-48*time.Hour))
	ret := pendingReturn(t, orderFixture{id: ord.ID(), customerID: ord.CustomerID(), total: ord.Total()})

	override, err := kernel.NewMoney(1500)
	require.NoError(t, err)

	cmd, err := commands.NewApproveReturnCommand(ret.ID(), &override)
	require.NoError(t, err)

	returnRepo := new(MockReturnRepository)
	orderRepo := new(MockOrderRepository)
	jobRecordRepo := new(MockJobRecordRepository)
	uow := new(MockReturnUoW)
	courier := new(MockCourierGateway)
	notifier := new(MockNotifier)

	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("ReturnRepository").Return(returnRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("JobRecordRepository").Return(jobRecordRepo)
	returnRepo.On("Get", ctx, ret.ID()).Return(ret, nil)
	returnRepo.On("Update", ctx, ret).Return(nil)
	orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil)
	jobRecordRepo.On("Add", ctx, mock.AnythingOfType("*delivery.JobRecord")).Return(nil)
	courier.On("CreateJob", ctx, mock.Anything).
		Return(ports.CourierJob{JobID: "job_1", PickupAt: time.Now().Add(time.Hour)}, nil)
	notifier.On("NotifyCustomer", ctx, ret.CustomerID(), "return_approved", mock.Anything)

	factory := new(MockReturnUoWFactory)
	factory.On("Create").Return(uow)

	handler := commands.NewApproveReturnCommandHandler(factory, courier, notifier, "1 Warehouse Way")
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, int64(1500), ret.Amount().Amount())
}

func TestApproveReturnCommandHandler_Handle_CourierFailureLeavesApproved(t *testing.T) {
	ctx := t.Context()
	ord := testOrder(t, time.Now().Add(-48*time.Hour))
	ret := pendingReturn(t, orderFixture{id: ord.ID(), customerID: ord.CustomerID(), total: ord.Total()})

	cmd, err := commands.NewApproveReturnCommand(ret.ID(), nil)
	require.NoError(t, err)

	returnRepo := new(MockReturnRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockReturnUoW)
	courier := new(MockCourierGateway)
	notifier := new(MockNotifier)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ReturnRepository").Return(returnRepo).Once(),
		returnRepo.On("Get", ctx, ret.ID()).Return(ret, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		uow.On("ReturnRepository").Return(returnRepo).Once(),
		returnRepo.On("Update", ctx, ret).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		courier.On("CreateJob", ctx, mock.Anything).
			Return(ports.CourierJob{}, errs.NewUpstreamFailureError("courier", `{"error":"no capacity"}`)).
			Once(),
	)

	factory := new(MockReturnUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewApproveReturnCommandHandler(factory, courier, notifier, "1 Warehouse Way")
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrUpstreamFailure)
	// approval survived the courier failure, pickup stays unscheduled
	assert.Equal(t, returns.Approved, ret.Status())
	assert.Nil(t, ret.CourierJobID())
	notifier.AssertNotCalled(t, "NotifyCustomer")
}

func TestApproveReturnCommandHandler_Handle_PickupAlreadyScheduled(t *testing.T) {
	ctx := t.Context()
	ord := testOrder(t, time.Now().Add(-48*time.Hour))
	ret := pendingReturn(t, orderFixture{id: ord.ID(), customerID: ord.CustomerID(), total: ord.Total()})
	require.NoError(t, ret.Approve(nil, time.Now()))
	require.NoError(t, ret.SchedulePickup("job_882", time.Now().Add(24*time.Hour)))

	cmd, err := commands.NewApproveReturnCommand(ret.ID(), nil)
	require.NoError(t, err)

	returnRepo := new(MockReturnRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockReturnUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ReturnRepository").Return(returnRepo).Once(),
		returnRepo.On("Get", ctx, ret.ID()).Return(ret, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReturnUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewApproveReturnCommandHandler(factory, new(MockCourierGateway), new(MockNotifier), "1 Warehouse Way")
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestApproveReturnCommandHandler_Handle_RetriesPickupAfterCourierOutage(t *testing.T) {
	ctx := t.Context()
	ord := testOrder(t, time.Now().Add(-48*time.Hour))
	ret := pendingReturn(t, orderFixture{id: ord.ID(), customerID: ord.CustomerID(), total: ord.Total()})

	cmd, err := commands.NewApproveReturnCommand(ret.ID(), nil)
	require.NoError(t, err)

	returnRepo := new(MockReturnRepository)
	orderRepo := new(MockOrderRepository)
	jobRecordRepo := new(MockJobRecordRepository)
	courier := new(MockCourierGateway)
	notifier := new(MockNotifier)

	returnRepo.On("Get", mock.Anything, ret.ID()).Return(ret, nil)
	returnRepo.On("Update", mock.Anything, ret).Return(nil)
	orderRepo.On("Get", mock.Anything, ord.ID()).Return(ord, nil)
	jobRecordRepo.On("Add", mock.Anything, mock.AnythingOfType("*delivery.JobRecord")).Return(nil)

	uow := new(MockReturnUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("ReturnRepository").Return(returnRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("JobRecordRepository").Return(jobRecordRepo)

	factory := new(MockReturnUoWFactory)
	factory.On("Create").Return(uow)

	handler := commands.NewApproveReturnCommandHandler(factory, courier, notifier, "1 Warehouse Way")

	// first attempt: approval commits, the courier is down, no pickup is booked
	courier.On("CreateJob", mock.Anything, mock.AnythingOfType("ports.CourierJobRequest")).
		Return(ports.CourierJob{}, errs.NewUpstreamFailureError("courier", "gateway timeout")).Once()

	err = handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrUpstreamFailure)
	assert.Equal(t, returns.Approved, ret.Status())
	assert.Nil(t, ret.CourierJobID())

	// second attempt: the already-approved return books its pickup
	pickupAt := time.Now().Add(24 * time.Hour)
	job := ports.CourierJob{JobID: "job_734", PickupAt: pickupAt, RawResponse: `{"id":"job_734"}`}
	courier.On("CreateJob", mock.Anything, mock.AnythingOfType("ports.CourierJobRequest")).
		Return(job, nil).Once()
	notifier.On("NotifyCustomer", mock.Anything, ret.CustomerID(), "return_approved", mock.AnythingOfType("string")).Once()

	err = handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, returns.PickupScheduled, ret.Status())
	require.NotNil(t, ret.CourierJobID())
	assert.Equal(t, "job_734", *ret.CourierJobID())
	courier.AssertExpectations(t)
	notifier.AssertExpectations(t)
}
