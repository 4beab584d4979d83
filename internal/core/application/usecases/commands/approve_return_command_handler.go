package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/ports"
)

// ApproveReturnCommandHandler approves a pending return and books the pickup.
//
// The approval is committed before the courier call: a courier failure leaves
// the return Approved with no job reference, and the pickup can be retried.
type ApproveReturnCommandHandler struct {
	uowFactory       ReturnUoWFactory
	courier          ports.CourierGateway
	notifier         ports.Notifier
	warehouseAddress string
}

// NewApproveReturnCommandHandler creates a handler for return approval.
// The warehouse address is the dropoff point for picked-up items.
func NewApproveReturnCommandHandler(
	uowFactory ReturnUoWFactory,
	courier ports.CourierGateway,
	notifier ports.Notifier,
	warehouseAddress string,
) ApproveReturnCommandHandler {
	return ApproveReturnCommandHandler{
		uowFactory:       uowFactory,
		courier:          courier,
		notifier:         notifier,
		warehouseAddress: warehouseAddress,
	}
}

// Handle processes the return approval command.
func (h *ApproveReturnCommandHandler) Handle(ctx context.Context, cmd ApproveReturnCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	ret, pickupAddress, err := h.approve(ctx, cmd)
	if err != nil {
		return err
	}

	job, err := h.courier.CreateJob(ctx, ports.CourierJobRequest{
		PickupAddress:  pickupAddress,
		DropoffAddress: h.warehouseAddress,
		Reference:      ret.ID().String(),
	})
	if err != nil {
		// approval is already committed; the pickup stays unscheduled
		return err
	}

	if err = h.schedulePickup(ctx, ret.ID(), job); err != nil {
		return err
	}

	payload := fmt.Sprintf(`{"returnId":%q,"pickupAt":%q}`,
		ret.ID().String(), job.PickupAt.Format(time.RFC3339))
	h.notifier.NotifyCustomer(ctx, ret.CustomerID(), "return_approved", payload)

	return nil
}

func (h *ApproveReturnCommandHandler) approve(ctx context.Context, cmd ApproveReturnCommand) (ret *returns.Return, pickupAddress string, err error) {
	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	r, err := uow.ReturnRepository().Get(ctx, cmd.ReturnID())
	if err != nil {
		return nil, "", err
	}

	ord, err := uow.OrderRepository().Get(ctx, r.OrderID())
	if err != nil {
		return nil, "", err
	}

	if err = r.Approve(cmd.Amount(), time.Now()); err != nil {
		return nil, "", err
	}

	if err = uow.ReturnRepository().Update(ctx, r); err != nil {
		return nil, "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, "", err
	}

	return r, ord.ShippingAddress(), nil
}

func (h *ApproveReturnCommandHandler) schedulePickup(ctx context.Context, returnID kernel.UUID, job ports.CourierJob) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	r, err := uow.ReturnRepository().Get(ctx, returnID)
	if err != nil {
		return err
	}

	if err = r.SchedulePickup(job.JobID, job.PickupAt); err != nil {
		return err
	}

	if err = uow.ReturnRepository().Update(ctx, r); err != nil {
		return err
	}

	record, err := delivery.NewJobRecord(
		kernel.NewUUID(), job.JobID, delivery.JobPurposePickup, job.RawResponse, time.Now(),
	)
	if err != nil {
		return err
	}

	if err = uow.JobRecordRepository().Add(ctx, record); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
