package queries

import (
	"context"
	"errors"
	"log/slog"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// GetDeliveryStatusQueryHandler answers delivery status lookups.
//
// Resolution order:
//  1. The persisted delivery record, always loaded first
//  2. The short-TTL status cache, when the delivery has a courier job
//  3. A live courier pull on cache miss; the result is cached and, when it
//     moved the delivery forward, persisted. A pull that lands on Delivered
//     also marks the parent order delivered, as the webhook path does
//
// A courier failure falls back to the last persisted state instead of
// surfacing the error.
type GetDeliveryStatusQueryHandler struct {
	uowFactory DeliveryReadUoWFactory
	cache      ports.StatusCache
	courier    ports.CourierGateway
	logger     *slog.Logger
}

// NewGetDeliveryStatusQueryHandler creates a handler for delivery status lookups.
func NewGetDeliveryStatusQueryHandler(
	uowFactory DeliveryReadUoWFactory,
	cache ports.StatusCache,
	courier ports.CourierGateway,
	logger *slog.Logger,
) GetDeliveryStatusQueryHandler {
	return GetDeliveryStatusQueryHandler{
		uowFactory: uowFactory,
		cache:      cache,
		courier:    courier,
		logger:     logger.With("component", "delivery_status"),
	}
}

// Handle resolves the current status of the order's latest delivery.
func (h GetDeliveryStatusQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryStatusQuery,
) (DeliveryStatusDetail, error) {
	if err := query.Validate(); err != nil {
		return DeliveryStatusDetail{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DeliveryStatusDetail{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	del, err := uow.DeliveryRepository().GetLatestByOrder(ctx, query.OrderID())
	if err != nil {
		return DeliveryStatusDetail{}, err
	}

	if del.CourierJobID() == "" || del.Status().IsFinal() {
		return detailFromDelivery(del), nil
	}

	cached, err := h.cache.Get(ctx, del.CourierJobID())
	if err == nil {
		return overlayCourierStatus(detailFromDelivery(del), cached), nil
	}
	if !errors.Is(err, ports.ErrCacheMiss) {
		h.logger.WarnContext(ctx, "status cache read failed",
			"jobId", del.CourierJobID(), "error", err)
	}

	live, err := h.courier.GetJobStatus(ctx, del.CourierJobID())
	if err != nil {
		h.logger.WarnContext(ctx, "courier status pull failed, serving persisted state",
			"jobId", del.CourierJobID(), "error", err)
		return detailFromDelivery(del), nil
	}

	if cacheErr := h.cache.Set(ctx, del.CourierJobID(), live); cacheErr != nil {
		h.logger.WarnContext(ctx, "status cache write failed",
			"jobId", del.CourierJobID(), "error", cacheErr)
	}

	if h.applyCourierStatus(ctx, del, live) {
		if err = uow.DeliveryRepository().Update(ctx, del); err != nil {
			return DeliveryStatusDetail{}, err
		}
		// a Delivered report completes the order exactly once, whether it
		// arrives by webhook or by this poll
		if del.Status() == delivery.Delivered {
			if err = markOrderDelivered(ctx, uow, del.OrderID()); err != nil {
				return DeliveryStatusDetail{}, err
			}
		}
		if err = uow.Commit(ctx); err != nil {
			return DeliveryStatusDetail{}, err
		}
	}

	return detailFromDelivery(del), nil
}

// applyCourierStatus folds the courier's view into the delivery aggregate and
// reports whether anything changed.
func (h GetDeliveryStatusQueryHandler) applyCourierStatus(
	ctx context.Context,
	del *delivery.Delivery,
	live ports.CourierJobStatus,
) bool {
	changed := false

	if live.Status != "" && live.Status != del.Status().String() {
		target, err := delivery.StatusFromString(live.Status)
		if err != nil {
			h.logger.WarnContext(ctx, "courier reported unknown status",
				"jobId", del.CourierJobID(), "status", live.Status)
		} else if err = del.AdvanceTo(target); err != nil {
			h.logger.WarnContext(ctx, "courier status not applicable",
				"jobId", del.CourierJobID(), "status", live.Status, "error", err)
		} else {
			changed = true
		}
	}

	if live.DriverName != del.DriverName() || live.DriverPhone != del.DriverPhone() {
		if live.DriverName != "" {
			del.UpdateDriver(live.DriverName, live.DriverPhone)
			changed = true
		}
	}

	if live.Location != "" && live.Location != del.LastLocation() {
		del.UpdateLocation(live.Location)
		changed = true
	}

	if live.ETA != nil && (del.ETA() == nil || !live.ETA.Equal(*del.ETA())) {
		del.UpdateETA(*live.ETA)
		changed = true
	}

	return changed
}

func markOrderDelivered(ctx context.Context, uow DeliveryReadUoW, orderID kernel.UUID) error {
	ord, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return err
	}
	if err = ord.MarkDelivered(); err != nil {
		return err
	}
	return uow.OrderRepository().Update(ctx, ord)
}

func detailFromDelivery(del *delivery.Delivery) DeliveryStatusDetail {
	return DeliveryStatusDetail{
		DeliveryID:   del.ID(),
		OrderID:      del.OrderID(),
		CourierJobID: del.CourierJobID(),
		Status:       del.Status().String(),
		DriverName:   del.DriverName(),
		DriverPhone:  del.DriverPhone(),
		Location:     del.LastLocation(),
		ETA:          del.ETA(),
		Price:        del.Price().Amount(),
		CreatedAt:    del.CreatedAt(),
	}
}

// overlayCourierStatus lays a cached courier view over the persisted detail
// without touching the aggregate.
func overlayCourierStatus(detail DeliveryStatusDetail, cached ports.CourierJobStatus) DeliveryStatusDetail {
	if cached.Status != "" {
		if _, err := delivery.StatusFromString(cached.Status); err == nil {
			detail.Status = cached.Status
		}
	}
	if cached.DriverName != "" {
		detail.DriverName = cached.DriverName
		detail.DriverPhone = cached.DriverPhone
	}
	if cached.Location != "" {
		detail.Location = cached.Location
	}
	if cached.ETA != nil {
		detail.ETA = cached.ETA
	}
	return detail
}
