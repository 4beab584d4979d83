package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeOrder(t *testing.T, createdAt time.Time) *order.Order {
	t.Helper()

	total, err := kernel.NewMoney(5000)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), total, "pay_123", "12 Harbor Lane", createdAt)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates_order_in_created_status", func(t *testing.T) {
		o := makeOrder(t, time.Now())

		assert.Equal(t, order.Created, o.Status())
		assert.Nil(t, o.DeliveryID())
		assert.Equal(t, int64(5000), o.Total().Amount())
		assert.Equal(t, "pay_123", o.PaymentRef())
		assert.Equal(t, "12 Harbor Lane", o.ShippingAddress())
		require.NoError(t, o.Validate())
	})

	t.Run("rejects_invalid_id", func(t *testing.T) {
		total, _ := kernel.NewMoney(100)
		_, err := order.NewOrder(kernel.UUID{}, kernel.NewUUID(), total, "pay", "addr", time.Now())
		require.Error(t, err)
	})

	t.Run("rejects_zero_created_at", func(t *testing.T) {
		total, _ := kernel.NewMoney(100)
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), total, "pay", "addr", time.Time{})
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero_value_order_fails_validation", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_WithinReturnWindow(t *testing.T) {
	now := time.Now()

	t.Run("ten_day_old_order_is_within_window", func(t *testing.T) {
		o := makeOrder(t, now.Add(-10*24*time.Hour))
		assert.True(t, o.WithinReturnWindow(now))
	})

	t.Run("forty_five_day_old_order_is_outside_window", func(t *testing.T) {
		o := makeOrder(t, now.Add(-45*24*time.Hour))
		assert.False(t, o.WithinReturnWindow(now))
	})

	t.Run("exactly_thirty_days_is_within_window", func(t *testing.T) {
		o := makeOrder(t, now.Add(-order.ReturnWindow))
		assert.True(t, o.WithinReturnWindow(now))
	})
}

func TestOrder_ConfirmDelivery(t *testing.T) {
	t.Run("attaches_delivery_and_moves_status", func(t *testing.T) {
		o := makeOrder(t, time.Now())
		deliveryID := kernel.NewUUID()

		require.NoError(t, o.ConfirmDelivery(deliveryID))
		assert.Equal(t, order.DeliveryConfirmed, o.Status())
		require.NotNil(t, o.DeliveryID())
		assert.True(t, o.DeliveryID().IsEqual(deliveryID))
	})

	t.Run("allows_reconfirmation", func(t *testing.T) {
		o := makeOrder(t, time.Now())
		require.NoError(t, o.ConfirmDelivery(kernel.NewUUID()))

		second := kernel.NewUUID()
		require.NoError(t, o.ConfirmDelivery(second))
		assert.True(t, o.DeliveryID().IsEqual(second))
	})

	t.Run("rejects_after_delivered", func(t *testing.T) {
		o := makeOrder(t, time.Now())
		require.NoError(t, o.ConfirmDelivery(kernel.NewUUID()))
		require.NoError(t, o.MarkDelivered())

		err := o.ConfirmDelivery(kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestOrder_MarkDelivered(t *testing.T) {
	t.Run("requires_confirmed_delivery", func(t *testing.T) {
		o := makeOrder(t, time.Now())
		require.ErrorIs(t, o.MarkDelivered(), errs.ErrInvalidState)
	})

	t.Run("moves_to_delivered", func(t *testing.T) {
		o := makeOrder(t, time.Now())
		require.NoError(t, o.ConfirmDelivery(kernel.NewUUID()))
		require.NoError(t, o.MarkDelivered())
		assert.Equal(t, order.Delivered, o.Status())
	})
}

func TestOrder_MarkRefunded(t *testing.T) {
	t.Run("refund_allowed_after_delivery", func(t *testing.T) {
		o := makeOrder(t, time.Now())
		require.NoError(t, o.ConfirmDelivery(kernel.NewUUID()))
		require.NoError(t, o.MarkDelivered())

		require.NoError(t, o.MarkRefunded())
		assert.Equal(t, order.Refunded, o.Status())
	})

	t.Run("refund_allowed_from_created", func(t *testing.T) {
		o := makeOrder(t, time.Now())
		require.NoError(t, o.MarkRefunded())
	})

	t.Run("refund_is_final", func(t *testing.T) {
		o := makeOrder(t, time.Now())
		require.NoError(t, o.MarkRefunded())
		require.ErrorIs(t, o.MarkRefunded(), errs.ErrInvalidState)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores_persisted_state", func(t *testing.T) {
		id := kernel.NewUUID()
		deliveryID := kernel.NewUUID()
		total, _ := kernel.NewMoney(990)

		o, err := order.RestoreOrder(
			id, kernel.NewUUID(), total, "pay_9", "12 Harbor Lane", time.Now().Add(-time.Hour),
			order.DeliveryConfirmed, &deliveryID,
		)
		require.NoError(t, err)
		assert.Equal(t, order.DeliveryConfirmed, o.Status())
		assert.True(t, o.DeliveryID().IsEqual(deliveryID))
	})

	t.Run("rejects_invalid_status", func(t *testing.T) {
		total, _ := kernel.NewMoney(990)
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), total, "pay", "addr", time.Now(),
			order.Status(42), nil,
		)
		require.Error(t, err)
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "CREATED", order.Created.String())
	assert.Equal(t, "DELIVERY_CONFIRMED", order.DeliveryConfirmed.String())
	assert.Equal(t, "DELIVERED", order.Delivered.String())
	assert.Equal(t, "REFUNDED", order.Refunded.String())
	assert.Equal(t, "UNKNOWN", order.Status(99).String())
}
