package order_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	value, err := kernel.NewMoney(50000)
	require.NoError(t, err)
	pct, err := kernel.NewCommissionPercent(20)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		nil,
		"Maria Lopez",
		"3001234567",
		"Calle 10 #5-23",
		nil,
		nil,
		value,
		pct,
		time.Now(),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates pending order with no commission amount", func(t *testing.T) {
		o := newTestOrder(t)

		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.CourierID())
		assert.Nil(t, o.CommissionAmount())
		assert.Nil(t, o.DeliveredAt())
		assert.Nil(t, o.CancelReason())
		assert.NoError(t, o.Validate())
	})

	t.Run("dispatcher-created order records the creator", func(t *testing.T) {
		value, _ := kernel.NewMoney(20000)
		pct, _ := kernel.NewCommissionPercent(15)
		dispatcher := kernel.NewUUID()

		o, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), &dispatcher,
			"Juan", "3110000000", "Carrera 4 #12-80",
			nil, nil, value, pct, time.Now(),
		)

		require.NoError(t, err)
		require.NotNil(t, o.CreatedBy())
		assert.True(t, o.CreatedBy().IsEqual(dispatcher))
	})

	t.Run("rejects empty required fields", func(t *testing.T) {
		value, _ := kernel.NewMoney(20000)
		pct, _ := kernel.NewCommissionPercent(15)

		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), nil,
			"", "", "",
			nil, nil, value, pct, time.Now(),
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects non-positive order value", func(t *testing.T) {
		pct, _ := kernel.NewCommissionPercent(15)

		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), nil,
			"Juan", "3110000000", "Carrera 4 #12-80",
			nil, nil, kernel.Money{}, pct, time.Now(),
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value order fails validation", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_Assign(t *testing.T) {
	t.Run("assigns courier to pending order", func(t *testing.T) {
		o := newTestOrder(t)
		courierID := kernel.NewUUID()

		err := o.Assign(courierID, time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.Assigned, o.Status())
		require.NotNil(t, o.CourierID())
		assert.True(t, o.CourierID().IsEqual(courierID))
	})

	t.Run("assigns courier to notified order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Notify(time.Now()))

		err := o.Assign(kernel.NewUUID(), time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.Assigned, o.Status())
	})

	t.Run("rejects second assignment", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID(), time.Now()))

		err := o.Assign(kernel.NewUUID(), time.Now())

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, order.Assigned, o.Status())
	})

	t.Run("rejects invalid courier id", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.Assign(kernel.UUID{}, time.Now())

		require.Error(t, err)
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.CourierID())
	})
}

func TestOrder_Reassign(t *testing.T) {
	t.Run("swaps courier and returns the previous one", func(t *testing.T) {
		o := newTestOrder(t)
		first := kernel.NewUUID()
		second := kernel.NewUUID()
		require.NoError(t, o.Assign(first, time.Now()))

		previous, err := o.Reassign(second, time.Now())

		require.NoError(t, err)
		assert.True(t, previous.IsEqual(first))
		assert.True(t, o.CourierID().IsEqual(second))
		assert.Equal(t, order.Assigned, o.Status())
	})

	t.Run("works while en route without changing status", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID(), time.Now()))
		require.NoError(t, o.Advance(time.Now()))

		_, err := o.Reassign(kernel.NewUUID(), time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.EnRoute, o.Status())
	})

	t.Run("scenario D: reassign with no assignment is not found", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := o.Reassign(kernel.NewUUID(), time.Now())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("rejects reassign on terminal order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID(), time.Now()))
		require.NoError(t, o.Advance(time.Now()))
		require.NoError(t, o.Advance(time.Now()))

		_, err := o.Reassign(kernel.NewUUID(), time.Now())

		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestOrder_Advance(t *testing.T) {
	t.Run("scenario A: full lifecycle computes commission once", func(t *testing.T) {
		o := newTestOrder(t) // value 50000, commission 20%
		courierID := kernel.NewUUID()
		require.NoError(t, o.Assign(courierID, time.Now()))

		require.NoError(t, o.Advance(time.Now()))
		assert.Equal(t, order.EnRoute, o.Status())
		assert.Nil(t, o.CommissionAmount())
		assert.Nil(t, o.DeliveredAt())

		deliveredAt := time.Now()
		require.NoError(t, o.Advance(deliveredAt))
		assert.Equal(t, order.Delivered, o.Status())
		require.NotNil(t, o.CommissionAmount())
		assert.Equal(t, int64(10000), o.CommissionAmount().Amount())
		require.NotNil(t, o.DeliveredAt())
		assert.Equal(t, deliveredAt, *o.DeliveredAt())
		// Courier reference survives delivery for reporting.
		require.NotNil(t, o.CourierID())
		assert.True(t, o.CourierID().IsEqual(courierID))
	})

	t.Run("scenario E: advance on pending order fails with no state change", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.Advance(time.Now())

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.DeliveredAt())
	})

	t.Run("cannot advance past delivered", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID(), time.Now()))
		require.NoError(t, o.Advance(time.Now()))
		require.NoError(t, o.Advance(time.Now()))

		err := o.Advance(time.Now())

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("commission uses creation-time percentage", func(t *testing.T) {
		value, _ := kernel.NewMoney(12345)
		pct, _ := kernel.NewCommissionPercent(10)

		o, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), nil,
			"Ana", "3150000000", "Calle 8 #3-45",
			nil, nil, value, pct, time.Now(),
		)
		require.NoError(t, err)

		require.NoError(t, o.Assign(kernel.NewUUID(), time.Now()))
		require.NoError(t, o.Advance(time.Now()))
		require.NoError(t, o.Advance(time.Now()))

		require.NotNil(t, o.CommissionAmount())
		assert.Equal(t, int64(1235), o.CommissionAmount().Amount())
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("scenario C: empty reason is a validation error", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.Cancel("", kernel.NewUUID(), time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.CancelReason())
	})

	t.Run("scenario C: cancel assigned order stores reason and actor", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID(), time.Now()))
		actor := kernel.NewUUID()

		err := o.Cancel("cliente no contesta", actor, time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, o.Status())
		require.NotNil(t, o.CancelReason())
		assert.Equal(t, "cliente no contesta", *o.CancelReason())
		require.NotNil(t, o.CancelledBy())
		assert.True(t, o.CancelledBy().IsEqual(actor))
	})

	t.Run("cancel is rejected on terminal orders", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID(), time.Now()))
		require.NoError(t, o.Advance(time.Now()))
		require.NoError(t, o.Advance(time.Now()))

		err := o.Cancel("tarde", kernel.NewUUID(), time.Now())

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, order.Delivered, o.Status())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("round trips lifecycle fields", func(t *testing.T) {
		value, _ := kernel.NewMoney(30000)
		pct, _ := kernel.NewCommissionPercent(20)
		commission, _ := kernel.RestoreMoney(6000)
		courierID := kernel.NewUUID()
		deliveredAt := time.Now()

		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), nil,
			"Pedro", "3200000000", "Av. Francisco Fernandez 123",
			nil, nil, value, pct,
			order.Delivered, &courierID, &commission,
			nil, nil, &deliveredAt,
			deliveredAt.Add(-time.Hour), deliveredAt,
		)

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, o.Status())
		require.NotNil(t, o.CommissionAmount())
		assert.Equal(t, int64(6000), o.CommissionAmount().Amount())
		assert.NoError(t, o.Validate())
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		value, _ := kernel.NewMoney(30000)
		pct, _ := kernel.NewCommissionPercent(20)

		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), nil,
			"Pedro", "3200000000", "Av. Francisco Fernandez 123",
			nil, nil, value, pct,
			order.Unknown, nil, nil, nil, nil, nil,
			time.Now(), time.Now(),
		)

		require.Error(t, err)
	})
}
