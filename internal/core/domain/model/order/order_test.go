package order_test

import (
	"testing"
	"time"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T, p order.RestoreParams) *order.Order {
	t.Helper()
	if p.ID.IsZero() {
		p.ID = kernel.MustID("O1")
	}
	o, err := order.RestoreOrder(p)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	placedAt := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	t.Run("creates_pending_order_at_pickup", func(t *testing.T) {
		// When
		o, err := order.NewOrder(kernel.MustID("O1"), order.Details{ProductName: "Rice", Quantity: 3},
			kernel.NewRoute("Hub A", "Hub B"), placedAt)

		// Then
		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, "O1", o.ID().String())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, order.StagePickup, o.Stage())
		assert.Equal(t, "Rice", o.Details().ProductName)
		assert.Equal(t, "Hub A", o.Route().From())
		assert.Equal(t, placedAt, o.PlacedAt())
		_, assigned := o.AssignedShipper()
		assert.False(t, assigned)
	})

	t.Run("joins_validation_errors", func(t *testing.T) {
		// When
		o, err := order.NewOrder(kernel.ID{}, order.Details{}, kernel.Route{}, placedAt)

		// Then
		require.Error(t, err)
		assert.Nil(t, o)
		require.ErrorIs(t, err, kernel.ErrIDIsNotConstructed)
		require.ErrorIs(t, err, kernel.ErrRouteIsNotConstructed)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("keeps_legacy_values", func(t *testing.T) {
		// When
		o := restore(t, order.RestoreParams{
			Status: order.LegacyDeliveredStage1,
			Stage:  order.ParseStage(float64(2)),
		})

		// Then
		assert.Equal(t, order.LegacyDeliveredStage1, o.Status())
		assert.Equal(t, order.StageWarehouse, o.Stage())
		assert.Equal(t, "? -> ?", o.Route().String())
	})

	t.Run("rejects_missing_id", func(t *testing.T) {
		_, err := order.RestoreOrder(order.RestoreParams{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("copies_inconsistencies", func(t *testing.T) {
		found := []kernel.Inconsistency{{Field: "stage1.shipperId", Kept: "S1", Dropped: "S2"}}
		o := restore(t, order.RestoreParams{Inconsistencies: found})

		found[0].Kept = "mutated"

		assert.Equal(t, "S1", o.Inconsistencies()[0].Kept)
	})
}

func TestOrder_Validate_ZeroValue(t *testing.T) {
	var o order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)

	var nilOrder *order.Order
	require.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)
}

func TestOrder_Assign(t *testing.T) {
	shipperID := kernel.MustID("S1")

	t.Run("binds_current_stage_and_top_level_together", func(t *testing.T) {
		for _, stage := range []order.Stage{order.StagePickup, order.StageWarehouse, order.StageShipping} {
			// Given
			o := restore(t, order.RestoreParams{Status: order.Pending, Stage: stage})

			// When
			err := o.Assign(shipperID, "Alice")

			// Then
			require.NoError(t, err)
			assert.Equal(t, order.Processing, o.Status())
			id, ok := o.AssignedShipper()
			require.True(t, ok)
			assert.Equal(t, shipperID, id)
			assert.Equal(t, "Alice", o.ShipperName())

			binding, ok := o.Binding(stage.Number())
			require.True(t, ok)
			bound, _ := binding.ShipperID()
			assert.Equal(t, id, bound)
			assert.Equal(t, o.ShipperName(), binding.ShipperName())
		}
	})

	t.Run("leaves_other_stages_untouched", func(t *testing.T) {
		// Given
		var bindings [order.AssignableStages]order.StageBinding
		bindings[0] = order.NewStageBinding(kernel.MustID("S9"), "Old Picker", true)
		o := restore(t, order.RestoreParams{Status: order.Pending, Stage: order.StageWarehouse, Bindings: bindings})

		// When
		require.NoError(t, o.Assign(shipperID, "Bob"))

		// Then
		first, _ := o.Binding(1)
		id, _ := first.ShipperID()
		assert.Equal(t, "S9", id.String())
		assert.Equal(t, "Old Picker", first.ShipperName())
		assert.True(t, first.Confirmed())
		third, _ := o.Binding(3)
		assert.False(t, third.IsBound())
	})

	t.Run("keeps_confirmation_flag", func(t *testing.T) {
		var bindings [order.AssignableStages]order.StageBinding
		bindings[1] = order.NewStageBinding(kernel.ID{}, "", true)
		o := restore(t, order.RestoreParams{Status: order.Pending, Stage: order.StageWarehouse, Bindings: bindings})

		require.NoError(t, o.Assign(shipperID, "Bob"))

		second, _ := o.Binding(2)
		assert.True(t, second.Confirmed())
	})

	t.Run("delivered_stage_writes_only_top_level", func(t *testing.T) {
		o := restore(t, order.RestoreParams{Status: order.Pending, Stage: order.StageDelivered})

		require.NoError(t, o.Assign(shipperID, "Alice"))

		assert.Equal(t, 0, o.AssignmentStage())
		for n := 1; n <= order.AssignableStages; n++ {
			b, _ := o.Binding(n)
			assert.False(t, b.IsBound())
		}
		_, ok := o.AssignedShipper()
		assert.True(t, ok)
	})

	t.Run("reassignment_replaces_assignee", func(t *testing.T) {
		o := restore(t, order.RestoreParams{Status: order.Pending, Stage: order.StagePickup})
		require.NoError(t, o.Assign(kernel.MustID("S1"), "Alice"))

		require.NoError(t, o.Assign(kernel.MustID("S2"), "Bob"))

		id, _ := o.AssignedShipper()
		assert.Equal(t, "S2", id.String())
		first, _ := o.Binding(1)
		assert.Equal(t, "Bob", first.ShipperName())
	})

	t.Run("completed_order_is_rejected_and_unchanged", func(t *testing.T) {
		o := restore(t, order.RestoreParams{Status: order.Completed, Stage: order.StageDelivered})

		err := o.Assign(shipperID, "Alice")

		require.ErrorIs(t, err, order.ErrOrderIsCompleted)
		assert.Equal(t, order.Completed, o.Status())
		_, ok := o.AssignedShipper()
		assert.False(t, ok)
	})

	t.Run("missing_shipper_is_rejected", func(t *testing.T) {
		o := restore(t, order.RestoreParams{Status: order.Pending, Stage: order.StagePickup})

		err := o.Assign(kernel.ID{}, "Alice")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.Pending, o.Status())
	})
}

func TestOrder_Unassign(t *testing.T) {
	t.Run("clears_current_stage_and_top_level", func(t *testing.T) {
		// Given
		o := restore(t, order.RestoreParams{Status: order.Pending, Stage: order.StageWarehouse})
		require.NoError(t, o.Assign(kernel.MustID("S1"), "Alice"))

		// When
		previous, err := o.Unassign()

		// Then
		require.NoError(t, err)
		assert.Equal(t, "S1", previous.String())
		assert.Equal(t, order.Pending, o.Status())
		_, ok := o.AssignedShipper()
		assert.False(t, ok)
		assert.Empty(t, o.ShipperName())
		second, _ := o.Binding(2)
		assert.False(t, second.IsBound())
		assert.Empty(t, second.ShipperName())
	})

	t.Run("requires_assignee", func(t *testing.T) {
		o := restore(t, order.RestoreParams{Status: order.Pending, Stage: order.StagePickup})

		_, err := o.Unassign()

		require.ErrorIs(t, err, order.ErrNoShipperAssigned)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("completed_order_is_rejected", func(t *testing.T) {
		o := restore(t, order.RestoreParams{
			Status:    order.Completed,
			Stage:     order.StageShipping,
			ShipperID: kernel.MustID("S1"),
		})

		_, err := o.Unassign()

		require.ErrorIs(t, err, order.ErrOrderIsCompleted)
		id, ok := o.AssignedShipper()
		assert.True(t, ok)
		assert.Equal(t, "S1", id.String())
	})
}

func TestOrder_Binding_OutOfRange(t *testing.T) {
	o := restore(t, order.RestoreParams{})

	_, ok := o.Binding(0)
	assert.False(t, ok)
	_, ok = o.Binding(4)
	assert.False(t, ok)
}

func TestOrder_IsEqual(t *testing.T) {
	a := restore(t, order.RestoreParams{ID: kernel.MustID("O1")})
	b := restore(t, order.RestoreParams{ID: kernel.MustID("O1")})
	c := restore(t, order.RestoreParams{ID: kernel.MustID("O2")})

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
	assert.False(t, a.IsEqual(nil))
}
