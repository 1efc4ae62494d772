package services_test

import (
	"testing"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/core/domain/model/shipper"
	"fleetops/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roster(t *testing.T) services.DisplayNames {
	t.Helper()
	alice, err := shipper.RestoreShipper(shipper.RestoreParams{ID: kernel.MustID("S1"), Name: "Alice"})
	require.NoError(t, err)
	nameless, err := shipper.RestoreShipper(shipper.RestoreParams{ID: kernel.MustID("S2")})
	require.NoError(t, err)
	return services.NewDisplayNames([]*shipper.Shipper{alice, nameless, nil})
}

func TestDisplayNames_ShipperName(t *testing.T) {
	names := roster(t)

	tests := []struct {
		name   string
		id     kernel.ID
		stored string
		want   string
	}{
		{"live_name_wins", kernel.MustID("S1"), "Old Alice", "Alice"},
		{"live_name_without_snapshot", kernel.MustID("S1"), "", "Alice"},
		{"snapshot_when_not_in_roster", kernel.MustID("S7"), "Carol", "Carol"},
		{"snapshot_when_roster_name_empty", kernel.MustID("S2"), "Dan", "Dan"},
		{"unknown_without_any_name", kernel.MustID("S7"), "", services.UnknownShipperName},
		{"unassigned_without_id", kernel.ID{}, "Carol", services.UnassignedName},
		{"unassigned_without_anything", kernel.ID{}, "", services.UnassignedName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names.ShipperName(tt.id, tt.stored))
		})
	}
}

func TestDisplayNames_Map(t *testing.T) {
	names := roster(t)

	m := names.Map()
	m["S1"] = "mutated"

	assert.Equal(t, map[string]string{"S1": "Alice"}, names.Map())
}

func TestDisplayNames_StageProgress(t *testing.T) {
	// Given
	var bindings [order.AssignableStages]order.StageBinding
	bindings[0] = order.NewStageBinding(kernel.MustID("S1"), "Alice (old)", true)
	bindings[1] = order.NewStageBinding(kernel.MustID("S7"), "Carol", false)
	o, err := order.RestoreOrder(order.RestoreParams{
		ID:        kernel.MustID("O1"),
		Status:    order.Processing,
		Stage:     order.StageWarehouse,
		ShipperID: kernel.MustID("S7"),
		Bindings:  bindings,
	})
	require.NoError(t, err)
	names := roster(t)

	// When
	progress := names.StageProgress(o)

	// Then
	require.Len(t, progress, 3)
	assert.Equal(t, services.StageProgress{Stage: 1, ShipperID: kernel.MustID("S1"), ShipperName: "Alice", Confirmed: true}, progress[0])
	assert.Equal(t, "Carol", progress[1].ShipperName)
	assert.False(t, progress[1].Confirmed)
	assert.Equal(t, services.UnassignedName, progress[2].ShipperName)
	assert.Equal(t, services.UnknownShipperName, names.ActiveHandler(o))
}
