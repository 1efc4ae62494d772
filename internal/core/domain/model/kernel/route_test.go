package kernel_test

import (
	"testing"

	"fleetops/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoute(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		to       string
		wantFrom string
		wantTo   string
		wantStr  string
	}{
		{"both_ends_known", "Hanoi Hub", "Da Nang DC", "Hanoi Hub", "Da Nang DC", "Hanoi Hub -> Da Nang DC"},
		{"names_are_trimmed", "  Hub A ", " Hub B", "Hub A", "Hub B", "Hub A -> Hub B"},
		{"unknown_destination", "Hub A", "", "Hub A", "", "Hub A -> ?"},
		{"unknown_both", "", "", "", "", "? -> ?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// When
			route := kernel.NewRoute(tt.from, tt.to)

			// Then
			require.NoError(t, route.Validate())
			assert.Equal(t, tt.wantFrom, route.From())
			assert.Equal(t, tt.wantTo, route.To())
			assert.Equal(t, tt.wantStr, route.String())
		})
	}
}

func TestRoute_Validate_ZeroValue(t *testing.T) {
	var route kernel.Route

	require.ErrorIs(t, route.Validate(), kernel.ErrRouteIsNotConstructed)
}

func TestRoute_IsEqual(t *testing.T) {
	a := kernel.NewRoute("A", "B")

	assert.True(t, a.IsEqual(kernel.NewRoute("A", "B")))
	assert.False(t, a.IsEqual(kernel.NewRoute("B", "A")))
}
