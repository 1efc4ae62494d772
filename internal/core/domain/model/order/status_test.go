package order_test

import (
	"testing"

	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want order.Status
	}{
		{"PENDING", order.Pending},
		{"processing", order.Processing},
		{" Completed ", order.Completed},
		{"CREATED", order.LegacyCreated},
		{"DELIVERED_STAGE1", order.LegacyDeliveredStage1},
		{"delivered_stage2", order.LegacyDeliveredStage2},
		{"", order.Unknown},
		{"ARCHIVED", order.Unknown},
		{"UNKNOWN", order.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, order.ParseStatus(tt.raw))
		})
	}
}

func TestStatus_String_RoundTrips(t *testing.T) {
	for _, s := range []order.Status{
		order.Pending, order.Processing, order.Completed,
		order.LegacyCreated, order.LegacyDeliveredStage1, order.LegacyDeliveredStage2,
	} {
		assert.Equal(t, s, order.ParseStatus(s.String()))
	}
	assert.Equal(t, "UNKNOWN", order.Status(99).String())
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, order.Pending.Validate())
	require.NoError(t, order.LegacyCreated.Validate())
	require.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, order.Status(42).Validate(), errs.ErrValueIsInvalid)
}

func TestStatus_IsLegacy(t *testing.T) {
	assert.True(t, order.LegacyCreated.IsLegacy())
	assert.True(t, order.LegacyDeliveredStage1.IsLegacy())
	assert.True(t, order.LegacyDeliveredStage2.IsLegacy())
	assert.False(t, order.Pending.IsLegacy())
	assert.False(t, order.Completed.IsLegacy())
}

func TestStatus_Assign(t *testing.T) {
	t.Run("non_terminal_statuses_move_to_processing", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Unknown, order.Pending, order.Processing,
			order.LegacyCreated, order.LegacyDeliveredStage1, order.LegacyDeliveredStage2,
		} {
			next, err := s.Assign()

			require.NoError(t, err, s.String())
			assert.Equal(t, order.Processing, next)
		}
	})

	t.Run("completed_is_rejected", func(t *testing.T) {
		next, err := order.Completed.Assign()

		require.ErrorIs(t, err, order.ErrOrderIsCompleted)
		assert.Equal(t, order.Unknown, next)
	})
}

func TestStatus_Unassign(t *testing.T) {
	t.Run("non_terminal_statuses_move_to_pending", func(t *testing.T) {
		for _, s := range []order.Status{order.Processing, order.Pending, order.LegacyDeliveredStage1} {
			next, err := s.Unassign()

			require.NoError(t, err)
			assert.Equal(t, order.Pending, next)
		}
	})

	t.Run("completed_is_rejected", func(t *testing.T) {
		_, err := order.Completed.Unassign()

		require.ErrorIs(t, err, order.ErrOrderIsCompleted)
	})
}
