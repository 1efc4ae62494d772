package shipper_test

import (
	"testing"
	"time"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/shipper"
	"fleetops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShipper(t *testing.T) {
	createdAt := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)

	t.Run("registers_free_unlocked_shipper", func(t *testing.T) {
		// When
		s, err := shipper.NewShipper(kernel.MustID("S1"), "  Lan Nguyen ", shipper.CapabilityWarehouse,
			shipper.Contact{Email: " lan@fleet.io ", Phone: "0900"}, "hash", createdAt)

		// Then
		require.NoError(t, err)
		require.NoError(t, s.Validate())
		assert.Equal(t, "Lan Nguyen", s.Name())
		assert.Equal(t, shipper.CapabilityWarehouse, s.Capability())
		assert.True(t, s.IsFree())
		_, busy := s.Availability().CurrentOrder()
		assert.False(t, busy)
		assert.Equal(t, 0, s.Bonus())
		assert.False(t, s.Locked())
		assert.Equal(t, shipper.RoleShipper, s.Role())
		assert.Equal(t, "lan@fleet.io", s.Contact().Email)
		assert.Equal(t, "hash", s.PasswordHash())
		assert.Equal(t, createdAt, s.CreatedAt())
	})

	t.Run("joins_validation_errors", func(t *testing.T) {
		// When
		s, err := shipper.NewShipper(kernel.ID{}, " ", shipper.Capability(7), shipper.Contact{}, "", createdAt)

		// Then
		assert.Nil(t, s)
		require.ErrorIs(t, err, kernel.ErrIDIsNotConstructed)
		require.ErrorIs(t, err, shipper.ErrNameIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestRestoreShipper(t *testing.T) {
	t.Run("keeps_stored_values", func(t *testing.T) {
		// When
		s, err := shipper.RestoreShipper(shipper.RestoreParams{
			ID:           kernel.MustID("S2"),
			Name:         "Bob",
			Capability:   shipper.Capability(9),
			Availability: shipper.BusyWith(kernel.MustID("O1")),
			Bonus:        120,
			Locked:       true,
			Role:         shipper.RoleShipper,
		})

		// Then
		require.NoError(t, err)
		assert.Equal(t, 9, s.Capability().Int())
		assert.False(t, s.IsFree())
		assert.Equal(t, 120, s.Bonus())
		assert.True(t, s.Locked())
		assert.Empty(t, s.Inconsistencies())
	})

	t.Run("records_busy_without_order", func(t *testing.T) {
		s, err := shipper.RestoreShipper(shipper.RestoreParams{
			ID:           kernel.MustID("S3"),
			Availability: shipper.RestoreAvailability(shipper.StatusBusy, kernel.ID{}),
		})

		require.NoError(t, err)
		require.Len(t, s.Inconsistencies(), 1)
		assert.Equal(t, "status/currentOrder", s.Inconsistencies()[0].Field)
	})

	t.Run("rejects_missing_id", func(t *testing.T) {
		_, err := shipper.RestoreShipper(shipper.RestoreParams{Name: "Ghost"})

		require.ErrorIs(t, err, kernel.ErrIDIsNotConstructed)
	})
}

func TestShipper_SetLocked(t *testing.T) {
	s, err := shipper.RestoreShipper(shipper.RestoreParams{ID: kernel.MustID("S1")})
	require.NoError(t, err)

	assert.True(t, s.SetLocked(true))
	assert.True(t, s.Locked())
	assert.False(t, s.SetLocked(true))
	assert.True(t, s.SetLocked(false))
	assert.False(t, s.Locked())
}

func TestShipper_Validate_ZeroValue(t *testing.T) {
	var s shipper.Shipper
	require.ErrorIs(t, s.Validate(), shipper.ErrShipperIsNotConstructed)

	var nilShipper *shipper.Shipper
	require.ErrorIs(t, nilShipper.Validate(), shipper.ErrShipperIsNotConstructed)
}
