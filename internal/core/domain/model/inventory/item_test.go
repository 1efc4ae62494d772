package inventory_test

import (
	"testing"

	"fleetops/internal/core/domain/model/inventory"
	"fleetops/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItem(t *testing.T) {
	item, err := inventory.RestoreItem(inventory.RestoreParams{
		ID:          kernel.MustID("I1"),
		SKU:         " SKU-001 ",
		Name:        "Rice bag",
		Category:    " grains",
		Quantity:    4,
		MinQuantity: 5,
	})
	require.NoError(t, err)
	require.NoError(t, item.Validate())

	t.Run("low_stock_below_threshold", func(t *testing.T) {
		assert.True(t, item.IsLowStock())
	})

	t.Run("category_is_upper_cased", func(t *testing.T) {
		assert.Equal(t, "GRAINS", item.NormalizedCategory())
		assert.Equal(t, "SKU-001", item.SKU())
	})

	t.Run("category_filter_ignores_case", func(t *testing.T) {
		assert.True(t, item.InCategory("Grains"))
		assert.True(t, item.InCategory(inventory.CategoryAll))
		assert.True(t, item.InCategory(""))
		assert.False(t, item.InCategory("tools"))
	})
}

func TestItem_LowStockIncludesThreshold(t *testing.T) {
	atThreshold, err := inventory.RestoreItem(inventory.RestoreParams{ID: kernel.MustID("I2"), Quantity: 5, MinQuantity: 5})
	require.NoError(t, err)
	above, err := inventory.RestoreItem(inventory.RestoreParams{ID: kernel.MustID("I3"), Quantity: 6, MinQuantity: 5})
	require.NoError(t, err)

	assert.True(t, atThreshold.IsLowStock())
	assert.False(t, above.IsLowStock())
}

func TestRestoreItem_RequiresID(t *testing.T) {
	_, err := inventory.RestoreItem(inventory.RestoreParams{SKU: "X"})

	require.ErrorIs(t, err, kernel.ErrIDIsNotConstructed)
}
