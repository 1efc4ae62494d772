package ports

import (
	"context"

	"fleetops/internal/core/domain/model/inventory"
)

// InventoryRepository reads warehouse stock. Items are maintained elsewhere.
type InventoryRepository interface {
	// List returns every item ordered by SKU ascending.
	List(ctx context.Context) ([]*inventory.Item, error)
}
