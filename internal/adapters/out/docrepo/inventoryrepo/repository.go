// Package inventoryrepo reads warehouse stock from the inventory collection.
package inventoryrepo

import (
	"context"

	"fleetops/internal/adapters/out/docstore"
	"fleetops/internal/core/domain/model/inventory"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/ports"

	"github.com/pkg/errors"
)

const fieldSKU = "sku"

// Repository implements ports.InventoryRepository.
type Repository struct {
	store docstore.Store
}

// NewRepository creates an inventory repository.
func NewRepository(store docstore.Store) *Repository {
	return &Repository{store: store}
}

// List returns every item ordered by SKU.
func (r *Repository) List(ctx context.Context) ([]*inventory.Item, error) {
	docs, err := r.store.Find(ctx, docstore.Query{Collection: ports.CollectionInventory, OrderBy: fieldSKU})
	if err != nil {
		return nil, errors.Wrap(err, "list inventory")
	}

	items := make([]*inventory.Item, 0, len(docs))
	for _, doc := range docs {
		f := doc.Fields
		id, _ := kernel.IDFromString(doc.ID)
		item, err := inventory.RestoreItem(inventory.RestoreParams{
			ID:          id,
			SKU:         f.String(fieldSKU),
			Name:        f.String("name"),
			Category:    f.String("category"),
			Quantity:    f.Int("quantity"),
			MinQuantity: f.Int("minQuantity"),
			Unit:        f.String("unit"),
			Location: inventory.Location{
				Warehouse: f.String("warehouse"),
				Zone:      f.String("zone"),
			},
			LastUpdated: docstore.ParseTime(f["lastUpdated"]),
		})
		if err != nil {
			return nil, errors.Wrapf(err, "decode item %s", doc.ID)
		}
		items = append(items, item)
	}

	return items, nil
}
