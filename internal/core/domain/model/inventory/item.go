// Package inventory provides the warehouse stock item read model.
package inventory

import (
	"errors"
	"strings"
	"time"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/guard"
)

// CategoryAll selects every category when filtering.
const CategoryAll = "ALL"

var ErrItemIsNotConstructed = errors.New("Item must be created via RestoreItem constructor")

// Location is where an item is stocked.
type Location struct {
	Warehouse string
	Zone      string
}

// Item is a stock keeping unit held in a warehouse. Items are maintained by
// warehouse staff elsewhere; this service only reads them.
type Item struct {
	id          kernel.ID
	sku         string
	name        string
	category    string
	quantity    int
	minQuantity int
	unit        string
	location    Location
	lastUpdated time.Time
	guard       guard.ConstructorGuard
}

// RestoreParams carries a stored inventory document.
type RestoreParams struct {
	ID          kernel.ID
	SKU         string
	Name        string
	Category    string
	Quantity    int
	MinQuantity int
	Unit        string
	Location    Location
	LastUpdated time.Time
}

// RestoreItem rebuilds an item from storage.
func RestoreItem(p RestoreParams) (*Item, error) {
	if err := p.ID.Validate(); err != nil {
		return nil, err
	}
	return &Item{
		id:          p.ID,
		sku:         strings.TrimSpace(p.SKU),
		name:        p.Name,
		category:    strings.TrimSpace(p.Category),
		quantity:    p.Quantity,
		minQuantity: p.MinQuantity,
		unit:        p.Unit,
		location:    p.Location,
		lastUpdated: p.LastUpdated,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the item was created through RestoreItem.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i *Item) ID() kernel.ID          { return i.id }
func (i *Item) SKU() string            { return i.sku }
func (i *Item) Name() string           { return i.name }
func (i *Item) Category() string       { return i.category }
func (i *Item) Quantity() int          { return i.quantity }
func (i *Item) MinQuantity() int       { return i.minQuantity }
func (i *Item) Unit() string           { return i.unit }
func (i *Item) Location() Location     { return i.location }
func (i *Item) LastUpdated() time.Time { return i.lastUpdated }

// NormalizedCategory is the category upper-cased, the form used for filtering.
func (i *Item) NormalizedCategory() string {
	return NormalizeCategory(i.category)
}

// IsLowStock reports whether the quantity is at or below the reorder threshold.
func (i *Item) IsLowStock() bool {
	return i.quantity <= i.minQuantity
}

// InCategory reports whether the item belongs to category. CategoryAll and
// the empty string match everything; comparison ignores case.
func (i *Item) InCategory(category string) bool {
	want := NormalizeCategory(category)
	return want == "" || want == CategoryAll || want == i.NormalizedCategory()
}

// NormalizeCategory upper-cases and trims a category name.
func NormalizeCategory(category string) string {
	return strings.ToUpper(strings.TrimSpace(category))
}
