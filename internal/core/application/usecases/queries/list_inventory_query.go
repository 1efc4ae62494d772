package queries

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"fleetops/internal/core/domain/model/inventory"
	"fleetops/internal/core/ports"
	"fleetops/internal/pkg/guard"

	"golang.org/x/text/cases"
)

var ErrListInventoryQueryIsNotConstructed = errors.New(
	"ListInventoryQuery must be created via NewListInventoryQuery constructor",
)

// ListInventoryQuery reads warehouse stock.
type ListInventoryQuery struct {
	category string
	search   string
	guard    guard.ConstructorGuard
}

// NewListInventoryQuery builds the query. category "ALL" or empty keeps every
// category; search matches name or SKU ignoring case.
func NewListInventoryQuery(category, search string) ListInventoryQuery {
	return ListInventoryQuery{
		category: inventory.NormalizeCategory(category),
		search:   strings.TrimSpace(search),
		guard:    guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q ListInventoryQuery) Validate() error {
	return q.guard.Validate(ErrListInventoryQueryIsNotConstructed)
}

// InventoryItemView is one stock line.
type InventoryItemView struct {
	ID          string
	SKU         string
	Name        string
	Category    string
	Quantity    int
	MinQuantity int
	Unit        string
	Warehouse   string
	Zone        string
	LowStock    bool
	LastUpdated time.Time
}

// ListInventoryQueryResponse holds the filtered items and every category
// present in stock, for the filter bar.
type ListInventoryQueryResponse struct {
	Items      []InventoryItemView
	Categories []string
	LowStock   int
}

// ListInventoryQueryHandler filters stock items.
type ListInventoryQueryHandler struct {
	items ports.InventoryRepository
}

// NewListInventoryQueryHandler creates the handler.
func NewListInventoryQueryHandler(items ports.InventoryRepository) ListInventoryQueryHandler {
	return ListInventoryQueryHandler{items: items}
}

// Handle executes the query. Items keep the repository's SKU order.
func (h ListInventoryQueryHandler) Handle(ctx context.Context, query ListInventoryQuery) (ListInventoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListInventoryQueryResponse{}, err
	}

	items, err := h.items.List(ctx)
	if err != nil {
		return ListInventoryQueryResponse{}, err
	}

	fold := cases.Fold()
	needle := fold.String(query.search)

	resp := ListInventoryQueryResponse{
		Items:      make([]InventoryItemView, 0),
		Categories: categories(items),
	}
	for _, item := range items {
		if !item.InCategory(query.category) {
			continue
		}
		if needle != "" && !matchesAny(fold, needle, item.Name(), item.SKU()) {
			continue
		}
		if item.IsLowStock() {
			resp.LowStock++
		}
		resp.Items = append(resp.Items, InventoryItemView{
			ID:          item.ID().String(),
			SKU:         item.SKU(),
			Name:        item.Name(),
			Category:    item.NormalizedCategory(),
			Quantity:    item.Quantity(),
			MinQuantity: item.MinQuantity(),
			Unit:        item.Unit(),
			Warehouse:   item.Location().Warehouse,
			Zone:        item.Location().Zone,
			LowStock:    item.IsLowStock(),
			LastUpdated: item.LastUpdated(),
		})
	}

	return resp, nil
}

// categories lists CategoryAll followed by the distinct categories in
// alphabetical order.
func categories(items []*inventory.Item) []string {
	seen := make(map[string]struct{})
	for _, item := range items {
		if c := item.NormalizedCategory(); c != "" && c != inventory.CategoryAll {
			seen[c] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen)+1)
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)

	return append([]string{inventory.CategoryAll}, out...)
}
