package catalog

import (
	"fmt"
	"sort"

	"github.com/kailas-cloud/radar/internal/domain"
	"github.com/kailas-cloud/radar/internal/domain/geo"
)

// Item is a discoverable catalog entry. Items are never mutated after load.
type Item struct {
	ID          int             `json:"id"`
	AssetName   string          `json:"asset_name"`
	NameTH      string          `json:"name_th"`
	NameEN      string          `json:"name_en"`
	NameSci     string          `json:"name_sci"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Meaning     string          `json:"meaning"`
	Location    *geo.Coordinate `json:"location,omitempty"`
}

// ImagePath returns the bundled image resource for the item.
func (i Item) ImagePath() string {
	return "Resources/Rocks/" + i.AssetName + ".png"
}

// ModelPath returns the bundled 3D model resource for the item.
func (i Item) ModelPath() string {
	return "Resources/Rocks/" + i.AssetName + ".glb"
}

// Catalog is the immutable, ID-ordered set of discoverable items.
type Catalog struct {
	items []Item
	byID  map[int]int
}

// New validates items and builds a Catalog ordered by item ID.
// IDs must be unique; an empty catalog is allowed.
func New(items []Item) (Catalog, error) {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].ID < sorted[b].ID })

	byID := make(map[int]int, len(sorted))
	for idx, it := range sorted {
		if _, dup := byID[it.ID]; dup {
			return Catalog{}, domain.NewDuplicateItem(it.ID)
		}
		if it.Location != nil && !it.Location.Valid() {
			return Catalog{}, fmt.Errorf("%w: item %d has invalid location", domain.ErrInvalidCatalog, it.ID)
		}
		byID[it.ID] = idx
	}

	return Catalog{items: sorted, byID: byID}, nil
}

// MustNew builds a catalog or panics. Intended for static data.
func MustNew(items []Item) Catalog {
	c, err := New(items)
	if err != nil {
		panic(err)
	}
	return c
}

// Items returns a copy of the items in ID order.
func (c Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Get looks up an item by ID.
func (c Catalog) Get(id int) (Item, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Item{}, false
	}
	return c.items[idx], true
}

// Len returns the number of items.
func (c Catalog) Len() int { return len(c.items) }

// IDs returns item IDs in ascending order.
func (c Catalog) IDs() []int {
	ids := make([]int, len(c.items))
	for i, it := range c.items {
		ids[i] = it.ID
	}
	return ids
}
