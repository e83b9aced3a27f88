// Package catalog implements the in-memory view over a loaded product set:
// category and price filtering, ordering, and incremental "load more"
// pagination. The view never talks to the store; it works on the snapshot
// it was given and is resynchronized by its caller after any mutation.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"haven/internal/models"
)

// ErrNoProducts signals that no products were loaded at all, as opposed to
// a filter combination that happens to match nothing.
var ErrNoProducts = errors.New("no products loaded")

// DefaultPageSize is the initial number of listings shown; LoadMore grows
// the page by the same amount.
const DefaultPageSize = 10

// SortKey selects the ordering applied to the filtered set.
type SortKey string

const (
	SortNone      SortKey = ""
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNewest    SortKey = "newest"
)

// ParseSortKey converts a user-supplied sort value into a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case SortNone, SortPriceAsc, SortPriceDesc, SortNewest:
		return SortKey(s), nil
	default:
		return SortNone, fmt.Errorf("unknown sort key %q", s)
	}
}

// PriceRange is an inclusive price filter. A nil Max means "and above":
// only the lower bound applies.
type PriceRange struct {
	Min float64
	Max *float64
}

func (r PriceRange) contains(price float64) bool {
	if price < r.Min {
		return false
	}
	if r.Max != nil && price > *r.Max {
		return false
	}
	return true
}

// View derives a filtered, sorted, paginated slice of a product snapshot.
// Displayed output is a pure function of (source, category, price, sortKey,
// pageSize); recompute runs after every state change and keeps no hidden
// state beyond the cached result.
type View struct {
	source   []models.Product
	category string
	price    *PriceRange
	sortKey  SortKey
	pageSize int

	displayed []models.Product
}

// NewView creates a View over the given snapshot with no filters, no sort,
// and the default page size.
func NewView(source []models.Product) *View {
	v := &View{pageSize: DefaultPageSize}
	v.SetSource(source)
	return v
}

// SetSource replaces the underlying snapshot, e.g. after a reload from the
// record service. Filters, sort, and page size are kept.
func (v *View) SetSource(source []models.Product) {
	v.source = make([]models.Product, len(source))
	copy(v.source, source)
	v.recompute()
}

// SetCategoryFilter restricts the view to one category. An empty value
// clears the restriction.
func (v *View) SetCategoryFilter(category string) {
	v.category = category
	v.recompute()
}

// SetPriceFilter restricts the view to an inclusive price range. A nil
// range clears the restriction.
func (v *View) SetPriceFilter(r *PriceRange) {
	v.price = r
	v.recompute()
}

// SetSortKey changes the ordering of the filtered set.
func (v *View) SetSortKey(key SortKey) {
	v.sortKey = key
	v.recompute()
}

// ClearAll resets filters and sort to their defaults. The current page
// size is preserved.
func (v *View) ClearAll() {
	v.category = ""
	v.price = nil
	v.sortKey = SortNone
	v.recompute()
}

// LoadMore grows the displayed page by the fixed increment without
// touching filters or sort.
func (v *View) LoadMore() {
	v.pageSize += DefaultPageSize
	v.recompute()
}

// PageSize returns the current page size.
func (v *View) PageSize() int {
	return v.pageSize
}

// RemoveByID drops a product from the snapshot after its deletion has been
// confirmed against the record service. Absent IDs are a no-op.
func (v *View) RemoveByID(id string) {
	for i, p := range v.source {
		if p.ID == id {
			v.source = append(v.source[:i], v.source[i+1:]...)
			v.recompute()
			return
		}
	}
}

// Displayed returns the current page: the first pageSize elements of the
// sorted, filtered snapshot. It returns ErrNoProducts when nothing was
// loaded, which is distinct from an empty result under an active filter.
func (v *View) Displayed() ([]models.Product, error) {
	if len(v.source) == 0 {
		return nil, ErrNoProducts
	}
	out := make([]models.Product, len(v.displayed))
	copy(out, v.displayed)
	return out, nil
}

// Total returns the size of the filtered set regardless of pagination.
func (v *View) Total() int {
	return len(v.filtered())
}

// Categories returns the distinct category values present in the snapshot,
// in first-appearance order. This is the option set offered for filtering.
func (v *View) Categories() []string {
	seen := make(map[string]bool)
	var categories []string
	for _, p := range v.source {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories
}

// PriceBounds returns the minimum and maximum price across the snapshot.
// ok is false when no products are loaded.
func (v *View) PriceBounds() (min, max float64, ok bool) {
	if len(v.source) == 0 {
		return 0, 0, false
	}
	min, max = v.source[0].Price, v.source[0].Price
	for _, p := range v.source[1:] {
		if p.Price < min {
			min = p.Price
		}
		if p.Price > max {
			max = p.Price
		}
	}
	return min, max, true
}

func (v *View) filtered() []models.Product {
	var filtered []models.Product
	for _, p := range v.source {
		if v.category != "" && p.Category != v.category {
			continue
		}
		if v.price != nil && !v.price.contains(p.Price) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// recompute rederives the displayed page: filter, then stable sort, then
// prefix of pageSize elements.
func (v *View) recompute() {
	sorted := v.filtered()

	switch v.sortKey {
	case SortPriceAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price < sorted[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price > sorted[j].Price
		})
	case SortNewest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	case SortNone:
		// keep insertion order of the filtered set
	}

	if len(sorted) > v.pageSize {
		sorted = sorted[:v.pageSize]
	}
	v.displayed = sorted
}
