package catalog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"haven/internal/catalog"
	"haven/internal/models"
)

func listing(id, category string, price float64, created time.Time) models.Product {
	return models.Product{
		ID:          id,
		Title:       "Listing " + id,
		Description: "A handmade item for testing",
		Price:       price,
		Image:       "http://assets.local/" + id + ".jpg",
		Category:    category,
		Model:       gorm.Model{CreatedAt: created},
	}
}

func displayedIDs(t *testing.T, v *catalog.View) []string {
	t.Helper()
	displayed, err := v.Displayed()
	assert.NoError(t, err)
	ids := make([]string, 0, len(displayed))
	for _, p := range displayed {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestView_CategoryFilter(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	source := []models.Product{
		listing("p1", "pottery", 10, base),
		listing("k1", "knitting", 20, base.Add(time.Hour)),
		listing("p2", "pottery", 30, base.Add(2*time.Hour)),
	}

	view := catalog.NewView(source)
	view.SetCategoryFilter("pottery")

	displayed, err := view.Displayed()
	assert.NoError(t, err)
	assert.Len(t, displayed, 2)
	for _, p := range displayed {
		assert.Equal(t, "pottery", p.Category)
	}

	// Sorting the filtered result by ascending price keeps only the
	// pottery items, cheapest first.
	view.SetSortKey(catalog.SortPriceAsc)
	assert.Equal(t, []string{"p1", "p2"}, displayedIDs(t, view))
}

func TestView_PriceFilterBoundsAreInclusive(t *testing.T) {
	base := time.Now()
	source := []models.Product{
		listing("a", "pottery", 10, base),
		listing("b", "pottery", 20, base),
		listing("c", "pottery", 30, base),
		listing("d", "pottery", 40, base),
	}

	view := catalog.NewView(source)
	max := 30.0
	view.SetPriceFilter(&catalog.PriceRange{Min: 10, Max: &max})

	assert.Equal(t, []string{"a", "b", "c"}, displayedIDs(t, view))
}

func TestView_PriceFilterAndAbove(t *testing.T) {
	base := time.Now()
	source := []models.Product{
		listing("a", "pottery", 10, base),
		listing("b", "pottery", 25, base),
		listing("c", "pottery", 90, base),
	}

	view := catalog.NewView(source)
	// nil Max represents "and above": no upper bound at all.
	view.SetPriceFilter(&catalog.PriceRange{Min: 25})

	assert.Equal(t, []string{"b", "c"}, displayedIDs(t, view))
}

func TestView_SortPriceAscendingAndDescendingAreReversed(t *testing.T) {
	base := time.Now()
	source := []models.Product{
		listing("mid", "pottery", 20, base),
		listing("high", "pottery", 30, base),
		listing("low", "pottery", 10, base),
	}

	view := catalog.NewView(source)

	view.SetSortKey(catalog.SortPriceAsc)
	asc := displayedIDs(t, view)
	assert.Equal(t, []string{"low", "mid", "high"}, asc)

	view.SetSortKey(catalog.SortPriceDesc)
	desc := displayedIDs(t, view)

	for i := range asc {
		assert.Equal(t, asc[i], desc[len(desc)-1-i])
	}
}

func TestView_SortNewestFirst(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	source := []models.Product{
		listing("oldest", "pottery", 10, base),
		listing("newest", "pottery", 20, base.Add(48*time.Hour)),
		listing("middle", "pottery", 30, base.Add(24*time.Hour)),
	}

	view := catalog.NewView(source)
	view.SetSortKey(catalog.SortNewest)

	assert.Equal(t, []string{"newest", "middle", "oldest"}, displayedIDs(t, view))
}

func TestView_LoadMoreGrowsThePage(t *testing.T) {
	base := time.Now()
	source := make([]models.Product, 0, 25)
	for i := 0; i < 25; i++ {
		source = append(source, listing(string(rune('a'+i)), "pottery", float64(i+1), base))
	}

	view := catalog.NewView(source)
	displayed, err := view.Displayed()
	assert.NoError(t, err)
	assert.Len(t, displayed, 10)

	view.LoadMore()
	view.LoadMore()
	assert.Equal(t, 30, view.PageSize())

	displayed, err = view.Displayed()
	assert.NoError(t, err)
	// Only 25 products exist, so the page is capped at the sorted length.
	assert.Len(t, displayed, 25)
}

func TestView_ClearAllRestoresOriginalOrderAndKeepsPageSize(t *testing.T) {
	base := time.Now()
	source := make([]models.Product, 0, 15)
	for i := 0; i < 15; i++ {
		source = append(source, listing(string(rune('a'+i)), "pottery", float64(15-i), base))
	}

	view := catalog.NewView(source)
	view.LoadMore()
	view.SetCategoryFilter("knitting")
	view.SetSortKey(catalog.SortPriceAsc)

	view.ClearAll()

	assert.Equal(t, 20, view.PageSize())
	displayed, err := view.Displayed()
	assert.NoError(t, err)
	assert.Len(t, displayed, 15)
	for i, p := range displayed {
		assert.Equal(t, source[i].ID, p.ID)
	}
}

func TestView_PotteryScenario(t *testing.T) {
	// Three products priced 10, 20, 30; the 20 is the lone knitting item.
	base := time.Now()
	source := []models.Product{
		listing("pot-cheap", "pottery", 10, base),
		listing("knit", "knitting", 20, base),
		listing("pot-dear", "pottery", 30, base),
	}

	view := catalog.NewView(source)
	view.SetCategoryFilter("pottery")

	displayed, err := view.Displayed()
	assert.NoError(t, err)
	assert.Len(t, displayed, 2)

	view.SetSortKey(catalog.SortPriceAsc)
	displayed, err = view.Displayed()
	assert.NoError(t, err)
	assert.Equal(t, 10.0, displayed[0].Price)
	assert.Equal(t, 30.0, displayed[1].Price)
}

func TestView_RemoveByID(t *testing.T) {
	base := time.Now()
	source := []models.Product{
		listing("a", "pottery", 10, base),
		listing("b", "pottery", 20, base),
	}

	view := catalog.NewView(source)

	view.RemoveByID("missing") // no-op
	assert.Equal(t, []string{"a", "b"}, displayedIDs(t, view))

	view.RemoveByID("a")
	assert.Equal(t, []string{"b"}, displayedIDs(t, view))
}

func TestView_EmptySourceIsDistinctFromEmptyMatch(t *testing.T) {
	view := catalog.NewView(nil)
	_, err := view.Displayed()
	assert.ErrorIs(t, err, catalog.ErrNoProducts)

	view = catalog.NewView([]models.Product{
		listing("a", "pottery", 10, time.Now()),
	})
	view.SetCategoryFilter("knitting")

	displayed, err := view.Displayed()
	assert.NoError(t, err)
	assert.Empty(t, displayed)
}

func TestView_FilterOptionsFollowSource(t *testing.T) {
	base := time.Now()
	view := catalog.NewView([]models.Product{
		listing("a", "pottery", 15, base),
		listing("b", "knitting", 45, base),
		listing("c", "pottery", 5, base),
	})

	assert.Equal(t, []string{"pottery", "knitting"}, view.Categories())

	min, max, ok := view.PriceBounds()
	assert.True(t, ok)
	assert.Equal(t, 5.0, min)
	assert.Equal(t, 45.0, max)

	view.RemoveByID("b")
	assert.Equal(t, []string{"pottery"}, view.Categories())

	view.RemoveByID("a")
	view.RemoveByID("c")
	_, _, ok = view.PriceBounds()
	assert.False(t, ok)
}

func TestParseSortKey(t *testing.T) {
	key, err := catalog.ParseSortKey("price-asc")
	assert.NoError(t, err)
	assert.Equal(t, catalog.SortPriceAsc, key)

	_, err = catalog.ParseSortKey("alphabetical")
	assert.Error(t, err)
}
