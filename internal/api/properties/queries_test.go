package properties

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"realestate-app/internal/infra/cache"
	"realestate-app/internal/infra/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedListFixture creates two owners and five properties:
//
//	id  owner  code    price    year  images
//	p1  alice  CODE-1  100000   1990  enabled
//	p2  alice  CODE-2  250000   2005  disabled
//	p3  bob    CODE-3  500000   2015  enabled+disabled
//	p4  bob    VILLA-4 750000   nil   none
//	p5  bob    VILLA-5 1200000  2020  none
func seedListFixture(t *testing.T, db *gorm.DB) (alice, bob uint, ids []uint) {
	t.Helper()

	a := seedOwner(t, db, "Alice")
	b := seedOwner(t, db, "Bob")

	seeds := []struct {
		owner uint
		seed  propSeed
	}{
		{a.ID, propSeed{name: "Harbor House", code: "CODE-1", price: 100000, year: intPtr(1990), images: []bool{true}}},
		{a.ID, propSeed{name: "City Flat", code: "CODE-2", price: 250000, year: intPtr(2005), images: []bool{false}}},
		{b.ID, propSeed{name: "Hill Cottage", code: "CODE-3", price: 500000, year: intPtr(2015), images: []bool{true, false}}},
		{b.ID, propSeed{name: "Sea Villa", code: "VILLA-4", price: 750000}},
		{b.ID, propSeed{name: "Lake Villa", code: "VILLA-5", price: 1200000, year: intPtr(2020)}},
	}
	for _, s := range seeds {
		p := seedProperty(t, db, s.owner, s.seed)
		ids = append(ids, p.ID)
	}
	return a.ID, b.ID, ids
}

func TestListPropertiesFilterCombinations(t *testing.T) {
	db := newTestDB(t)
	alice, bob, _ := seedListFixture(t, db)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter ListFiltersRequest
		total  int64
	}{
		{"empty filter matches everything", ListFiltersRequest{}, 5},
		{"owner equals", ListFiltersRequest{OwnerID: uintPtr(alice)}, 2},
		{"code equals", ListFiltersRequest{CodeInternal: "CODE-3"}, 1},
		{"code equals no match", ListFiltersRequest{CodeInternal: "NOPE"}, 0},
		{"name contains", ListFiltersRequest{NameContains: "Villa"}, 2},
		{"min price", ListFiltersRequest{MinPrice: floatPtr(500000)}, 3},
		{"max price", ListFiltersRequest{MaxPrice: floatPtr(250000)}, 2},
		{"price band", ListFiltersRequest{MinPrice: floatPtr(200000), MaxPrice: floatPtr(800000)}, 3},
		{"min year excludes null years", ListFiltersRequest{MinYear: intPtr(2000)}, 3},
		{"year band", ListFiltersRequest{MinYear: intPtr(1990), MaxYear: intPtr(2010)}, 2},
		{"has images", ListFiltersRequest{HasImages: boolPtr(true)}, 3},
		{"has no images", ListFiltersRequest{HasImages: boolPtr(false)}, 2},
		{"has enabled image", ListFiltersRequest{HasImages: boolPtr(true), ImageEnabled: boolPtr(true)}, 2},
		{"has disabled image", ListFiltersRequest{HasImages: boolPtr(true), ImageEnabled: boolPtr(false)}, 2},
		{"no images ignores image_enabled", ListFiltersRequest{HasImages: boolPtr(false), ImageEnabled: boolPtr(true)}, 2},
		{"owner and price", ListFiltersRequest{OwnerID: uintPtr(bob), MinPrice: floatPtr(700000)}, 2},
		{"all predicates", ListFiltersRequest{OwnerID: uintPtr(bob), NameContains: "Cottage", MinPrice: floatPtr(1), MaxPrice: floatPtr(600000), MinYear: intPtr(2000), MaxYear: intPtr(2020), HasImages: boolPtr(true)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := listProperties(ctx, db, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.total, result.Total)
			assert.Len(t, result.Items, int(tt.total))
		})
	}
}

func TestListPropertiesDeterministicPagination(t *testing.T) {
	db := newTestDB(t)
	_, _, ids := seedListFixture(t, db)
	ctx := context.Background()

	filter := ListFiltersRequest{Page: 1, PageSize: 2}
	first, err := listProperties(ctx, db, filter)
	require.NoError(t, err)
	second, err := listProperties(ctx, db, filter)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// Stable order by id ascending across pages.
	require.Len(t, first.Items, 2)
	assert.Equal(t, ids[0], first.Items[0].ID)
	assert.Equal(t, ids[1], first.Items[1].ID)

	page2, err := listProperties(ctx, db, ListFiltersRequest{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page2.Items, 2)
	assert.Equal(t, ids[2], page2.Items[0].ID)
	assert.Equal(t, ids[3], page2.Items[1].ID)
	assert.Equal(t, int64(5), page2.Total)
}

func TestListPropertiesPageBounds(t *testing.T) {
	db := newTestDB(t)
	seedListFixture(t, db)
	ctx := context.Background()

	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"zero values", 0, 0, 1, 1},
		{"negative values", -3, -10, 1, 1},
		{"huge page size clamped to 200", 1, 5000, 1, 200},
		{"in range untouched", 2, 50, 2, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := listProperties(ctx, db, ListFiltersRequest{Page: tt.page, PageSize: tt.pageSize})
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, result.Page)
			assert.Equal(t, tt.wantPageSize, result.PageSize)
		})
	}
}

func TestListPropertiesImageSubsetProjection(t *testing.T) {
	db := newTestDB(t)
	seedListFixture(t, db)
	ctx := context.Background()

	// ImageEnabled alone must not filter out properties, only narrow the
	// images each returned property carries.
	result, err := listProperties(ctx, db, ListFiltersRequest{ImageEnabled: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.Total)

	for _, item := range result.Items {
		for _, img := range item.Images {
			assert.True(t, img.Enabled)
		}
	}

	// The mixed property keeps only its enabled image.
	var mixed *PropertyDTO
	for i := range result.Items {
		if result.Items[i].CodeInternal == "CODE-3" {
			mixed = &result.Items[i]
		}
	}
	require.NotNil(t, mixed)
	assert.Len(t, mixed.Images, 1)
}

func TestListPropertiesOwnerProjection(t *testing.T) {
	db := newTestDB(t)
	alice, _, _ := seedListFixture(t, db)
	ctx := context.Background()

	result, err := listProperties(ctx, db, ListFiltersRequest{OwnerID: uintPtr(alice)})
	require.NoError(t, err)
	require.NotEmpty(t, result.Items)
	for _, item := range result.Items {
		require.NotNil(t, item.Owner)
		assert.Equal(t, "Alice", item.Owner.Name)
	}
}

func TestListPropertiesCached(t *testing.T) {
	db := newTestDB(t)
	owner, _, _ := seedListFixture(t, db)
	ctx := context.Background()

	store := cache.New()
	agg := metrics.New()
	filter := ListFiltersRequest{OwnerID: uintPtr(owner)}

	first, err := listPropertiesCached(ctx, db, store, agg, filter, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), first.Total)

	// Mutate underneath; a hit must return the cached result verbatim.
	seedProperty(t, db, owner, propSeed{name: "New Build", code: "CODE-9", price: 90000})

	cached, err := listPropertiesCached(ctx, db, store, agg, filter, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	fresh, err := listProperties(ctx, db, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(3), fresh.Total)

	m := agg.GetMetrics()
	hits := m["cache_hits"].(map[string]int64)
	misses := m["cache_misses"].(map[string]int64)
	assert.Len(t, hits, 1)
	assert.Len(t, misses, 1)
}

func TestListPropertiesCachedNilStoreFallsBack(t *testing.T) {
	db := newTestDB(t)
	seedListFixture(t, db)
	ctx := context.Background()

	result, err := listPropertiesCached(ctx, db, nil, nil, ListFiltersRequest{}, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.Total)
}

func TestFilterCacheKeyDistinguishesFilters(t *testing.T) {
	base := filterCacheKey(ListFiltersRequest{})
	withOwner := filterCacheKey(ListFiltersRequest{OwnerID: uintPtr(7)})
	withPrice := filterCacheKey(ListFiltersRequest{MinPrice: floatPtr(10)})

	assert.NotEqual(t, base, withOwner)
	assert.NotEqual(t, base, withPrice)
	assert.NotEqual(t, withOwner, withPrice)

	// Page does not belong to the base key; the page qualifier is
	// appended separately.
	assert.Equal(t, base, filterCacheKey(ListFiltersRequest{Page: 3, PageSize: 10}))
}

func TestFilterCacheKeySeparatorInValues(t *testing.T) {
	// An underscore inside a string field must not line up with the
	// underscores separating fields.
	k1 := filterCacheKey(ListFiltersRequest{CodeInternal: "A_B", NameContains: "C"})
	k2 := filterCacheKey(ListFiltersRequest{CodeInternal: "A", NameContains: "B_C"})
	assert.NotEqual(t, k1, k2)

	k3 := filterCacheKey(ListFiltersRequest{CodeInternal: "A_-_B"})
	k4 := filterCacheKey(ListFiltersRequest{CodeInternal: "A", NameContains: "B"})
	assert.NotEqual(t, k3, k4)
}

func TestListPropertiesCachedDistinctFiltersIsolated(t *testing.T) {
	db := newTestDB(t)
	owner := seedOwner(t, db, "Alice")
	seedProperty(t, db, owner.ID, propSeed{name: "C", code: "A_B", price: 100})
	ctx := context.Background()

	store := cache.New()

	// Matches the seeded property.
	first, err := listPropertiesCached(ctx, db, store, nil,
		ListFiltersRequest{CodeInternal: "A_B", NameContains: "C"}, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Total)

	// Matches nothing; must not be served the previous filter's page.
	second, err := listPropertiesCached(ctx, db, store, nil,
		ListFiltersRequest{CodeInternal: "A", NameContains: "B_C"}, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(0), second.Total)
	assert.Empty(t, second.Items)
}

// listRow mirrors one seeded property so filters can be evaluated in
// memory, independently of the SQL the query builder produces.
type listRow struct {
	owner  uint
	code   string
	name   string
	price  float64
	year   *int
	images []bool
}

func matchesFilter(r listRow, f ListFiltersRequest) bool {
	if f.OwnerID != nil && r.owner != *f.OwnerID {
		return false
	}
	if f.CodeInternal != "" && r.code != f.CodeInternal {
		return false
	}
	if f.NameContains != "" && !strings.Contains(r.name, f.NameContains) {
		return false
	}
	if f.MinPrice != nil && r.price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && r.price > *f.MaxPrice {
		return false
	}
	if f.MinYear != nil && (r.year == nil || *r.year < *f.MinYear) {
		return false
	}
	if f.MaxYear != nil && (r.year == nil || *r.year > *f.MaxYear) {
		return false
	}
	if f.HasImages != nil {
		if *f.HasImages {
			if len(r.images) == 0 {
				return false
			}
			if f.ImageEnabled != nil {
				found := false
				for _, enabled := range r.images {
					if enabled == *f.ImageEnabled {
						found = true
					}
				}
				if !found {
					return false
				}
			}
		} else if len(r.images) > 0 {
			return false
		}
	}
	return true
}

func TestListPropertiesRandomFilters(t *testing.T) {
	db := newTestDB(t)
	alice := seedOwner(t, db, "Alice")
	bob := seedOwner(t, db, "Bob")
	ownerIDs := []uint{alice.ID, bob.ID}

	rows := []listRow{
		{alice.ID, "R-01", "Harbor House", 100000, intPtr(1990), []bool{true}},
		{alice.ID, "R-02", "City Flat", 250000, intPtr(2005), []bool{false}},
		{alice.ID, "R-03", "Garden House", 320000, nil, []bool{true, true}},
		{alice.ID, "R-04", "Old Mill", 80000, intPtr(1950), nil},
		{bob.ID, "R-05", "Hill Cottage", 500000, intPtr(2015), []bool{true, false}},
		{bob.ID, "R-06", "Sea Villa", 750000, nil, nil},
		{bob.ID, "R-07", "Lake Villa", 1200000, intPtr(2020), []bool{false, false}},
		{bob.ID, "R-08", "River Flat", 250000, intPtr(1990), []bool{true}},
		{bob.ID, "R-09", "Forest Cabin", 60000, intPtr(2020), nil},
		{bob.ID, "R-10", "Town House", 500000, intPtr(2005), []bool{false}},
	}
	byCode := make(map[string]listRow, len(rows))
	for _, r := range rows {
		seedProperty(t, db, r.owner, propSeed{name: r.name, code: r.code, price: r.price, year: r.year, images: r.images})
		byCode[r.code] = r
	}

	codes := []string{"R-01", "R-05", "R-08", "R-99"}
	fragments := []string{"Villa", "House", "Flat", "Nowhere"}
	prices := []float64{60000, 100000, 250000, 500000, 1200000}
	years := []int{1950, 1990, 2005, 2020}

	rng := rand.New(rand.NewSource(7))
	randomFilter := func() ListFiltersRequest {
		var f ListFiltersRequest
		if rng.Intn(3) == 0 {
			f.OwnerID = uintPtr(ownerIDs[rng.Intn(len(ownerIDs))])
		}
		if rng.Intn(4) == 0 {
			f.CodeInternal = codes[rng.Intn(len(codes))]
		}
		if rng.Intn(3) == 0 {
			f.NameContains = fragments[rng.Intn(len(fragments))]
		}
		if rng.Intn(3) == 0 {
			f.MinPrice = floatPtr(prices[rng.Intn(len(prices))])
		}
		if rng.Intn(3) == 0 {
			f.MaxPrice = floatPtr(prices[rng.Intn(len(prices))])
		}
		if rng.Intn(3) == 0 {
			f.MinYear = intPtr(years[rng.Intn(len(years))])
		}
		if rng.Intn(3) == 0 {
			f.MaxYear = intPtr(years[rng.Intn(len(years))])
		}
		if rng.Intn(3) == 0 {
			f.HasImages = boolPtr(rng.Intn(2) == 0)
		}
		if rng.Intn(3) == 0 {
			f.ImageEnabled = boolPtr(rng.Intn(2) == 0)
		}
		f.PageSize = 200
		return f
	}

	ctx := context.Background()
	for i := 0; i < 200; i++ {
		f := randomFilter()

		var want int64
		for _, r := range rows {
			if matchesFilter(r, f) {
				want++
			}
		}

		result, err := listProperties(ctx, db, f)
		require.NoError(t, err)
		assert.Equal(t, want, result.Total, "filter %+v", f)
		assert.Len(t, result.Items, int(want), "filter %+v", f)
		for _, item := range result.Items {
			r, ok := byCode[item.CodeInternal]
			require.True(t, ok)
			assert.True(t, matchesFilter(r, f), "returned %s for filter %+v", item.CodeInternal, f)
		}
	}
}
