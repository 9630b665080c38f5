package search_test

import (
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/srgjo27/shutterbook/internal/core/apperrors"
	"github.com/srgjo27/shutterbook/internal/core/domain"
	"github.com/srgjo27/shutterbook/internal/core/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func photographer(name, location string, rate domain.Money, rating float64, reviews int, specialties ...string) domain.Photographer {
	return domain.Photographer{
		PhotographerProfile: domain.PhotographerProfile{
			ID:          uuid.New(),
			UserID:      uuid.New(),
			Location:    location,
			HourlyRate:  rate,
			Rating:      rating,
			ReviewCount: reviews,
			Specialties: specialties,
		},
		Name: name,
	}
}

func names(ps []domain.Photographer) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func catalog() []domain.Photographer {
	return []domain.Photographer{
		photographer("Sarah Johnson", "New York, NY", 15000, 4.9, 127, "Weddings", "Portraits"),
		photographer("Michael Chen", "Los Angeles, CA", 20000, 4.8, 89, "Commercial", "Products"),
		photographer("Emma Rodriguez", "Miami, FL", 12000, 4.9, 156, "Family", "Portraits"),
		photographer("David Kim", "Brooklyn, NY", 17500, 4.7, 64, "Events", "Real Estate"),
	}
}

func TestSearch_PriceRangeScenario(t *testing.T) {
	all := []domain.Photographer{
		photographer("Alice", "", 10000, 4.5, 0),
		photographer("Bob", "", 20000, 4.8, 0),
	}
	c := search.DefaultCriteria()
	c.MinPrice = 15000
	c.MaxPrice = 25000

	result, err := search.Search(all, c)

	require.NoError(t, err)
	assert.Equal(t, []string{"Bob"}, names(result))
}

func TestSearch_NoConstraintsReturnsEverything(t *testing.T) {
	all := catalog()

	result, err := search.Search(all, search.DefaultCriteria())

	require.NoError(t, err)
	assert.Len(t, result, len(all))
	// Ties on 4.9 keep input order.
	assert.Equal(t, []string{"Sarah Johnson", "Emma Rodriguez", "Michael Chen", "David Kim"}, names(result))
}

func TestSearch_Filters(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *search.Criteria)
		want   []string
	}{
		{
			name:   "name is case insensitive substring",
			modify: func(c *search.Criteria) { c.NameQuery = "CHEN" },
			want:   []string{"Michael Chen"},
		},
		{
			name:   "location substring",
			modify: func(c *search.Criteria) { c.LocationQuery = "ny" },
			want:   []string{"Sarah Johnson", "David Kim"},
		},
		{
			name:   "any specialty in common",
			modify: func(c *search.Criteria) { c.Specialties = []string{"Portraits", "Events"} },
			want:   []string{"Sarah Johnson", "Emma Rodriguez", "David Kim"},
		},
		{
			name:   "price bounds are inclusive",
			modify: func(c *search.Criteria) { c.MinPrice, c.MaxPrice = 15000, 17500 },
			want:   []string{"Sarah Johnson", "David Kim"},
		},
		{
			name:   "minimum rating",
			modify: func(c *search.Criteria) { c.MinRating = 4.8 },
			want:   []string{"Sarah Johnson", "Emma Rodriguez", "Michael Chen"},
		},
		{
			name:   "inverted price range matches nobody",
			modify: func(c *search.Criteria) { c.MinPrice, c.MaxPrice = 20000, 10000 },
			want:   []string{},
		},
		{
			name:   "no match is not an error",
			modify: func(c *search.Criteria) { c.NameQuery = "nobody" },
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := search.DefaultCriteria()
			tt.modify(&c)

			result, err := search.Search(catalog(), c)

			require.NoError(t, err)
			assert.Equal(t, tt.want, names(result))
		})
	}
}

func TestSearch_SortKeys(t *testing.T) {
	tests := []struct {
		key  search.SortKey
		want []string
	}{
		{search.SortByPriceAsc, []string{"Emma Rodriguez", "Sarah Johnson", "David Kim", "Michael Chen"}},
		{search.SortByPriceDesc, []string{"Michael Chen", "David Kim", "Sarah Johnson", "Emma Rodriguez"}},
		{search.SortByReviews, []string{"Emma Rodriguez", "Sarah Johnson", "Michael Chen", "David Kim"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			c := search.DefaultCriteria()
			c.SortKey = tt.key

			result, err := search.Search(catalog(), c)

			require.NoError(t, err)
			assert.Equal(t, tt.want, names(result))
		})
	}
}

func TestSearch_ResultIsSubsetAndInputUntouched(t *testing.T) {
	all := catalog()
	before := names(all)
	c := search.DefaultCriteria()
	c.SortKey = search.SortByPriceAsc
	c.Specialties = []string{"Portraits"}

	result, err := search.Search(all, c)

	require.NoError(t, err)
	assert.Equal(t, before, names(all))
	for _, p := range result {
		assert.True(t, slices.ContainsFunc(all, func(q domain.Photographer) bool { return q.ID == p.ID }))
	}
}

func TestSearch_SortIsIdempotent(t *testing.T) {
	c := search.DefaultCriteria()
	c.SortKey = search.SortByReviews

	once, err := search.Search(catalog(), c)
	require.NoError(t, err)
	twice, err := search.Search(once, c)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestSearch_StableTieBreak(t *testing.T) {
	all := []domain.Photographer{
		photographer("A", "", 10000, 4.0, 10),
		photographer("B", "", 10000, 4.0, 10),
		photographer("C", "", 10000, 4.0, 10),
	}

	for _, key := range []search.SortKey{search.SortByRating, search.SortByPriceAsc, search.SortByPriceDesc, search.SortByReviews} {
		c := search.DefaultCriteria()
		c.SortKey = key
		result, err := search.Search(all, c)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, names(result), key)
	}
}

func TestSearch_InvalidCriteria(t *testing.T) {
	c := search.DefaultCriteria()
	c.MinPrice = -1
	_, err := search.Search(catalog(), c)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))

	c = search.DefaultCriteria()
	c.MinRating = 6
	_, err = search.Search(catalog(), c)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))

	c = search.DefaultCriteria()
	c.SortKey = "distance"
	_, err = search.Search(catalog(), c)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))
}

func TestParseSortKey(t *testing.T) {
	key, err := search.ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, search.SortByRating, key)

	key, err = search.ParseSortKey("price-high")
	require.NoError(t, err)
	assert.Equal(t, search.SortByPriceDesc, key)
}
