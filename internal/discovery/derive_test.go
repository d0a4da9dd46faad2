package discovery

import (
	"testing"

	"github.com/alexivanou/restaurant-finder/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(p model.PriceLevel) *model.PriceLevel {
	return &p
}

func ids(restaurants []model.Restaurant) []string {
	out := make([]string, 0, len(restaurants))
	for _, r := range restaurants {
		out = append(out, r.ID)
	}
	return out
}

func TestDerive(t *testing.T) {
	list := []model.Restaurant{
		{ID: "a", Rating: 4.5, PriceLevel: price(2)},
		{ID: "b", Rating: 3.0, PriceLevel: price(1)},
		{ID: "c", Rating: 4.0, PriceLevel: price(2)},
		{ID: "d", Rating: 4.8},
	}

	tests := []struct {
		name     string
		filters  Filters
		expected []string
	}{
		{
			name:     "moderate highest first",
			filters:  Filters{RatingSort: SortHighest, PriceFilter: price(2)},
			expected: []string{"a", "c"},
		},
		{
			name:     "moderate lowest first",
			filters:  Filters{RatingSort: SortLowest, PriceFilter: price(2)},
			expected: []string{"c", "a"},
		},
		{
			name:     "all prices highest first",
			filters:  Filters{RatingSort: SortHighest},
			expected: []string{"d", "a", "c", "b"},
		},
		{
			name:     "no match",
			filters:  Filters{RatingSort: SortHighest, PriceFilter: price(4)},
			expected: []string{},
		},
		{
			name:     "unknown price never matches a concrete filter",
			filters:  Filters{RatingSort: SortHighest, PriceFilter: price(0)},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(Derive(list, tt.filters)))
		})
	}
}

func TestDerive_StableForEqualRatings(t *testing.T) {
	list := []model.Restaurant{
		{ID: "x", Rating: 4.0},
		{ID: "y", Rating: 0},
		{ID: "z", Rating: 4.0},
		{ID: "w", Rating: 4.0},
	}

	assert.Equal(t, []string{"x", "z", "w", "y"}, ids(Derive(list, Filters{RatingSort: SortHighest})))
	assert.Equal(t, []string{"y", "x", "z", "w"}, ids(Derive(list, Filters{RatingSort: SortLowest})))
}

func TestDerive_DoesNotMutateInput(t *testing.T) {
	list := []model.Restaurant{
		{ID: "a", Rating: 1},
		{ID: "b", Rating: 5},
		{ID: "c", Rating: 3},
	}
	before := ids(list)

	out := Derive(list, Filters{RatingSort: SortHighest})
	require.Equal(t, []string{"b", "c", "a"}, ids(out))
	assert.Equal(t, before, ids(list))

	// Same input, same output
	assert.Equal(t, out, Derive(list, Filters{RatingSort: SortHighest}))
}

func TestParsePriceFilter(t *testing.T) {
	p, err := ParsePriceFilter("all")
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = ParsePriceFilter("")
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = ParsePriceFilter("3")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, model.PriceExpensive, *p)

	_, err = ParsePriceFilter("7")
	assert.Error(t, err)

	_, err = ParsePriceFilter("cheap")
	assert.Error(t, err)
}

func TestParseSortOrder(t *testing.T) {
	order, err := ParseSortOrder("Lowest")
	require.NoError(t, err)
	assert.Equal(t, SortLowest, order)

	_, err = ParseSortOrder("best")
	assert.Error(t, err)
}

func TestValidRadius(t *testing.T) {
	for _, r := range AllowedRadii {
		assert.True(t, ValidRadius(r))
	}
	assert.False(t, ValidRadius(750))
	assert.False(t, ValidRadius(0))
}
