package discovery

import (
	"sort"

	"github.com/alexivanou/restaurant-finder/internal/model"
)

// Derive returns the visible list for the given filters. The input is never
// modified; equal ratings keep their upstream order.
func Derive(restaurants []model.Restaurant, f Filters) []model.Restaurant {
	out := make([]model.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if f.PriceFilter != nil && (r.PriceLevel == nil || *r.PriceLevel != *f.PriceFilter) {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if f.RatingSort == SortLowest {
			return out[i].Rating < out[j].Rating
		}
		return out[i].Rating > out[j].Rating
	})

	return out
}
