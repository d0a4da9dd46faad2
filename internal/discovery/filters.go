package discovery

import (
	"fmt"
	"strings"

	"github.com/alexivanou/restaurant-finder/internal/model"
)

// SortOrder orders the derived list by rating
type SortOrder string

const (
	SortHighest SortOrder = "highest"
	SortLowest  SortOrder = "lowest"
)

const DefaultRadius = 2000

// AllowedRadii are the search radii, in meters, a user can pick from
var AllowedRadii = []int{500, 1000, 2000, 5000, 10000}

// Filters is the user-controlled view state. A nil PriceFilter shows all prices.
type Filters struct {
	RatingSort  SortOrder
	PriceFilter *model.PriceLevel
	Radius      int
}

// DefaultFilters returns highest-rated first, all prices, 2000m
func DefaultFilters() Filters {
	return Filters{RatingSort: SortHighest, Radius: DefaultRadius}
}

// ValidRadius reports whether r is one of AllowedRadii
func ValidRadius(r int) bool {
	for _, allowed := range AllowedRadii {
		if r == allowed {
			return true
		}
	}
	return false
}

// ParseSortOrder parses "highest" or "lowest"
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case SortHighest:
		return SortHighest, nil
	case SortLowest:
		return SortLowest, nil
	}
	return "", fmt.Errorf("invalid sort order %q: want highest or lowest", s)
}

// ParsePriceFilter parses "all" (or empty) to nil and "0".."4" to a level
func ParsePriceFilter(s string) (*model.PriceLevel, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return nil, nil
	}
	p, err := model.ParsePriceLevel(s)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
