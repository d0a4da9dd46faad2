package model

import (
	"fmt"
	"strconv"
)

// PriceLevel is the upstream price bucket, 0 (cheapest) to 4 (most expensive).
// A nil *PriceLevel means the price is unknown.
type PriceLevel int

const (
	PriceVeryCheap PriceLevel = iota
	PriceInexpensive
	PriceModerate
	PriceExpensive
	PriceVeryExpensive
)

const unknownPriceLabel = "Unknown Price"

var priceLabels = [...]string{
	"Very Cheap",
	"Inexpensive ($)",
	"Moderate ($$)",
	"Expensive ($$$)",
	"Very Expensive ($$$$)",
}

// Valid reports whether p is inside the 0-4 range
func (p PriceLevel) Valid() bool {
	return p >= PriceVeryCheap && p <= PriceVeryExpensive
}

// Label is safe to call on a nil receiver
func (p *PriceLevel) Label() string {
	if p == nil || !p.Valid() {
		return unknownPriceLabel
	}
	return priceLabels[*p]
}

// NewPriceLevel converts a raw upstream value, returning nil when it is
// missing or out of range
func NewPriceLevel(raw *int) *PriceLevel {
	if raw == nil {
		return nil
	}
	p := PriceLevel(*raw)
	if !p.Valid() {
		return nil
	}
	return &p
}

// ParsePriceLevel parses "0".."4"
func ParsePriceLevel(s string) (PriceLevel, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid price level %q: %w", s, err)
	}
	p := PriceLevel(n)
	if !p.Valid() {
		return 0, fmt.Errorf("price level %d out of range 0-4", n)
	}
	return p, nil
}
