package model

import "time"

// SearchKind identifies the adapter operation that was logged
type SearchKind string

const (
	SearchKindNearby  SearchKind = "nearby"
	SearchKindDetails SearchKind = "details"
)

// SearchLogEntry records a single upstream lookup made by the adapter
type SearchLogEntry struct {
	ID          int64      `json:"id" db:"id"`
	Kind        SearchKind `json:"kind" db:"kind"`
	Lat         *float64   `json:"lat,omitempty" db:"lat"`
	Lng         *float64   `json:"lng,omitempty" db:"lng"`
	Radius      *int       `json:"radius,omitempty" db:"radius"`
	PlaceID     *string    `json:"place_id,omitempty" db:"place_id"`
	ResultCount int        `json:"result_count" db:"result_count"`
	Success     bool       `json:"success" db:"success"`
	DurationMs  int64      `json:"duration_ms" db:"duration_ms"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// SearchLogSummary aggregates the search log per kind
type SearchLogSummary struct {
	Kind          SearchKind `json:"kind" db:"kind"`
	Total         int64      `json:"total" db:"total"`
	Failed        int64      `json:"failed" db:"failed"`
	AvgResults    float64    `json:"avg_results" db:"avg_results"`
	AvgDurationMs float64    `json:"avg_duration_ms" db:"avg_duration_ms"`
}
