package service

import (
	"context"

	"github.com/alexivanou/restaurant-finder/internal/model"
	"github.com/alexivanou/restaurant-finder/internal/places"
)

// ServiceInterface defines the service interface for testing
type ServiceInterface interface {
	SearchNearby(ctx context.Context, req model.NearbyRequest) ([]model.Restaurant, error)
	GetDetails(ctx context.Context, id string) (*model.Restaurant, error)
	FetchPhoto(ctx context.Context, reference string, maxWidth int) (*places.Photo, error)
	RecentSearches(ctx context.Context, limit int) ([]model.SearchLogEntry, error)
}

// PlacesClient is the upstream Places API as seen by the service
type PlacesClient interface {
	NearbySearch(ctx context.Context, lat, lng float64, radius int) ([]model.Restaurant, error)
	Details(ctx context.Context, placeID string) (*model.Restaurant, error)
	Photo(ctx context.Context, reference string, maxWidth int) (*places.Photo, error)
}
