package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexivanou/restaurant-finder/internal/model"
	"github.com/alexivanou/restaurant-finder/internal/places"
	"go.uber.org/zap"
)

const (
	DefaultRadius = 2000
	MaxRadius     = 50000

	DefaultPhotoWidth = 400
	maxPhotoWidth     = 1600

	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

// SearchNearby returns the restaurants around the requested location
func (s *Service) SearchNearby(ctx context.Context, req model.NearbyRequest) ([]model.Restaurant, error) {
	radius := req.Radius
	if radius == 0 {
		radius = DefaultRadius
	}

	if !req.Location().Valid() {
		return nil, newValidationError("coordinates", "lat must be within [-90, 90] and lng within [-180, 180]")
	}
	if radius < 0 || radius > MaxRadius {
		return nil, newValidationError("radius", "must be between 1 and %d meters", MaxRadius)
	}

	started := time.Now()
	restaurants, err := s.places.NearbySearch(ctx, req.Lat, req.Lng, radius)

	lat, lng := req.Lat, req.Lng
	s.record(ctx, model.SearchLogEntry{
		Kind:        model.SearchKindNearby,
		Lat:         &lat,
		Lng:         &lng,
		Radius:      &radius,
		ResultCount: len(restaurants),
		Success:     err == nil,
	}, started)

	if err != nil {
		return nil, fmt.Errorf("failed to search nearby restaurants: %w", err)
	}

	s.logger.Debug("Nearby search completed",
		zap.Float64("lat", req.Lat),
		zap.Float64("lng", req.Lng),
		zap.Int("radius", radius),
		zap.Int("results", len(restaurants)),
	)

	return restaurants, nil
}

// GetDetails returns the detailed record of a single restaurant
func (s *Service) GetDetails(ctx context.Context, id string) (*model.Restaurant, error) {
	if id == "" {
		return nil, newValidationError("id", "restaurant id is required")
	}

	started := time.Now()
	restaurant, err := s.places.Details(ctx, id)

	placeID := id
	entry := model.SearchLogEntry{
		Kind:    model.SearchKindDetails,
		PlaceID: &placeID,
		Success: err == nil,
	}
	if restaurant != nil {
		entry.ResultCount = 1
	}
	s.record(ctx, entry, started)

	if err != nil {
		return nil, fmt.Errorf("failed to get restaurant details: %w", err)
	}
	return restaurant, nil
}

// FetchPhoto streams a restaurant photo from upstream. Callers must close the body.
func (s *Service) FetchPhoto(ctx context.Context, reference string, maxWidth int) (*places.Photo, error) {
	if reference == "" {
		return nil, newValidationError("reference", "photo reference is required")
	}
	if maxWidth <= 0 {
		maxWidth = DefaultPhotoWidth
	}
	if maxWidth > maxPhotoWidth {
		maxWidth = maxPhotoWidth
	}

	photo, err := s.places.Photo(ctx, reference, maxWidth)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch photo: %w", err)
	}
	return photo, nil
}
