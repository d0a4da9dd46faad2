package service

import (
	"context"
	"time"

	"github.com/alexivanou/restaurant-finder/internal/model"
	"github.com/alexivanou/restaurant-finder/internal/repository"
	"go.uber.org/zap"
)

// Service provides business logic for the API
type Service struct {
	places    PlacesClient
	searchLog repository.SearchLogRepository
	logger    *zap.Logger
}

// NewService creates a new service instance
func NewService(
	places PlacesClient,
	searchLog repository.SearchLogRepository,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		places:    places,
		searchLog: searchLog,
		logger:    logger,
	}
}

// RecentSearches returns the latest search log entries, newest first
func (s *Service) RecentSearches(ctx context.Context, limit int) ([]model.SearchLogEntry, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	return s.searchLog.Recent(ctx, limit)
}

// record stores a search log entry. A failing log never fails the lookup.
func (s *Service) record(ctx context.Context, entry model.SearchLogEntry, started time.Time) {
	entry.DurationMs = time.Since(started).Milliseconds()
	entry.CreatedAt = started.UTC()
	if err := s.searchLog.Record(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.Warn("Failed to record search",
			zap.String("kind", string(entry.Kind)),
			zap.Error(err),
		)
	}
}
