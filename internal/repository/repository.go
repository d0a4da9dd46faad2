package repository

import (
	"context"

	"github.com/alexivanou/restaurant-finder/internal/config"
	"github.com/alexivanou/restaurant-finder/internal/model"
	"github.com/jmoiron/sqlx"
)

// SearchLogRepository stores one entry per upstream lookup
type SearchLogRepository interface {
	Record(ctx context.Context, entry model.SearchLogEntry) error
	Recent(ctx context.Context, limit int) ([]model.SearchLogEntry, error)
	Summary(ctx context.Context) ([]model.SearchLogSummary, error)
}

// Container holds all repositories
type Container struct {
	SearchLog SearchLogRepository
}

// NewRepositories creates repository implementations based on DB type
func NewRepositories(db *sqlx.DB, dbType config.DBType) *Container {
	if dbType == config.DBTypePostgreSQL {
		return &Container{
			SearchLog: &pgSearchLogRepository{db: db},
		}
	}

	// Default to SQLite
	return &Container{
		SearchLog: &sqliteSearchLogRepository{db: db},
	}
}
