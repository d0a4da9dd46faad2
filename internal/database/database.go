package database

import (
	"context"
	"fmt"

	"github.com/alexivanou/restaurant-finder/internal/config"
	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver for database/sql
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Connect creates a database connection based on configuration using sqlx
func Connect(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, error) {
	driverName := "pgx"
	if cfg.IsMemory() {
		driverName = "sqlite3"
	}

	db, err := sqlx.ConnectContext(ctx, driverName, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// A shared-cache in-memory SQLite database locks whole tables, so
	// concurrent handlers must queue on a single connection.
	if cfg.IsMemory() {
		db.SetMaxOpenConns(1)
	}

	return db, nil
}
