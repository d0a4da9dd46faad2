package repository

import (
	"context"
	"time"

	"github.com/alexivanou/restaurant-finder/internal/model"
	"github.com/jmoiron/sqlx"
)

// --- PostgreSQL Implementation ---

type pgSearchLogRepository struct {
	db *sqlx.DB
}

func (r *pgSearchLogRepository) Record(ctx context.Context, entry model.SearchLogEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	// sqlx rebinds named parameters to $n for pgx
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO search_log (kind, lat, lng, radius, place_id, result_count, success, duration_ms, created_at)
		VALUES (:kind, :lat, :lng, :radius, :place_id, :result_count, :success, :duration_ms, :created_at)`,
		entry)
	return err
}

func (r *pgSearchLogRepository) Recent(ctx context.Context, limit int) ([]model.SearchLogEntry, error) {
	q := `
		SELECT id, kind, lat, lng, radius, place_id, result_count, success, duration_ms, created_at
		FROM search_log
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	entries := []model.SearchLogEntry{}
	if err := r.db.SelectContext(ctx, &entries, q, limit); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *pgSearchLogRepository) Summary(ctx context.Context) ([]model.SearchLogSummary, error) {
	q := `
		SELECT
			kind,
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE NOT success) AS failed,
			COALESCE(AVG(result_count), 0)::float8 AS avg_results,
			COALESCE(AVG(duration_ms), 0)::float8 AS avg_duration_ms
		FROM search_log
		GROUP BY kind
		ORDER BY kind
	`
	summaries := []model.SearchLogSummary{}
	if err := r.db.SelectContext(ctx, &summaries, q); err != nil {
		return nil, err
	}
	return summaries, nil
}
