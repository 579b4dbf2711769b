package postgres

import (
	"context"
	"fmt"

	"github.com/andresuchdata/medicast/backend-go/internal/domain"
	"github.com/andresuchdata/medicast/backend-go/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const forecastsSchema = `
	CREATE TABLE IF NOT EXISTS forecasts (
		id                UUID PRIMARY KEY,
		user_id           TEXT NOT NULL,
		medicine          TEXT NOT NULL,
		weather           TEXT NOT NULL,
		month             TEXT,
		forecast_units    INTEGER NOT NULL,
		revenue           DOUBLE PRECISION NOT NULL,
		prediction_period TEXT,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_forecasts_user_created ON forecasts (user_id, created_at DESC);
`

type forecastRepository struct {
	db *DB
}

var _ repository.ForecastRepository = (*forecastRepository)(nil)

func NewForecastRepository(db *DB) repository.ForecastRepository {
	return &forecastRepository{db: db}
}

// EnsureSchema creates the forecasts table if it does not exist.
func EnsureSchema(ctx context.Context, db *DB) error {
	if _, err := db.ExecContext(ctx, forecastsSchema); err != nil {
		return fmt.Errorf("failed to create forecasts schema: %w", err)
	}
	return nil
}

func (r *forecastRepository) Insert(ctx context.Context, rec domain.ForecastRecord) (domain.ForecastRecord, error) {
	rec.ID = uuid.NewString()

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO forecasts (
				id, user_id, medicine, weather, month,
				forecast_units, revenue, prediction_period, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
			RETURNING created_at
		`
		return tx.QueryRowxContext(ctx, query,
			rec.ID,
			rec.OwnerID,
			rec.Medicine,
			rec.Weather,
			rec.Month,
			rec.ForecastUnits,
			rec.Revenue,
			rec.PredictionPeriod,
		).Scan(&rec.CreatedAt)
	})
	if err != nil {
		return domain.ForecastRecord{}, fmt.Errorf("failed to insert forecast: %w", err)
	}

	return rec, nil
}

func (r *forecastRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.ForecastRecord, error) {
	query := `
		SELECT id, user_id, medicine, weather, month,
			forecast_units, revenue, prediction_period, created_at
		FROM forecasts
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	records := []domain.ForecastRecord{}
	if err := r.db.SelectContext(ctx, &records, query, ownerID); err != nil {
		return nil, fmt.Errorf("error listing forecasts: %w", err)
	}

	return records, nil
}
