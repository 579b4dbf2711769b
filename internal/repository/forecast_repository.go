package repository

import (
	"context"

	"github.com/andresuchdata/medicast/backend-go/internal/domain"
)

// ForecastRepository persists forecast summaries per owner.
type ForecastRepository interface {
	// Insert stores rec and returns it with ID and CreatedAt assigned.
	Insert(ctx context.Context, rec domain.ForecastRecord) (domain.ForecastRecord, error)
	// ListByOwner returns the owner's records, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.ForecastRecord, error)
}
