package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/andresuchdata/medicast/backend-go/internal/domain"
	"github.com/andresuchdata/medicast/backend-go/internal/repository"
	"github.com/google/uuid"
)

// ForecastRepository keeps records in process memory. It is used when no
// database is configured.
type ForecastRepository struct {
	mu      sync.RWMutex
	records map[string][]domain.ForecastRecord
	now     func() time.Time
}

var _ repository.ForecastRepository = (*ForecastRepository)(nil)

func NewForecastRepository() *ForecastRepository {
	return &ForecastRepository{
		records: make(map[string][]domain.ForecastRecord),
		now:     time.Now,
	}
}

func (r *ForecastRepository) Insert(ctx context.Context, rec domain.ForecastRecord) (domain.ForecastRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.ForecastRecord{}, err
	}

	rec.ID = uuid.NewString()
	rec.CreatedAt = r.now().UTC()

	r.mu.Lock()
	r.records[rec.OwnerID] = append(r.records[rec.OwnerID], rec)
	r.mu.Unlock()

	return rec, nil
}

func (r *ForecastRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.ForecastRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	out := append([]domain.ForecastRecord(nil), r.records[ownerID]...)
	r.mu.RUnlock()

	// insertion order is oldest first; reverse keeps ties stable
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
