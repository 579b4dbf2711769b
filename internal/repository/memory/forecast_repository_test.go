package memory

import (
	"context"
	"testing"
	"time"

	"github.com/andresuchdata/medicast/backend-go/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAssignsIdentity(t *testing.T) {
	r := NewForecastRepository()

	rec, err := r.Insert(context.Background(), domain.ForecastRecord{OwnerID: "u1", Medicine: "Crocin", ForecastUnits: 627})
	require.NoError(t, err)

	_, err = uuid.Parse(rec.ID)
	assert.NoError(t, err)
	assert.False(t, rec.CreatedAt.IsZero())
	assert.Equal(t, 627, rec.ForecastUnits)
}

func TestListByOwnerNewestFirst(t *testing.T) {
	r := NewForecastRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	r.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	ctx := context.Background()
	for _, m := range []string{"A", "B", "C"} {
		_, err := r.Insert(ctx, domain.ForecastRecord{OwnerID: "u1", Medicine: m})
		require.NoError(t, err)
	}
	_, err := r.Insert(ctx, domain.ForecastRecord{OwnerID: "u2", Medicine: "X"})
	require.NoError(t, err)

	got, err := r.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "C", got[0].Medicine)
	assert.Equal(t, "A", got[2].Medicine)

	none, err := r.ListByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCancelledContext(t *testing.T) {
	r := NewForecastRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Insert(ctx, domain.ForecastRecord{OwnerID: "u1"})
	assert.ErrorIs(t, err, context.Canceled)
}
