package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agu27/EuroPlan/internal/domain"
	"github.com/agu27/EuroPlan/internal/repo"
	"github.com/agu27/EuroPlan/testutil"
)

// newTestPostgresKV returns a KVStore backed by a transaction that is rolled
// back when the test finishes, giving free per-test isolation.
//
// Requires TEST_DATABASE_URL; TestMain applies the migrations beforehand.
func newTestPostgresKV(t *testing.T) repo.KVStore {
	t.Helper()
	return repo.NewPostgresKV(testutil.NewTx(t))
}

func TestPostgresKV(t *testing.T) {
	kvContract(t, newTestPostgresKV(t))
}

// TestPostgresKV_segmentRepo exercises the full persistence path against
// Postgres: save a collection, load it back, clear it.
func TestPostgresKV_segmentRepo(t *testing.T) {
	r := repo.NewSegmentRepo(newTestPostgresKV(t), nil)
	ctx := context.Background()

	segs := domain.AddSegment(nil, domain.Segment{
		ID: "s1", City: "Vienna", Country: "Austria",
		ArrivalDate: "2025-09-01", DepartureDate: "2025-09-04",
	})
	require.NoError(t, r.Save(ctx, segs))

	got, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, segs, got)

	require.NoError(t, r.Clear(ctx))
	got, err = r.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}
