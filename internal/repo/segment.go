package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/agu27/EuroPlan/internal/domain"
)

// StorageKey is the single key the whole trip lives under. The "_v2" suffix
// is the schema revision marker; there is no version field inside the value.
const StorageKey = "europlan_local_v2"

// SegmentRepo defines how the trip collection is persisted.
// The service layer depends on this interface, not on a concrete KVStore,
// which allows the store to be unit-tested with a mock.
type SegmentRepo interface {
	// Load returns the persisted collection. A missing or malformed value
	// yields an empty collection and no error; only storage failures are
	// returned.
	Load(ctx context.Context) ([]domain.Segment, error)

	// Save overwrites the persisted collection with segments in full.
	Save(ctx context.Context, segments []domain.Segment) error

	// Clear removes the persisted collection entirely.
	Clear(ctx context.Context) error
}

// kvSegmentRepo stores the collection as one JSON array under StorageKey.
type kvSegmentRepo struct {
	kv  KVStore
	log *slog.Logger
}

// NewSegmentRepo constructs a SegmentRepo on top of kv.
// A nil logger falls back to slog.Default().
func NewSegmentRepo(kv KVStore, log *slog.Logger) SegmentRepo {
	if log == nil {
		log = slog.Default()
	}
	return &kvSegmentRepo{kv: kv, log: log}
}

// Load reads and decodes StorageKey, failing soft to an empty collection.
func (r *kvSegmentRepo) Load(ctx context.Context) ([]domain.Segment, error) {
	data, err := r.kv.Get(ctx, StorageKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.Segment{}, nil
		}
		return nil, fmt.Errorf("repo.SegmentRepo.Load: %w", err)
	}

	segments, err := domain.DecodeBackup(data)
	if err != nil {
		r.log.WarnContext(ctx, "discarding malformed stored trip data",
			"key", StorageKey,
			"bytes", len(data),
			"error", err,
		)
		return []domain.Segment{}, nil
	}
	return segments, nil
}

// Save encodes segments as a compact JSON array and overwrites StorageKey.
func (r *kvSegmentRepo) Save(ctx context.Context, segments []domain.Segment) error {
	data, err := domain.EncodeSegments(segments)
	if err != nil {
		return fmt.Errorf("repo.SegmentRepo.Save: %w", err)
	}
	if err := r.kv.Set(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("repo.SegmentRepo.Save: %w", err)
	}
	return nil
}

// Clear deletes StorageKey.
func (r *kvSegmentRepo) Clear(ctx context.Context) error {
	if err := r.kv.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("repo.SegmentRepo.Clear: %w", err)
	}
	return nil
}
