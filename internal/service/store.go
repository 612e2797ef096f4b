// Package service contains the business logic for the EuroPlan API.
// TripStore is the single process-wide owner of the trip collection: it loads
// persisted state at startup, applies the domain mutations, and saves the
// whole collection after every change. Nothing outside this package mutates
// trip data.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agu27/EuroPlan/internal/domain"
	"github.com/agu27/EuroPlan/internal/repo"
)

// Recorder receives counts of what the store does.
// *metrics.Metrics implements it; tests usually leave it unset.
type Recorder interface {
	Mutation(operation string)
	Import(result string)
	Collection(segments, items int)
}

type nopRecorder struct{}

func (nopRecorder) Mutation(string)     {}
func (nopRecorder) Import(string)       {}
func (nopRecorder) Collection(int, int) {}

// DefaultIntentTTL is how long a destructive request waits for confirmation.
const DefaultIntentTTL = 5 * time.Minute

// TripStore serialises all writers behind one mutex and hands readers deep
// copies, so the collection can be shared by concurrent HTTP handlers.
type TripStore struct {
	repo      repo.SegmentRepo
	log       *slog.Logger
	rec       Recorder
	now       func() time.Time
	intentTTL time.Duration

	mu       sync.RWMutex
	segments []domain.Segment
	intents  map[string]Intent

	// importSeq hands out import tickets; only the newest ticket may commit.
	importSeq atomic.Uint64
}

// Option customises a TripStore.
type Option func(*TripStore)

// WithLogger sets the logger used for store events.
func WithLogger(l *slog.Logger) Option {
	return func(s *TripStore) { s.log = l }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *TripStore) { s.rec = r }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *TripStore) { s.now = now }
}

// WithIntentTTL sets how long an unconfirmed intent stays valid.
func WithIntentTTL(ttl time.Duration) Option {
	return func(s *TripStore) { s.intentTTL = ttl }
}

// NewTripStore constructs a TripStore and loads the persisted collection.
// Malformed stored data has already been replaced by an empty trip in r;
// only storage failures are returned.
func NewTripStore(ctx context.Context, r repo.SegmentRepo, opts ...Option) (*TripStore, error) {
	s := &TripStore{
		repo:      r,
		log:       slog.Default(),
		rec:       nopRecorder{},
		now:       time.Now,
		intentTTL: DefaultIntentTTL,
		intents:   make(map[string]Intent),
	}
	for _, opt := range opts {
		opt(s)
	}

	segments, err := r.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.NewTripStore: %w", err)
	}
	s.segments = segments
	s.observeLocked()
	s.log.InfoContext(ctx, "trip loaded", "segments", len(segments))
	return s, nil
}

// SegmentInput carries the fields of a new destination.
type SegmentInput struct {
	City          string
	Country       string
	ArrivalDate   string
	DepartureDate string
}

// ItemInput carries the fields of an item as typed by the user.
// Cost is the raw text of the cost field and is parsed with domain.ParseCost.
// FreeActivity marks an activity that is not paid for; its cost is ignored.
type ItemInput struct {
	Title            string
	Category         string
	Date             string
	Time             string
	Location         string
	Duration         string
	BookingReference string
	Cost             string
	Currency         string
	PaymentStatus    string
	Notes            string
	FreeActivity     bool
}

// Segments returns a deep copy of the current collection.
func (s *TripStore) Segments() []domain.Segment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneSegments(s.segments)
}

// Segment returns a copy of one segment.
// Returns domain.ErrNotFound if no segment has that id.
func (s *TripStore) Segment(id string) (domain.Segment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seg, ok := domain.FindSegment(s.segments, id)
	if !ok {
		return domain.Segment{}, fmt.Errorf("service.TripStore.Segment: %w", domain.ErrNotFound)
	}
	return seg.Clone(), nil
}

// AddSegment validates in, assigns a new id and inserts the segment in
// arrival order. Returns domain.ErrValidation for invalid input.
func (s *TripStore) AddSegment(ctx context.Context, in SegmentInput) (domain.Segment, error) {
	seg := domain.Segment{
		ID:            domain.NewSegmentID(),
		City:          in.City,
		Country:       in.Country,
		ArrivalDate:   in.ArrivalDate,
		DepartureDate: in.DepartureDate,
		Items:         []domain.Item{},
	}
	if err := domain.ValidateSegment(seg); err != nil {
		return domain.Segment{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.commitLocked(ctx, "add_segment", domain.AddSegment(s.segments, seg)); err != nil {
		return domain.Segment{}, fmt.Errorf("service.TripStore.AddSegment: %w", err)
	}
	return seg, nil
}

// DeleteSegment removes a segment and all its items immediately.
// HTTP callers go through RequestDeleteSegment and Confirm instead.
// Returns domain.ErrNotFound if no segment has that id.
func (s *TripStore) DeleteSegment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.deleteSegmentLocked(ctx, id); err != nil {
		return fmt.Errorf("service.TripStore.DeleteSegment: %w", err)
	}
	return nil
}

func (s *TripStore) deleteSegmentLocked(ctx context.Context, id string) error {
	if _, ok := domain.FindSegment(s.segments, id); !ok {
		return domain.ErrNotFound
	}
	return s.commitLocked(ctx, "delete_segment", domain.DeleteSegment(s.segments, id))
}

// AddItem builds an item from in and appends it to the segment.
// Returns domain.ErrNotFound if the segment does not exist and
// domain.ErrValidation (possibly with domain.ErrInvalidCost) for bad input.
func (s *TripStore) AddItem(ctx context.Context, segmentID string, in ItemInput) (domain.Item, error) {
	item, err := buildItem(domain.NewItemID(), in)
	if err != nil {
		return domain.Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := domain.FindSegment(s.segments, segmentID); !ok {
		return domain.Item{}, fmt.Errorf("service.TripStore.AddItem: %w", domain.ErrNotFound)
	}
	if err := s.commitLocked(ctx, "add_item", domain.AddItem(s.segments, segmentID, item)); err != nil {
		return domain.Item{}, fmt.Errorf("service.TripStore.AddItem: %w", err)
	}
	return item, nil
}

// UpdateItem replaces an existing item, keeping its id and position.
// Returns domain.ErrNotFound if the segment or item does not exist.
func (s *TripStore) UpdateItem(ctx context.Context, segmentID, itemID string, in ItemInput) (domain.Item, error) {
	item, err := buildItem(itemID, in)
	if err != nil {
		return domain.Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := domain.FindItem(s.segments, segmentID, itemID); !ok {
		return domain.Item{}, fmt.Errorf("service.TripStore.UpdateItem: %w", domain.ErrNotFound)
	}
	if err := s.commitLocked(ctx, "update_item", domain.UpdateItem(s.segments, segmentID, item)); err != nil {
		return domain.Item{}, fmt.Errorf("service.TripStore.UpdateItem: %w", err)
	}
	return item, nil
}

// DeleteItem removes an item immediately. Deleting an item that is already
// gone is a no-op; an unknown segment returns domain.ErrNotFound.
func (s *TripStore) DeleteItem(ctx context.Context, segmentID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.deleteItemLocked(ctx, segmentID, itemID); err != nil {
		return fmt.Errorf("service.TripStore.DeleteItem: %w", err)
	}
	return nil
}

func (s *TripStore) deleteItemLocked(ctx context.Context, segmentID, itemID string) error {
	if _, ok := domain.FindSegment(s.segments, segmentID); !ok {
		return domain.ErrNotFound
	}
	if _, ok := domain.FindItem(s.segments, segmentID, itemID); !ok {
		return nil
	}
	return s.commitLocked(ctx, "delete_item", domain.DeleteItem(s.segments, segmentID, itemID))
}

// Ledger returns the filtered, grouped and totalled budget table.
func (s *TripStore) Ledger(f domain.LedgerFilter) domain.LedgerView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Ledger(s.segments, f)
}

// Summary returns the dashboard summary.
func (s *TripStore) Summary() domain.TripSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Summarize(s.segments)
}

// CostByCategory returns the chart data for the dashboard.
func (s *TripStore) CostByCategory() []domain.CategoryCost {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CostByCategory(s.segments)
}

// commitLocked persists next and, only if that succeeds, makes it the
// current collection. A failed save leaves memory and storage in agreement.
// Callers must hold s.mu for writing.
func (s *TripStore) commitLocked(ctx context.Context, op string, next []domain.Segment) error {
	if err := s.repo.Save(ctx, next); err != nil {
		s.log.ErrorContext(ctx, "failed to persist trip", "operation", op, "error", err)
		return err
	}
	s.segments = next
	s.rec.Mutation(op)
	s.observeLocked()
	s.log.DebugContext(ctx, "trip updated", "operation", op, "segments", len(next))
	return nil
}

func (s *TripStore) observeLocked() {
	items := 0
	for _, seg := range s.segments {
		items += len(seg.Items)
	}
	s.rec.Collection(len(s.segments), items)
}

// buildItem turns raw input into a normalised, validated item.
// An empty payment status defaults to Pending.
func buildItem(id string, in ItemInput) (domain.Item, error) {
	category, ok := domain.ParseCategory(in.Category)
	if !ok {
		return domain.Item{}, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, in.Category)
	}
	status := domain.PaymentPending
	if in.PaymentStatus != "" {
		status, ok = domain.ParsePaymentStatus(in.PaymentStatus)
		if !ok {
			return domain.Item{}, fmt.Errorf("%w: unknown paymentStatus %q", domain.ErrValidation, in.PaymentStatus)
		}
	}

	free := in.FreeActivity && category == domain.CategoryActivity
	var cost float64
	if !free {
		var err error
		if cost, err = domain.ParseCost(in.Cost); err != nil {
			return domain.Item{}, err
		}
	}

	item := domain.NormalizeItem(domain.Item{
		ID:               id,
		Title:            in.Title,
		Category:         category,
		Date:             in.Date,
		Time:             in.Time,
		Location:         in.Location,
		Duration:         in.Duration,
		BookingReference: in.BookingReference,
		Cost:             cost,
		Currency:         in.Currency,
		PaymentStatus:    status,
		Notes:            in.Notes,
	}, !free)
	if err := domain.ValidateItem(item); err != nil {
		return domain.Item{}, err
	}
	return item, nil
}
