package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agu27/EuroPlan/internal/domain"
)

// Destructive operations run in two phases. A Request* call checks the target
// and returns an Intent without changing anything; the mutation happens only
// when the caller confirms that intent. Declining, or letting it expire,
// leaves the trip untouched.

// IntentKind names the destructive operation an intent will perform.
type IntentKind string

const (
	IntentDeleteSegment IntentKind = "delete_segment"
	IntentDeleteItem    IntentKind = "delete_item"
	IntentReset         IntentKind = "reset"
)

// Intent is a pending destructive operation awaiting confirmation.
type Intent struct {
	ID          string     `json:"id"`
	Kind        IntentKind `json:"kind"`
	SegmentID   string     `json:"segmentId,omitempty"`
	ItemID      string     `json:"itemId,omitempty"`
	Description string     `json:"description"`
	ExpiresAt   time.Time  `json:"expiresAt"`
}

// RequestDeleteSegment registers an intent to delete a segment and its items.
// Returns domain.ErrNotFound if no segment has that id.
func (s *TripStore) RequestDeleteSegment(ctx context.Context, segmentID string) (Intent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seg, ok := domain.FindSegment(s.segments, segmentID)
	if !ok {
		return Intent{}, fmt.Errorf("service.TripStore.RequestDeleteSegment: %w", domain.ErrNotFound)
	}
	return s.registerLocked(ctx, Intent{
		Kind:        IntentDeleteSegment,
		SegmentID:   segmentID,
		Description: fmt.Sprintf("Delete %s and its %d items", seg.City, len(seg.Items)),
	}), nil
}

// RequestDeleteItem registers an intent to delete one item.
// Returns domain.ErrNotFound if the segment or item does not exist.
func (s *TripStore) RequestDeleteItem(ctx context.Context, segmentID, itemID string) (Intent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := domain.FindItem(s.segments, segmentID, itemID)
	if !ok {
		return Intent{}, fmt.Errorf("service.TripStore.RequestDeleteItem: %w", domain.ErrNotFound)
	}
	return s.registerLocked(ctx, Intent{
		Kind:        IntentDeleteItem,
		SegmentID:   segmentID,
		ItemID:      itemID,
		Description: fmt.Sprintf("Delete %q", item.Title),
	}), nil
}

// RequestReset registers an intent to erase the whole trip.
func (s *TripStore) RequestReset(ctx context.Context) Intent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registerLocked(ctx, Intent{
		Kind:        IntentReset,
		Description: fmt.Sprintf("Erase all %d destinations", len(s.segments)),
	})
}

// Confirm performs the operation behind intentID exactly once.
// Returns domain.ErrIntentNotFound for unknown, expired or already used
// intents. A target deleted in the meantime is not an error. If storage
// fails the intent stays pending until it expires.
func (s *TripStore) Confirm(ctx context.Context, intentID string) (Intent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in, err := s.takeLocked(intentID)
	if err != nil {
		return Intent{}, fmt.Errorf("service.TripStore.Confirm: %w", err)
	}

	switch in.Kind {
	case IntentDeleteSegment:
		err = s.deleteSegmentLocked(ctx, in.SegmentID)
		if errors.Is(err, domain.ErrNotFound) {
			err = nil
		}
	case IntentDeleteItem:
		err = s.deleteItemLocked(ctx, in.SegmentID, in.ItemID)
		if errors.Is(err, domain.ErrNotFound) {
			err = nil
		}
	case IntentReset:
		err = s.resetLocked(ctx)
	default:
		return Intent{}, fmt.Errorf("service.TripStore.Confirm: unknown intent kind %q", in.Kind)
	}
	if err != nil {
		// The trip is unchanged, so the same intent may be confirmed again.
		s.intents[in.ID] = in
		return Intent{}, fmt.Errorf("service.TripStore.Confirm: %w", err)
	}
	s.log.InfoContext(ctx, "intent confirmed", "intent_id", in.ID, "kind", in.Kind)
	return in, nil
}

// Decline discards intentID without touching the trip.
// Returns domain.ErrIntentNotFound for unknown, expired or already used intents.
func (s *TripStore) Decline(ctx context.Context, intentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, err := s.takeLocked(intentID)
	if err != nil {
		return fmt.Errorf("service.TripStore.Decline: %w", err)
	}
	s.log.InfoContext(ctx, "intent declined", "intent_id", in.ID, "kind", in.Kind)
	return nil
}

func (s *TripStore) registerLocked(ctx context.Context, in Intent) Intent {
	s.pruneLocked()
	in.ID = uuid.NewString()
	in.ExpiresAt = s.now().Add(s.intentTTL)
	s.intents[in.ID] = in
	s.log.DebugContext(ctx, "intent requested", "intent_id", in.ID, "kind", in.Kind)
	return in
}

// takeLocked removes and returns a live intent.
func (s *TripStore) takeLocked(id string) (Intent, error) {
	s.pruneLocked()
	in, ok := s.intents[id]
	if !ok {
		return Intent{}, domain.ErrIntentNotFound
	}
	delete(s.intents, id)
	return in, nil
}

func (s *TripStore) pruneLocked() {
	now := s.now()
	for id, in := range s.intents {
		if !now.Before(in.ExpiresAt) {
			delete(s.intents, id)
		}
	}
}
