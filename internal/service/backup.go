package service

import (
	"context"
	"fmt"
	"io"

	"github.com/agu27/EuroPlan/internal/domain"
)

// Backup is a downloadable snapshot of the whole trip.
type Backup struct {
	Filename string
	Data     []byte
}

// Export returns the current collection as a pretty-printed JSON snapshot,
// named after today's date.
func (s *TripStore) Export(ctx context.Context) (Backup, error) {
	s.mu.RLock()
	data, err := domain.EncodeBackup(s.segments)
	s.mu.RUnlock()
	if err != nil {
		return Backup{}, fmt.Errorf("service.TripStore.Export: %w", err)
	}
	s.log.InfoContext(ctx, "trip exported", "bytes", len(data))
	return Backup{Filename: domain.BackupFilename(s.now()), Data: data}, nil
}

// Import reads a snapshot from r and, if it is a JSON array, replaces the
// whole collection with it and persists it. It returns the number of
// segments imported.
//
// Reading happens outside the store lock. Each call takes a ticket first; if
// a newer Import starts before this one has finished reading, this one is
// discarded with domain.ErrImportSuperseded. Rejected snapshots return
// domain.ErrInvalidBackup. In every failure case the collection is untouched.
func (s *TripStore) Import(ctx context.Context, r io.Reader) (int, error) {
	ticket := s.importSeq.Add(1)

	data, err := io.ReadAll(r)
	if err != nil {
		s.rec.Import("read_error")
		return 0, fmt.Errorf("service.TripStore.Import: read: %w", err)
	}

	segments, err := domain.DecodeBackup(data)
	if err != nil {
		s.rec.Import("rejected")
		s.log.WarnContext(ctx, "backup rejected", "bytes", len(data), "error", err)
		return 0, fmt.Errorf("service.TripStore.Import: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.importSeq.Load() != ticket {
		s.rec.Import("superseded")
		s.log.WarnContext(ctx, "backup discarded, a newer import is in progress", "ticket", ticket)
		return 0, fmt.Errorf("service.TripStore.Import: %w", domain.ErrImportSuperseded)
	}
	if err := s.commitLocked(ctx, "import", segments); err != nil {
		s.rec.Import("error")
		return 0, fmt.Errorf("service.TripStore.Import: %w", err)
	}
	s.intents = make(map[string]Intent)
	s.rec.Import("ok")
	s.log.InfoContext(ctx, "backup imported", "segments", len(segments))
	return len(segments), nil
}

// Reset empties the collection and removes it from storage entirely.
// HTTP callers go through RequestReset and Confirm instead.
func (s *TripStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.resetLocked(ctx); err != nil {
		return fmt.Errorf("service.TripStore.Reset: %w", err)
	}
	return nil
}

func (s *TripStore) resetLocked(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		s.log.ErrorContext(ctx, "failed to clear stored trip", "error", err)
		return err
	}
	s.segments = []domain.Segment{}
	s.intents = make(map[string]Intent)
	s.rec.Mutation("reset")
	s.observeLocked()
	s.log.InfoContext(ctx, "trip reset")
	return nil
}
