package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidwall/pretty"
)

// BackupFilenamePrefix starts every exported snapshot file name.
const BackupFilenamePrefix = "mi-viaje-europa-"

// BackupFilename returns the download name for a snapshot taken at now,
// e.g. "mi-viaje-europa-2025-06-01.json". The date is taken in UTC.
func BackupFilename(now time.Time) string {
	return BackupFilenamePrefix + now.UTC().Format(DateLayout) + ".json"
}

// EncodeSegments serialises the collection as a compact JSON array.
// This is the exact value kept in storage.
func EncodeSegments(segments []Segment) ([]byte, error) {
	if segments == nil {
		segments = []Segment{}
	}
	data, err := json.Marshal(segments)
	if err != nil {
		return nil, fmt.Errorf("domain.EncodeSegments: %w", err)
	}
	return data, nil
}

// EncodeBackup serialises the collection as an indented, human-readable JSON
// array. Decoding it yields the same collection as the stored value.
func EncodeBackup(segments []Segment) ([]byte, error) {
	data, err := EncodeSegments(segments)
	if err != nil {
		return nil, err
	}
	return pretty.Pretty(data), nil
}

// DecodeBackup parses a snapshot. The top-level JSON value must be an array
// of segments; malformed JSON, objects and scalars all return
// ErrInvalidBackup, as do null or id-less segments and items and negative
// costs. Decoded segments are normalised.
func DecodeBackup(data []byte) ([]Segment, error) {
	trimmed := bytes.TrimSpace(data)
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidBackup)
	}
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: top-level value must be an array", ErrInvalidBackup)
	}
	var segments []Segment
	if err := json.Unmarshal(trimmed, &segments); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	out := make([]Segment, len(segments))
	for i, s := range segments {
		if err := checkBackupSegment(i, s); err != nil {
			return nil, err
		}
		out[i] = NormalizeSegment(s)
	}
	return out, nil
}

// checkBackupSegment rejects entries that could never have been saved.
// A null array element decodes to a zero value, so it fails the id check.
func checkBackupSegment(i int, s Segment) error {
	if s.ID == "" {
		return fmt.Errorf("%w: segment %d has no id", ErrInvalidBackup, i)
	}
	for j, it := range s.Items {
		if it.ID == "" {
			return fmt.Errorf("%w: segment %q item %d has no id", ErrInvalidBackup, s.ID, j)
		}
		if it.Cost < 0 {
			return fmt.Errorf("%w: item %q has a negative cost", ErrInvalidBackup, it.ID)
		}
	}
	return nil
}
