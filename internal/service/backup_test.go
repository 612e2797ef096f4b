package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agu27/EuroPlan/internal/domain"
	"github.com/agu27/EuroPlan/internal/service"
)

// threeCityStore returns a store holding Paris, Rome and Vienna.
func threeCityStore(t *testing.T, opts ...service.Option) *service.TripStore {
	t.Helper()
	s, _ := newMemoryStore(t, opts...)
	for _, in := range []service.SegmentInput{
		{City: "Paris", ArrivalDate: "2025-06-01", DepartureDate: "2025-06-05"},
		{City: "Rome", ArrivalDate: "2025-06-05", DepartureDate: "2025-06-09"},
		{City: "Vienna", ArrivalDate: "2025-06-09", DepartureDate: "2025-06-12"},
	} {
		mustAddSegment(t, s, in)
	}
	return s
}

// ---- Export ----------------------------------------------------------------

func TestTripStore_Export(t *testing.T) {
	at := time.Date(2025, 3, 14, 23, 30, 0, 0, time.UTC)
	s := threeCityStore(t, service.WithClock(func() time.Time { return at }))

	b, err := s.Export(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "mi-viaje-europa-2025-03-14.json", b.Filename)
	var decoded []domain.Segment
	require.NoError(t, json.Unmarshal(b.Data, &decoded))
	assert.Equal(t, s.Segments(), decoded)
	assert.Contains(t, string(b.Data), "\n", "backup should be pretty-printed")
}

func TestTripStore_Export_empty(t *testing.T) {
	s, _ := newMemoryStore(t)

	b, err := s.Export(context.Background())

	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(b.Data))
}

// ---- Import ----------------------------------------------------------------

func TestTripStore_Import_roundTrip(t *testing.T) {
	src := threeCityStore(t)
	b, err := src.Export(context.Background())
	require.NoError(t, err)

	dst, r := newMemoryStore(t)
	n, err := dst.Import(context.Background(), strings.NewReader(string(b.Data)))

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, src.Segments(), dst.Segments())
	saved, err := r.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, src.Segments(), saved)
}

func TestTripStore_Import_rejectsNonArray(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "object", body: `{"foo":1}`},
		{name: "string", body: `"trip"`},
		{name: "not json", body: `[{"id":`},
		{name: "empty", body: ``},
		{name: "null element", body: `[null]`},
		{name: "negative cost", body: `[{"id":"s1","city":"Oslo","arrivalDate":"2025-01-01","departureDate":"2025-01-02","items":[{"id":"i1","title":"Taxi","category":"Transport","cost":-5}]}]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := &recordingRecorder{}
			s := threeCityStore(t, service.WithRecorder(rec))
			before := s.Segments()

			_, err := s.Import(context.Background(), strings.NewReader(tc.body))

			assert.ErrorIs(t, err, domain.ErrInvalidBackup)
			assert.Equal(t, before, s.Segments())
			assert.Equal(t, []string{"rejected"}, rec.imports)
		})
	}
}

func TestTripStore_Import_normalisesLegacyLabels(t *testing.T) {
	s, _ := newMemoryStore(t)
	body := `[{"id":"s1","city":"Madrid","country":"Spain","arrivalDate":"2025-05-01","departureDate":"2025-05-03",
		"items":[{"id":"i1","title":"AVE","category":"Tren","cost":55,"paymentStatus":"Pagado"}]}]`

	_, err := s.Import(context.Background(), strings.NewReader(body))

	require.NoError(t, err)
	item := s.Segments()[0].Items[0]
	assert.Equal(t, domain.CategoryTrain, item.Category)
	assert.Equal(t, domain.PaymentPaid, item.PaymentStatus)
	assert.Equal(t, domain.DefaultCurrency, item.Currency)
}

func TestTripStore_Import_readError(t *testing.T) {
	s := threeCityStore(t)
	boom := errors.New("connection reset")

	_, err := s.Import(context.Background(), io.MultiReader(strings.NewReader("[{"), errReader{boom}))

	assert.ErrorIs(t, err, boom)
	assert.Len(t, s.Segments(), 3)
}

func TestTripStore_Import_clearsPendingIntents(t *testing.T) {
	s := threeCityStore(t)
	in := s.RequestReset(context.Background())

	_, err := s.Import(context.Background(), strings.NewReader(`[]`))
	require.NoError(t, err)

	_, err = s.Confirm(context.Background(), in.ID)
	assert.ErrorIs(t, err, domain.ErrIntentNotFound)
}

// TestTripStore_Import_superseded holds the first import in its read phase
// while a second import completes; the first must then be discarded.
func TestTripStore_Import_superseded(t *testing.T) {
	rec := &recordingRecorder{}
	s := threeCityStore(t, service.WithRecorder(rec))

	slow := newGatedReader(`[{"id":"old","city":"Lisbon","arrivalDate":"2025-01-01","departureDate":"2025-01-02","items":[]}]`)
	done := make(chan error, 1)
	go func() {
		_, err := s.Import(context.Background(), slow)
		done <- err
	}()
	<-slow.started

	n, err := s.Import(context.Background(), strings.NewReader(`[]`))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	close(slow.release)
	assert.ErrorIs(t, <-done, domain.ErrImportSuperseded)
	assert.Empty(t, s.Segments(), "the newer import must win")
	assert.ElementsMatch(t, []string{"ok", "superseded"}, rec.imports)
}

// ---- Reset -----------------------------------------------------------------

func TestTripStore_Reset(t *testing.T) {
	s, r := newMemoryStore(t)
	mustAddSegment(t, s, parisInput())

	require.NoError(t, s.Reset(context.Background()))

	assert.Empty(t, s.Segments())
	saved, err := r.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestTripStore_Reset_clearError(t *testing.T) {
	boom := errors.New("disk full")
	stored := []domain.Segment{{ID: "s1", City: "Oslo", ArrivalDate: "2025-01-01", DepartureDate: "2025-01-02", Items: []domain.Item{}}}
	s, err := service.NewTripStore(context.Background(), &mockSegmentRepo{
		load:  func(context.Context) ([]domain.Segment, error) { return stored, nil },
		clear: func(context.Context) error { return boom },
	})
	require.NoError(t, err)

	err = s.Reset(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Len(t, s.Segments(), 1)
}

// ---- readers ---------------------------------------------------------------

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

// gatedReader signals started on its first Read and then blocks until
// release is closed.
type gatedReader struct {
	r       io.Reader
	started chan struct{}
	release chan struct{}
	first   bool
}

func newGatedReader(body string) *gatedReader {
	return &gatedReader{
		r:       strings.NewReader(body),
		started: make(chan struct{}),
		release: make(chan struct{}),
		first:   true,
	}
}

func (g *gatedReader) Read(p []byte) (int, error) {
	if g.first {
		g.first = false
		close(g.started)
		<-g.release
	}
	return g.r.Read(p)
}
