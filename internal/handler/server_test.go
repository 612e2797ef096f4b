package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agu27/EuroPlan/internal/domain"
	"github.com/agu27/EuroPlan/internal/handler"
	"github.com/agu27/EuroPlan/internal/service"
)

// mockStore is a test double for every store interface the handlers use.
// Set only the method fields your test needs.
type mockStore struct {
	segments             func() []domain.Segment
	addSegment           func(ctx context.Context, in service.SegmentInput) (domain.Segment, error)
	addItem              func(ctx context.Context, segmentID string, in service.ItemInput) (domain.Item, error)
	updateItem           func(ctx context.Context, segmentID, itemID string, in service.ItemInput) (domain.Item, error)
	requestDeleteSegment func(ctx context.Context, segmentID string) (service.Intent, error)
	requestDeleteItem    func(ctx context.Context, segmentID, itemID string) (service.Intent, error)
	requestReset         func(ctx context.Context) service.Intent
	confirm              func(ctx context.Context, intentID string) (service.Intent, error)
	decline              func(ctx context.Context, intentID string) error
	ledger               func(f domain.LedgerFilter) domain.LedgerView
	summary              func() domain.TripSummary
	costByCategory       func() []domain.CategoryCost
	export               func(ctx context.Context) (service.Backup, error)
	importBackup         func(ctx context.Context, r io.Reader) (int, error)
}

func (m *mockStore) Segments() []domain.Segment { return m.segments() }
func (m *mockStore) AddSegment(ctx context.Context, in service.SegmentInput) (domain.Segment, error) {
	return m.addSegment(ctx, in)
}
func (m *mockStore) AddItem(ctx context.Context, segmentID string, in service.ItemInput) (domain.Item, error) {
	return m.addItem(ctx, segmentID, in)
}
func (m *mockStore) UpdateItem(ctx context.Context, segmentID, itemID string, in service.ItemInput) (domain.Item, error) {
	return m.updateItem(ctx, segmentID, itemID, in)
}
func (m *mockStore) RequestDeleteSegment(ctx context.Context, segmentID string) (service.Intent, error) {
	return m.requestDeleteSegment(ctx, segmentID)
}
func (m *mockStore) RequestDeleteItem(ctx context.Context, segmentID, itemID string) (service.Intent, error) {
	return m.requestDeleteItem(ctx, segmentID, itemID)
}
func (m *mockStore) RequestReset(ctx context.Context) service.Intent { return m.requestReset(ctx) }
func (m *mockStore) Confirm(ctx context.Context, intentID string) (service.Intent, error) {
	return m.confirm(ctx, intentID)
}
func (m *mockStore) Decline(ctx context.Context, intentID string) error {
	return m.decline(ctx, intentID)
}
func (m *mockStore) Ledger(f domain.LedgerFilter) domain.LedgerView { return m.ledger(f) }
func (m *mockStore) Summary() domain.TripSummary                   { return m.summary() }
func (m *mockStore) CostByCategory() []domain.CategoryCost         { return m.costByCategory() }
func (m *mockStore) Export(ctx context.Context) (service.Backup, error) {
	return m.export(ctx)
}
func (m *mockStore) Import(ctx context.Context, r io.Reader) (int, error) {
	return m.importBackup(ctx, r)
}

// compile-time checks: mockStore and the real store must satisfy every interface.
var (
	_ handler.ItineraryStorer = (*mockStore)(nil)
	_ handler.IntentStorer    = (*mockStore)(nil)
	_ handler.LedgerReader    = (*mockStore)(nil)
	_ handler.BackupStorer    = (*mockStore)(nil)

	_ handler.ItineraryStorer = (*service.TripStore)(nil)
	_ handler.IntentStorer    = (*service.TripStore)(nil)
	_ handler.LedgerReader    = (*service.TripStore)(nil)
	_ handler.BackupStorer    = (*service.TripStore)(nil)
)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server around m the same way main.go does.
func newHTTPHandler(m *mockStore) http.Handler {
	return handler.NewServer(m, m, m, m, handler.Options{}).Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// do sends one request through h and returns the recorder.
func do(h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeError decodes an ErrorResponse body.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}

func segmentFixture() domain.Segment {
	return domain.Segment{
		ID:            "seg-1",
		City:          "Paris",
		Country:       "France",
		ArrivalDate:   "2025-06-01",
		DepartureDate: "2025-06-05",
		Items: []domain.Item{{
			ID:            "item-1",
			Title:         "Hotel Lutetia",
			Category:      domain.CategoryHotel,
			Date:          "2025-06-01",
			Cost:          200,
			Currency:      "EUR",
			PaymentStatus: domain.PaymentPaid,
		}},
	}
}

func intentFixture(kind service.IntentKind) service.Intent {
	return service.Intent{ID: "intent-1", Kind: kind, SegmentID: "seg-1", Description: "Delete Paris and its 1 items"}
}
