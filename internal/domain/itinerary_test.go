package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agu27/EuroPlan/internal/domain"
)

// ---- helpers ---------------------------------------------------------------

func segmentFixture(id, city, arrival string) domain.Segment {
	return domain.Segment{
		ID:            id,
		City:          city,
		Country:       "France",
		ArrivalDate:   arrival,
		DepartureDate: arrival,
		Items:         []domain.Item{},
	}
}

func itemFixture(id string, cost float64, status domain.PaymentStatus) domain.Item {
	return domain.Item{
		ID:            id,
		Title:         "Item " + id,
		Category:      domain.CategoryHotel,
		Date:          "2025-06-02",
		Cost:          cost,
		Currency:      domain.DefaultCurrency,
		PaymentStatus: status,
	}
}

func arrivalDates(segments []domain.Segment) []string {
	out := make([]string, len(segments))
	for i, s := range segments {
		out[i] = s.ArrivalDate
	}
	return out
}

// ---- AddSegment ------------------------------------------------------------

// TestAddSegment_sortsByArrival verifies that segments added out of order
// end up ascending by arrival date.
func TestAddSegment_sortsByArrival(t *testing.T) {
	var segs []domain.Segment
	segs = domain.AddSegment(segs, segmentFixture("a", "Rome", "2025-07-10"))
	segs = domain.AddSegment(segs, segmentFixture("b", "Paris", "2025-07-01"))

	assert.Equal(t, []string{"2025-07-01", "2025-07-10"}, arrivalDates(segs))
}

// TestAddSegment_stableForTies verifies that segments with the same arrival
// date keep insertion order.
func TestAddSegment_stableForTies(t *testing.T) {
	var segs []domain.Segment
	segs = domain.AddSegment(segs, segmentFixture("first", "Lyon", "2025-07-05"))
	segs = domain.AddSegment(segs, segmentFixture("early", "Nice", "2025-07-01"))
	segs = domain.AddSegment(segs, segmentFixture("second", "Nantes", "2025-07-05"))
	segs = domain.AddSegment(segs, segmentFixture("third", "Lille", "2025-07-05"))

	ids := make([]string, len(segs))
	for i, s := range segs {
		ids[i] = s.ID
	}
	assert.Equal(t, []string{"early", "first", "second", "third"}, ids)
}

func TestAddSegment_doesNotMutateInput(t *testing.T) {
	orig := []domain.Segment{segmentFixture("a", "Rome", "2025-07-10")}

	got := domain.AddSegment(orig, segmentFixture("b", "Paris", "2025-07-01"))

	require.Len(t, got, 2)
	require.Len(t, orig, 1)
	assert.Equal(t, "a", orig[0].ID)
}

func TestAddSegment_nilItemsBecomeEmpty(t *testing.T) {
	seg := segmentFixture("a", "Rome", "2025-07-10")
	seg.Items = nil

	got := domain.AddSegment(nil, seg)

	require.NotNil(t, got[0].Items)
	assert.Empty(t, got[0].Items)
}

// ---- DeleteSegment ---------------------------------------------------------

func TestDeleteSegment_removesWithItems(t *testing.T) {
	segs := domain.AddSegment(nil, segmentFixture("a", "Rome", "2025-07-10"))
	segs = domain.AddItem(segs, "a", itemFixture("i1", 10, domain.PaymentPaid))
	segs = domain.AddSegment(segs, segmentFixture("b", "Paris", "2025-07-01"))

	got := domain.DeleteSegment(segs, "a")

	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
	assert.Empty(t, domain.Flatten(got))
}

func TestDeleteSegment_unknownIsNoop(t *testing.T) {
	segs := domain.AddSegment(nil, segmentFixture("a", "Rome", "2025-07-10"))

	got := domain.DeleteSegment(segs, "missing")

	assert.Equal(t, segs, got)
}

// ---- AddItem / UpdateItem / DeleteItem ------------------------------------

func TestAddItem_onlyTargetSegment(t *testing.T) {
	segs := domain.AddSegment(nil, segmentFixture("a", "Rome", "2025-07-10"))
	segs = domain.AddSegment(segs, segmentFixture("b", "Paris", "2025-07-01"))

	got := domain.AddItem(segs, "a", itemFixture("i1", 10, domain.PaymentPaid))

	a, _ := domain.FindSegment(got, "a")
	b, _ := domain.FindSegment(got, "b")
	assert.Len(t, a.Items, 1)
	assert.Empty(t, b.Items)

	// the input collection is untouched
	origA, _ := domain.FindSegment(segs, "a")
	assert.Empty(t, origA.Items)
}

func TestAddItem_unknownSegmentIsNoop(t *testing.T) {
	segs := domain.AddSegment(nil, segmentFixture("a", "Rome", "2025-07-10"))

	got := domain.AddItem(segs, "missing", itemFixture("i1", 10, domain.PaymentPaid))

	assert.Empty(t, domain.Flatten(got))
}

// TestUpdateItem_keepsPositionAndIdentity verifies that add → update → read
// yields exactly one item with that id, carrying the new fields, in its
// original position.
func TestUpdateItem_keepsPositionAndIdentity(t *testing.T) {
	segs := domain.AddSegment(nil, segmentFixture("a", "Rome", "2025-07-10"))
	segs = domain.AddItem(segs, "a", itemFixture("i1", 10, domain.PaymentPending))
	segs = domain.AddItem(segs, "a", itemFixture("i2", 20, domain.PaymentPending))
	segs = domain.AddItem(segs, "a", itemFixture("i3", 30, domain.PaymentPending))

	updated := itemFixture("i2", 99, domain.PaymentPaid)
	updated.Title = "Colosseum"
	got := domain.UpdateItem(segs, "a", updated)

	a, _ := domain.FindSegment(got, "a")
	require.Len(t, a.Items, 3)
	assert.Equal(t, "i2", a.Items[1].ID)
	assert.Equal(t, "Colosseum", a.Items[1].Title)
	assert.Equal(t, 99.0, a.Items[1].Cost)

	count := 0
	for _, it := range domain.Flatten(got) {
		if it.ID == "i2" {
			count++
		}
	}
	assert.Equal(t, 1, count)

	old, _ := domain.FindItem(segs, "a", "i2")
	assert.Equal(t, 20.0, old.Cost, "input collection must not change")
}

func TestUpdateItem_unknownItemIsNoop(t *testing.T) {
	segs := domain.AddSegment(nil, segmentFixture("a", "Rome", "2025-07-10"))
	segs = domain.AddItem(segs, "a", itemFixture("i1", 10, domain.PaymentPending))

	got := domain.UpdateItem(segs, "a", itemFixture("nope", 50, domain.PaymentPaid))

	assert.Equal(t, segs, got)
}

func TestDeleteItem_isIdempotent(t *testing.T) {
	segs := domain.AddSegment(nil, segmentFixture("a", "Rome", "2025-07-10"))
	segs = domain.AddItem(segs, "a", itemFixture("i1", 10, domain.PaymentPending))
	segs = domain.AddItem(segs, "a", itemFixture("i2", 20, domain.PaymentPending))

	once := domain.DeleteItem(segs, "a", "i1")
	twice := domain.DeleteItem(once, "a", "i1")

	for _, it := range domain.Flatten(once) {
		assert.NotEqual(t, "i1", it.ID)
	}
	assert.Equal(t, once, twice)
	assert.Len(t, domain.Flatten(segs), 2, "input collection must not change")
}
