// Package domain contains the core data types for the EuroPlan trip planner,
// together with the pure functions that mutate and summarise a trip.
// Nothing in this package performs I/O; the store and the HTTP layer build on it.
package domain

import (
	"github.com/google/uuid"
)

// DefaultCurrency is applied to items saved without an explicit currency.
// Currencies are informational only; amounts are never converted.
const DefaultCurrency = "USD"

// DateLayout is the calendar date format used for every date field.
const DateLayout = "2006-01-02"

// Segment is a single city stop on the trip.
// ArrivalDate and DepartureDate are ISO dates ("2006-01-02"). A segment owns
// its items exclusively; deleting the segment deletes them too.
type Segment struct {
	ID            string `json:"id"`
	City          string `json:"city"`
	Country       string `json:"country"`
	ArrivalDate   string `json:"arrivalDate"`
	DepartureDate string `json:"departureDate"`
	Items         []Item `json:"items"`
}

// Item is a single bookable or payable unit inside a segment: a flight,
// a hotel night, a museum ticket and so on.
// Cost is zero for free activities (Category == CategoryActivity).
type Item struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	Category         Category      `json:"category"`
	Date             string        `json:"date"`
	Time             string        `json:"time,omitempty"`
	Location         string        `json:"location"`
	Cost             float64       `json:"cost"`
	Currency         string        `json:"currency"`
	PaymentStatus    PaymentStatus `json:"paymentStatus"`
	Notes            string        `json:"notes,omitempty"`
	BookingReference string        `json:"bookingReference,omitempty"`
	Duration         string        `json:"duration,omitempty"`
}

// ItemWithLocation is an item annotated with the segment it belongs to.
// It is the row type of the budget ledger.
type ItemWithLocation struct {
	Item
	SegmentID string `json:"segmentId"`
	City      string `json:"cityName"`
	Country   string `json:"countryName"`
}

// NewSegmentID returns a fresh random identifier for a segment.
func NewSegmentID() string {
	return uuid.NewString()
}

// NewItemID returns a fresh random identifier for an item.
func NewItemID() string {
	return uuid.NewString()
}

// Clone returns a deep copy of s. The copy never shares its Items backing
// array with s, so appending to or editing one does not affect the other.
func (s Segment) Clone() Segment {
	out := s
	out.Items = make([]Item, len(s.Items))
	copy(out.Items, s.Items)
	return out
}

// CloneSegments deep-copies a whole collection. A nil input yields an empty,
// non-nil slice so callers can always encode it as a JSON array.
func CloneSegments(segments []Segment) []Segment {
	out := make([]Segment, len(segments))
	for i, s := range segments {
		out[i] = s.Clone()
	}
	return out
}
