package domain

import (
	"math"
	"time"
)

// Destination names a city stop for display.
type Destination struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// TripSummary is the overview shown on the dashboard.
type TripSummary struct {
	TotalCost     float64 `json:"totalCost"`
	PaidAmount    float64 `json:"paidAmount"`
	PendingAmount float64 `json:"pendingAmount"`
	// PercentPaid is round(paid/total*100), or 0 when nothing costs anything.
	PercentPaid  int `json:"percentPaid"`
	TripDays     int `json:"tripDays"`
	SegmentCount int `json:"segmentCount"`
	ItemCount    int `json:"itemCount"`
	// NextDestination is the first segment of the itinerary; nil when empty.
	NextDestination *Destination `json:"nextDestination,omitempty"`
}

// CategoryCost is one slice of the cost-by-category chart.
type CategoryCost struct {
	Category Category `json:"category"`
	Cost     float64  `json:"cost"`
}

// Summarize computes the dashboard summary of the whole collection.
// PendingAmount is everything not yet marked paid, so partial payments
// land there too.
func Summarize(segments []Segment) TripSummary {
	var sum TripSummary
	for _, s := range segments {
		for _, it := range s.Items {
			sum.TotalCost += it.Cost
			if it.PaymentStatus == PaymentPaid {
				sum.PaidAmount += it.Cost
			}
			sum.ItemCount++
		}
	}
	sum.PendingAmount = sum.TotalCost - sum.PaidAmount
	if sum.TotalCost > 0 {
		sum.PercentPaid = int(math.Round(sum.PaidAmount / sum.TotalCost * 100))
	}
	sum.SegmentCount = len(segments)
	if len(segments) > 0 {
		first := segments[0]
		sum.NextDestination = &Destination{City: first.City, Country: first.Country}
		sum.TripDays = TripDays(first.ArrivalDate, segments[len(segments)-1].DepartureDate)
	}
	return sum
}

// TripDays returns ceil(end - start) in days for two ISO dates, or 0 when
// either date does not parse.
func TripDays(start, end string) int {
	from, err := time.Parse(DateLayout, start)
	if err != nil {
		return 0
	}
	to, err := time.Parse(DateLayout, end)
	if err != nil {
		return 0
	}
	return int(math.Ceil(to.Sub(from).Hours() / 24))
}

// CostByCategory sums item cost per category across the whole collection.
// Categories appear in the order they are first seen in the itinerary.
func CostByCategory(segments []Segment) []CategoryCost {
	out := make([]CategoryCost, 0)
	index := map[Category]int{}
	for _, s := range segments {
		for _, it := range s.Items {
			i, ok := index[it.Category]
			if !ok {
				i = len(out)
				index[it.Category] = i
				out = append(out, CategoryCost{Category: it.Category})
			}
			out[i].Cost += it.Cost
		}
	}
	return out
}
