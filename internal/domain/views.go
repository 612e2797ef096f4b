package domain

import (
	"sort"
	"strings"
)

// FilterAll is the wildcard accepted by the category and status predicates.
const FilterAll = "all"

// LedgerFilter holds the budget table predicates. Zero values match
// everything: an empty Category or Status (or FilterAll) places no
// restriction, and an empty Date matches any date.
type LedgerFilter struct {
	// Query is matched case-insensitively as a substring of the item title
	// or of the city it belongs to.
	Query    string
	Category string
	Status   string
	// Date must equal the item date exactly ("2006-01-02").
	Date string
}

// CategoryGroup is one block of the grouped ledger.
type CategoryGroup struct {
	Category Category           `json:"category"`
	Items    []ItemWithLocation `json:"items"`
}

// LedgerTotals aggregates a sequence of ledger rows.
type LedgerTotals struct {
	Total   float64 `json:"total"`
	Paid    float64 `json:"paid"`
	Pending float64 `json:"pending"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// LedgerView is everything the budget table renders for one filter.
type LedgerView struct {
	Items  []ItemWithLocation `json:"items"`
	Groups []CategoryGroup    `json:"groups"`
	Totals LedgerTotals       `json:"totals"`
}

// Flatten lists every item of every segment, annotated with its segment's
// city and country, sorted ascending by date. Items sharing a date keep
// their itinerary order.
func Flatten(segments []Segment) []ItemWithLocation {
	out := make([]ItemWithLocation, 0)
	for _, s := range segments {
		for _, it := range s.Items {
			out = append(out, ItemWithLocation{
				Item:      it,
				SegmentID: s.ID,
				City:      s.City,
				Country:   s.Country,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

// Filter returns the rows that satisfy every predicate in f, in input order.
func Filter(items []ItemWithLocation, f LedgerFilter) []ItemWithLocation {
	query := strings.ToLower(f.Query)
	out := make([]ItemWithLocation, 0, len(items))
	for _, it := range items {
		if query != "" &&
			!strings.Contains(strings.ToLower(it.Title), query) &&
			!strings.Contains(strings.ToLower(it.City), query) {
			continue
		}
		if !matchesWildcard(f.Category, string(it.Category)) {
			continue
		}
		if !matchesWildcard(f.Status, string(it.PaymentStatus)) {
			continue
		}
		if f.Date != "" && it.Date != f.Date {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matchesWildcard(want, got string) bool {
	return want == "" || want == FilterAll || want == got
}

// GroupByCategory partitions items by category. Groups appear in the order
// their category is first seen; rows keep their relative order.
func GroupByCategory(items []ItemWithLocation) []CategoryGroup {
	groups := make([]CategoryGroup, 0)
	index := map[Category]int{}
	for _, it := range items {
		i, ok := index[it.Category]
		if !ok {
			i = len(groups)
			index[it.Category] = i
			groups = append(groups, CategoryGroup{Category: it.Category})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}

// Totals sums the cost of items overall, of the paid ones and of the
// pending ones. Partial payments count toward Total only.
// Average is zero for an empty input.
func Totals(items []ItemWithLocation) LedgerTotals {
	var t LedgerTotals
	for _, it := range items {
		t.Total += it.Cost
		switch it.PaymentStatus {
		case PaymentPaid:
			t.Paid += it.Cost
		case PaymentPending:
			t.Pending += it.Cost
		}
	}
	t.Count = len(items)
	if t.Count > 0 {
		t.Average = t.Total / float64(t.Count)
	}
	return t
}

// Ledger composes Flatten, Filter, GroupByCategory and Totals.
func Ledger(segments []Segment, f LedgerFilter) LedgerView {
	items := Filter(Flatten(segments), f)
	return LedgerView{
		Items:  items,
		Groups: GroupByCategory(items),
		Totals: Totals(items),
	}
}
