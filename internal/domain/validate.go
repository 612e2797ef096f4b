package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// costPattern accepts digits with at most one decimal point: "12", "12.5",
// ".5" and "12." are all fine; "12a", "-3" and "1.2.3" are not.
var costPattern = regexp.MustCompile(`^\d*\.?\d*$`)

// ParseCost converts the text typed into a cost field into an amount.
// Empty input means zero. Anything that is not a plain non-negative decimal
// returns an error wrapping both ErrValidation and ErrInvalidCost.
func ParseCost(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	if !costPattern.MatchString(raw) {
		return 0, fmt.Errorf("%w: %w", ErrValidation, ErrInvalidCost)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrValidation, ErrInvalidCost)
	}
	return v, nil
}

// FormatCost renders an amount in the plain decimal form ParseCost accepts.
func FormatCost(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// NormalizeItem applies the defaults every saved item gets.
//   - An empty currency becomes DefaultCurrency.
//   - Legacy category and status labels are mapped to their canonical values.
//   - An activity saved with paid == false is a free activity: its cost is
//     forced to zero and it counts as settled (PaymentPaid).
func NormalizeItem(item Item, paid bool) Item {
	if strings.TrimSpace(item.Currency) == "" {
		item.Currency = DefaultCurrency
	}
	if c, ok := ParseCategory(string(item.Category)); ok {
		item.Category = c
	}
	if p, ok := ParsePaymentStatus(string(item.PaymentStatus)); ok {
		item.PaymentStatus = p
	}
	if item.Category == CategoryActivity && !paid {
		item.Cost = 0
		item.PaymentStatus = PaymentPaid
	}
	return item
}

// NormalizeSegment fills defaults on a loaded or imported segment and on
// every item inside it. Items keep whatever cost they were stored with.
func NormalizeSegment(s Segment) Segment {
	items := make([]Item, len(s.Items))
	for i, it := range s.Items {
		items[i] = NormalizeItem(it, true)
	}
	s.Items = items
	return s
}

// ValidateSegment enforces the rules for creating a segment.
//   - City must be non-empty.
//   - ArrivalDate and DepartureDate must be valid ISO dates.
//
// Arrival after departure is allowed; the planner does not reject it.
func ValidateSegment(s Segment) error {
	if strings.TrimSpace(s.City) == "" {
		return fmt.Errorf("%w: city is required", ErrValidation)
	}
	if _, err := time.Parse(DateLayout, s.ArrivalDate); err != nil {
		return fmt.Errorf("%w: arrivalDate must be a YYYY-MM-DD date", ErrValidation)
	}
	if _, err := time.Parse(DateLayout, s.DepartureDate); err != nil {
		return fmt.Errorf("%w: departureDate must be a YYYY-MM-DD date", ErrValidation)
	}
	return nil
}

// ValidateItem enforces the rules common to adding and updating an item.
func ValidateItem(item Item) error {
	if strings.TrimSpace(item.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if !item.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, item.Category)
	}
	if !item.PaymentStatus.Valid() {
		return fmt.Errorf("%w: unknown paymentStatus %q", ErrValidation, item.PaymentStatus)
	}
	if item.Cost < 0 {
		return fmt.Errorf("%w: cost must not be negative", ErrValidation)
	}
	if item.Date != "" {
		if _, err := time.Parse(DateLayout, item.Date); err != nil {
			return fmt.Errorf("%w: date must be a YYYY-MM-DD date", ErrValidation)
		}
	}
	return nil
}
