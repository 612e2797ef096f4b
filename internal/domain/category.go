package domain

import "strings"

// Category classifies an item. The set is closed.
type Category string

const (
	CategoryFlight   Category = "Flight"
	CategoryTrain    Category = "Train"
	CategoryBus      Category = "Bus"
	CategoryHotel    Category = "Hotel"
	CategoryActivity Category = "Activity"
	CategoryMuseum   Category = "Museum"
	CategoryDining   Category = "Dining"
	CategoryOther    Category = "Other"
)

// PaymentStatus records whether an item has been paid for.
// It is informational only and never feeds a discount or conversion.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentPending PaymentStatus = "Pending"
	PaymentPartial PaymentStatus = "Partial"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{
		CategoryFlight, CategoryTrain, CategoryBus, CategoryHotel,
		CategoryActivity, CategoryMuseum, CategoryDining, CategoryOther,
	}
}

// PaymentStatuses returns every payment status in display order.
func PaymentStatuses() []PaymentStatus {
	return []PaymentStatus{PaymentPaid, PaymentPending, PaymentPartial}
}

// legacyCategories maps the labels written by earlier versions of the app.
var legacyCategories = map[string]Category{
	"vuelo":     CategoryFlight,
	"tren":      CategoryTrain,
	"autobús":   CategoryBus,
	"autobus":   CategoryBus,
	"hospedaje": CategoryHotel,
	"actividad": CategoryActivity,
	"museo":     CategoryMuseum,
	"comida":    CategoryDining,
	"otro":      CategoryOther,
}

var legacyStatuses = map[string]PaymentStatus{
	"pagado":    PaymentPaid,
	"pendiente": PaymentPending,
	"parcial":   PaymentPartial,
}

// ParseCategory resolves s to a Category, ignoring case and surrounding
// whitespace. Legacy labels are accepted. ok is false for unknown input.
func ParseCategory(s string) (c Category, ok bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories() {
		if strings.ToLower(string(c)) == key {
			return c, true
		}
	}
	c, ok = legacyCategories[key]
	return c, ok
}

// ParsePaymentStatus resolves s to a PaymentStatus the same way ParseCategory
// resolves categories.
func ParsePaymentStatus(s string) (p PaymentStatus, ok bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, p := range PaymentStatuses() {
		if strings.ToLower(string(p)) == key {
			return p, true
		}
	}
	p, ok = legacyStatuses[key]
	return p, ok
}

// Valid reports whether c is exactly one of the canonical categories.
func (c Category) Valid() bool {
	for _, v := range Categories() {
		if c == v {
			return true
		}
	}
	return false
}

// Valid reports whether p is one of the closed set of payment statuses.
func (p PaymentStatus) Valid() bool {
	for _, s := range PaymentStatuses() {
		if p == s {
			return true
		}
	}
	return false
}
