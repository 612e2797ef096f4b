package handler

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/agu27/EuroPlan/internal/domain"
	"github.com/agu27/EuroPlan/internal/service"
)

// Request and response bodies. Field names follow spec/openapi.yaml.

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code and a message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// SegmentRequest is the body of POST /segments.
type SegmentRequest struct {
	City          string `json:"city"`
	Country       string `json:"country"`
	ArrivalDate   string `json:"arrivalDate"`
	DepartureDate string `json:"departureDate"`
}

// ItemRequest is the body of POST and PUT on items.
type ItemRequest struct {
	Title            string   `json:"title"`
	Category         string   `json:"category"`
	Date             string   `json:"date"`
	Time             string   `json:"time"`
	Location         string   `json:"location"`
	Duration         string   `json:"duration"`
	BookingReference string   `json:"bookingReference"`
	Cost             CostText `json:"cost"`
	Currency         string   `json:"currency"`
	PaymentStatus    string   `json:"paymentStatus"`
	Notes            string   `json:"notes"`
	// FreeActivity marks an activity that costs nothing; cost is ignored.
	FreeActivity bool `json:"freeActivity"`
}

// CostText is the cost field as typed. Clients may send it as a JSON string
// ("12.50") or a JSON number (12.5); either way the text is validated by
// domain.ParseCost, not by the JSON decoder.
type CostText string

func (c *CostText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*c = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = CostText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("cost must be a string or a number")
	}
	*c = CostText(n.String())
	return nil
}

func (in ItemRequest) toInput() service.ItemInput {
	return service.ItemInput{
		Title:            in.Title,
		Category:         in.Category,
		Date:             in.Date,
		Time:             in.Time,
		Location:         in.Location,
		Duration:         in.Duration,
		BookingReference: in.BookingReference,
		Cost:             string(in.Cost),
		Currency:         in.Currency,
		PaymentStatus:    in.PaymentStatus,
		Notes:            in.Notes,
		FreeActivity:     in.FreeActivity,
	}
}

// SegmentListResponse is the body of GET /segments.
type SegmentListResponse struct {
	Data []domain.Segment `json:"data"`
}

// ItemListResponse is the body of GET /items. Groups and Totals always cover
// every matching item; Pagination is present only when page or limit was
// requested, and then Data holds just that page.
type ItemListResponse struct {
	Data       []domain.ItemWithLocation `json:"data"`
	Groups     []domain.CategoryGroup    `json:"groups"`
	Totals     domain.LedgerTotals       `json:"totals"`
	Pagination *domain.Pagination        `json:"pagination,omitempty"`
}

// SummaryResponse is the body of GET /summary.
type SummaryResponse struct {
	domain.TripSummary
	CostByCategory []domain.CategoryCost `json:"costByCategory"`
}

// ImportResponse is the body of a successful POST /backup.
type ImportResponse struct {
	Segments int `json:"segments"`
}
