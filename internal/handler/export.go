// export.go implements GET /items/export.
// Returns the filtered budget table as a file, CSV by default or XLSX with
// ?format=xlsx.
package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/agu27/EuroPlan/internal/domain"
)

// Export formats accepted in ?format=.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

const (
	ledgerSheet    = "Ledger"
	ledgerFilename = "europlan-ledger"
	xlsxMediaType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ledgerHeaders defines the column names written as the first row of any export.
var ledgerHeaders = []string{
	"date", "time", "city", "country", "title", "category", "location",
	"cost", "currency", "payment_status", "booking_reference", "duration", "notes",
}

// ExportItems handles GET /items/export.
// The same filters as GET /items apply; pagination does not.
func (s *Server) ExportItems(w http.ResponseWriter, r *http.Request) {
	params, err := bindLedgerParams(r)
	if err != nil {
		badRequest(w, err)
		return
	}
	format := FormatCSV
	if params.Format != nil {
		format = *params.Format
	}

	view := s.ledger.Ledger(params.Filter())

	var (
		body      *bytes.Buffer
		mediaType string
	)
	switch format {
	case FormatCSV:
		body, err = buildCSV(view.Items)
		mediaType = "text/csv"
	case FormatXLSX:
		body, err = buildXLSX(view)
		mediaType = xlsxMediaType
	default:
		badRequest(w, fmt.Errorf("unsupported format %q: use %s or %s", format, FormatCSV, FormatXLSX))
		return
	}
	if err != nil {
		s.writeStoreError(w, r, err, "")
		return
	}

	w.Header().Set("Content-Type", mediaType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, ledgerFilename, format))
	w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = body.WriteTo(w)
}

// buildCSV encodes the rows as CSV with a header line.
func buildCSV(items []domain.ItemWithLocation) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(ledgerHeaders); err != nil {
		return nil, fmt.Errorf("handler.buildCSV: %w", err)
	}
	for _, it := range items {
		if err := cw.Write(ledgerRecord(it)); err != nil {
			return nil, fmt.Errorf("handler.buildCSV: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("handler.buildCSV: %w", err)
	}
	return &buf, nil
}

// buildXLSX writes a single-sheet workbook: a bold header row, one row per
// item with the cost as a number, and a closing totals row.
func buildXLSX(view domain.LedgerView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ledgerSheet); err != nil {
		return nil, fmt.Errorf("handler.buildXLSX: %w", err)
	}

	header := make([]any, len(ledgerHeaders))
	for i, h := range ledgerHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(ledgerSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("handler.buildXLSX: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("handler.buildXLSX: %w", err)
	}
	if err := f.SetRowStyle(ledgerSheet, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("handler.buildXLSX: %w", err)
	}

	row := 2
	for _, it := range view.Items {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []any{
			it.Date, it.Time, it.City, it.Country, it.Title, string(it.Category), it.Location,
			it.Cost, it.Currency, string(it.PaymentStatus), it.BookingReference, it.Duration, it.Notes,
		}
		if err := f.SetSheetRow(ledgerSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("handler.buildXLSX: %w", err)
		}
		row++
	}

	// Totals sit under the cost column (H).
	totalsCell, _ := excelize.CoordinatesToCellName(7, row)
	totals := []any{"total", view.Totals.Total}
	if err := f.SetSheetRow(ledgerSheet, totalsCell, &totals); err != nil {
		return nil, fmt.Errorf("handler.buildXLSX: %w", err)
	}
	if err := f.SetRowStyle(ledgerSheet, row, row, bold); err != nil {
		return nil, fmt.Errorf("handler.buildXLSX: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("handler.buildXLSX: %w", err)
	}
	return buf, nil
}

// ledgerRecord encodes one row as CSV fields in ledgerHeaders order.
func ledgerRecord(it domain.ItemWithLocation) []string {
	return []string{
		it.Date,
		it.Time,
		it.City,
		it.Country,
		it.Title,
		string(it.Category),
		it.Location,
		domain.FormatCost(it.Cost),
		it.Currency,
		string(it.PaymentStatus),
		it.BookingReference,
		it.Duration,
		it.Notes,
	}
}
