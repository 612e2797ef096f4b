package handler

import (
	"net/http"

	"github.com/agu27/EuroPlan/internal/domain"
)

// ListItems handles GET /items: the budget table.
// Supports ?q=, ?category=, ?status= and ?date= filters, and optional
// ?page= and ?limit= (defaults: page=1, limit=50, max=500).
func (s *Server) ListItems(w http.ResponseWriter, r *http.Request) {
	params, err := bindLedgerParams(r)
	if err != nil {
		badRequest(w, err)
		return
	}

	view := s.ledger.Ledger(params.Filter())
	resp := ItemListResponse{
		Data:   view.Items,
		Groups: view.Groups,
		Totals: view.Totals,
	}
	if params.Page != nil || params.Limit != nil {
		page, meta := domain.Paginate(view.Items, domain.NewPaginationParams(params.Page, params.Limit))
		resp.Data = page
		resp.Pagination = &meta
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetSummary handles GET /summary: dashboard cards plus chart data.
func (s *Server) GetSummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, SummaryResponse{
		TripSummary:    s.ledger.Summary(),
		CostByCategory: s.ledger.CostByCategory(),
	})
}
