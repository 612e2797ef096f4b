package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/agu27/EuroPlan/internal/domain"
)

// pathParam binds a required simple-style path parameter.
func pathParam(r *http.Request, name string) (string, error) {
	var v string
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return v, nil
}

// LedgerParams are the query parameters of GET /items and GET /items/export.
type LedgerParams struct {
	Q        *string
	Category *string
	Status   *string
	Date     *openapi_types.Date
	Page     *int
	Limit    *int
	Format   *string
}

// bindLedgerParams binds the optional form-style query parameters.
func bindLedgerParams(r *http.Request) (LedgerParams, error) {
	var p LedgerParams
	q := r.URL.Query()
	for _, b := range []struct {
		name string
		dest any
	}{
		{"q", &p.Q},
		{"category", &p.Category},
		{"status", &p.Status},
		{"date", &p.Date},
		{"page", &p.Page},
		{"limit", &p.Limit},
		{"format", &p.Format},
	} {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			return LedgerParams{}, fmt.Errorf("invalid format for parameter %s: %w", b.name, err)
		}
	}
	return p, nil
}

// Filter converts the bound parameters to a domain.LedgerFilter.
// Category and status accept any spelling ParseCategory and
// ParsePaymentStatus understand; unknown values are kept and match nothing.
func (p LedgerParams) Filter() domain.LedgerFilter {
	var f domain.LedgerFilter
	if p.Q != nil {
		f.Query = *p.Q
	}
	if p.Category != nil {
		f.Category = *p.Category
		if c, ok := domain.ParseCategory(f.Category); ok {
			f.Category = string(c)
		}
	}
	if p.Status != nil {
		f.Status = *p.Status
		if st, ok := domain.ParsePaymentStatus(f.Status); ok {
			f.Status = string(st)
		}
	}
	if p.Date != nil {
		f.Date = p.Date.Format(domain.DateLayout)
	}
	return f
}
