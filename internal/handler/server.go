// Package handler implements the HTTP handlers for the EuroPlan API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, segment.go, ledger.go, etc.) but share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agu27/EuroPlan/internal/domain"
	"github.com/agu27/EuroPlan/internal/middleware"
	"github.com/agu27/EuroPlan/internal/service"
	"github.com/agu27/EuroPlan/spec"
)

// ItineraryStorer is the part of the trip store that edits destinations and
// their items. Defined here, in the consumer package, so handler tests can
// inject a mock. *service.TripStore satisfies it.
type ItineraryStorer interface {
	Segments() []domain.Segment
	AddSegment(ctx context.Context, in service.SegmentInput) (domain.Segment, error)
	AddItem(ctx context.Context, segmentID string, in service.ItemInput) (domain.Item, error)
	UpdateItem(ctx context.Context, segmentID, itemID string, in service.ItemInput) (domain.Item, error)
	RequestDeleteSegment(ctx context.Context, segmentID string) (service.Intent, error)
	RequestDeleteItem(ctx context.Context, segmentID, itemID string) (service.Intent, error)
}

// IntentStorer confirms or declines pending destructive operations.
type IntentStorer interface {
	RequestReset(ctx context.Context) service.Intent
	Confirm(ctx context.Context, intentID string) (service.Intent, error)
	Decline(ctx context.Context, intentID string) error
}

// LedgerReader serves the read-only derived views.
type LedgerReader interface {
	Ledger(f domain.LedgerFilter) domain.LedgerView
	Summary() domain.TripSummary
	CostByCategory() []domain.CategoryCost
}

// BackupStorer exports and imports whole-trip snapshots.
type BackupStorer interface {
	Export(ctx context.Context) (service.Backup, error)
	Import(ctx context.Context, r io.Reader) (int, error)
}

// DefaultMaxImportBytes caps a backup upload when Options leaves it unset.
const DefaultMaxImportBytes = 5 << 20

// Options holds the optional parts of a Server.
type Options struct {
	// MaxImportBytes caps the body of POST /backup.
	MaxImportBytes int64
	// Logger receives unexpected errors. Defaults to slog.Default().
	Logger *slog.Logger
	// Metrics, when set, is served at GET /metrics.
	Metrics http.Handler
}

// Server holds the dependencies of every handler.
// Wire it in main.go via Server.Routes.
type Server struct {
	itinerary ItineraryStorer
	intents   IntentStorer
	ledger    LedgerReader
	backups   BackupStorer
	opts      Options
	log       *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// In production every store argument is the same *service.TripStore.
func NewServer(itinerary ItineraryStorer, intents IntentStorer, ledger LedgerReader, backups BackupStorer, opts Options) *Server {
	if opts.MaxImportBytes <= 0 {
		opts.MaxImportBytes = DefaultMaxImportBytes
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		itinerary: itinerary,
		intents:   intents,
		ledger:    ledger,
		backups:   backups,
		opts:      opts,
		log:       log,
	}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil, Options{})
}

// Routes returns a chi router serving the whole API.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)
	if s.opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.opts.Metrics)
	}

	r.Route("/segments", func(r chi.Router) {
		r.Get("/", s.ListSegments)
		r.Post("/", s.CreateSegment)
		r.Route("/{segmentId}", func(r chi.Router) {
			r.Delete("/", s.DeleteSegment)
			r.Post("/items", s.CreateItem)
			r.Put("/items/{itemId}", s.UpdateItem)
			r.Delete("/items/{itemId}", s.DeleteItem)
		})
	})

	r.Post("/intents/{intentId}/confirm", s.ConfirmIntent)
	r.Delete("/intents/{intentId}", s.DeclineIntent)

	r.Get("/items", s.ListItems)
	r.Get("/items/export", s.ExportItems)
	r.Get("/summary", s.GetSummary)

	r.Get("/backup", s.DownloadBackup)
	r.With(middleware.NewMaxBodySizeHandler(s.opts.MaxImportBytes)).Post("/backup", s.ImportBackup)
	r.Post("/reset", s.RequestReset)

	return r
}

func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}
