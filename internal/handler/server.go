// Package handler implements the JSON-over-HTTP presentation layer for the
// travel planner. It renders wizard steps, collects field input, drives the
// service.Wizard and lists or cancels booked trips.
//
// All handlers are methods on Server and share its dependencies. The booking
// core is single-user and not safe for concurrent use, so Server serializes
// every request with a mutex.
package handler

import (
	"context"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/pkordes/travel-planner/backend/internal/catalog"
	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/service"
)

// WizardDriver defines the wizard operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a fake without a catalog, ledger or store.
type WizardDriver interface {
	Advance(ctx context.Context, f service.Form) error
	Confirm(ctx context.Context) (service.Receipt, error)
	Back() service.State
	Cancel()
	RunningTotal(hotel string) (decimal.Decimal, error)
	Snapshot() service.Snapshot
}

// TripServicer defines the booked-trip operations the handlers depend on.
type TripServicer interface {
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int, error)
	Cancel(ctx context.Context, index int) (domain.Trip, error)
}

// Exporter produces the flat export of booked trips.
type Exporter interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// CatalogReader lists the allowed values for the closed-choice fields.
type CatalogReader interface {
	Destinations() []string
	Airlines() []catalog.Entry
	Hotels() []catalog.Entry
}

// Server holds the dependencies of every handler.
type Server struct {
	mu        sync.Mutex
	wizard    WizardDriver
	trips     TripServicer
	export    Exporter
	catalog   CatalogReader
	presenter *LogPresenter
	openAPI   []byte
}

// NewServer constructs the Server with all its dependencies.
// presenter must be the one the wizard was built with, so GET /wizard can
// show the last outcome message.
func NewServer(w WizardDriver, trips TripServicer, export Exporter, c CatalogReader, presenter *LogPresenter, openAPI []byte) *Server {
	return &Server{
		wizard:    w,
		trips:     trips,
		export:    export,
		catalog:   c,
		presenter: presenter,
		openAPI:   openAPI,
	}
}

// Routes returns the chi router serving every endpoint.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/catalog", s.GetCatalog)
	r.Get("/budget", s.GetBudget)

	r.Route("/wizard", func(r chi.Router) {
		r.Get("/", s.GetWizard)
		r.Post("/advance", s.AdvanceWizard)
		r.Get("/total", s.GetRunningTotal)
		r.Post("/confirm", s.ConfirmWizard)
		r.Post("/back", s.BackWizard)
		r.Post("/cancel", s.CancelWizard)
	})

	r.Get("/trips", s.ListTrips)
	r.Delete("/trips/{index}", s.CancelTrip)
	r.Get("/export", s.GetExport)

	return r
}

// lock serializes access to the single-user booking core.
func (s *Server) lock() func() {
	s.mu.Lock()
	return s.mu.Unlock
}
