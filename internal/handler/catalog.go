package handler

import (
	"net/http"

	"github.com/pkordes/travel-planner/backend/internal/catalog"
	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// GetCatalog handles GET /catalog.
// It lists the allowed values of every closed-choice wizard field, with
// prices for airlines and hotels.
func (s *Server) GetCatalog(w http.ResponseWriter, _ *http.Request) {
	resp := catalogResponse{
		Destinations:   s.catalog.Destinations(),
		Airlines:       toCatalogEntries(s.catalog.Airlines()),
		Hotels:         toCatalogEntries(s.catalog.Hotels()),
		Seats:          make([]string, 0, len(domain.Seats())),
		PaymentMethods: make([]string, 0, len(domain.PaymentMethods())),
	}
	for _, seat := range domain.Seats() {
		resp.Seats = append(resp.Seats, string(seat))
	}
	for _, m := range domain.PaymentMethods() {
		resp.PaymentMethods = append(resp.PaymentMethods, string(m))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetBudget handles GET /budget.
func (s *Server) GetBudget(w http.ResponseWriter, _ *http.Request) {
	defer s.lock()()
	writeJSON(w, http.StatusOK, budgetResponse{RemainingBudget: s.wizard.Snapshot().Remaining})
}

func toCatalogEntries(entries []catalog.Entry) []catalogEntry {
	out := make([]catalogEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, catalogEntry{Name: e.Name, Price: e.Price})
	}
	return out
}

var _ CatalogReader = (*catalog.Catalog)(nil)
