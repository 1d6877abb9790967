package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// ListTrips handles GET /trips?page=&limit=.
// Trips are returned in booking order; position is the index CancelTrip takes.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	page, ok := queryInt(w, r, "page")
	if !ok {
		return
	}
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}
	p := domain.NewPaginationParams(page, limit)

	defer s.lock()()
	trips, total, err := s.trips.ListPaged(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]tripResponse, 0, len(trips))
	for i, t := range trips {
		resp := tripToResponse(t)
		pos := p.Offset() + i
		resp.Position = &pos
		data = append(data, resp)
	}
	writeJSON(w, http.StatusOK, tripListResponse{
		Data:       data,
		Pagination: pagination{Page: p.Page, Limit: p.Limit, Total: total},
	})
}

// CancelTrip handles DELETE /trips/{index}.
// It returns the removed trip, or 404 when index is out of range.
func (s *Server) CancelTrip(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("index must be an integer"))
		return
	}

	defer s.lock()()
	removed, err := s.trips.Cancel(r.Context(), index)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(removed))
}

// queryInt parses an optional integer query parameter. A missing parameter
// yields nil; a malformed one writes a 422 and returns false.
func queryInt(w http.ResponseWriter, r *http.Request, name string) (*int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(name+" must be an integer"))
		return nil, false
	}
	return &v, true
}

// optionalDate returns nil for the zero time.
func optionalDate(t time.Time) *openapi_types.Date {
	if t.IsZero() {
		return nil
	}
	return &openapi_types.Date{Time: t}
}
