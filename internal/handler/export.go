// Package handler: export.go implements GET /export.
// Returns every booked trip as a flat table.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"position", "trip_id", "destination", "departure_date", "return_date",
	"airline", "seat", "flight_cost", "hotel", "hotel_cost", "total_cost",
}

// GetExport implements GET /export.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "csv" && format != "json" {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("format must be csv or json"))
		return
	}

	rows, err := s.exportRows(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if format == "csv" {
		writeCSV(w, rows)
		return
	}
	out := make([]exportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domainRowToJSONRow(row))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) exportRows(r *http.Request) ([]domain.ExportRow, error) {
	defer s.lock()()
	return s.export.Export(r.Context())
}

// writeCSV encodes domain rows as CSV with a header row.
// Write errors mean the client went away and are dropped.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trips.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	_ = cw.Write(csvHeaders)
	for _, r := range rows {
		_ = cw.Write(domainRowToCSVRecord(r))
	}
	cw.Flush()
}

// domainRowToJSONRow maps a domain.ExportRow to its JSON shape.
// Fields that are empty strings become nil pointers (omitempty in JSON).
func domainRowToJSONRow(r domain.ExportRow) exportRow {
	tripID, _ := uuid.Parse(r.TripID)
	return exportRow{
		Position:      r.Position,
		TripID:        tripID,
		Destination:   r.Destination,
		DepartureDate: parseOptionalDate(r.DepartureDate),
		ReturnDate:    parseOptionalDate(r.ReturnDate),
		Airline:       optionalString(r.Airline),
		Seat:          optionalString(r.Seat),
		FlightCost:    optionalString(r.FlightCost),
		Hotel:         optionalString(r.Hotel),
		HotelCost:     optionalString(r.HotelCost),
		TotalCost:     optionalString(r.TotalCost),
	}
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		strconv.Itoa(r.Position),
		r.TripID,
		r.Destination,
		r.DepartureDate,
		r.ReturnDate,
		r.Airline,
		r.Seat,
		r.FlightCost,
		r.Hotel,
		r.HotelCost,
		r.TotalCost,
	}
}

// parseOptionalDate parses a "2006-01-02" string. Empty or malformed input
// yields nil.
func parseOptionalDate(s string) *openapi_types.Date {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return nil
	}
	return &openapi_types.Date{Time: t}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
