package handler_test

import (
	"context"
	"encoding/csv"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

func exportFixture() []domain.ExportRow {
	return []domain.ExportRow{
		{
			Position:      0,
			TripID:        "7b0b3c55-9f55-4c61-9d43-8f0c2b1c6a10",
			Destination:   "Paris",
			DepartureDate: "2025-07-01",
			ReturnDate:    "2025-07-10",
			Airline:       "LOT",
			Seat:          "window",
			FlightCost:    "800.00",
			Hotel:         "Hotel A",
			HotelCost:     "600.00",
			TotalCost:     "1400.00",
		},
		{
			Position:      1,
			TripID:        "0f8a9e0e-3b8e-4a53-8d7e-2b6d0b0f4e21",
			Destination:   "Rome",
			DepartureDate: "2025-08-01",
			ReturnDate:    "2025-08-03",
		},
	}
}

func exporterReturning(rows []domain.ExportRow) *mockExporter {
	return &mockExporter{
		export: func(_ context.Context) ([]domain.ExportRow, error) { return rows, nil },
	}
}

func TestGetExport_JSON(t *testing.T) {
	rec := do(t, newHTTPHandler(t, nil, exporterReturning(exportFixture())), http.MethodGet, "/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]any
	decode(t, rec, &rows)
	require.Len(t, rows, 2)
	assert.Equal(t, "Paris", rows[0]["destination"])
	assert.Equal(t, "1400.00", rows[0]["total_cost"])
	assert.Equal(t, "2025-07-01", rows[0]["departure_date"])

	// reloaded trips carry no pricing columns
	assert.NotContains(t, rows[1], "airline")
	assert.NotContains(t, rows[1], "total_cost")
}

func TestGetExport_CSV(t *testing.T) {
	rec := do(t, newHTTPHandler(t, nil, exporterReturning(exportFixture())), http.MethodGet, "/export?format=csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))

	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{
		"position", "trip_id", "destination", "departure_date", "return_date",
		"airline", "seat", "flight_cost", "hotel", "hotel_cost", "total_cost",
	}, records[0])
	assert.Equal(t, []string{
		"0", "7b0b3c55-9f55-4c61-9d43-8f0c2b1c6a10", "Paris", "2025-07-01", "2025-07-10",
		"LOT", "window", "800.00", "Hotel A", "600.00", "1400.00",
	}, records[1])
	assert.Equal(t, "", records[2][5])
}

func TestGetExport_CSV_HeaderOnlyWhenEmpty(t *testing.T) {
	rec := do(t, newHTTPHandler(t, nil, exporterReturning(nil)), http.MethodGet, "/export?format=csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestGetExport_422_UnknownFormat(t *testing.T) {
	rec := do(t, newHTTPHandler(t, nil, exporterReturning(nil)), http.MethodGet, "/export?format=xml", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetExport_503_StorageUnavailable(t *testing.T) {
	exp := &mockExporter{
		export: func(_ context.Context) ([]domain.ExportRow, error) {
			return nil, domain.ErrStorageUnavailable
		},
	}
	rec := do(t, newHTTPHandler(t, nil, exp), http.MethodGet, "/export", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
