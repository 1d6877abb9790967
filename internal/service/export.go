package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/repo"
)

// ExportService assembles a flat export of all booked trips.
type ExportService struct {
	trips repo.TripRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(trips repo.TripRepo) *ExportService {
	return &ExportService{trips: trips}
}

// Export returns one ExportRow per booked trip, in booking order.
// Trips reloaded from storage have empty pricing columns.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := make([]domain.ExportRow, 0, len(trips))
	for i, t := range trips {
		row := domain.ExportRow{
			Position:      i,
			TripID:        t.ID.String(),
			Destination:   t.Destination,
			DepartureDate: formatDate(t.DepartureDate),
			ReturnDate:    formatDate(t.ReturnDate),
		}
		if t.Transport != nil {
			row.Airline = t.Transport.Airline
			row.Seat = string(t.Transport.Seat)
			row.FlightCost = t.Transport.Price.StringFixed(2)
		}
		if t.Hotel != nil {
			row.Hotel = t.Hotel.Name
			row.HotelCost = t.Hotel.Price().StringFixed(2)
		}
		if t.HasPricing() {
			row.TotalCost = t.TotalCost().StringFixed(2)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(domain.DateLayout)
}
