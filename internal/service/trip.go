// Package service contains the business logic for the travel planner.
// The Wizard drives a booking from the first step to confirmation; TripService
// and ExportService serve the booked trips outside the booking flow.
// No file or SQL access lives here; services depend on repo interfaces.
package service

import (
	"context"
	"fmt"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/repo"
)

// TripService lists and cancels booked trips.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// List returns all booked trips in booking order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// ListPaged returns one page of booked trips and the total count.
func (s *TripService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int, error) {
	trips, err := s.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	start, end := p.Window(len(trips))
	return trips[start:end], len(trips), nil
}

// Cancel removes the booked trip at index (0-based, booking order).
// Returns domain.ErrOutOfRange if there is no trip at that position.
func (s *TripService) Cancel(ctx context.Context, index int) (domain.Trip, error) {
	removed, err := s.repo.RemoveAt(ctx, index)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Cancel: %w", err)
	}
	return removed, nil
}
