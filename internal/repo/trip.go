// Package repo holds the booked-trip ledger and the stores that persist it.
// The ordered in-memory sequence lives in TripRepo; a Store only knows how to
// load and fully rewrite that sequence. No business logic lives here.
package repo

import (
	"context"
	"fmt"
	"slices"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// Store persists the complete sequence of booked trips.
// Implementations wrap I/O failures in domain.ErrStorageUnavailable.
type Store interface {
	// Load returns every persisted trip in booking order.
	// A store that does not exist yet yields an empty slice and no error.
	Load(ctx context.Context) ([]domain.Trip, error)

	// Save replaces the persisted sequence with trips.
	Save(ctx context.Context, trips []domain.Trip) error
}

// TripRepo defines the operations on booked trips.
// The service layer depends on this interface, which allows it to be
// unit-tested with a mock.
type TripRepo interface {
	// LoadAll replaces the in-memory sequence with the persisted one.
	// On a storage failure the repository is left empty and the error wraps
	// domain.ErrStorageUnavailable.
	LoadAll(ctx context.Context) ([]domain.Trip, error)

	// Append adds trip at the end and rewrites the store.
	// The in-memory sequence only changes if the rewrite succeeds.
	Append(ctx context.Context, trip domain.Trip) error

	// RemoveAt removes the trip at index and rewrites the store.
	// Returns domain.ErrOutOfRange when index is outside [0, n).
	RemoveAt(ctx context.Context, index int) (domain.Trip, error)

	// List returns the booked trips in booking order.
	List(ctx context.Context) ([]domain.Trip, error)
}

// tripRepo keeps the booked trips in memory, backed 1:1 by a Store.
type tripRepo struct {
	store Store
	trips []domain.Trip
}

// NewTripRepo constructs a TripRepo backed by store. It starts empty; call
// LoadAll once at startup.
func NewTripRepo(store Store) TripRepo {
	return &tripRepo{store: store}
}

func (r *tripRepo) LoadAll(ctx context.Context) ([]domain.Trip, error) {
	trips, err := r.store.Load(ctx)
	if err != nil {
		r.trips = nil
		return []domain.Trip{}, fmt.Errorf("repo.TripRepo.LoadAll: %w", err)
	}
	r.trips = trips
	return r.snapshot(), nil
}

func (r *tripRepo) Append(ctx context.Context, trip domain.Trip) error {
	next := append(slices.Clone(r.trips), trip)
	if err := r.store.Save(ctx, next); err != nil {
		return fmt.Errorf("repo.TripRepo.Append: %w", err)
	}
	r.trips = next
	return nil
}

func (r *tripRepo) RemoveAt(ctx context.Context, index int) (domain.Trip, error) {
	if index < 0 || index >= len(r.trips) {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.RemoveAt: %d of %d: %w", index, len(r.trips), domain.ErrOutOfRange)
	}

	removed := r.trips[index]
	next := slices.Delete(slices.Clone(r.trips), index, index+1)
	if err := r.store.Save(ctx, next); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.RemoveAt: %w", err)
	}
	r.trips = next
	return removed, nil
}

func (r *tripRepo) List(_ context.Context) ([]domain.Trip, error) {
	return r.snapshot(), nil
}

// snapshot returns a copy of the sequence, never nil.
func (r *tripRepo) snapshot() []domain.Trip {
	out := make([]domain.Trip, len(r.trips))
	copy(out, r.trips)
	return out
}
