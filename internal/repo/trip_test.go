package repo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/repo"
)

// mockStore is a hand-written test double for repo.Store.
// saved records every sequence handed to Save.
type mockStore struct {
	load  func(ctx context.Context) ([]domain.Trip, error)
	save  func(ctx context.Context, trips []domain.Trip) error
	saved [][]domain.Trip
}

func (m *mockStore) Load(ctx context.Context) ([]domain.Trip, error) {
	if m.load == nil {
		return []domain.Trip{}, nil
	}
	return m.load(ctx)
}

func (m *mockStore) Save(ctx context.Context, trips []domain.Trip) error {
	m.saved = append(m.saved, trips)
	if m.save == nil {
		return nil
	}
	return m.save(ctx, trips)
}

// compile-time check: mockStore must satisfy repo.Store.
var _ repo.Store = (*mockStore)(nil)

// ---- helpers ---------------------------------------------------------------

func tripFixture(dest string) domain.Trip {
	t := domain.NewTrip(dest, decimal.NewFromInt(1500))
	t.DepartureDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	t.ReturnDate = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	return t
}

func destinations(trips []domain.Trip) []string {
	out := make([]string, len(trips))
	for i, t := range trips {
		out[i] = t.Destination
	}
	return out
}

func seeded(t *testing.T, dests ...string) (repo.TripRepo, *mockStore) {
	t.Helper()
	store := &mockStore{}
	r := repo.NewTripRepo(store)
	for _, d := range dests {
		require.NoError(t, r.Append(context.Background(), tripFixture(d)))
	}
	store.saved = nil
	return r, store
}

// ---- LoadAll ---------------------------------------------------------------

func TestTripRepo_LoadAll(t *testing.T) {
	store := &mockStore{
		load: func(_ context.Context) ([]domain.Trip, error) {
			return []domain.Trip{tripFixture("Paris"), tripFixture("Rome")}, nil
		},
	}
	r := repo.NewTripRepo(store)

	got, err := r.LoadAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Paris", "Rome"}, destinations(got))

	listed, err := r.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestTripRepo_LoadAll_StorageUnavailable(t *testing.T) {
	store := &mockStore{
		load: func(_ context.Context) ([]domain.Trip, error) {
			return nil, domain.ErrStorageUnavailable
		},
	}
	r := repo.NewTripRepo(store)

	got, err := r.LoadAll(context.Background())

	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ---- Append ----------------------------------------------------------------

func TestTripRepo_Append_RewritesFullSequence(t *testing.T) {
	r, store := seeded(t, "Paris")

	require.NoError(t, r.Append(context.Background(), tripFixture("Rome")))

	require.Len(t, store.saved, 1)
	assert.Equal(t, []string{"Paris", "Rome"}, destinations(store.saved[0]))
	listed, _ := r.List(context.Background())
	assert.Equal(t, []string{"Paris", "Rome"}, destinations(listed))
}

func TestTripRepo_Append_SaveFailureKeepsSequence(t *testing.T) {
	r, store := seeded(t, "Paris")
	store.save = func(_ context.Context, _ []domain.Trip) error {
		return domain.ErrStorageUnavailable
	}

	err := r.Append(context.Background(), tripFixture("Rome"))

	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	listed, _ := r.List(context.Background())
	assert.Equal(t, []string{"Paris"}, destinations(listed))
}

// ---- RemoveAt --------------------------------------------------------------

func TestTripRepo_RemoveAt(t *testing.T) {
	for i := range 3 {
		r, store := seeded(t, "Paris", "Rome", "London")
		want := []string{"Paris", "Rome", "London"}
		removedDest := want[i]
		want = append(want[:i:i], want[i+1:]...)

		removed, err := r.RemoveAt(context.Background(), i)

		require.NoError(t, err)
		assert.Equal(t, removedDest, removed.Destination)
		listed, _ := r.List(context.Background())
		assert.Equal(t, want, destinations(listed))
		require.Len(t, store.saved, 1)
		assert.Equal(t, want, destinations(store.saved[0]))
	}
}

func TestTripRepo_RemoveAt_OutOfRange(t *testing.T) {
	for _, idx := range []int{-1, 3, 10} {
		r, store := seeded(t, "Paris", "Rome", "London")

		_, err := r.RemoveAt(context.Background(), idx)

		assert.ErrorIs(t, err, domain.ErrOutOfRange)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Empty(t, store.saved, "out of range must not touch the store")
		listed, _ := r.List(context.Background())
		assert.Len(t, listed, 3)
	}
}

func TestTripRepo_RemoveAt_SaveFailureKeepsSequence(t *testing.T) {
	r, store := seeded(t, "Paris", "Rome")
	store.save = func(_ context.Context, _ []domain.Trip) error {
		return errors.New("disk full")
	}

	_, err := r.RemoveAt(context.Background(), 0)

	assert.Error(t, err)
	listed, _ := r.List(context.Background())
	assert.Equal(t, []string{"Paris", "Rome"}, destinations(listed))
}

// ---- List ------------------------------------------------------------------

func TestTripRepo_List_EmptyIsNotNil(t *testing.T) {
	r := repo.NewTripRepo(&mockStore{})

	got, err := r.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTripRepo_List_ReturnsCopy(t *testing.T) {
	r, _ := seeded(t, "Paris")

	got, _ := r.List(context.Background())
	got[0].Destination = "Mutated"

	again, _ := r.List(context.Background())
	assert.Equal(t, "Paris", again[0].Destination)
}
