package repo_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/repo"
)

func newFileStore(t *testing.T) (*repo.FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trips.txt")
	return repo.NewFileStore(path, decimal.NewFromInt(1500), slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))), path
}

func TestFileStore_Load_MissingFile(t *testing.T) {
	store, _ := newFileStore(t)

	got, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFileStore_SaveThenLoad_RoundTrips(t *testing.T) {
	store, path := newFileStore(t)
	ctx := context.Background()

	in := []domain.Trip{tripFixture("Paris"), tripFixture("Rome"), tripFixture("London")}
	in[1].DepartureDate = time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	in[1].ReturnDate = in[1].DepartureDate

	require.NoError(t, store.Save(ctx, in))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"Paris|2025-06-01|2025-06-15\nRome|2026-01-31|2026-01-31\nLondon|2025-06-01|2025-06-15\n",
		string(raw))

	out, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, out, len(in))
	for i := range in {
		assert.Equal(t, in[i].Destination, out[i].Destination)
		assert.True(t, in[i].DepartureDate.Equal(out[i].DepartureDate))
		assert.True(t, in[i].ReturnDate.Equal(out[i].ReturnDate))
	}
}

func TestFileStore_Save_Truncates(t *testing.T) {
	store, _ := newFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []domain.Trip{tripFixture("Paris"), tripFixture("Rome")}))
	require.NoError(t, store.Save(ctx, []domain.Trip{tripFixture("London")}))

	out, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"London"}, destinations(out))
}

func TestFileStore_Load_SkipsMalformedLines(t *testing.T) {
	var logs bytes.Buffer
	path := filepath.Join(t.TempDir(), "trips.txt")
	content := "Paris|2025-06-01|2025-06-15\n" +
		"garbage\n" +
		"\n" +
		"Rome|2025-13-01|2025-06-15\n" +
		"London|2025-06-01|2025-06-15\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	store := repo.NewFileStore(path, decimal.Zero, slog.New(slog.NewTextHandler(&logs, nil)))

	got, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Paris", "London"}, destinations(got))
	assert.Contains(t, logs.String(), "line=2")
	assert.Contains(t, logs.String(), "line=4")
}

func TestFileStore_Load_SkipsOversizedLine(t *testing.T) {
	var logs bytes.Buffer
	path := filepath.Join(t.TempDir(), "trips.txt")
	content := "Paris|2025-06-01|2025-06-10\n" +
		strings.Repeat("x", 70*1024) + "\n" +
		"Rome|2025-07-01|2025-07-05"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	store := repo.NewFileStore(path, decimal.Zero, slog.New(slog.NewTextHandler(&logs, nil)))
	ctx := context.Background()

	got, err := store.Load(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"Paris", "Rome"}, destinations(got), "last line has no trailing newline")
	assert.Contains(t, logs.String(), "line=2")

	// An append after reload keeps the earlier bookings.
	trips := repo.NewTripRepo(store)
	_, err = trips.LoadAll(ctx)
	require.NoError(t, err)
	require.NoError(t, trips.Append(ctx, tripFixture("London")))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Paris|2025-06-01|2025-06-10\nRome|2025-07-01|2025-07-05\nLondon|2025-06-01|2025-06-15\n", string(raw))
}

func TestFileStore_Load_Unreadable(t *testing.T) {
	// A directory can be opened but not read as lines.
	store := repo.NewFileStore(t.TempDir(), decimal.Zero, nil)

	_, err := store.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestFileStore_Save_Unwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-dir", "trips.txt")
	store := repo.NewFileStore(path, decimal.Zero, nil)

	err := store.Save(context.Background(), []domain.Trip{tripFixture("Paris")})

	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestTripRepo_WithFileStore_ReloadAfterRemove(t *testing.T) {
	store, _ := newFileStore(t)
	ctx := context.Background()

	r := repo.NewTripRepo(store)
	for _, d := range []string{"Paris", "Rome", "London"} {
		require.NoError(t, r.Append(ctx, tripFixture(d)))
	}
	_, err := r.RemoveAt(ctx, 1)
	require.NoError(t, err)

	reloaded := repo.NewTripRepo(store)
	got, err := reloaded.LoadAll(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"Paris", "London"}, destinations(got))
}
