package repo_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/repo"
	"github.com/pkordes/travel-planner/backend/testutil"
)

// newPostgresStore returns a PostgresStore inside a transaction that is
// rolled back when the test finishes. Skipped without TEST_DATABASE_URL.
func newPostgresStore(t *testing.T) *repo.PostgresStore {
	t.Helper()
	return repo.NewPostgresStore(testutil.NewTx(t), decimal.NewFromInt(1500))
}

func TestPostgresStore_Load_Empty(t *testing.T) {
	store := newPostgresStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, nil))

	got, err := store.Load(ctx)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPostgresStore_SaveThenLoad_RoundTrips(t *testing.T) {
	store := newPostgresStore(t)
	ctx := context.Background()

	in := []domain.Trip{tripFixture("Paris"), tripFixture("Rome")}
	require.NoError(t, store.Save(ctx, in))

	out, err := store.Load(ctx)

	require.NoError(t, err)
	require.Len(t, out, 2)
	for i := range in {
		assert.Equal(t, in[i].Destination, out[i].Destination)
		assert.True(t, in[i].DepartureDate.Equal(out[i].DepartureDate))
		assert.True(t, in[i].ReturnDate.Equal(out[i].ReturnDate))
		assert.True(t, out[i].Budget.Equal(decimal.NewFromInt(1500)))
	}
}

func TestPostgresStore_Save_Replaces(t *testing.T) {
	store := newPostgresStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []domain.Trip{tripFixture("Paris"), tripFixture("Rome")}))
	require.NoError(t, store.Save(ctx, []domain.Trip{tripFixture("London")}))

	out, err := store.Load(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"London"}, destinations(out))
}
