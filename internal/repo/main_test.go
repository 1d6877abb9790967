package repo_test

import (
	"os"
	"testing"

	"github.com/pkordes/travel-planner/backend/testutil"
)

// TestMain applies all pending migrations once for the package when a test
// database is configured. Without TEST_DATABASE_URL the Postgres tests skip
// themselves and only the file-backed tests run.
func TestMain(m *testing.M) {
	if dsn := os.Getenv("TEST_DATABASE_URL"); dsn != "" {
		testutil.MustMigrate(dsn)
	}
	os.Exit(m.Run())
}
