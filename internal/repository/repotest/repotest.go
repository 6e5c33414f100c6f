// Package repotest provides throwaway sqlite-backed stores for tests.
package repotest

import (
	"path/filepath"
	"testing"

	"github.com/crimsondominion/crimson-go/internal/repository"
)

// NewSQLiteStore returns a store over a fresh sqlite file in a temp dir.
// The store is closed when the test ends.
func NewSQLiteStore(tb testing.TB) *repository.Store {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "crimson.db")
	store := repository.NewStore(repository.DriverSQLite, repository.SQLiteDSN(path))
	tb.Cleanup(func() { _ = store.Close() })
	return store
}
