package repository

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/mysql/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// migrate applies the embedded migrations for driver.
func migrate(ctx context.Context, driver string, db *sql.DB) error {
	var (
		dialect goose.Dialect
		dir     string
	)
	switch driver {
	case DriverMySQL:
		dialect, dir = goose.DialectMySQL, "migrations/mysql"
	case DriverSQLite:
		dialect, dir = goose.DialectSQLite3, "migrations/sqlite"
	default:
		return fmt.Errorf("no migrations for driver %q", driver)
	}

	fsys, err := fs.Sub(migrations, dir)
	if err != nil {
		return err
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return err
	}
	for _, r := range results {
		slog.Debug("migration applied", "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}
