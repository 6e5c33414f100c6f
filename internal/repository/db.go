package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	"modernc.org/sqlite"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

var (
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrNotFound         = errors.New("record not found")
)

// Store owns the connection pool. The pool is opened, pinged and migrated on
// first use, so a missing or unreachable database only fails the requests that
// need it.
type Store struct {
	driver string
	dsn    string

	mu sync.Mutex
	db *sql.DB
}

// NewStore creates a Store for the given driver and DSN without connecting.
func NewStore(driver, dsn string) *Store {
	return &Store{driver: driver, dsn: dsn}
}

// DB returns the connection pool, opening it if needed.
func (s *Store) DB(ctx context.Context) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	if s.dsn == "" {
		return nil, fmt.Errorf("%w: DATABASE_URL is not set", ErrStoreUnavailable)
	}

	db, err := s.open(ctx)
	if err != nil {
		return nil, unavailable(err)
	}

	s.db = db
	return db, nil
}

func (s *Store) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open(s.driver, s.dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if err := migrate(ctx, s.driver, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	slog.Info("database ready", "driver", s.driver)
	return db, nil
}

// Close releases the pool if it was opened.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// SQLiteDSN builds a DSN for a sqlite file with the pragmas the store relies on:
// a busy timeout and immediate write locks so concurrent transactions queue
// instead of failing.
func SQLiteDSN(path string) string {
	return "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate"
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

// isDuplicateEntry reports unique-constraint violations from either driver.
func isDuplicateEntry(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqliteConstraintUnique ||
			(code == sqliteConstraint && strings.Contains(liteErr.Error(), "UNIQUE"))
	}

	return false
}

// sqlite result codes: SQLITE_CONSTRAINT and its extended SQLITE_CONSTRAINT_UNIQUE.
const (
	sqliteConstraint       = 19
	sqliteConstraintUnique = 2067
)
