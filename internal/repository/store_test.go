package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/crimsondominion/crimson-go/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(DriverSQLite, SQLiteDSN(filepath.Join(t.TempDir(), "test.db")))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newTestUser(id, username, email string) *model.User {
	return &model.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}
}

func TestStore_EmptyDSNIsUnavailable(t *testing.T) {
	store := NewStore(DriverSQLite, "")

	_, err := store.DB(context.Background())
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = NewUserRepository(store).GetByID(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestStore_OpensOnceAndMigrates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.DB(ctx)
	require.NoError(t, err)
	second, err := store.DB(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)

	var n int
	require.NoError(t, first.QueryRowContext(ctx, `SELECT COUNT(*) FROM planets`).Scan(&n))
	assert.Zero(t, n)
}

func TestStore_CloseWithoutOpen(t *testing.T) {
	assert.NoError(t, NewStore(DriverSQLite, "").Close())
}

func TestWithTx_Commit(t *testing.T) {
	store := newTestStore(t)
	users := NewUserRepository(store)
	ctx := context.Background()

	err := store.WithTx(ctx, func(ctx context.Context) error {
		return users.Create(ctx, newTestUser("u1", "alice", "alice@example.com"))
	})
	require.NoError(t, err)

	got, err := users.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

func TestWithTx_RollbackOnError(t *testing.T) {
	store := newTestStore(t)
	users := NewUserRepository(store)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.WithTx(ctx, func(ctx context.Context) error {
		if err := users.Create(ctx, newTestUser("u1", "alice", "alice@example.com")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = users.GetByID(ctx, "u1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	store := newTestStore(t)
	users := NewUserRepository(store)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = store.WithTx(ctx, func(ctx context.Context) error {
			if err := users.Create(ctx, newTestUser("u1", "alice", "alice@example.com")); err != nil {
				return err
			}
			panic("boom")
		})
	})

	_, err := users.GetByID(ctx, "u1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestWithTx_NestedJoinsOuter(t *testing.T) {
	store := newTestStore(t)
	users := NewUserRepository(store)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.WithTx(ctx, func(ctx context.Context) error {
		inner := store.WithTx(ctx, func(ctx context.Context) error {
			return users.Create(ctx, newTestUser("u1", "alice", "alice@example.com"))
		})
		require.NoError(t, inner)
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = users.GetByID(ctx, "u1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDBTime_Scan(t *testing.T) {
	want := time.Date(2024, 5, 6, 7, 8, 9, 123456000, time.UTC)

	for _, src := range []any{want, timeValue(want), []byte(timeValue(want))} {
		var got dbTime
		require.NoError(t, got.Scan(src))
		assert.True(t, got.Valid)
		assert.True(t, want.Equal(got.Time), "src %T", src)
	}

	var null dbTime
	require.NoError(t, null.Scan(nil))
	assert.Nil(t, null.ptr())

	var bad dbTime
	assert.Error(t, bad.Scan("yesterday"))
	assert.Error(t, bad.Scan(42))
}

func TestJSONPayload_Scan(t *testing.T) {
	var p jsonPayload
	require.NoError(t, p.Scan(`{"metal":5}`))
	assert.Equal(t, model.Payload{"metal": float64(5)}, p.Payload)

	require.NoError(t, p.Scan([]byte(`null`)))
	assert.Equal(t, model.Payload{}, p.Payload)

	require.NoError(t, p.Scan(nil))
	assert.Equal(t, model.Payload{}, p.Payload)

	assert.Error(t, p.Scan(`[1,2]`))
}
