package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndFetch(t *testing.T) {
	users := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, newTestUser("u1", "alice", "alice@example.com")))

	byID, err := users.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)
	assert.Equal(t, "hash", byID.PasswordHash)
	assert.False(t, byID.CreatedAt.IsZero())

	byEmail, err := users.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", byEmail.ID)

	_, err = users.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_DuplicateClassification(t *testing.T) {
	users := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, newTestUser("u1", "alice", "alice@example.com")))

	err := users.Create(ctx, newTestUser("u2", "bob", "alice@example.com"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	err = users.Create(ctx, newTestUser("u3", "alice", "other@example.com"))
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	// a username that mentions email must still classify as a username clash
	require.NoError(t, users.Create(ctx, newTestUser("u4", "email_fan", "fan@example.com")))
	err = users.Create(ctx, newTestUser("u5", "email_fan", "fan2@example.com"))
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestUserRepository_TakenProbes(t *testing.T) {
	users := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, newTestUser("u1", "alice", "alice@example.com")))

	taken, err := users.EmailTaken(ctx, "alice@example.com", "")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = users.EmailTaken(ctx, "alice@example.com", "u1")
	require.NoError(t, err)
	assert.False(t, taken, "own email is not taken")

	taken, err = users.UsernameTaken(ctx, "bob", "")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestUserRepository_UpdateListDelete(t *testing.T) {
	users := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, newTestUser("u1", "alice", "alice@example.com")))
	require.NoError(t, users.Create(ctx, newTestUser("u2", "bob", "bob@example.com")))

	u, err := users.GetByID(ctx, "u1")
	require.NoError(t, err)
	u.Username = "alicia"
	require.NoError(t, users.Update(ctx, u))

	u.Email = "bob@example.com"
	assert.ErrorIs(t, users.Update(ctx, u), ErrDuplicateEmail)

	all, err := users.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "alicia", all[0].Username)

	require.NoError(t, users.Delete(ctx, "u1"))
	assert.ErrorIs(t, users.Delete(ctx, "u1"), ErrUserNotFound)
}

func TestIsDuplicateEntry(t *testing.T) {
	assert.False(t, isDuplicateEntry(nil))
	assert.False(t, isDuplicateEntry(errors.New("UNIQUE constraint failed")))
	assert.False(t, isDuplicateEntry(ErrUserNotFound))
}
