package service

import (
	"context"
	"strings"
	"testing"

	"github.com/crimsondominion/crimson-go/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_ReadProfiles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signup(t, "alice")
	bob := f.signup(t, "bob")
	users := NewUserService(f.users, f.store)

	all, err := users.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, u := range all {
		assert.Empty(t, u.Email)
	}

	own, err := users.Get(ctx, alice, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", own.Email)

	other, err := users.Get(ctx, alice, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", other.Username)
	assert.Empty(t, other.Email)

	_, err = users.Get(ctx, alice, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "user not found", err.Error())
}

func TestUserService_UpdateSelf(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signup(t, "alice")
	users := NewUserService(f.users, f.store)

	resp, err := users.Update(ctx, alice, alice.ID, model.UpdateUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "new-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", resp.Email)

	_, err = f.auth.Login(ctx, model.LoginRequest{Email: "alice@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.Login(ctx, model.LoginRequest{Email: "alice@example.com", Password: "new-password"})
	assert.NoError(t, err)
}

func TestUserService_UpdateKeepsPasswordWhenOmitted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signup(t, "alice")
	users := NewUserService(f.users, f.store)

	_, err := users.Update(ctx, alice, alice.ID, model.UpdateUserRequest{Username: "alicia", Email: "alicia@example.com"})
	require.NoError(t, err)

	_, err = f.auth.Login(ctx, model.LoginRequest{Email: "alicia@example.com", Password: "password123"})
	assert.NoError(t, err)
}

func TestUserService_UpdateRejectsMultibytePasswordOverLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signup(t, "alice")
	users := NewUserService(f.users, f.store)

	_, err := users.Update(ctx, alice, alice.ID, model.UpdateUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: strings.Repeat("é", 40),
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "bcryptlen", verr.Fields["password"])

	_, err = f.auth.Login(ctx, model.LoginRequest{Email: "alice@example.com", Password: "password123"})
	assert.NoError(t, err, "the old password still works")
}

func TestUserService_UpdateConflictsAndOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signup(t, "alice")
	bob := f.signup(t, "bob")
	users := NewUserService(f.users, f.store)

	_, err := users.Update(ctx, alice, alice.ID, model.UpdateUserRequest{Username: "alice", Email: "bob@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = users.Update(ctx, alice, alice.ID, model.UpdateUserRequest{Username: "bob", Email: "alice@example.com"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = users.Update(ctx, alice, bob.ID, model.UpdateUserRequest{Username: "bobby", Email: "bob@example.com"})
	assert.ErrorIs(t, err, ErrForbidden)

	assert.ErrorIs(t, users.Delete(ctx, alice, bob.ID), ErrForbidden)
}

func TestUserService_DeleteRevokesAuthentication(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pair, err := f.auth.Signup(ctx, model.SignupRequest{Username: "alice", Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)
	alice, err := f.auth.Authenticate(ctx, pair.AccessToken)
	require.NoError(t, err)

	require.NoError(t, NewUserService(f.users, f.store).Delete(ctx, alice, alice.ID))

	_, err = f.auth.Authenticate(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrUnknownUser)
}
