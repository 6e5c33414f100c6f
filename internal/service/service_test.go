package service

import (
	"context"
	"testing"

	"github.com/crimsondominion/crimson-go/internal/crypto"
	"github.com/crimsondominion/crimson-go/internal/model"
	"github.com/crimsondominion/crimson-go/internal/repository"
	"github.com/crimsondominion/crimson-go/internal/repository/repotest"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store  *repository.Store
	users  *repository.UserRepository
	tokens *crypto.TokenService
	auth   *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repotest.NewSQLiteStore(t)
	return newFixtureWithStore(t, store)
}

func newFixtureWithStore(t *testing.T, store *repository.Store) *fixture {
	t.Helper()
	tokens, err := crypto.NewTokenService("test-access-secret", "test-refresh-secret")
	require.NoError(t, err)

	users := repository.NewUserRepository(store)
	return &fixture{
		store:  store,
		users:  users,
		tokens: tokens,
		auth:   NewAuthService(users, store, tokens),
	}
}

// signup registers a user and returns their identity.
func (f *fixture) signup(t *testing.T, username string) model.Identity {
	t.Helper()
	pair, err := f.auth.Signup(context.Background(), model.SignupRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	identity, err := f.auth.Authenticate(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	return identity
}
