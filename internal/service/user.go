package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/crimsondominion/crimson-go/internal/crypto"
	"github.com/crimsondominion/crimson-go/internal/model"
	"github.com/crimsondominion/crimson-go/internal/repository"
)

var errUserNotFound = fmt.Errorf("user %w", ErrNotFound)

// UserService serves user profiles. Any caller may read profiles; only the
// user themselves may change or delete their account.
type UserService struct {
	users UserStore
	tx    Transactor
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore, tx Transactor) *UserService {
	return &UserService{users: users, tx: tx}
}

// List returns the public profile of every user.
func (s *UserService) List(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]model.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, publicProfile(u))
	}
	return resp, nil
}

// Get returns a profile. The email is only included for the caller's own record.
func (s *UserService) Get(ctx context.Context, caller model.Identity, id string) (model.UserResponse, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return model.UserResponse{}, err
	}
	return profileFor(caller, *user), nil
}

// Update replaces the caller's username and email, and their password when one is given.
func (s *UserService) Update(ctx context.Context, caller model.Identity, id string, req model.UpdateUserRequest) (model.UserResponse, error) {
	if err := validateRequest(req); err != nil {
		return model.UserResponse{}, err
	}

	var hash string
	if req.Password != "" {
		var err error
		if hash, err = crypto.HashPassword(req.Password); err != nil {
			return model.UserResponse{}, err
		}
	}

	var updated model.User
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		user, err := s.load(ctx, id)
		if err != nil {
			return err
		}
		if err := Authorize(caller, user.ID).Err(); err != nil {
			return err
		}
		if err := probeAvailable(ctx, s.users, req.Username, req.Email, user.ID); err != nil {
			return err
		}

		user.Username = req.Username
		user.Email = req.Email
		if hash != "" {
			user.PasswordHash = hash
		}
		if err := s.users.Update(ctx, user); err != nil {
			return err
		}
		updated = *user
		return nil
	})
	if err != nil {
		return model.UserResponse{}, mapUserWrite(err)
	}

	return profileFor(caller, updated), nil
}

// Delete removes the caller's own account.
func (s *UserService) Delete(ctx context.Context, caller model.Identity, id string) error {
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		user, err := s.load(ctx, id)
		if err != nil {
			return err
		}
		if err := Authorize(caller, user.ID).Err(); err != nil {
			return err
		}
		if err := s.users.Delete(ctx, user.ID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errUserNotFound
			}
			return err
		}
		return nil
	})
}

func (s *UserService) load(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func publicProfile(u model.User) model.UserResponse {
	return model.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

func profileFor(caller model.Identity, u model.User) model.UserResponse {
	resp := publicProfile(u)
	if Authorize(caller, u.ID) == Allowed {
		resp.Email = u.Email
	}
	return resp
}
