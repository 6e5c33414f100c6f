package service

import (
	"context"
	"errors"
	"time"

	"github.com/crimsondominion/crimson-go/internal/crypto"
	"github.com/crimsondominion/crimson-go/internal/model"
	"github.com/crimsondominion/crimson-go/internal/repository"
	"github.com/google/uuid"
)

// UserStore is the credential store used by the auth and user services.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	EmailTaken(ctx context.Context, email, exceptID string) (bool, error)
	UsernameTaken(ctx context.Context, username, exceptID string) (bool, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
}

// Transactor runs fn in a transaction bound to the context it receives.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// AuthService handles signup, login, token refresh and request authentication.
type AuthService struct {
	users  UserStore
	tx     Transactor
	tokens *crypto.TokenService
	now    func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, tx Transactor, tokens *crypto.TokenService) *AuthService {
	return &AuthService{
		users:  users,
		tx:     tx,
		tokens: tokens,
		now:    time.Now,
	}
}

// Signup creates a user account and returns a fresh token pair.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (model.TokenPair, error) {
	if err := validateRequest(req); err != nil {
		return model.TokenPair{}, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.TokenPair{}, err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := probeAvailable(ctx, s.users, user.Username, user.Email, ""); err != nil {
			return err
		}
		return s.users.Create(ctx, user)
	})
	if err != nil {
		return model.TokenPair{}, mapUserWrite(err)
	}

	return s.tokens.IssuePair(user.ID)
}

// Login exchanges credentials for a fresh token pair. Unknown emails and
// wrong passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.TokenPair, error) {
	if err := validateRequest(req); err != nil {
		return model.TokenPair{}, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			crypto.BurnVerify(req.Password)
			return model.TokenPair{}, ErrInvalidCredentials
		}
		return model.TokenPair{}, err
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		return model.TokenPair{}, ErrInvalidCredentials
	}

	return s.tokens.IssuePair(user.ID)
}

// Refresh mints a new access token. The refresh token is handed back as is.
func (s *AuthService) Refresh(ctx context.Context, req model.RefreshRequest) (model.TokenPair, error) {
	if err := validateRequest(req); err != nil {
		return model.TokenPair{}, err
	}

	userID, err := s.tokens.VerifyRefresh(req.RefreshToken)
	if err != nil {
		if errors.Is(err, crypto.ErrTokenExpired) {
			return model.TokenPair{}, ErrRefreshExpired
		}
		return model.TokenPair{}, ErrRefreshInvalid
	}

	access, err := s.tokens.IssueAccess(userID)
	if err != nil {
		return model.TokenPair{}, err
	}

	return model.TokenPair{
		AccessToken:  access,
		RefreshToken: req.RefreshToken,
		TokenType:    model.TokenTypeBearer,
	}, nil
}

// Authenticate resolves an access token to the identity of a live user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (model.Identity, error) {
	userID, err := s.tokens.VerifyAccess(token)
	if err != nil {
		if errors.Is(err, crypto.ErrTokenExpired) {
			return model.Identity{}, ErrTokenExpired
		}
		return model.Identity{}, ErrTokenInvalid
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.Identity{}, ErrUnknownUser
		}
		return model.Identity{}, err
	}

	return user.Identity(), nil
}

// probeAvailable checks email first, then username, ignoring the user exceptID.
func probeAvailable(ctx context.Context, users UserStore, username, email, exceptID string) error {
	taken, err := users.EmailTaken(ctx, email, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}

	taken, err = users.UsernameTaken(ctx, username, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return ErrUsernameTaken
	}
	return nil
}

// mapUserWrite turns unique-index violations into field-specific conflicts.
func mapUserWrite(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return ErrEmailTaken
	case errors.Is(err, repository.ErrDuplicateUsername):
		return ErrUsernameTaken
	default:
		return err
	}
}
