package crypto

import (
	"errors"
	"time"

	"github.com/crimsondominion/crimson-go/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// AccessTokenTTL bounds the lifetime of access tokens.
	AccessTokenTTL = 60 * time.Minute
	// RefreshTokenTTL bounds the lifetime of refresh tokens.
	RefreshTokenTTL = 7 * 24 * time.Hour

	issuer = "crimsondominion"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid token")
	ErrEmptySubject = errors.New("token subject is empty")
	ErrEmptySecret  = errors.New("signing secrets must be provided")
	ErrSharedSecret = errors.New("access and refresh secrets must differ")
)

// TokenService mints and verifies access and refresh tokens.
// Each kind has its own secret, so a token of one kind never verifies as the other.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	now           func() time.Time
}

// NewTokenService creates a TokenService from two distinct secrets.
func NewTokenService(accessSecret, refreshSecret string) (*TokenService, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, ErrEmptySecret
	}
	if accessSecret == refreshSecret {
		return nil, ErrSharedSecret
	}
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		now:           time.Now,
	}, nil
}

// WithClock returns a copy of the service that reads time from now.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	c := *s
	c.now = now
	return &c
}

// IssueAccess creates an access token for userID valid for AccessTokenTTL.
func (s *TokenService) IssueAccess(userID string) (string, error) {
	return s.issue(userID, s.accessSecret, AccessTokenTTL)
}

// IssueRefresh creates a refresh token for userID valid for RefreshTokenTTL.
func (s *TokenService) IssueRefresh(userID string) (string, error) {
	return s.issue(userID, s.refreshSecret, RefreshTokenTTL)
}

// IssuePair mints a fresh access and refresh token together.
func (s *TokenService) IssuePair(userID string) (model.TokenPair, error) {
	access, err := s.IssueAccess(userID)
	if err != nil {
		return model.TokenPair{}, err
	}
	refresh, err := s.IssueRefresh(userID)
	if err != nil {
		return model.TokenPair{}, err
	}
	return model.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    model.TokenTypeBearer,
	}, nil
}

// VerifyAccess returns the subject of a valid access token.
func (s *TokenService) VerifyAccess(token string) (string, error) {
	return s.verify(token, s.accessSecret)
}

// VerifyRefresh returns the subject of a valid refresh token.
func (s *TokenService) VerifyRefresh(token string) (string, error) {
	return s.verify(token, s.refreshSecret)
}

func (s *TokenService) issue(userID string, secret []byte, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", ErrEmptySubject
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// verify checks the signature first, so only a correctly signed token can be reported as expired.
func (s *TokenService) verify(tokenString string, secret []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	if !token.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}

	return claims.Subject, nil
}
