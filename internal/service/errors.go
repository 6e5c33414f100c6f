package service

import (
	"errors"
	"sort"
	"strings"
)

// Error kinds. Handlers map these to status codes with errors.Is.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("not authorized to access this resource")
)

var (
	ErrTokenExpired       = kindError(ErrUnauthenticated, "token has expired")
	ErrTokenInvalid       = kindError(ErrUnauthenticated, "invalid token")
	ErrUnknownUser        = kindError(ErrUnauthenticated, "user not found")
	ErrRefreshExpired     = kindError(ErrUnauthenticated, "refresh token has expired")
	ErrRefreshInvalid     = kindError(ErrUnauthenticated, "invalid refresh token")
	ErrInvalidCredentials = kindError(ErrUnauthenticated, "invalid credentials")

	ErrEmailTaken    = kindError(ErrConflict, "email is already in use")
	ErrUsernameTaken = kindError(ErrConflict, "username is already taken")
)

// kindedError carries its own message and matches its kind under errors.Is.
type kindedError struct {
	kind error
	msg  string
}

func kindError(kind error, msg string) error {
	return &kindedError{kind: kind, msg: msg}
}

func (e *kindedError) Error() string { return e.msg }

func (e *kindedError) Is(target error) bool { return target == e.kind }

// ValidationError reports request fields that failed validation, keyed by
// their JSON name, with the rule that failed as the value.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}
