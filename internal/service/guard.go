package service

import "github.com/crimsondominion/crimson-go/internal/model"

// Decision is the outcome of an ownership check.
type Decision int

const (
	Denied Decision = iota
	Allowed
)

func (d Decision) String() string {
	if d == Allowed {
		return "allowed"
	}
	return "denied"
}

// Err returns ErrForbidden for a denial.
func (d Decision) Err() error {
	if d == Allowed {
		return nil
	}
	return ErrForbidden
}

// Authorize allows identity to act on a record whose owner reference is ownerID.
// An empty identity is never allowed, even against an empty owner.
func Authorize(identity model.Identity, ownerID string) Decision {
	if identity.ID == "" || identity.ID != ownerID {
		return Denied
	}
	return Allowed
}
