package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crimsondominion/crimson-go/internal/model"
	"github.com/crimsondominion/crimson-go/internal/repository"
	"github.com/google/uuid"
)

// OwnedRepository stores one kind of owned resource. Update and Delete
// only touch rows whose owner matches.
type OwnedRepository[T model.Owned] interface {
	Create(ctx context.Context, item T) error
	GetByID(ctx context.Context, id string) (T, error)
	ListByOwner(ctx context.Context, ownerID string) ([]T, error)
	Update(ctx context.Context, item T) error
	Delete(ctx context.Context, id, ownerID string) error
}

// Input is a validated request body that builds or rewrites a resource.
// The owner reference is never taken from the body.
type Input[T model.Owned] interface {
	New(id, ownerID string, createdAt time.Time) T
	Apply(current T) T
}

// ResourceService is the owner-scoped CRUD used by every game resource.
// Reads and writes of a single record check existence first, then ownership.
type ResourceService[T model.Owned, In Input[T]] struct {
	repo     OwnedRepository[T]
	tx       Transactor
	notFound error
	now      func() time.Time
}

// NewResourceService creates a ResourceService. name is used in not-found messages.
func NewResourceService[T model.Owned, In Input[T]](name string, repo OwnedRepository[T], tx Transactor) *ResourceService[T, In] {
	return &ResourceService[T, In]{
		repo:     repo,
		tx:       tx,
		notFound: fmt.Errorf("%s %w", name, ErrNotFound),
		now:      time.Now,
	}
}

// Create stores a new resource owned by the caller.
func (s *ResourceService[T, In]) Create(ctx context.Context, caller model.Identity, in In) (T, error) {
	var zero T
	if err := validateRequest(in); err != nil {
		return zero, err
	}

	item := in.New(uuid.NewString(), caller.ID, s.now().UTC())
	if err := s.repo.Create(ctx, item); err != nil {
		return zero, err
	}
	return item, nil
}

// List returns the caller's resources only.
func (s *ResourceService[T, In]) List(ctx context.Context, caller model.Identity) ([]T, error) {
	return s.repo.ListByOwner(ctx, caller.ID)
}

// Get returns a resource the caller owns.
func (s *ResourceService[T, In]) Get(ctx context.Context, caller model.Identity, id string) (T, error) {
	return s.authorized(ctx, caller, id)
}

// Update rewrites the mutable fields of a resource the caller owns.
func (s *ResourceService[T, In]) Update(ctx context.Context, caller model.Identity, id string, in In) (T, error) {
	var updated T
	if err := validateRequest(in); err != nil {
		return updated, err
	}

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		current, err := s.authorized(ctx, caller, id)
		if err != nil {
			return err
		}
		next := in.Apply(current)
		if err := s.repo.Update(ctx, next); err != nil {
			return err
		}
		updated = next
		return nil
	})
	return updated, err
}

// Delete removes a resource the caller owns.
func (s *ResourceService[T, In]) Delete(ctx context.Context, caller model.Identity, id string) error {
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.authorized(ctx, caller, id); err != nil {
			return err
		}
		return s.mapNotFound(s.repo.Delete(ctx, id, caller.ID))
	})
}

func (s *ResourceService[T, In]) authorized(ctx context.Context, caller model.Identity, id string) (T, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		var zero T
		return zero, s.mapNotFound(err)
	}
	if err := Authorize(caller, item.OwnedBy()).Err(); err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}

func (s *ResourceService[T, In]) mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return s.notFound
	}
	return err
}
