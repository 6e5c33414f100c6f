package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/crimsondominion/crimson-go/internal/model"
)

const planetColumns = `id, owner_id, name, resources, discovered_at, claimed_at, created_at`

// PlanetRepository handles planet persistence operations.
type PlanetRepository struct {
	store *Store
}

// NewPlanetRepository creates a new PlanetRepository.
func NewPlanetRepository(store *Store) *PlanetRepository {
	return &PlanetRepository{store: store}
}

// Create inserts a new planet.
func (r *PlanetRepository) Create(ctx context.Context, p model.Planet) error {
	q, err := r.store.conn(ctx)
	if err != nil {
		return err
	}

	resources, err := payloadValue(p.Resources)
	if err != nil {
		return err
	}

	_, err = q.ExecContext(ctx,
		`INSERT INTO planets (`+planetColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.OwnerID, p.Name, resources,
		nullTimeValue(p.DiscoveredAt), nullTimeValue(p.ClaimedAt), timeValue(p.CreatedAt),
	)
	if err != nil {
		return unavailable(err)
	}
	return nil
}

// GetByID retrieves a planet regardless of owner; callers apply the ownership check.
func (r *PlanetRepository) GetByID(ctx context.Context, id string) (model.Planet, error) {
	q, err := r.store.conn(ctx)
	if err != nil {
		return model.Planet{}, err
	}

	p, err := scanPlanet(q.QueryRowContext(ctx, `SELECT `+planetColumns+` FROM planets WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Planet{}, ErrNotFound
		}
		return model.Planet{}, unavailable(err)
	}
	return p, nil
}

// ListByOwner returns the planets owned by ownerID, oldest first.
func (r *PlanetRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Planet, error) {
	q, err := r.store.conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx,
		`SELECT `+planetColumns+` FROM planets WHERE owner_id = ? ORDER BY created_at, id`, ownerID)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()

	planets := []model.Planet{}
	for rows.Next() {
		p, err := scanPlanet(rows)
		if err != nil {
			return nil, unavailable(err)
		}
		planets = append(planets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}
	return planets, nil
}

// Update overwrites the mutable fields of a planet owned by p.OwnerID.
func (r *PlanetRepository) Update(ctx context.Context, p model.Planet) error {
	q, err := r.store.conn(ctx)
	if err != nil {
		return err
	}

	resources, err := payloadValue(p.Resources)
	if err != nil {
		return err
	}

	_, err = q.ExecContext(ctx,
		`UPDATE planets SET name = ?, resources = ?, discovered_at = ?, claimed_at = ?
		WHERE id = ? AND owner_id = ?`,
		p.Name, resources, nullTimeValue(p.DiscoveredAt), nullTimeValue(p.ClaimedAt),
		p.ID, p.OwnerID,
	)
	if err != nil {
		return unavailable(err)
	}
	return nil
}

// Delete removes a planet owned by ownerID.
func (r *PlanetRepository) Delete(ctx context.Context, id, ownerID string) error {
	q, err := r.store.conn(ctx)
	if err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, `DELETE FROM planets WHERE id = ? AND owner_id = ?`, id, ownerID)
	return deleted(result, err, ErrNotFound)
}

func scanPlanet(row rowScanner) (model.Planet, error) {
	var (
		p          model.Planet
		resources  jsonPayload
		discovered dbTime
		claimed    dbTime
		createdAt  dbTime
	)
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &resources, &discovered, &claimed, &createdAt); err != nil {
		return model.Planet{}, err
	}
	p.Resources = resources.Payload
	p.DiscoveredAt = discovered.ptr()
	p.ClaimedAt = claimed.ptr()
	p.CreatedAt = createdAt.Time
	return p, nil
}
