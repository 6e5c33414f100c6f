package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/crimsondominion/crimson-go/internal/model"
)

const buildingColumns = `id, owner_id, name, type, resource_cost, created_at`

// BuildingRepository handles building blueprint persistence operations.
type BuildingRepository struct {
	store *Store
}

// NewBuildingRepository creates a new BuildingRepository.
func NewBuildingRepository(store *Store) *BuildingRepository {
	return &BuildingRepository{store: store}
}

// Create inserts a new building.
func (r *BuildingRepository) Create(ctx context.Context, b model.Building) error {
	q, err := r.store.conn(ctx)
	if err != nil {
		return err
	}

	cost, err := payloadValue(b.ResourceCost)
	if err != nil {
		return err
	}

	_, err = q.ExecContext(ctx,
		`INSERT INTO buildings (`+buildingColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.OwnerID, b.Name, b.Type, cost, timeValue(b.CreatedAt),
	)
	if err != nil {
		return unavailable(err)
	}
	return nil
}

// GetByID retrieves a building regardless of owner.
func (r *BuildingRepository) GetByID(ctx context.Context, id string) (model.Building, error) {
	q, err := r.store.conn(ctx)
	if err != nil {
		return model.Building{}, err
	}

	b, err := scanBuilding(q.QueryRowContext(ctx, `SELECT `+buildingColumns+` FROM buildings WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Building{}, ErrNotFound
		}
		return model.Building{}, unavailable(err)
	}
	return b, nil
}

// ListByOwner returns the buildings owned by ownerID, oldest first.
func (r *BuildingRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Building, error) {
	q, err := r.store.conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx,
		`SELECT `+buildingColumns+` FROM buildings WHERE owner_id = ? ORDER BY created_at, id`, ownerID)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()

	buildings := []model.Building{}
	for rows.Next() {
		b, err := scanBuilding(rows)
		if err != nil {
			return nil, unavailable(err)
		}
		buildings = append(buildings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}
	return buildings, nil
}

// Update overwrites the mutable fields of a building owned by b.OwnerID.
func (r *BuildingRepository) Update(ctx context.Context, b model.Building) error {
	q, err := r.store.conn(ctx)
	if err != nil {
		return err
	}

	cost, err := payloadValue(b.ResourceCost)
	if err != nil {
		return err
	}

	_, err = q.ExecContext(ctx,
		`UPDATE buildings SET name = ?, type = ?, resource_cost = ? WHERE id = ? AND owner_id = ?`,
		b.Name, b.Type, cost, b.ID, b.OwnerID,
	)
	if err != nil {
		return unavailable(err)
	}
	return nil
}

// Delete removes a building owned by ownerID.
func (r *BuildingRepository) Delete(ctx context.Context, id, ownerID string) error {
	q, err := r.store.conn(ctx)
	if err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, `DELETE FROM buildings WHERE id = ? AND owner_id = ?`, id, ownerID)
	return deleted(result, err, ErrNotFound)
}

func scanBuilding(row rowScanner) (model.Building, error) {
	var (
		b         model.Building
		cost      jsonPayload
		createdAt dbTime
	)
	if err := row.Scan(&b.ID, &b.OwnerID, &b.Name, &b.Type, &cost, &createdAt); err != nil {
		return model.Building{}, err
	}
	b.ResourceCost = cost.Payload
	b.CreatedAt = createdAt.Time
	return b, nil
}
