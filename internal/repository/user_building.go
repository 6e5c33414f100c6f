package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/crimsondominion/crimson-go/internal/model"
)

const userBuildingColumns = `id, user_id, building_id, planet_id, level, created_at`

// UserBuildingRepository handles persistence of buildings placed on planets.
type UserBuildingRepository struct {
	store *Store
}

// NewUserBuildingRepository creates a new UserBuildingRepository.
func NewUserBuildingRepository(store *Store) *UserBuildingRepository {
	return &UserBuildingRepository{store: store}
}

// Create inserts a new user building.
func (r *UserBuildingRepository) Create(ctx context.Context, b model.UserBuilding) error {
	q, err := r.store.conn(ctx)
	if err != nil {
		return err
	}

	_, err = q.ExecContext(ctx,
		`INSERT INTO user_buildings (`+userBuildingColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.UserID, b.BuildingID, b.PlanetID, b.Level, timeValue(b.CreatedAt),
	)
	if err != nil {
		return unavailable(err)
	}
	return nil
}

// GetByID retrieves a user building regardless of owner.
func (r *UserBuildingRepository) GetByID(ctx context.Context, id string) (model.UserBuilding, error) {
	q, err := r.store.conn(ctx)
	if err != nil {
		return model.UserBuilding{}, err
	}

	b, err := scanUserBuilding(q.QueryRowContext(ctx,
		`SELECT `+userBuildingColumns+` FROM user_buildings WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.UserBuilding{}, ErrNotFound
		}
		return model.UserBuilding{}, unavailable(err)
	}
	return b, nil
}

// ListByOwner returns the user buildings of userID, oldest first.
func (r *UserBuildingRepository) ListByOwner(ctx context.Context, userID string) ([]model.UserBuilding, error) {
	q, err := r.store.conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx,
		`SELECT `+userBuildingColumns+` FROM user_buildings WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()

	buildings := []model.UserBuilding{}
	for rows.Next() {
		b, err := scanUserBuilding(rows)
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

// Update overwrites the mutable fields of a user building owned by b.UserID.
func (r *UserBuildingRepository) Update(ctx context.Context, b model.UserBuilding) error {
	q, err := r.store.conn(ctx)
	if err != nil {
		return err
	}

	_, err = q.ExecContext(ctx,
		`UPDATE user_buildings SET building_id = ?, planet_id = ?, level = ? WHERE id = ? AND user_id = ?`,
		b.BuildingID, b.PlanetID, b.Level, b.ID, b.UserID,
	)
	if err != nil {
		return unavailable(err)
	}
	return nil
}

// Delete removes a user building owned by userID.
func (r *UserBuildingRepository) Delete(ctx context.Context, id, userID string) error {
	q, err := r.store.conn(ctx)
	if err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, `DELETE FROM user_buildings WHERE id = ? AND user_id = ?`, id, userID)
	return deleted(result, err, ErrNotFound)
}

func scanUserBuilding(row rowScanner) (model.UserBuilding, error) {
	var (
		b         model.UserBuilding
		createdAt dbTime
	)
	if err := row.Scan(&b.ID, &b.UserID, &b.BuildingID, &b.PlanetID, &b.Level, &createdAt); err != nil {
		return model.UserBuilding{}, err
	}
	b.CreatedAt = createdAt.Time
	return b, nil
}
