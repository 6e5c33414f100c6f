package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/crimsondominion/crimson-go/internal/model"
)

const fleetColumns = `id, user_id, planet_id, ships, created_at`

// FleetRepository handles fleet persistence operations.
type FleetRepository struct {
	store *Store
}

// NewFleetRepository creates a new FleetRepository.
func NewFleetRepository(store *Store) *FleetRepository {
	return &FleetRepository{store: store}
}

// Create inserts a new fleet.
func (r *FleetRepository) Create(ctx context.Context, f model.UserFleet) error {
	q, err := r.store.conn(ctx)
	if err != nil {
		return err
	}

	ships, err := payloadValue(f.Ships)
	if err != nil {
		return err
	}

	_, err = q.ExecContext(ctx,
		`INSERT INTO user_fleets (`+fleetColumns+`) VALUES (?, ?, ?, ?, ?)`,
		f.ID, f.UserID, f.PlanetID, ships, timeValue(f.CreatedAt),
	)
	if err != nil {
		return unavailable(err)
	}
	return nil
}

// GetByID retrieves a fleet regardless of owner.
func (r *FleetRepository) GetByID(ctx context.Context, id string) (model.UserFleet, error) {
	q, err := r.store.conn(ctx)
	if err != nil {
		return model.UserFleet{}, err
	}

	f, err := scanFleet(q.QueryRowContext(ctx, `SELECT `+fleetColumns+` FROM user_fleets WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.UserFleet{}, ErrNotFound
		}
		return model.UserFleet{}, unavailable(err)
	}
	return f, nil
}

// ListByOwner returns the fleets of userID, oldest first.
func (r *FleetRepository) ListByOwner(ctx context.Context, userID string) ([]model.UserFleet, error) {
	q, err := r.store.conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx,
		`SELECT `+fleetColumns+` FROM user_fleets WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()

	fleets := []model.UserFleet{}
	for rows.Next() {
		f, err := scanFleet(rows)
		if err != nil {
			return nil, unavailable(err)
		}
		fleets = append(fleets, f)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}
	return fleets, nil
}

// Update overwrites the mutable fields of a fleet owned by f.UserID.
func (r *FleetRepository) Update(ctx context.Context, f model.UserFleet) error {
	q, err := r.store.conn(ctx)
	if err != nil {
		return err
	}

	ships, err := payloadValue(f.Ships)
	if err != nil {
		return err
	}

	_, err = q.ExecContext(ctx,
		`UPDATE user_fleets SET planet_id = ?, ships = ? WHERE id = ? AND user_id = ?`,
		f.PlanetID, ships, f.ID, f.UserID,
	)
	if err != nil {
		return unavailable(err)
	}
	return nil
}

// Delete removes a fleet owned by userID.
func (r *FleetRepository) Delete(ctx context.Context, id, userID string) error {
	q, err := r.store.conn(ctx)
	if err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, `DELETE FROM user_fleets WHERE id = ? AND user_id = ?`, id, userID)
	return deleted(result, err, ErrNotFound)
}

func scanFleet(row rowScanner) (model.UserFleet, error) {
	var (
		f         model.UserFleet
		ships     jsonPayload
		createdAt dbTime
	)
	if err := row.Scan(&f.ID, &f.UserID, &f.PlanetID, &ships, &createdAt); err != nil {
		return model.UserFleet{}, err
	}
	f.Ships = ships.Payload
	f.CreatedAt = createdAt.Time
	return f, nil
}
