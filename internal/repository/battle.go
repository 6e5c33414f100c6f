package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/crimsondominion/crimson-go/internal/model"
)

const battleColumns = `id, attacker_id, defender_id, planet_id, battle_log, created_at`

// BattleRepository handles battle record persistence. Records belong to the attacker.
type BattleRepository struct {
	store *Store
}

// NewBattleRepository creates a new BattleRepository.
func NewBattleRepository(store *Store) *BattleRepository {
	return &BattleRepository{store: store}
}

// Create inserts a new battle record.
func (r *BattleRepository) Create(ctx context.Context, b model.Battle) error {
	q, err := r.store.conn(ctx)
	if err != nil {
		return err
	}

	log, err := payloadValue(b.BattleLog)
	if err != nil {
		return err
	}

	_, err = q.ExecContext(ctx,
		`INSERT INTO battles (`+battleColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.AttackerID, b.DefenderID, b.PlanetID, log, timeValue(b.CreatedAt),
	)
	if err != nil {
		return unavailable(err)
	}
	return nil
}

// GetByID retrieves a battle regardless of attacker.
func (r *BattleRepository) GetByID(ctx context.Context, id string) (model.Battle, error) {
	q, err := r.store.conn(ctx)
	if err != nil {
		return model.Battle{}, err
	}

	b, err := scanBattle(q.QueryRowContext(ctx, `SELECT `+battleColumns+` FROM battles WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Battle{}, ErrNotFound
		}
		return model.Battle{}, unavailable(err)
	}
	return b, nil
}

// ListByOwner returns the battles launched by attackerID, oldest first.
func (r *BattleRepository) ListByOwner(ctx context.Context, attackerID string) ([]model.Battle, error) {
	q, err := r.store.conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx,
		`SELECT `+battleColumns+` FROM battles WHERE attacker_id = ? ORDER BY created_at, id`, attackerID)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()

	battles := []model.Battle{}
	for rows.Next() {
		b, err := scanBattle(rows)
		if err != nil {
			return nil, unavailable(err)
		}
		battles = append(battles, b)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}
	return battles, nil
}

// Update overwrites the mutable fields of a battle launched by b.AttackerID.
func (r *BattleRepository) Update(ctx context.Context, b model.Battle) error {
	q, err := r.store.conn(ctx)
	if err != nil {
		return err
	}

	log, err := payloadValue(b.BattleLog)
	if err != nil {
		return err
	}

	_, err = q.ExecContext(ctx,
		`UPDATE battles SET defender_id = ?, planet_id = ?, battle_log = ? WHERE id = ? AND attacker_id = ?`,
		b.DefenderID, b.PlanetID, log, b.ID, b.AttackerID,
	)
	if err != nil {
		return unavailable(err)
	}
	return nil
}

// Delete removes a battle launched by attackerID.
func (r *BattleRepository) Delete(ctx context.Context, id, attackerID string) error {
	q, err := r.store.conn(ctx)
	if err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, `DELETE FROM battles WHERE id = ? AND attacker_id = ?`, id, attackerID)
	return deleted(result, err, ErrNotFound)
}

func scanBattle(row rowScanner) (model.Battle, error) {
	var (
		b         model.Battle
		log       jsonPayload
		createdAt dbTime
	)
	if err := row.Scan(&b.ID, &b.AttackerID, &b.DefenderID, &b.PlanetID, &log, &createdAt); err != nil {
		return model.Battle{}, err
	}
	b.BattleLog = log.Payload
	b.CreatedAt = createdAt.Time
	return b, nil
}
