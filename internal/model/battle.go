package model

import "time"

// Battle records an attack. The attacker owns the record.
type Battle struct {
	ID         string    `json:"id"`
	AttackerID string    `json:"attacker_id"`
	DefenderID string    `json:"defender_id"`
	PlanetID   string    `json:"planet_id"`
	BattleLog  Payload   `json:"battle_log"`
	CreatedAt  time.Time `json:"created_at"`
}

func (b Battle) OwnedBy() string { return b.AttackerID }

// BattleRequest is the body of battle create and update requests.
type BattleRequest struct {
	DefenderID string  `json:"defender_id" validate:"required,max=36"`
	PlanetID   string  `json:"planet_id" validate:"required,max=36"`
	BattleLog  Payload `json:"battle_log"`
}

func (r BattleRequest) New(id, ownerID string, createdAt time.Time) Battle {
	return r.Apply(Battle{ID: id, AttackerID: ownerID, CreatedAt: createdAt})
}

func (r BattleRequest) Apply(b Battle) Battle {
	b.DefenderID = r.DefenderID
	b.PlanetID = r.PlanetID
	b.BattleLog = orEmpty(r.BattleLog)
	return b
}
