package model

import "time"

// UserFleet is a fleet stationed at a planet.
type UserFleet struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PlanetID  string    `json:"planet_id"`
	Ships     Payload   `json:"ships"`
	CreatedAt time.Time `json:"created_at"`
}

func (f UserFleet) OwnedBy() string { return f.UserID }

// UserFleetRequest is the body of fleet create and update requests.
type UserFleetRequest struct {
	PlanetID string  `json:"planet_id" validate:"required,max=36"`
	Ships    Payload `json:"ships"`
}

func (r UserFleetRequest) New(id, ownerID string, createdAt time.Time) UserFleet {
	return r.Apply(UserFleet{ID: id, UserID: ownerID, CreatedAt: createdAt})
}

func (r UserFleetRequest) Apply(f UserFleet) UserFleet {
	f.PlanetID = r.PlanetID
	f.Ships = orEmpty(r.Ships)
	return f
}
