package model

import "time"

// Planet represents a planet claimed by a user.
type Planet struct {
	ID           string     `json:"id"`
	OwnerID      string     `json:"owner_id"`
	Name         string     `json:"name"`
	Resources    Payload    `json:"resources"`
	DiscoveredAt *time.Time `json:"discovered_at"`
	ClaimedAt    *time.Time `json:"claimed_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (p Planet) OwnedBy() string { return p.OwnerID }

// PlanetRequest is the body of planet create and update requests.
type PlanetRequest struct {
	Name         string     `json:"name" validate:"required,max=100"`
	Resources    Payload    `json:"resources"`
	DiscoveredAt *time.Time `json:"discovered_at"`
	ClaimedAt    *time.Time `json:"claimed_at"`
}

func (r PlanetRequest) New(id, ownerID string, createdAt time.Time) Planet {
	return r.Apply(Planet{ID: id, OwnerID: ownerID, CreatedAt: createdAt})
}

func (r PlanetRequest) Apply(p Planet) Planet {
	p.Name = r.Name
	p.Resources = orEmpty(r.Resources)
	p.DiscoveredAt = r.DiscoveredAt
	p.ClaimedAt = r.ClaimedAt
	return p
}
