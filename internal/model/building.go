package model

import "time"

// Building is a building blueprint defined by a user.
type Building struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	ResourceCost Payload   `json:"resource_cost"`
	CreatedAt    time.Time `json:"created_at"`
}

func (b Building) OwnedBy() string { return b.OwnerID }

// BuildingRequest is the body of building create and update requests.
type BuildingRequest struct {
	Name         string  `json:"name" validate:"required,max=100"`
	Type         string  `json:"type" validate:"required,max=50"`
	ResourceCost Payload `json:"resource_cost"`
}

func (r BuildingRequest) New(id, ownerID string, createdAt time.Time) Building {
	return r.Apply(Building{ID: id, OwnerID: ownerID, CreatedAt: createdAt})
}

func (r BuildingRequest) Apply(b Building) Building {
	b.Name = r.Name
	b.Type = r.Type
	b.ResourceCost = orEmpty(r.ResourceCost)
	return b
}
