package model

import "time"

// UserBuilding is an instance of a building placed on a planet.
type UserBuilding struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	BuildingID string    `json:"building_id"`
	PlanetID   string    `json:"planet_id"`
	Level      int       `json:"level"`
	CreatedAt  time.Time `json:"created_at"`
}

func (b UserBuilding) OwnedBy() string { return b.UserID }

// UserBuildingRequest is the body of user building create and update requests.
type UserBuildingRequest struct {
	BuildingID string `json:"building_id" validate:"required,max=36"`
	PlanetID   string `json:"planet_id" validate:"required,max=36"`
	Level      int    `json:"level" validate:"min=1"`
}

func (r UserBuildingRequest) New(id, ownerID string, createdAt time.Time) UserBuilding {
	return r.Apply(UserBuilding{ID: id, UserID: ownerID, CreatedAt: createdAt})
}

func (r UserBuildingRequest) Apply(b UserBuilding) UserBuilding {
	b.BuildingID = r.BuildingID
	b.PlanetID = r.PlanetID
	b.Level = r.Level
	return b
}
