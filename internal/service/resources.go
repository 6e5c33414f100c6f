package service

import (
	"github.com/crimsondominion/crimson-go/internal/model"
	"github.com/crimsondominion/crimson-go/internal/repository"
)

type (
	PlanetService       = ResourceService[model.Planet, model.PlanetRequest]
	BuildingService     = ResourceService[model.Building, model.BuildingRequest]
	UserBuildingService = ResourceService[model.UserBuilding, model.UserBuildingRequest]
	FleetService        = ResourceService[model.UserFleet, model.UserFleetRequest]
	BattleService       = ResourceService[model.Battle, model.BattleRequest]
)

// Resources bundles the services of every game resource collection.
type Resources struct {
	Planets       *PlanetService
	Buildings     *BuildingService
	UserBuildings *UserBuildingService
	Fleets        *FleetService
	Battles       *BattleService
}

// NewResources wires every resource service to store.
func NewResources(store *repository.Store) Resources {
	return Resources{
		Planets: NewResourceService[model.Planet, model.PlanetRequest](
			"planet", repository.NewPlanetRepository(store), store),
		Buildings: NewResourceService[model.Building, model.BuildingRequest](
			"building", repository.NewBuildingRepository(store), store),
		UserBuildings: NewResourceService[model.UserBuilding, model.UserBuildingRequest](
			"user building", repository.NewUserBuildingRepository(store), store),
		Fleets: NewResourceService[model.UserFleet, model.UserFleetRequest](
			"user fleet", repository.NewFleetRepository(store), store),
		Battles: NewResourceService[model.Battle, model.BattleRequest](
			"battle", repository.NewBattleRepository(store), store),
	}
}
