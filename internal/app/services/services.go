package services

import (
	"github.com/rs/zerolog"
)

// Services holds all the service instances
type Services struct {
	CatalogService *CatalogService
	PlanService    *PlanService
}

// NewServices wires the services around the catalog store
func NewServices(store SnapshotStore, logger zerolog.Logger) *Services {
	return &Services{
		CatalogService: NewCatalogService(store, logger),
		PlanService:    NewPlanService(store, logger),
	}
}
