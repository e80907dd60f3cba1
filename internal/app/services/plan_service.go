package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/prereqplanner/internal/app/models"
	"github.com/yigit/prereqplanner/internal/pkg/planner"
)

// PlanService validates course plans against the live catalog
type PlanService struct {
	store  SnapshotStore
	logger zerolog.Logger
}

// NewPlanService creates a new plan service
func NewPlanService(store SnapshotStore, logger zerolog.Logger) *PlanService {
	return &PlanService{
		store:  store,
		logger: logger.With().Str("service", "plan").Logger(),
	}
}

// Validate checks plan against the snapshot that is live when the call
// starts. A reload during validation does not affect the result.
func (s *PlanService) Validate(ctx context.Context, plan models.Plan, overrides []string) (models.ValidationReport, error) {
	snap, err := s.store.Current()
	if err != nil {
		return models.ValidationReport{}, err
	}

	report := planner.Validate(plan, snap, overrides)
	report.CatalogVersion = snap.Version

	s.logger.Debug().
		Str("catalogVersion", snap.Version).
		Int("terms", len(plan.Terms)).
		Int("violations", len(report.Violations)).
		Int("advisories", len(report.Advisories)).
		Msg(planner.Summary(report))
	return report, nil
}
