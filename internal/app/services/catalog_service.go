package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/prereqplanner/internal/app/models"
	"github.com/yigit/prereqplanner/internal/pkg/apperrors"
	"github.com/yigit/prereqplanner/internal/pkg/catalog"
	"github.com/yigit/prereqplanner/internal/pkg/courseid"
)

// SnapshotStore exposes the live catalog snapshot
type SnapshotStore interface {
	Current() (*catalog.Snapshot, error)
	Reload(ctx context.Context) (*catalog.Snapshot, error)
}

// CatalogService answers catalog queries against the live snapshot
type CatalogService struct {
	store  SnapshotStore
	logger zerolog.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store SnapshotStore, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		store:  store,
		logger: logger.With().Str("service", "catalog").Logger(),
	}
}

// Snapshot returns the live snapshot
func (s *CatalogService) Snapshot(ctx context.Context) (*catalog.Snapshot, error) {
	return s.store.Current()
}

// ListCourses returns the catalog records in catalog order
func (s *CatalogService) ListCourses(ctx context.Context) ([]models.Course, error) {
	snap, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	return snap.Courses(), nil
}

// GetCourse returns the compiled entry of a course and the targets it
// satisfies
func (s *CatalogService) GetCourse(ctx context.Context, id string) (*catalog.Entry, []string, error) {
	snap, err := s.store.Current()
	if err != nil {
		return nil, nil, err
	}
	entry, ok := snap.Lookup(id)
	if !ok {
		return nil, nil, apperrors.NewCustomError(apperrors.ErrCourseNotFound,
			fmt.Sprintf("course %q not found in catalog", courseid.Display(id))).
			WithDetails(map[string]interface{}{"id": id, "catalogVersion": snap.Version})
	}
	return entry, snap.Forward[entry.Key], nil
}

// PrereqMap returns the compiled prerequisite map and the snapshot version
// it belongs to
func (s *CatalogService) PrereqMap(ctx context.Context) (catalog.PrereqMap, string, error) {
	snap, err := s.store.Current()
	if err != nil {
		return nil, "", err
	}
	return snap.Prereqs, snap.Version, nil
}

// Diagnostics lists snapshot diagnostics, optionally filtered by kind
func (s *CatalogService) Diagnostics(ctx context.Context, kind string) ([]catalog.Diagnostic, error) {
	k := catalog.DiagnosticKind(kind)
	switch k {
	case "", catalog.DiagnosticAmbiguous, catalog.DiagnosticDanglingReference,
		catalog.DiagnosticEmptyPrerequisite, catalog.DiagnosticDuplicateCourse:
	default:
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown diagnostic kind %q", kind))
	}

	snap, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	diags := snap.DiagnosticsOf(k)
	if diags == nil {
		diags = []catalog.Diagnostic{}
	}
	return diags, nil
}

// Reload rebuilds the catalog and returns the replaced and the new snapshot.
// previous is nil when no catalog was loaded before.
func (s *CatalogService) Reload(ctx context.Context) (previous, current *catalog.Snapshot, err error) {
	previous, _ = s.store.Current()
	current, err = s.store.Reload(ctx)
	if err != nil {
		return previous, nil, err
	}
	s.logger.Info().Str("version", current.Version).Msg("Catalog reloaded on request")
	return previous, current, nil
}
