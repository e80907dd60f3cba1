package catalog

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/yigit/prereqplanner/internal/app/models"
	"github.com/yigit/prereqplanner/internal/pkg/apperrors"
)

// Source loads raw catalog records from a backing store.
type Source interface {
	LoadCourses(ctx context.Context) ([]models.Course, error)
}

// Store owns the live catalog snapshot. Readers call Current and keep the
// returned snapshot for the duration of a request; Reload builds a new
// snapshot off to the side and swaps it in only when the build succeeds.
type Store struct {
	source   Source
	logger   zerolog.Logger
	current  atomic.Pointer[Snapshot]
	sequence atomic.Uint64
	group    singleflight.Group
}

// NewStore creates an empty store backed by source.
func NewStore(source Source, logger zerolog.Logger) *Store {
	return &Store{
		source: source,
		logger: logger.With().Str("component", "catalog_store").Logger(),
	}
}

// Current returns the live snapshot.
func (s *Store) Current() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, apperrors.ErrCatalogNotLoaded
	}
	return snap, nil
}

// Reload loads the source and publishes a fresh snapshot. Concurrent calls
// share a single rebuild. On error the previous snapshot stays live.
func (s *Store) Reload(ctx context.Context) (*Snapshot, error) {
	v, err, shared := s.group.Do("reload", func() (interface{}, error) {
		start := time.Now()
		records, err := s.source.LoadCourses(ctx)
		if err != nil {
			s.logger.Error().Err(err).Msg("Catalog reload failed, keeping previous snapshot")
			return nil, fmt.Errorf("%w: %v", apperrors.ErrCatalogSource, err)
		}
		snap := s.Publish(records)
		s.logger.Info().
			Str("version", snap.Version).
			Uint64("sequence", snap.Sequence).
			Int("courses", snap.Len()).
			Int("diagnostics", len(snap.Diagnostics)).
			Dur("took", time.Since(start)).
			Msg("Catalog snapshot published")
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug().Msg("Catalog reload shared with a concurrent caller")
	}
	return v.(*Snapshot), nil
}

// Publish compiles records and swaps the result in as the live snapshot.
func (s *Store) Publish(records []models.Course) *Snapshot {
	snap := Compile(records)
	snap.Sequence = s.sequence.Add(1)
	s.current.Store(snap)
	return snap
}
