package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	appModels "github.com/yigit/prereqplanner/internal/app/models"
	appRepos "github.com/yigit/prereqplanner/internal/app/repositories"
	"github.com/yigit/prereqplanner/internal/db"
	"github.com/yigit/prereqplanner/internal/pkg/courseid"
)

// Prepare drops records without an id and collapses records whose ids
// normalize to the same key (the later record wins). Every dropped record is
// reported in the joined error; the returned courses are usable either way.
func Prepare(courses []appModels.Course) ([]appModels.Course, error) {
	var issues error
	out := make([]appModels.Course, 0, len(courses))
	index := make(map[string]int, len(courses))

	for i, c := range courses {
		key := courseid.Normalize(c.ID)
		if key == "" {
			issues = errors.Join(issues, fmt.Errorf("record %d: missing course id", i+1))
			continue
		}
		if at, dup := index[key]; dup {
			issues = errors.Join(issues, fmt.Errorf("record %d: %q duplicates %q", i+1, c.ID, out[at].ID))
			out[at] = c
			continue
		}
		index[key] = len(out)
		out = append(out, c)
	}
	return out, issues
}

// Postgres writes the catalog into PostgreSQL in one transaction.
func Postgres(ctx context.Context, pg *db.PostgresDB, courses []appModels.Course, lgr zerolog.Logger) (int, error) {
	prepared, issues := Prepare(courses)
	logIssues(lgr, issues)

	repo := appRepos.NewCourseRepository(pg.Pool)
	err := pg.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return repo.UpsertTx(ctx, tx, prepared)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to seed courses: %w", err)
	}
	lgr.Info().Int("courses", len(prepared)).Msg("Catalog seeded into PostgreSQL")
	return len(prepared), nil
}

// SQLite writes the catalog into the embedded database.
func SQLite(ctx context.Context, sdb *db.SQLiteDB, courses []appModels.Course, lgr zerolog.Logger) (int, error) {
	prepared, issues := Prepare(courses)
	logIssues(lgr, issues)

	if err := appRepos.NewSQLCourseRepository(sdb.DB).Upsert(ctx, prepared); err != nil {
		return 0, fmt.Errorf("failed to seed courses: %w", err)
	}
	lgr.Info().Int("courses", len(prepared)).Msg("Catalog seeded into SQLite")
	return len(prepared), nil
}

func logIssues(lgr zerolog.Logger, issues error) {
	if issues == nil {
		return
	}
	var joined interface{ Unwrap() []error }
	if errors.As(issues, &joined) {
		for _, err := range joined.Unwrap() {
			lgr.Warn().Err(err).Msg("Skipping catalog record")
		}
		return
	}
	lgr.Warn().Err(issues).Msg("Skipping catalog record")
}
