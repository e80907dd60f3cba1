package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yigit/prereqplanner/internal/app/models"
	"github.com/yigit/prereqplanner/internal/pkg/apperrors"
	"github.com/yigit/prereqplanner/internal/pkg/helpers"
)

// SQLCourseRepository reads the catalog through database/sql. It is used
// with the embedded SQLite database.
type SQLCourseRepository struct {
	db *sql.DB
}

// NewSQLCourseRepository creates a new database/sql course repository
func NewSQLCourseRepository(db *sql.DB) *SQLCourseRepository {
	return &SQLCourseRepository{db: db}
}

const sqlSelectCourses = `SELECT id, course_name, subject_name, description, prerequisites, satisfies, credits FROM courses`

// LoadCourses retrieves every course in catalog order
func (r *SQLCourseRepository) LoadCourses(ctx context.Context) ([]models.Course, error) {
	rows, err := r.db.QueryContext(ctx, sqlSelectCourses+` ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}
	return courses, nil
}

// GetByID retrieves one course by its catalog id
func (r *SQLCourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	c, err := scanCourse(r.db.QueryRowContext(ctx, sqlSelectCourses+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Upsert replaces the stored catalog rows for the given courses in one
// transaction
func (r *SQLCourseRepository) Upsert(ctx context.Context, courses []models.Course) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO courses (id, course_name, subject_name, description, prerequisites, satisfies, credits, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			course_name = excluded.course_name,
			subject_name = excluded.subject_name,
			description = excluded.description,
			prerequisites = excluded.prerequisites,
			satisfies = excluded.satisfies,
			credits = excluded.credits,
			position = excluded.position`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for i, c := range courses {
		if _, err := stmt.ExecContext(ctx,
			c.ID, c.CourseName, c.SubjectName, helpers.GetNullString(c.Description),
			c.Prerequisites, c.Satisfies, c.Credits, i,
		); err != nil {
			return fmt.Errorf("error upserting course %q: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (models.Course, error) {
	var (
		c           models.Course
		description sql.NullString
	)
	if err := row.Scan(
		&c.ID,
		&c.CourseName,
		&c.SubjectName,
		&description,
		&c.Prerequisites,
		&c.Satisfies,
		&c.Credits,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c, err
		}
		return c, fmt.Errorf("error scanning course: %w", err)
	}
	c.Description = helpers.StringPtr(description)
	return c, nil
}
