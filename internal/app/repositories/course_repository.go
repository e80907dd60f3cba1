package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/prereqplanner/internal/app/models"
	"github.com/yigit/prereqplanner/internal/pkg/apperrors"
	"github.com/yigit/prereqplanner/internal/pkg/dberrors"
)

// CourseRepository handles catalog reads and writes against PostgreSQL
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

const selectCourses = `
	SELECT id, course_name, subject_name, description, prerequisites, satisfies, credits
	FROM courses
`

// LoadCourses retrieves every course in catalog order
func (r *CourseRepository) LoadCourses(ctx context.Context) ([]models.Course, error) {
	rows, err := r.db.Query(ctx, selectCourses+` ORDER BY position, id`)
	if err != nil {
		if dberrors.IsUndefinedTable(err) {
			return nil, fmt.Errorf("courses table is missing, run migrations: %w", err)
		}
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(
			&c.ID,
			&c.CourseName,
			&c.SubjectName,
			&c.Description,
			&c.Prerequisites,
			&c.Satisfies,
			&c.Credits,
		); err != nil {
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		courses = append(courses, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}

	return courses, nil
}

// GetByID retrieves one course by its catalog id
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	var c models.Course
	err := r.db.QueryRow(ctx, selectCourses+` WHERE id = $1`, id).Scan(
		&c.ID,
		&c.CourseName,
		&c.SubjectName,
		&c.Description,
		&c.Prerequisites,
		&c.Satisfies,
		&c.Credits,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return &c, nil
}

// UpsertTx writes courses inside an existing transaction, keeping their
// order as the catalog position
func (r *CourseRepository) UpsertTx(ctx context.Context, tx pgx.Tx, courses []models.Course) error {
	query := `
		INSERT INTO courses (id, course_name, subject_name, description, prerequisites, satisfies, credits, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			course_name = EXCLUDED.course_name,
			subject_name = EXCLUDED.subject_name,
			description = EXCLUDED.description,
			prerequisites = EXCLUDED.prerequisites,
			satisfies = EXCLUDED.satisfies,
			credits = EXCLUDED.credits,
			position = EXCLUDED.position,
			updated_at = NOW()
	`

	batch := &pgx.Batch{}
	for i, c := range courses {
		batch.Queue(query, c.ID, c.CourseName, c.SubjectName, c.Description, c.Prerequisites, c.Satisfies, c.Credits, i)
	}

	results := tx.SendBatch(ctx, batch)
	for i := range courses {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("error upserting course %q: %w", courses[i].ID, err)
		}
	}
	return results.Close()
}
