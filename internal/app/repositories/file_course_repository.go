package repositories

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yigit/prereqplanner/internal/app/models"
	"github.com/yigit/prereqplanner/internal/pkg/apperrors"
	"github.com/yigit/prereqplanner/internal/pkg/helpers"
)

// FileCourseRepository loads the catalog from a CSV or JSON export. The
// format is chosen by file extension.
type FileCourseRepository struct {
	path string
}

// NewFileCourseRepository creates a repository reading the file at path
func NewFileCourseRepository(path string) *FileCourseRepository {
	return &FileCourseRepository{path: path}
}

// Path returns the catalog file location
func (r *FileCourseRepository) Path() string { return r.path }

// LoadCourses reads and decodes the whole file
func (r *FileCourseRepository) LoadCourses(ctx context.Context) ([]models.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(r.path)) {
	case ".csv":
		return DecodeCSV(f)
	case ".json":
		return DecodeJSON(f)
	default:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedInput, r.path)
	}
}

// fileRecord mirrors the column names of catalog exports
type fileRecord struct {
	ID            string          `json:"id"`
	CourseName    string          `json:"course_name"`
	SubjectName   string          `json:"subject_name"`
	Description   string          `json:"description"`
	Prerequisites string          `json:"prerequisites"`
	Satisfies     string          `json:"satisfies"`
	Credits       json.RawMessage `json:"credits"`
}

// DecodeJSON decodes a JSON array of catalog records
func DecodeJSON(r io.Reader) ([]models.Course, error) {
	var records []fileRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode catalog JSON: %w", err)
	}

	courses := make([]models.Course, 0, len(records))
	for _, rec := range records {
		courses = append(courses, models.Course{
			ID:            strings.TrimSpace(rec.ID),
			CourseName:    rec.CourseName,
			SubjectName:   rec.SubjectName,
			Description:   helpers.OptionalString(rec.Description),
			Prerequisites: rec.Prerequisites,
			Satisfies:     rec.Satisfies,
			Credits:       parseCredits(strings.Trim(string(rec.Credits), `"`)),
		})
	}
	return courses, nil
}

// DecodeCSV decodes a CSV export with a header row. Only the id column is
// required; unknown columns are ignored.
func DecodeCSV(r io.Reader) ([]models.Course, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read catalog header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		columns[name] = i
	}
	if _, ok := columns["id"]; !ok {
		return nil, fmt.Errorf("%w: catalog CSV has no id column", apperrors.ErrUnsupportedInput)
	}

	var courses []models.Course
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog row %d: %w", line, err)
		}

		field := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}

		id := strings.TrimSpace(field("id"))
		if id == "" {
			continue
		}
		courses = append(courses, models.Course{
			ID:            id,
			CourseName:    field("course_name"),
			SubjectName:   field("subject_name"),
			Description:   helpers.OptionalString(field("description")),
			Prerequisites: field("prerequisites"),
			Satisfies:     field("satisfies"),
			Credits:       parseCredits(field("credits")),
		})
	}
	return courses, nil
}

func parseCredits(s string) int {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
			return int(f)
		}
		return 0
	}
	return n
}
