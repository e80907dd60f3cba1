package models

import "fmt"

// PlannedCourse is a course placed in a plan semester.
type PlannedCourse struct {
	ID          string `json:"id" yaml:"id"`
	DisplayName string `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	Credits     int    `json:"credits,omitempty" yaml:"credits,omitempty"`
}

// PlanTerm is one semester of a plan. Year starts at 1; SemesterIndex is 0
// (fall) or 1 (spring).
type PlanTerm struct {
	Year          int             `json:"year" yaml:"year"`
	SemesterIndex int             `json:"semesterIndex" yaml:"semesterIndex"`
	Courses       []PlannedCourse `json:"courses" yaml:"courses"`
}

// Label renders the term for messages, e.g. "Year 2 SPRING".
func (t PlanTerm) Label() string {
	return fmt.Sprintf("Year %d %s", t.Year, TermForIndex(t.SemesterIndex))
}

// Plan is an ordered multi-year course plan.
type Plan struct {
	Terms []PlanTerm `json:"terms" yaml:"terms"`
}

// Violation is a hard prerequisite failure: an OR-group none of whose
// aliases was completed before the semester that schedules the course.
type Violation struct {
	CourseID      string   `json:"courseId"`
	DisplayName   string   `json:"displayName,omitempty"`
	Year          int      `json:"year"`
	SemesterIndex int      `json:"semesterIndex"`
	Unmet         []string `json:"unmet"`
}

// AdvisoryNote is a requirement that cannot be checked mechanically, or a
// note about plan input the validator skipped.
type AdvisoryNote struct {
	CourseID      string `json:"courseId"`
	Year          int    `json:"year"`
	SemesterIndex int    `json:"semesterIndex"`
	Note          string `json:"note"`
}

// ValidationReport is the result of validating a plan against a catalog
// snapshot.
type ValidationReport struct {
	CatalogVersion string         `json:"catalogVersion,omitempty"`
	Valid          bool           `json:"valid"`
	Violations     []Violation    `json:"violations"`
	Advisories     []AdvisoryNote `json:"advisories"`
}
