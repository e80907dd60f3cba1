// Package planner checks multi-year course plans against a compiled
// prerequisite map.
package planner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yigit/prereqplanner/internal/app/models"
	"github.com/yigit/prereqplanner/internal/pkg/courseid"
	"github.com/yigit/prereqplanner/internal/pkg/prereq"
)

// RequirementSource resolves a course id to its hard OR-groups and advisory
// notes. found is false when the course is not in the catalog.
type RequirementSource interface {
	Requirements(courseID string) (groups []prereq.OrGroup, advisories []string, found bool)
}

// Advisory notes emitted for plan entries the validator cannot check.
const (
	NoteBlankID        = "plan entry has no course id; skipped"
	NoteNotInCatalog   = "course not found in catalog; prerequisites not checked"
	noteAdvisoryPrefix = "advisory: "
)

// Validate walks the plan semester by semester and reports every OR-group
// that is not fulfilled by a course completed in an earlier semester or
// listed in overrides. Courses in the same semester never count toward each
// other. Terms sharing a (year, semester) pair form one semester.
//
// Validate does not mutate its inputs and keeps no state, so it may be
// called concurrently against the same source.
func Validate(plan models.Plan, source RequirementSource, overrides []string) models.ValidationReport {
	report := models.ValidationReport{
		Violations: []models.Violation{},
		Advisories: []models.AdvisoryNote{},
	}

	completed := newCompletedSet(overrides)
	for _, term := range semesters(plan.Terms) {
		var taken []string
		for _, pc := range term.Courses {
			id := strings.TrimSpace(pc.ID)
			if courseid.Normalize(id) == "" {
				report.Advisories = append(report.Advisories, note(term, pc.ID, NoteBlankID))
				continue
			}
			taken = append(taken, id)

			groups, advisories, found := source.Requirements(id)
			if !found {
				report.Advisories = append(report.Advisories, note(term, id, NoteNotInCatalog))
				continue
			}

			var unmet []string
			for _, g := range groups {
				if !completed.satisfies(g) {
					unmet = append(unmet, g.String())
				}
			}
			if len(unmet) > 0 {
				report.Violations = append(report.Violations, models.Violation{
					CourseID:      id,
					DisplayName:   pc.DisplayName,
					Year:          term.Year,
					SemesterIndex: term.SemesterIndex,
					Unmet:         unmet,
				})
			}
			for _, a := range advisories {
				report.Advisories = append(report.Advisories, note(term, id, noteAdvisoryPrefix+a))
			}
		}
		// commit after the whole semester: no co-requisite credit
		completed.add(taken...)
	}

	report.Valid = len(report.Violations) == 0
	return report
}

func note(term models.PlanTerm, id, text string) models.AdvisoryNote {
	return models.AdvisoryNote{
		CourseID:      id,
		Year:          term.Year,
		SemesterIndex: term.SemesterIndex,
		Note:          text,
	}
}

// semesters orders terms by (year, semesterIndex) and merges terms that
// share the same pair.
func semesters(terms []models.PlanTerm) []models.PlanTerm {
	sorted := make([]models.PlanTerm, len(terms))
	copy(sorted, terms)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Year != sorted[j].Year {
			return sorted[i].Year < sorted[j].Year
		}
		return sorted[i].SemesterIndex < sorted[j].SemesterIndex
	})

	var out []models.PlanTerm
	for _, t := range sorted {
		if n := len(out); n > 0 && out[n-1].Year == t.Year && out[n-1].SemesterIndex == t.SemesterIndex {
			merged := make([]models.PlannedCourse, 0, len(out[n-1].Courses)+len(t.Courses))
			merged = append(merged, out[n-1].Courses...)
			out[n-1].Courses = append(merged, t.Courses...)
			continue
		}
		out = append(out, t)
	}
	return out
}

type completedSet struct {
	ids  []string
	seen map[string]struct{}
}

func newCompletedSet(ids []string) *completedSet {
	c := &completedSet{seen: make(map[string]struct{})}
	c.add(ids...)
	return c
}

func (c *completedSet) add(ids ...string) {
	for _, id := range ids {
		key := courseid.Normalize(id)
		if key == "" {
			continue
		}
		if _, ok := c.seen[key]; ok {
			continue
		}
		c.seen[key] = struct{}{}
		c.ids = append(c.ids, id)
	}
}

func (c *completedSet) satisfies(g prereq.OrGroup) bool {
	for _, id := range c.ids {
		if courseid.MatchesAny(id, g) {
			return true
		}
	}
	return false
}

// Summary renders a one-line description of a report for logs and the CLI.
func Summary(r models.ValidationReport) string {
	if r.Valid {
		return fmt.Sprintf("plan is valid (%d advisories)", len(r.Advisories))
	}
	return fmt.Sprintf("%d violations, %d advisories", len(r.Violations), len(r.Advisories))
}
