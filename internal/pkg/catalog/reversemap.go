// Package catalog compiles raw course records into immutable, versioned
// snapshots holding the prerequisite map the plan validator consumes.
package catalog

import (
	"strings"

	"github.com/yigit/prereqplanner/internal/app/models"
	"github.com/yigit/prereqplanner/internal/pkg/courseid"
	"github.com/yigit/prereqplanner/internal/pkg/prereq"
)

// ForwardMap lists, per normalized course id, the targets a course
// satisfies as written in the catalog.
type ForwardMap map[string][]string

// PrereqMap lists, per normalized course id, the OR-groups that must all be
// fulfilled before the course may be taken.
type PrereqMap map[string][]prereq.OrGroup

// DiagnosticKind classifies a catalog diagnostic.
type DiagnosticKind string

// Diagnostic kinds
const (
	DiagnosticAmbiguous         DiagnosticKind = "ambiguous"
	DiagnosticDanglingReference DiagnosticKind = "dangling_reference"
	DiagnosticEmptyPrerequisite DiagnosticKind = "empty_prerequisite"
	DiagnosticDuplicateCourse   DiagnosticKind = "duplicate_course"
)

// Diagnostic reports catalog data the compiler could not use as written.
// Diagnostics never stop a build.
type Diagnostic struct {
	CourseID string         `json:"courseId"`
	Kind     DiagnosticKind `json:"kind"`
	Text     string         `json:"text"`
}

// BuildReverseMap inverts the catalog's "satisfies" relation: when course A
// lists B among the courses it satisfies, A becomes one OR-group of B's
// requirements. Every catalog course receives an entry, possibly empty.
// Satisfies targets that match no catalog course are reported as dangling
// references.
func BuildReverseMap(records []models.Course) (ForwardMap, PrereqMap, []Diagnostic) {
	forward := make(ForwardMap, len(records))
	prereqs := make(PrereqMap, len(records))
	for _, r := range records {
		if key := courseid.Normalize(r.ID); key != "" {
			prereqs[key] = []prereq.OrGroup{}
		}
	}

	var diags []Diagnostic
	for _, r := range records {
		key := courseid.Normalize(r.ID)
		if key == "" {
			continue
		}
		targets := SplitSatisfies(r.Satisfies)
		forward[key] = targets

		satisfier := satisfierGroup(r.ID)
		for _, target := range targets {
			matched := false
			for _, tkey := range targetKeys(target) {
				if tkey == key {
					matched = true
					continue
				}
				groups, ok := prereqs[tkey]
				if !ok {
					continue
				}
				matched = true
				prereqs[tkey] = appendGroup(groups, satisfier)
			}
			if !matched {
				diags = append(diags, Diagnostic{
					CourseID: courseid.Display(r.ID),
					Kind:     DiagnosticDanglingReference,
					Text:     target,
				})
			}
		}
	}
	return forward, prereqs, diags
}

// SplitSatisfies splits a ";"-separated satisfies list, trimming entries and
// dropping empty ones.
func SplitSatisfies(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ";") {
		if part = strings.TrimSpace(prereq.Clean(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func satisfierGroup(id string) prereq.OrGroup {
	if aliases := courseid.SplitMultiSubject(id); len(aliases) > 0 {
		return prereq.OrGroup(aliases)
	}
	return prereq.OrGroup{courseid.Display(id)}
}

// targetKeys returns the normalized ids a satisfies entry can refer to.
// Multi-subject entries ("COMPSCI, ECE 354") refer to every alias.
func targetKeys(target string) []string {
	keys := []string{courseid.Normalize(target)}
	for _, alias := range courseid.SplitMultiSubject(target) {
		k := courseid.Normalize(alias)
		if k != keys[0] {
			keys = append(keys, k)
		}
	}
	return keys
}

// appendGroup adds g unless a group with the same alias set is present.
func appendGroup(groups []prereq.OrGroup, g prereq.OrGroup) []prereq.OrGroup {
	key := g.Key()
	if key == "" {
		return groups
	}
	for _, existing := range groups {
		if existing.Key() == key {
			return groups
		}
	}
	return append(groups, g)
}
