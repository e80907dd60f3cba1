package dto

import (
	"time"

	"github.com/yigit/prereqplanner/internal/app/models"
	"github.com/yigit/prereqplanner/internal/pkg/catalog"
	"github.com/yigit/prereqplanner/internal/pkg/prereq"
)

// CatalogInfoResponse describes the live catalog snapshot
type CatalogInfoResponse struct {
	Version     string         `json:"version" example:"5f0c8c1e-9a57-4c1f-8d7e-2b1e4f6b9a10"`
	Sequence    uint64         `json:"sequence" example:"3"`
	BuiltAt     time.Time      `json:"builtAt"`
	Courses     int            `json:"courses" example:"5123"`
	Diagnostics map[string]int `json:"diagnostics"`
}

// NewCatalogInfoResponse summarises a snapshot
func NewCatalogInfoResponse(s *catalog.Snapshot) CatalogInfoResponse {
	counts := make(map[string]int)
	for _, d := range s.Diagnostics {
		counts[string(d.Kind)]++
	}
	return CatalogInfoResponse{
		Version:     s.Version,
		Sequence:    s.Sequence,
		BuiltAt:     s.BuiltAt,
		Courses:     s.Len(),
		Diagnostics: counts,
	}
}

// CourseSummary is one row of the catalog listing
type CourseSummary struct {
	ID          string `json:"id" example:"MATH 222"`
	CourseName  string `json:"courseName" example:"Calculus--Functions of a Single Variable II"`
	SubjectName string `json:"subjectName,omitempty" example:"Mathematics"`
	Credits     int    `json:"credits" example:"4"`
}

// CourseResponse is a catalog course with its compiled requirements
type CourseResponse struct {
	Course       models.Course    `json:"course"`
	Requirements prereq.Node      `json:"requirements"`
	Rendered     string           `json:"rendered" example:"MATH 221"`
	Groups       []prereq.OrGroup `json:"groups"`
	Advisories   []string         `json:"advisories"`
	Satisfies    []string         `json:"satisfies"`
}

// NewCourseResponse converts a snapshot entry
func NewCourseResponse(e *catalog.Entry, satisfies []string) CourseResponse {
	return CourseResponse{
		Course:       e.Course,
		Requirements: e.Tree,
		Rendered:     e.Tree.String(),
		Groups:       nonNilGroups(e.Groups),
		Advisories:   nonNilStrings(e.Advisories),
		Satisfies:    nonNilStrings(satisfies),
	}
}

// ParseRequest asks for a parse preview of prerequisite text
type ParseRequest struct {
	Text string `json:"text" binding:"required,max=4000" example:"(MATH 221 or MATH 275) and junior standing"`
}

// ParseResponse is the parse preview
type ParseResponse struct {
	Text       string           `json:"text"`
	Tree       prereq.Node      `json:"tree"`
	Rendered   string           `json:"rendered"`
	Groups     []prereq.OrGroup `json:"groups"`
	Advisories []string         `json:"advisories"`
}

// NewParseResponse runs the parser and flattener over text
func NewParseResponse(text string) ParseResponse {
	tree := prereq.Parse(text)
	groups, advisories := prereq.Flatten(tree)
	return ParseResponse{
		Text:       text,
		Tree:       tree,
		Rendered:   tree.String(),
		Groups:     nonNilGroups(groups),
		Advisories: nonNilStrings(advisories),
	}
}

// ReloadResponse reports the snapshot produced by a reload
type ReloadResponse struct {
	Previous string              `json:"previousVersion,omitempty"`
	Current  CatalogInfoResponse `json:"current"`
}

func nonNilGroups(g []prereq.OrGroup) []prereq.OrGroup {
	if g == nil {
		return []prereq.OrGroup{}
	}
	return g
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
