package catalog

import (
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/yigit/prereqplanner/internal/app/models"
	"github.com/yigit/prereqplanner/internal/pkg/courseid"
	"github.com/yigit/prereqplanner/internal/pkg/prereq"
)

// Entry is everything the snapshot knows about one course.
type Entry struct {
	Key        string
	Course     models.Course
	Tree       prereq.Node
	Groups     []prereq.OrGroup
	Advisories []string
}

// Snapshot is an immutable compiled catalog. It is safe for concurrent use
// by any number of readers; a new catalog produces a new Snapshot.
type Snapshot struct {
	Version     string
	Sequence    uint64
	BuiltAt     time.Time
	Forward     ForwardMap
	Prereqs     PrereqMap
	Diagnostics []Diagnostic

	entries map[string]*Entry
	order   []string
	// keys sorted longest first, for prefix lookups
	byLength []string
}

// Compile parses every record's prerequisite text, inverts the satisfies
// relation and merges both into a single PrereqMap. Reverse-map groups come
// first; parsed groups with the same alias set are dropped. When two records
// share a normalized id the later one wins.
func Compile(records []models.Course) *Snapshot {
	s := &Snapshot{
		Version: uuid.NewString(),
		BuiltAt: time.Now().UTC(),
		entries: make(map[string]*Entry, len(records)),
	}

	unique := make([]models.Course, 0, len(records))
	index := make(map[string]int, len(records))
	for _, r := range records {
		key := courseid.Normalize(r.ID)
		if key == "" {
			continue
		}
		if i, dup := index[key]; dup {
			s.Diagnostics = append(s.Diagnostics, Diagnostic{
				CourseID: courseid.Display(r.ID),
				Kind:     DiagnosticDuplicateCourse,
				Text:     "duplicate of " + courseid.Display(unique[i].ID) + "; later record kept",
			})
			unique[i] = r
			continue
		}
		index[key] = len(unique)
		unique = append(unique, r)
	}

	var diags []Diagnostic
	s.Forward, s.Prereqs, diags = BuildReverseMap(unique)

	for _, r := range unique {
		key := courseid.Normalize(r.ID)
		tree := prereq.Parse(r.Prerequisites)
		groups, advisories := prereq.Flatten(tree)

		merged := s.Prereqs[key]
		for _, g := range groups {
			merged = appendGroup(merged, g)
		}
		s.Prereqs[key] = merged

		s.entries[key] = &Entry{
			Key:        key,
			Course:     r,
			Tree:       tree,
			Groups:     merged,
			Advisories: advisories,
		}
		s.order = append(s.order, key)
		s.Diagnostics = append(s.Diagnostics, treeDiagnostics(r, tree, len(groups)+len(advisories))...)
	}
	s.Diagnostics = append(s.Diagnostics, diags...)

	s.byLength = append([]string(nil), s.order...)
	sort.SliceStable(s.byLength, func(i, j int) bool {
		return len(s.byLength[i]) > len(s.byLength[j])
	})
	return s
}

// treeDiagnostics reports ambiguous leaves, and prerequisite text that
// yielded neither a group nor an advisory.
func treeDiagnostics(r models.Course, tree prereq.Node, requirements int) []Diagnostic {
	id := courseid.Display(r.ID)
	if requirements == 0 && prereq.Clean(r.Prerequisites) != "" {
		return []Diagnostic{{CourseID: id, Kind: DiagnosticEmptyPrerequisite, Text: r.Prerequisites}}
	}
	var out []Diagnostic
	prereq.Walk(tree, func(n prereq.Node) bool {
		if a, ok := n.(prereq.Ambiguous); ok {
			out = append(out, Diagnostic{CourseID: id, Kind: DiagnosticAmbiguous, Text: a.Text})
		}
		return true
	})
	return out
}

// Len returns the number of courses in the snapshot.
func (s *Snapshot) Len() int { return len(s.order) }

// Courses returns the catalog records in catalog order.
func (s *Snapshot) Courses() []models.Course {
	out := make([]models.Course, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.entries[key].Course)
	}
	return out
}

// Entries returns every entry in catalog order.
func (s *Snapshot) Entries() []*Entry {
	out := make([]*Entry, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.entries[key])
	}
	return out
}

// Lookup finds the entry for a course id. Ids match after normalization;
// failing that, the longest catalog id that prefixes the normalized id is
// used, so "COMP SCI 400 (honors)" resolves to COMP SCI 400. A prefix match
// never splits a course number ("MATH 2210" does not resolve to MATH 221)
// and never drops a one-letter suffix ("MATH 221A" names another course).
func (s *Snapshot) Lookup(id string) (*Entry, bool) {
	key := courseid.Normalize(id)
	if key == "" {
		return nil, false
	}
	if e, ok := s.entries[key]; ok {
		return e, true
	}
	for _, k := range s.byLength {
		if len(k) >= len(key) || !strings.HasPrefix(key, k) {
			continue
		}
		if c := key[len(k)]; c >= '0' && c <= '9' {
			continue
		}
		if letterSuffix(id, utf8.RuneCountInString(k)) {
			continue
		}
		return s.entries[k], true
	}
	return nil, false
}

// letterSuffix reports whether id continues with a lone letter after its
// first n letters and digits, as in "MATH 221A" or "MATH 221 A (lab)".
func letterSuffix(id string, n int) bool {
	rs := []rune(id)
	i := 0
	for ; i < len(rs) && n > 0; i++ {
		if unicode.IsLetter(rs[i]) || unicode.IsDigit(rs[i]) {
			n--
		}
	}
	for i < len(rs) && unicode.IsSpace(rs[i]) {
		i++
	}
	if i >= len(rs) || !unicode.IsLetter(rs[i]) {
		return false
	}
	return i+1 == len(rs) || !(unicode.IsLetter(rs[i+1]) || unicode.IsDigit(rs[i+1]))
}

// Requirements returns the hard OR-groups and advisory notes for a course.
func (s *Snapshot) Requirements(id string) ([]prereq.OrGroup, []string, bool) {
	e, ok := s.Lookup(id)
	if !ok {
		return nil, nil, false
	}
	return e.Groups, e.Advisories, true
}

// DiagnosticsOf returns the diagnostics of one kind, or all of them when
// kind is empty.
func (s *Snapshot) DiagnosticsOf(kind DiagnosticKind) []Diagnostic {
	if kind == "" {
		return s.Diagnostics
	}
	var out []Diagnostic
	for _, d := range s.Diagnostics {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Outliers returns the entries whose prerequisite text did not parse
// cleanly: an ambiguous leaf anywhere in the tree, or non-empty text that
// produced an empty tree.
func (s *Snapshot) Outliers() []*Entry {
	flagged := make(map[string]struct{})
	for _, d := range s.Diagnostics {
		if d.Kind == DiagnosticAmbiguous || d.Kind == DiagnosticEmptyPrerequisite {
			flagged[courseid.Normalize(d.CourseID)] = struct{}{}
		}
	}
	var out []*Entry
	for _, key := range s.order {
		if _, ok := flagged[key]; ok {
			out = append(out, s.entries[key])
		}
	}
	return out
}
