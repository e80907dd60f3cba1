package prereq

import "fmt"

// Flatten converts a requirement tree into the shape the plan validator
// checks: one OR-group per top-level AND branch, plus advisory notes for
// requirements that cannot be checked against a plan.
//
// Nested ANDs directly under the root are flattened into separate groups.
// Everything below an OR collapses into a single group of aliases.
func Flatten(n Node) ([]OrGroup, []string) {
	f := flattener{seenAdvice: make(map[string]struct{})}
	f.branch(n)
	return f.groups, f.advisories
}

// AdvisoryText returns the note emitted for a leaf that is not mechanically
// checkable, or "" for course leaves and composites.
func AdvisoryText(n Node) string {
	switch v := n.(type) {
	case NonCourse:
		return v.Label
	case Ambiguous:
		return fmt.Sprintf("unrecognized requirement: %q", v.Text)
	default:
		return ""
	}
}

type flattener struct {
	groups     []OrGroup
	advisories []string
	seenAdvice map[string]struct{}
}

func (f *flattener) branch(n Node) {
	if a, ok := n.(And); ok {
		for _, c := range a.Children {
			f.branch(c)
		}
		return
	}

	var group OrGroup
	seen := make(map[string]struct{})
	f.collect(n, &group, seen)
	if len(group) > 0 {
		f.groups = append(f.groups, group)
	}
}

func (f *flattener) collect(n Node, group *OrGroup, seen map[string]struct{}) {
	switch v := n.(type) {
	case And:
		for _, c := range v.Children {
			f.collect(c, group, seen)
		}
	case Or:
		for _, c := range v.Children {
			f.collect(c, group, seen)
		}
	case Course:
		for _, alias := range v.Options {
			if _, ok := seen[alias]; ok {
				continue
			}
			seen[alias] = struct{}{}
			*group = append(*group, alias)
		}
	case NonCourse, Ambiguous:
		f.advise(AdvisoryText(v))
	default:
		f.advise(fmt.Sprintf("unsupported requirement node %T", n))
	}
}

func (f *flattener) advise(note string) {
	if note == "" {
		return
	}
	if _, ok := f.seenAdvice[note]; ok {
		return
	}
	f.seenAdvice[note] = struct{}{}
	f.advisories = append(f.advisories, note)
}
