package prereq

import (
	"regexp"
	"strings"

	"github.com/yigit/prereqplanner/internal/pkg/courseid"
)

// Advisory labels for recognised non-course requirements.
const (
	LabelConsent  = "consent of instructor"
	LabelDeclared = "declared major/certificate/special student"
)

var (
	standingLeaf   = regexp.MustCompile(`(?i)^((?:(?:sophomore|junior|senior|graduate\s*/?\s*professional)\s*(?:,|or|and)?\s*)+standing)\s*[.;,]?$`)
	consentLeaf    = regexp.MustCompile(`(?i)^(?:consent of (?:the )?instructor|instructor consent)\s*[.;,]?$`)
	declaredLeaf   = regexp.MustCompile(`(?i)^declared in\b`)
	standingAny    = regexp.MustCompile(`(?i)\b(?:sophomore|junior|senior|graduate\s*/?\s*professional) standing\b`)
	consentAny     = regexp.MustCompile(`(?i)\b(?:consent of (?:the )?instructor|instructor consent)\b`)
	declaredAny    = regexp.MustCompile(`(?i)\bdeclared in\b`)
	digitRun       = regexp.MustCompile(`\d{2,}`)
	courseLeaf     = regexp.MustCompile(`^([A-Z][A-Z&/ ]*?)\s*(\d+[A-Za-z]?)\b`)
	courseLeafFold = regexp.MustCompile(`(?i)^([a-z][a-z&/ ]*?)\s*(\d+[a-z]?)$`)
	subjectCode    = regexp.MustCompile(`^[A-Z][A-Z&/ ]*$`)
	bareNumber     = regexp.MustCompile(`^\d+[A-Za-z]?$`)
	standingWord   = regexp.MustCompile(`(?i)^(?:(?:sophomore|junior|senior|graduate\s*/?\s*professional)\s*,?\s*)+$`)
	standingTail   = regexp.MustCompile(`(?i)^(?:sophomore|junior|senior|graduate\s*/?\s*professional)\b.*\bstanding\s*[.;,]?$`)
)

// Parse turns raw prerequisite text into a requirement tree. It never fails:
// text the grammar cannot interpret becomes an Ambiguous leaf carrying the
// original wording.
func Parse(raw string) Node {
	return parse(Clean(raw))
}

func parse(text string) Node {
	text = Clean(text)
	if text == "" {
		return And{}
	}

	if m := standingLeaf.FindStringSubmatch(text); m != nil {
		return NonCourse{Label: strings.ToLower(strings.Join(strings.Fields(m[1]), " "))}
	}
	if consentLeaf.MatchString(text) {
		return NonCourse{Label: LabelConsent}
	}
	if declaredLeaf.MatchString(text) {
		return NonCourse{Label: LabelDeclared}
	}
	if !digitRun.MatchString(text) && !mentionsNonCourse(text) {
		return Ambiguous{Text: text}
	}

	norm := NormalizeForParsing(text)

	if strings.Contains(norm, "(") || strings.Contains(norm, ")") {
		if segs, ok := splitTopLevel(norm, "and"); !ok {
			return Ambiguous{Text: text}
		} else if len(segs) > 1 {
			return composite(KindAnd, segs, text)
		}
		if segs, _ := splitTopLevel(norm, "or"); len(segs) > 1 {
			return composite(KindOr, segs, text)
		}
		if inner, ok := unwrap(norm); ok {
			return parse(inner)
		}
		return leaf(norm, text)
	}

	if segs, _ := splitTopLevel(norm, "and"); len(segs) > 1 {
		return composite(KindAnd, segs, text)
	}
	if segs, _ := splitTopLevel(norm, "or"); len(segs) > 1 {
		return composite(KindOr, segs, text)
	}
	return leaf(norm, text)
}

func mentionsNonCourse(text string) bool {
	return standingAny.MatchString(text) || consentAny.MatchString(text) || declaredAny.MatchString(text)
}

// splitTopLevel splits s on " conj " occurrences at parenthesis depth zero.
// It reports false when the parentheses are unbalanced.
func splitTopLevel(s, conj string) ([]string, bool) {
	sep := " " + conj + " "

	var segs []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, false
			}
		case ' ':
			if depth == 0 && i+len(sep) <= len(s) && strings.EqualFold(s[i:i+len(sep)], sep) {
				segs = append(segs, strings.TrimSpace(s[start:i]))
				start = i + len(sep)
				i = start - 1
			}
		}
	}
	if depth != 0 {
		return nil, false
	}
	segs = append(segs, strings.TrimSpace(s[start:]))
	return joinStanding(segs, conj), true
}

// joinStanding glues bare class-standing adjectives back onto the segment
// they qualify: "junior", "senior standing" -> "junior or senior standing".
func joinStanding(segs []string, conj string) []string {
	out := make([]string, 0, len(segs))
	var pending []string
	for _, seg := range segs {
		if standingWord.MatchString(seg) {
			pending = append(pending, seg)
			continue
		}
		if len(pending) > 0 && standingTail.MatchString(seg) {
			seg = strings.Join(append(pending, seg), " "+conj+" ")
			pending = nil
		}
		out = append(out, pending...)
		pending = nil
		out = append(out, seg)
	}
	return append(out, pending...)
}

// unwrap strips one pair of parentheses when they enclose the whole string.
func unwrap(s string) (string, bool) {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return "", false
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				return "", false
			}
		}
	}
	return strings.TrimSpace(s[1 : len(s)-1]), depth == 0
}

func composite(kind Kind, segs []string, original string) Node {
	children := make([]Node, 0, len(segs))
	for _, seg := range segs {
		child := parse(seg)
		if IsEmpty(child) {
			continue
		}
		children = append(children, child)
	}
	switch len(children) {
	case 0:
		return Ambiguous{Text: original}
	case 1:
		return children[0]
	}
	if kind == KindOr {
		return Or{Children: children}
	}
	return And{Children: children}
}

// leaf parses a segment with no top-level conjunction: a single course,
// a cross-listing ("CHICLA/SPANISH 222"), or a comma list. Text left over
// after a course id is kept as an Ambiguous sibling.
func leaf(norm, original string) Node {
	if strings.Contains(norm, ",") && !strings.ContainsAny(norm, "()") {
		return listLeaf(norm, original)
	}

	subject, number, rest, ok := matchCourse(norm)
	if !ok {
		return Ambiguous{Text: original}
	}
	n := aliasNode(strings.Split(subject, "/"), number)
	if n == nil {
		return Ambiguous{Text: original}
	}
	if rest == "" {
		return n
	}
	return And{Children: []Node{n, Ambiguous{Text: rest}}}
}

// listLeaf handles comma lists. Subjects sharing one trailing number name a
// single cross-listed course ("COMPSCI, ECE 354"); otherwise every entry is
// required, with bare numbers continuing the previous subject
// ("MATH 221, 222").
func listLeaf(norm, original string) Node {
	var items []string
	for _, item := range strings.Split(norm, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return Ambiguous{Text: original}
	}

	shared := len(items) > 1
	for _, item := range items[:len(items)-1] {
		shared = shared && subjectCode.MatchString(item)
	}
	if shared {
		n := aliasNode(courseid.SplitMultiSubject(norm), "")
		if n == nil {
			return Ambiguous{Text: original}
		}
		return n
	}

	var children []Node
	var subject string
	for _, item := range items {
		if bareNumber.MatchString(item) && subject != "" {
			item = subject + " " + item
		}
		if s, _, _, ok := matchCourse(item); ok {
			subject = s
		}
		if child := parse(item); !IsEmpty(child) {
			children = append(children, child)
		}
	}
	switch len(children) {
	case 0:
		return Ambiguous{Text: original}
	case 1:
		return children[0]
	}
	return And{Children: children}
}

// matchCourse splits a leading course id off s into subject and number and
// returns whatever text follows it.
func matchCourse(s string) (subject, number, rest string, ok bool) {
	m := courseLeaf.FindStringSubmatchIndex(s)
	if m == nil {
		m = courseLeafFold.FindStringSubmatchIndex(s)
	}
	if m == nil {
		return "", "", "", false
	}
	return strings.TrimSpace(s[m[2]:m[3]]), strings.ToUpper(s[m[4]:m[5]]), strings.Trim(s[m[1]:], " .;:,"), true
}

// aliasNode builds a Course per distinct alias, joined in an Or when there
// is more than one. When number is non-empty it is appended to each
// subject; otherwise every alias must already carry its own number.
func aliasNode(aliases []string, number string) Node {
	var courses []Node
	seen := make(map[string]struct{})
	for _, a := range aliases {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if number != "" {
			a += " " + number
		} else if _, _, rest, ok := matchCourse(a); !ok || rest != "" {
			return nil
		}
		alias := courseid.Display(a)
		key := courseid.Normalize(alias)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		courses = append(courses, Course{Options: OrGroup{alias}})
	}

	switch len(courses) {
	case 0:
		return nil
	case 1:
		return courses[0]
	}
	return Or{Children: courses}
}
