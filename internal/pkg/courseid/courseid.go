package courseid

import (
	"regexp"
	"strings"
	"unicode"
)

var trailingNumberPattern = regexp.MustCompile(`^(.*?)\s*(\d+[A-Za-z]?)\s*$`)

// Normalize uppercases an identifier and strips every non-alphanumeric
// character, so "comp sci 537" and "COMPSCI537" compare equal.
func Normalize(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	for _, r := range id {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// Display returns the canonical display form of an identifier: uppercase
// with single spaces.
func Display(id string) string {
	return strings.ToUpper(strings.Join(strings.Fields(id), " "))
}

// Equal reports whether two identifiers normalize to the same key.
func Equal(a, b string) bool {
	na := Normalize(a)
	return na != "" && na == Normalize(b)
}

// MatchesAny reports whether candidate equals, or contains, any alias of the
// group after normalization. Containment lets stored plan ids carry a
// disambiguating suffix such as a course title.
func MatchesAny(candidate string, group []string) bool {
	nc := Normalize(candidate)
	if nc == "" {
		return false
	}
	for _, alias := range group {
		na := Normalize(alias)
		if na == "" {
			continue
		}
		if nc == na || strings.Contains(nc, na) {
			return true
		}
	}
	return false
}

// SplitMultiSubject expands a comma or slash joined multi-subject id into
// its individual aliases. A trailing course number is distributed to every
// alias that lacks one: "COMPSCI, ECE 354" -> ["COMPSCI 354", "ECE 354"].
func SplitMultiSubject(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '/'
	})

	var aliases []string
	var number string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		aliases = append(aliases, p)
	}
	if len(aliases) == 0 {
		return nil
	}

	if m := trailingNumberPattern.FindStringSubmatch(aliases[len(aliases)-1]); m != nil {
		number = m[2]
	}

	out := make([]string, 0, len(aliases))
	seen := make(map[string]struct{}, len(aliases))
	var subject string
	for _, a := range aliases {
		if m := trailingNumberPattern.FindStringSubmatch(a); m != nil {
			if s := strings.TrimSpace(m[1]); s != "" {
				subject = s
			} else if subject != "" {
				// bare number continues the previous subject: "MATH 221, 222"
				a = subject + " " + m[2]
			}
		} else if number != "" {
			a = a + " " + number
		}
		a = Display(a)
		key := Normalize(a)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}
