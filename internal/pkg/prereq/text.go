package prereq

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// "MATH 221andMATH 222", "221or(STAT 240)"
	gluedBothSides = regexp.MustCompile(`([A-Z0-9)])(and|or)([A-Z(])`)
	// "MATH 221and MATH 222"
	gluedBefore = regexp.MustCompile(`([0-9)])(and|or)(\s)`)
	// "MATH 221 andMATH 222"
	gluedAfter = regexp.MustCompile(`(\s)(and|or)([A-Z(])`)
)

// Clean folds compatibility characters (non-breaking spaces and the like),
// strips invisible format characters, trims and collapses whitespace. Text
// that reads "none" cleans to the empty string.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	t := transform.Chain(norm.NFKC, runes.Remove(runes.In(unicode.Cf)))
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}
	folded = strings.Join(strings.Fields(folded), " ")
	if strings.EqualFold(strings.TrimRight(folded, "."), "none") {
		return ""
	}
	return folded
}

// NormalizeForParsing makes conjunction and parenthesis boundaries explicit
// so the parser can split on " and " / " or " and single-character parens.
func NormalizeForParsing(text string) string {
	s := Clean(text)
	s = gluedBothSides.ReplaceAllString(s, "$1 $2 $3")
	s = gluedBefore.ReplaceAllString(s, "$1 $2$3")
	s = gluedAfter.ReplaceAllString(s, "$1$2 $3")
	s = strings.ReplaceAll(s, "(", " ( ")
	s = strings.ReplaceAll(s, ")", " ) ")
	return strings.Join(strings.Fields(s), " ")
}
