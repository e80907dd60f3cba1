package models

// RoleType defines the role carried in an access token
type RoleType string

const (
	RoleAdmin  RoleType = "ADMIN"
	RoleReader RoleType = "READER"
)

// Term represents a semester term
type Term string

// Term constants
const (
	TermFall   Term = "FALL"
	TermSpring Term = "SPRING"
)

// TermForIndex maps a plan semester index to its term. Index 0 is the fall
// semester of an academic year, 1 the spring semester.
func TermForIndex(idx int) Term {
	if idx == 1 {
		return TermSpring
	}
	return TermFall
}
