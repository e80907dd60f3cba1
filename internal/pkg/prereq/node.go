// Package prereq parses free-text course prerequisite descriptions into
// requirement trees and flattens them into OR-groups for plan validation.
package prereq

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/yigit/prereqplanner/internal/pkg/courseid"
)

// Kind identifies the variant of a requirement node.
type Kind string

// Node kinds
const (
	KindAnd       Kind = "and"
	KindOr        Kind = "or"
	KindCourse    Kind = "course"
	KindNonCourse Kind = "noncourse"
	KindAmbiguous Kind = "ambiguous"
)

// Node is a requirement tree node. The set of implementations is closed:
// And, Or, Course, NonCourse and Ambiguous.
type Node interface {
	Kind() Kind
	String() string
	node()
}

// And requires every child. An And with no children is vacuously satisfied.
type And struct {
	Children []Node
}

// Or requires at least one child.
type Or struct {
	Children []Node
}

// Course is a course leaf. Options is never empty.
type Course struct {
	Options OrGroup
}

// NonCourse is a requirement that cannot be checked against a plan, such as
// class standing or instructor consent.
type NonCourse struct {
	Label string
}

// Ambiguous holds prerequisite text the grammar could not interpret.
type Ambiguous struct {
	Text string
}

func (And) node()       {}
func (Or) node()        {}
func (Course) node()    {}
func (NonCourse) node() {}
func (Ambiguous) node() {}

func (And) Kind() Kind       { return KindAnd }
func (Or) Kind() Kind        { return KindOr }
func (Course) Kind() Kind    { return KindCourse }
func (NonCourse) Kind() Kind { return KindNonCourse }
func (Ambiguous) Kind() Kind { return KindAmbiguous }

func (n And) String() string {
	if len(n.Children) == 0 {
		return "none"
	}
	return joinChildren(n.Children, " and ")
}

func (n Or) String() string { return joinChildren(n.Children, " or ") }

func (n Course) String() string { return strings.Join(n.Options, "/") }

func (n NonCourse) String() string { return n.Label }

func (n Ambiguous) String() string { return n.Text }

func joinChildren(children []Node, sep string) string {
	parts := make([]string, 0, len(children))
	for _, c := range children {
		switch c.(type) {
		case And, Or:
			parts = append(parts, "("+c.String()+")")
		default:
			parts = append(parts, c.String())
		}
	}
	return strings.Join(parts, sep)
}

// IsEmpty reports whether n is the vacuous requirement.
func IsEmpty(n Node) bool {
	a, ok := n.(And)
	return ok && len(a.Children) == 0
}

// Walk visits n and its descendants depth first. Returning false from fn
// stops the descent below the current node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch v := n.(type) {
	case And:
		for _, c := range v.Children {
			Walk(c, fn)
		}
	case Or:
		for _, c := range v.Children {
			Walk(c, fn)
		}
	}
}

type nodeJSON struct {
	Type     Kind              `json:"type"`
	Children []json.RawMessage `json:"children,omitempty"`
	Options  []string          `json:"options,omitempty"`
	Label    string            `json:"label,omitempty"`
	Text     string            `json:"text,omitempty"`
}

func marshalComposite(kind Kind, children []Node) ([]byte, error) {
	out := nodeJSON{Type: kind, Children: make([]json.RawMessage, 0, len(children))}
	for _, c := range children {
		b, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, b)
	}
	return json.Marshal(out)
}

// MarshalJSON encodes the node with a "type" discriminator.
func (n And) MarshalJSON() ([]byte, error) { return marshalComposite(KindAnd, n.Children) }

// MarshalJSON encodes the node with a "type" discriminator.
func (n Or) MarshalJSON() ([]byte, error) { return marshalComposite(KindOr, n.Children) }

// MarshalJSON encodes the node with a "type" discriminator.
func (n Course) MarshalJSON() ([]byte, error) {
	return json.Marshal(nodeJSON{Type: KindCourse, Options: n.Options})
}

// MarshalJSON encodes the node with a "type" discriminator.
func (n NonCourse) MarshalJSON() ([]byte, error) {
	return json.Marshal(nodeJSON{Type: KindNonCourse, Label: n.Label})
}

// MarshalJSON encodes the node with a "type" discriminator.
func (n Ambiguous) MarshalJSON() ([]byte, error) {
	return json.Marshal(nodeJSON{Type: KindAmbiguous, Text: n.Text})
}

// OrGroup is a set of interchangeable course ids; any one of them fulfils
// the requirement slot.
type OrGroup []string

// String renders the group for display, e.g. "CHICLA 222 or SPANISH 222".
func (g OrGroup) String() string { return strings.Join(g, " or ") }

// Key returns an order-independent identity for the group built from the
// normalized aliases.
func (g OrGroup) Key() string {
	keys := make([]string, 0, len(g))
	for _, a := range g {
		if k := courseid.Normalize(a); k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return strings.Join(keys, "|")
}
