// Package tree provides the node types produced by the query parser and consumed by formatters.
package tree

import "fmt"

// Connective joins the children of a Group.
type Connective string

const (
	// And requires every child to match
	And Connective = "AND"
	// AndNot applies AND NOT between each child, left to right
	AndNot Connective = "AND NOT"
	// Or requires any child to match
	Or Connective = "OR"
	// OrNot applies OR NOT between each child, left to right
	OrNot Connective = "OR NOT"
)

// Priority is the order in which the parser looks for a root connective.
// Connectives tried first split the outermost structure, so AND and AND NOT
// bind tighter than OR and OR NOT.
var Priority = [...]Connective{Or, OrNot, And, AndNot}

// Valid reports whether c is one of the four known connectives.
func (c Connective) Valid() bool {
	switch c {
	case And, AndNot, Or, OrNot:
		return true
	}
	return false
}

// Negated reports whether c is AND NOT or OR NOT.
func (c Connective) Negated() bool {
	return c == AndNot || c == OrNot
}

// Keyword returns the uppercase text used between siblings in canonical form.
func (c Connective) Keyword() string {
	return string(c)
}

// ParseConnective maps a keyword to its Connective.
func ParseConnective(s string) (Connective, error) {
	c := Connective(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown connective %q", s)
	}
	return c, nil
}

// Node is either a *Leaf or a *Group.
type Node interface {
	node()
}

// Leaf is a terminal match condition.
type Leaf struct {
	// Field is set only for field-qualified matches written as field:value.
	Field string
	Value string
	// Phrase marks a value that was written in double quotes.
	Phrase bool
}

// Group holds one connective and its ordered operands.
type Group struct {
	Connective Connective
	Children   []Node
}

func (*Leaf) node()  {}
func (*Group) node() {}

// NewLeaf returns a free-text leaf.
func NewLeaf(value string) *Leaf {
	return &Leaf{Value: value}
}

// NewFieldLeaf returns a field-qualified leaf.
func NewFieldLeaf(field, value string) *Leaf {
	return &Leaf{Field: field, Value: value}
}

// NewPhrase returns a free-text phrase leaf.
func NewPhrase(value string) *Leaf {
	return &Leaf{Value: value, Phrase: true}
}

// NewGroup returns a group joining children with c.
func NewGroup(c Connective, children ...Node) *Group {
	return &Group{Connective: c, Children: children}
}

// Term wraps a single leaf in the canonical one-child AND group.
func Term(leaf *Leaf) *Group {
	return NewGroup(And, leaf)
}

// HasField reports whether the leaf is a field-qualified match.
func (l *Leaf) HasField() bool {
	return l.Field != ""
}

// IsTerm reports whether g is the canonical form of a single bare term.
func (g *Group) IsTerm() bool {
	if g.Connective != And || len(g.Children) != 1 {
		return false
	}
	_, ok := g.Children[0].(*Leaf)
	return ok
}
