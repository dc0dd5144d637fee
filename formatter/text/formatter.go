// Package text renders query trees in canonical text form.
package text

import (
	"strings"

	"github.com/kyle-williams-1/boolq/formatter"
	"github.com/kyle-williams-1/boolq/tree"
)

// Formatter renders trees as fully parenthesized text with uppercase keywords.
type Formatter struct{}

// New creates a new text formatter instance.
func New() *Formatter {
	return &Formatter{}
}

// Ensure Formatter implements the generic interface
var _ formatter.Formatter[string] = (*Formatter)(nil)

// Format renders node. It never fails.
func (f *Formatter) Format(node tree.Node) (string, error) {
	return Render(node), nil
}

// Render returns the canonical text of node. Every group is parenthesized
// regardless of depth; the tree is not validated.
func Render(node tree.Node) string {
	var b strings.Builder
	render(&b, node, 0)
	return b.String()
}

func render(b *strings.Builder, node tree.Node, depth int) {
	switch n := node.(type) {
	case *tree.Group:
		b.WriteByte('(')
		for i, child := range n.Children {
			if i > 0 {
				b.WriteByte(' ')
				b.WriteString(strings.ToUpper(n.Connective.Keyword()))
				b.WriteByte(' ')
			}
			render(b, child, depth+1)
		}
		b.WriteByte(')')
	case *tree.Leaf:
		if n.HasField() {
			b.WriteString(n.Field)
			b.WriteByte(':')
		}
		if n.Phrase {
			b.WriteByte('"')
			b.WriteString(n.Value)
			b.WriteByte('"')
			return
		}
		b.WriteString(n.Value)
	}
}
