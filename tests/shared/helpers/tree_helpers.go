// Package helpers provides shared test utilities for building and comparing query trees.
package helpers

import (
	"testing"

	"github.com/kyle-williams-1/boolq/formatter/text"
	"github.com/kyle-williams-1/boolq/tree"
)

// L returns a free-text leaf.
func L(value string) *tree.Leaf {
	return tree.NewLeaf(value)
}

// F returns a field-qualified leaf.
func F(field, value string) *tree.Leaf {
	return tree.NewFieldLeaf(field, value)
}

// P returns a free-text phrase leaf.
func P(value string) *tree.Leaf {
	return tree.NewPhrase(value)
}

// G returns a group joining children with connective.
func G(connective tree.Connective, children ...tree.Node) *tree.Group {
	return tree.NewGroup(connective, children...)
}

// AssertTree fails the test when actual is not structurally equal to expected.
// Both trees are shown in canonical text form.
func AssertTree(t *testing.T, expected, actual tree.Node) bool {
	t.Helper()
	if tree.Equal(expected, actual) {
		return true
	}
	t.Errorf("Trees differ\nexpected: %s\n  actual: %s", describe(expected), describe(actual))
	return false
}

func describe(n tree.Node) string {
	if n == nil {
		return "<nil>"
	}
	switch x := n.(type) {
	case *tree.Group:
		if x == nil {
			return "<nil>"
		}
	case *tree.Leaf:
		if x == nil {
			return "<nil>"
		}
	}
	return text.Render(n)
}
