// Package language provides interfaces for query language parsers.
package language

import "github.com/kyle-williams-1/boolq/tree"

// Parser represents a query language parser.
type Parser interface {
	// Parse converts query text into a tree. The root is always a group; a
	// single bare term is returned as a one-child AND group.
	Parse(query string) (*tree.Group, error)
}
