// Package formatter provides interfaces for query tree formatters.
package formatter

import (
	"github.com/kyle-williams-1/boolq/tree"
	"go.mongodb.org/mongo-driver/bson"
)

// Formatter represents a query tree formatter for a specific output type.
type Formatter[T any] interface {
	Format(node tree.Node) (T, error)
}

// Type aliases for formatter types
type (
	TextFormatter = Formatter[string]
	BSONFormatter = Formatter[bson.M]
)
