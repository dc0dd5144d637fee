// Package factory provides factory functions for creating parsers and formatters.
package factory

import (
	"fmt"

	"github.com/kyle-williams-1/boolq/config"
	"github.com/kyle-williams-1/boolq/formatter"
	"github.com/kyle-williams-1/boolq/formatter/mongo"
	"github.com/kyle-williams-1/boolq/formatter/ruleset"
	"github.com/kyle-williams-1/boolq/formatter/text"
	"github.com/kyle-williams-1/boolq/language"
	"github.com/kyle-williams-1/boolq/language/boolean"
	"go.mongodb.org/mongo-driver/bson"
)

// CreateParser creates a parser for the configured language type.
func CreateParser(cfg *config.Config) (language.Parser, error) {
	switch cfg.Language {
	case config.LanguageBoolean:
		return boolean.New(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported language type: %s", cfg.Language)
	}
}

// CreateFormatter creates a string formatter for the configured formatter type.
// The mongo formatter renders its filter as extended JSON.
func CreateFormatter(cfg *config.Config) (formatter.Formatter[string], error) {
	switch cfg.Formatter {
	case config.FormatterText:
		return text.New(), nil
	case config.FormatterRuleset:
		return ruleset.New(), nil
	case config.FormatterMongo:
		return mongo.NewExtJSON(cfg.DefaultFields...), nil
	default:
		return nil, fmt.Errorf("unsupported formatter type: %s", cfg.Formatter)
	}
}

// CreateBSONFormatter creates a BSON formatter with proper typing.
func CreateBSONFormatter(cfg *config.Config) formatter.Formatter[bson.M] {
	return mongo.New(cfg.DefaultFields...)
}
