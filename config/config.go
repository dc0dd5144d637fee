// Package config provides configuration for language and formatter selection.
package config

import (
	"errors"
	"fmt"

	"github.com/kyle-williams-1/boolq/tree"
	"go.uber.org/zap"
)

// LanguageType represents the type of query language to use.
type LanguageType string

const (
	// LanguageBoolean represents AND/OR/AND NOT/OR NOT boolean search syntax
	LanguageBoolean LanguageType = "boolean"
)

// FormatterType represents the type of output formatter to use.
type FormatterType string

const (
	// FormatterText represents the canonical fully parenthesized text form
	FormatterText FormatterType = "text"
	// FormatterRuleset represents the query-builder JSON ruleset form
	FormatterRuleset FormatterType = "ruleset"
	// FormatterMongo represents a MongoDB filter document
	FormatterMongo FormatterType = "mongo"
)

// FieldMode controls what happens to the field name of a field:value leaf.
type FieldMode int

const (
	// FieldModePreserve records the field on the leaf so it renders back as field:value
	FieldModePreserve FieldMode = iota
	// FieldModeDiscard keeps only the value after the colon
	FieldModeDiscard
)

// DefaultMaxDepth is the default limit on group nesting.
const DefaultMaxDepth = 64

// Config represents the configuration for a parser.
type Config struct {
	Language  LanguageType
	Formatter FormatterType
	// DefaultFields are the fields a free-text leaf is matched against by the
	// BSON formatter. Empty means free text becomes a $text search.
	DefaultFields []string
	FieldMode     FieldMode
	// DefaultConnective is inserted between adjacent terms with no explicit keyword.
	DefaultConnective tree.Connective
	MaxDepth          int
	Logger            *zap.Logger
}

// Default returns the default configuration with the boolean language and text formatter.
func Default() *Config {
	return &Config{
		Language:          LanguageBoolean,
		Formatter:         FormatterText,
		DefaultFields:     []string{},
		FieldMode:         FieldModePreserve,
		DefaultConnective: tree.And,
		MaxDepth:          DefaultMaxDepth,
		Logger:            zap.NewNop(),
	}
}

// WithLanguage sets the language type and returns the config.
func (c *Config) WithLanguage(lang LanguageType) *Config {
	c.Language = lang
	return c
}

// WithFormatter sets the formatter type and returns the config.
func (c *Config) WithFormatter(formatter FormatterType) *Config {
	c.Formatter = formatter
	return c
}

// WithDefaultFields sets the default fields for free-text leaves and returns the config.
func (c *Config) WithDefaultFields(fields []string) *Config {
	c.DefaultFields = fields
	return c
}

// WithFieldMode sets how field:value leaves are parsed and returns the config.
func (c *Config) WithFieldMode(mode FieldMode) *Config {
	c.FieldMode = mode
	return c
}

// WithDefaultConnective sets the implicit connective between adjacent terms and returns the config.
func (c *Config) WithDefaultConnective(connective tree.Connective) *Config {
	c.DefaultConnective = connective
	return c
}

// WithMaxDepth sets the group nesting limit and returns the config.
func (c *Config) WithMaxDepth(depth int) *Config {
	c.MaxDepth = depth
	return c
}

// WithLogger sets the debug logger and returns the config.
func (c *Config) WithLogger(logger *zap.Logger) *Config {
	c.Logger = logger
	return c
}

// Validate checks the settings that the parser depends on.
func (c *Config) Validate() error {
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max depth must be positive, got %d", c.MaxDepth)
	}
	if !c.DefaultConnective.Valid() {
		return fmt.Errorf("invalid default connective %q", c.DefaultConnective)
	}
	if c.DefaultConnective.Negated() {
		return errors.New("default connective cannot be a negation")
	}
	switch c.FieldMode {
	case FieldModePreserve, FieldModeDiscard:
	default:
		return fmt.Errorf("invalid field mode %d", c.FieldMode)
	}
	return nil
}

// Log returns the configured logger, or a no-op logger when none is set.
func (c *Config) Log() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
