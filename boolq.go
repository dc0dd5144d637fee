// Package boolq parses boolean search expressions into query trees and
// renders trees back to text, JSON rulesets and MongoDB filters.
//
// Queries combine terms with AND, OR, AND NOT and OR NOT. AND binds tighter
// than OR, brackets group, adjacent terms are joined with AND, and
// "quoted phrases" and field:value terms are single leaves:
//
//	title:go AND ("big data" OR author:pike) AND NOT draft
package boolq

import (
	"fmt"

	"github.com/kyle-williams-1/boolq/config"
	"github.com/kyle-williams-1/boolq/factory"
	"github.com/kyle-williams-1/boolq/formatter"
	"github.com/kyle-williams-1/boolq/formatter/ruleset"
	"github.com/kyle-williams-1/boolq/formatter/text"
	"github.com/kyle-williams-1/boolq/language"
	"github.com/kyle-williams-1/boolq/registry"
	"github.com/kyle-williams-1/boolq/tree"
	"go.mongodb.org/mongo-driver/bson"
)

// Parser ties a query language to the configured output formatters.
type Parser struct {
	Config    *config.Config
	language  language.Parser
	formatter formatter.Formatter[string]
	bson      formatter.Formatter[bson.M]
}

// New creates a parser with the default configuration.
func New() *Parser {
	p, err := NewWithConfig(config.Default())
	if err != nil {
		// the default configuration always validates
		panic(err)
	}
	return p
}

// NewWithConfig creates a parser for cfg after validating it against the
// default registry.
func NewWithConfig(cfg *config.Config) (*Parser, error) {
	if err := registry.DefaultRegistry.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	lang, err := registry.DefaultRegistry.Languages.GetLanguage(cfg)
	if err != nil {
		return nil, err
	}
	f, err := registry.DefaultRegistry.Formatters.GetFormatter(cfg)
	if err != nil {
		return nil, err
	}

	return &Parser{
		Config:    cfg,
		language:  lang,
		formatter: f,
		bson:      factory.CreateBSONFormatter(cfg),
	}, nil
}

var defaultParser = New()

// Parse converts a query into a tree using the default configuration. The
// root is always a group; a lone term comes back as a one-child AND group.
func Parse(query string) (*tree.Group, error) {
	return defaultParser.Parse(query)
}

// Serialize renders node in canonical text form, parenthesizing every group.
func Serialize(node tree.Node) string {
	return text.Render(node)
}

// Parse converts a query into a tree.
func (p *Parser) Parse(query string) (*tree.Group, error) {
	return p.language.Parse(query)
}

// Serialize renders node in canonical text form.
func (p *Parser) Serialize(node tree.Node) string {
	return text.Render(node)
}

// Format parses query and renders it with the configured formatter.
func (p *Parser) Format(query string) (string, error) {
	group, err := p.language.Parse(query)
	if err != nil {
		return "", err
	}
	out, err := p.formatter.Format(group)
	if err != nil {
		return "", fmt.Errorf("format %s: %w", p.Config.Formatter, err)
	}
	return out, nil
}

// ToBSON parses query and converts it into a MongoDB filter document.
func (p *Parser) ToBSON(query string) (bson.M, error) {
	group, err := p.language.Parse(query)
	if err != nil {
		return nil, err
	}
	return p.bson.Format(group)
}

// FromRuleset decodes a JSON ruleset and returns its canonical text.
func (p *Parser) FromRuleset(data []byte) (string, error) {
	group, err := ruleset.Unmarshal(data)
	if err != nil {
		return "", err
	}
	return text.Render(group), nil
}
