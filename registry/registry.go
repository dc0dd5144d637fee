// Package registry provides dynamic discovery and registration of languages and formatters.
package registry

import (
	"fmt"
	"slices"
	"sync"

	"github.com/kyle-williams-1/boolq/config"
	"github.com/kyle-williams-1/boolq/factory"
	"github.com/kyle-williams-1/boolq/formatter"
	"github.com/kyle-williams-1/boolq/language"
)

// LanguageFactory creates a new language parser instance.
type LanguageFactory func(cfg *config.Config) language.Parser

// FormatterFactory creates a new formatter instance.
type FormatterFactory func(cfg *config.Config) formatter.Formatter[string]

// LanguageRegistry manages available language parsers.
type LanguageRegistry struct {
	mu        sync.RWMutex
	languages map[config.LanguageType]LanguageFactory
}

// FormatterRegistry manages available formatters.
type FormatterRegistry struct {
	mu         sync.RWMutex
	formatters map[config.FormatterType]FormatterFactory
}

// Registry combines language and formatter registries.
type Registry struct {
	Languages  *LanguageRegistry
	Formatters *FormatterRegistry
}

// New creates a new registry with default languages and formatters.
func New() *Registry {
	return &Registry{
		Languages:  NewLanguageRegistry(),
		Formatters: NewFormatterRegistry(),
	}
}

// NewLanguageRegistry creates a new language registry with default languages.
func NewLanguageRegistry() *LanguageRegistry {
	registry := &LanguageRegistry{
		languages: make(map[config.LanguageType]LanguageFactory),
	}
	registry.RegisterLanguage(config.LanguageBoolean, fromFactory(factory.CreateParser))
	return registry
}

// NewFormatterRegistry creates a new formatter registry with default formatters.
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[config.FormatterType]FormatterFactory),
	}
	for _, formatterType := range []config.FormatterType{
		config.FormatterText,
		config.FormatterRuleset,
		config.FormatterMongo,
	} {
		registry.RegisterFormatter(formatterType, fromFactory(factory.CreateFormatter))
	}
	return registry
}

// fromFactory adapts a factory constructor that switches on the config. A
// type registered here that the constructor does not handle is a programming
// error and panics.
func fromFactory[T any](create func(*config.Config) (T, error)) func(*config.Config) T {
	return func(cfg *config.Config) T {
		v, err := create(cfg)
		if err != nil {
			panic(fmt.Sprintf("registry: default factory out of sync: %v", err))
		}
		return v
	}
}

// RegisterLanguage registers a language factory.
func (lr *LanguageRegistry) RegisterLanguage(langType config.LanguageType, factory LanguageFactory) {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.languages[langType] = factory
}

// RegisterFormatter registers a formatter factory.
func (fr *FormatterRegistry) RegisterFormatter(formatterType config.FormatterType, factory FormatterFactory) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	fr.formatters[formatterType] = factory
}

// GetLanguage creates a language parser instance for cfg.Language.
func (lr *LanguageRegistry) GetLanguage(cfg *config.Config) (language.Parser, error) {
	lr.mu.RLock()
	factory, exists := lr.languages[cfg.Language]
	lr.mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("unsupported language type: %s", cfg.Language)
	}
	return factory(cfg), nil
}

// GetFormatter creates a formatter instance for cfg.Formatter.
func (fr *FormatterRegistry) GetFormatter(cfg *config.Config) (formatter.Formatter[string], error) {
	fr.mu.RLock()
	factory, exists := fr.formatters[cfg.Formatter]
	fr.mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("unsupported formatter type: %s", cfg.Formatter)
	}
	return factory(cfg), nil
}

// ListLanguages returns all registered language types in sorted order.
func (lr *LanguageRegistry) ListLanguages() []config.LanguageType {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	languages := make([]config.LanguageType, 0, len(lr.languages))
	for langType := range lr.languages {
		languages = append(languages, langType)
	}
	slices.Sort(languages)
	return languages
}

// ListFormatters returns all registered formatter types in sorted order.
func (fr *FormatterRegistry) ListFormatters() []config.FormatterType {
	fr.mu.RLock()
	defer fr.mu.RUnlock()
	formatters := make([]config.FormatterType, 0, len(fr.formatters))
	for formatterType := range fr.formatters {
		formatters = append(formatters, formatterType)
	}
	slices.Sort(formatters)
	return formatters
}

// ValidateConfig validates the config settings and that its language-formatter
// combination is registered.
func (r *Registry) ValidateConfig(cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := r.Languages.GetLanguage(cfg); err != nil {
		return fmt.Errorf("invalid language: %w", err)
	}
	if _, err := r.Formatters.GetFormatter(cfg); err != nil {
		return fmt.Errorf("invalid formatter: %w", err)
	}
	return nil
}

// DefaultRegistry is the global registry instance.
var DefaultRegistry = New()

// RegisterLanguage registers a language with the global registry.
func RegisterLanguage(langType config.LanguageType, factory LanguageFactory) {
	DefaultRegistry.Languages.RegisterLanguage(langType, factory)
}

// RegisterFormatter registers a formatter with the global registry.
func RegisterFormatter(formatterType config.FormatterType, factory FormatterFactory) {
	DefaultRegistry.Formatters.RegisterFormatter(formatterType, factory)
}
