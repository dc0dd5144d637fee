package boolean

import (
	"github.com/kyle-williams-1/boolq/config"
	"github.com/kyle-williams-1/boolq/language"
	"github.com/kyle-williams-1/boolq/tree"
	"go.uber.org/zap"
)

// Parser parses boolean search queries. It holds only read-only settings and
// is safe for concurrent use.
type Parser struct {
	config *config.Config
}

// Ensure Parser implements the language interface
var _ language.Parser = (*Parser)(nil)

// New creates a new boolean parser. A nil config means config.Default().
func New(cfg *config.Config) *Parser {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Parser{config: cfg}
}

// Parse converts a boolean search query into a tree. A single bare term
// comes back as a one-child AND group. Every error is a *language.ParseError.
func (p *Parser) Parse(query string) (*tree.Group, error) {
	normalized, err := Preprocess(query, p.config.DefaultConnective)
	if err != nil {
		return nil, err
	}
	if normalized == "" {
		return nil, language.NewError(language.GenericParseFailure, "empty query")
	}

	logger := p.config.Log()
	logger.Debug("preprocessed query",
		zap.String("query", query),
		zap.String("normalized", Readable(normalized)),
	)

	b := &builder{
		fieldMode: p.config.FieldMode,
		maxDepth:  p.config.MaxDepth,
		logger:    logger,
	}
	root, err := b.build(normalized, 0)
	if err != nil {
		return nil, err
	}

	switch n := root.(type) {
	case *tree.Group:
		return n, nil
	case *tree.Leaf:
		return tree.Term(n), nil
	}
	return nil, language.NewError(language.GenericParseFailure, "unexpected node %T", root)
}
