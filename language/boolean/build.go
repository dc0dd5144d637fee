package boolean

import (
	"strings"

	"github.com/kyle-williams-1/boolq/config"
	"github.com/kyle-williams-1/boolq/language"
	"github.com/kyle-williams-1/boolq/tree"
	"go.uber.org/zap"
)

// builder turns a preprocessed query into a tree.
type builder struct {
	fieldMode config.FieldMode
	maxDepth  int
	logger    *zap.Logger
}

// build returns the node for text. depth is the number of groups enclosing it.
func (b *builder) build(text string, depth int) (tree.Node, error) {
	text = stripOuterBrackets(strings.TrimSpace(text))
	if text == "" {
		return nil, language.NewError(language.GenericParseFailure, "empty operand")
	}

	for _, connective := range tree.Priority {
		positions := locate(text, connective)
		if len(positions) == 0 {
			continue
		}
		if depth >= b.maxDepth {
			return nil, language.NewError(language.NestingTooDeep, "groups nest deeper than %d", b.maxDepth)
		}

		b.logger.Debug("split on root connective",
			zap.String("connective", connective.Keyword()),
			zap.Int("operands", len(positions)+1),
			zap.Int("depth", depth),
		)

		group := &tree.Group{Connective: connective, Children: make([]tree.Node, 0, len(positions)+1)}
		for _, segment := range split(text, positions) {
			child, err := b.build(segment, depth+1)
			if err != nil {
				return nil, err
			}
			group.Children = append(group.Children, child)
		}
		return group, nil
	}

	return b.makeLeaf(text)
}

// makeLeaf builds a leaf from a fragment holding no top-level connective.
func (b *builder) makeLeaf(fragment string) (*tree.Leaf, error) {
	if strings.Count(fragment, `"`)%2 != 0 {
		return nil, language.NewError(language.GenericParseFailure, "unterminated quote in %q", Readable(fragment))
	}
	if indexUnquoted(fragment, '(') >= 0 || indexUnquoted(fragment, ')') >= 0 {
		return nil, language.NewError(language.GenericParseFailure, "segment %q matches no leaf or group shape", Readable(fragment))
	}

	leaf := &tree.Leaf{}
	value := fragment
	if i := indexUnquoted(fragment, ':'); i >= 0 {
		field := fragment[:i]
		value = fragment[i+1:]
		if field == "" {
			return nil, language.NewError(language.GenericParseFailure, "value %q has no field name", value)
		}
		if value == "" {
			return nil, language.NewError(language.GenericParseFailure, "field %q has no value", field)
		}
		if b.fieldMode == config.FieldModePreserve {
			leaf.Field = field
		}
	}

	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		leaf.Phrase = true
		value = value[1 : len(value)-1]
	}
	if strings.TrimSpace(value) == "" {
		return nil, language.NewError(language.GenericParseFailure, "empty phrase in %q", fragment)
	}

	leaf.Value = value
	return leaf, nil
}
