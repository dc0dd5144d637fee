// Package boolean parses AND/OR/AND NOT/OR NOT search expressions into trees.
package boolean

import (
	"regexp"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/kyle-williams-1/boolq/language"
	"github.com/kyle-williams-1/boolq/tree"
)

// Lexer definition for boolean search queries
var queryLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Whitespace
	{Name: "Whitespace", Pattern: `\s+`},
	// Parentheses
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	// Terms, keywords and quoted phrases. A quoted section keeps its
	// whitespace and parentheses; an unterminated quote runs to the end.
	{Name: "Term", Pattern: `(?:[^\s()"]|"[^"]*"?)+`},
})

var (
	whitespaceType = queryLexer.Symbols()["Whitespace"]
	lparenType     = queryLexer.Symbols()["LParen"]
	rparenType     = queryLexer.Symbols()["RParen"]
	termType       = queryLexer.Symbols()["Term"]

	whitespaceRun = regexp.MustCompile(`\s+`)
)

// keywords maps the words that start a connective.
var keywords = map[string]tree.Connective{
	"AND": tree.And,
	"OR":  tree.Or,
}

type itemKind int

const (
	termItem itemKind = iota
	openItem
	closeItem
	keywordItem
)

// item is a lexed query element with whitespace already collapsed.
type item struct {
	kind       itemKind
	text       string
	connective tree.Connective
}

// beginsOperand reports whether an operand can start at this item.
func (it item) beginsOperand() bool {
	return it.kind == termItem || it.kind == openItem
}

// endsOperand reports whether an operand can end at this item.
func (it item) endsOperand() bool {
	return it.kind == termItem || it.kind == closeItem
}

// tokenize splits the query into items. AND/OR followed by NOT become a
// single AND NOT/OR NOT keyword; a NOT anywhere else is an ordinary term.
func tokenize(query string) ([]item, error) {
	lex, err := queryLexer.LexString("", query)
	if err != nil {
		return nil, language.WrapError(err)
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, language.WrapError(err)
	}

	items := make([]item, 0, len(tokens))
	for _, tok := range tokens {
		switch tok.Type {
		case lparenType:
			items = append(items, item{kind: openItem, text: "("})
		case rparenType:
			items = append(items, item{kind: closeItem, text: ")"})
		case termType:
			if c, ok := keywords[tok.Value]; ok {
				items = append(items, item{kind: keywordItem, text: tok.Value, connective: c})
				continue
			}
			if tok.Value == "NOT" && len(items) > 0 {
				if last := &items[len(items)-1]; last.kind == keywordItem && !last.connective.Negated() {
					last.connective = negate(last.connective)
					last.text += " NOT"
					continue
				}
			}
			items = append(items, item{kind: termItem, text: whitespaceRun.ReplaceAllString(tok.Value, " ")})
		case whitespaceType:
		default:
			if !tok.EOF() {
				return nil, language.NewError(language.GenericParseFailure, "unexpected token %q at %s", tok.Value, tok.Pos)
			}
		}
	}
	return items, nil
}

func negate(c tree.Connective) tree.Connective {
	if c == tree.Or {
		return tree.OrNot
	}
	return tree.AndNot
}
