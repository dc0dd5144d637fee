package boolean

import (
	"strings"

	"github.com/kyle-williams-1/boolq/language"
	"github.com/kyle-williams-1/boolq/tree"
)

// Internal delimiter symbols substituted for the boolean keywords. They are
// private-use code points and must not appear in query text.
const (
	andSymbol    = '\uE000'
	andNotSymbol = '\uE001'
	orSymbol     = '\uE002'
	orNotSymbol  = '\uE003'

	reservedSymbols = "\uE000\uE001\uE002\uE003"
)

var symbols = map[tree.Connective]rune{
	tree.And:    andSymbol,
	tree.AndNot: andNotSymbol,
	tree.Or:     orSymbol,
	tree.OrNot:  orNotSymbol,
}

// Preprocess validates a raw query and returns it normalized for splitting:
// whitespace collapsed, implicit connectives inserted between adjacent
// operands and every keyword replaced by its internal symbol.
func Preprocess(query string, implicit tree.Connective) (string, error) {
	// 1. Brackets must balance before anything else is looked at
	if err := checkBrackets(query); err != nil {
		return "", err
	}

	// 2. Trim
	query = strings.TrimSpace(query)
	if strings.ContainsAny(query, reservedSymbols) {
		return "", language.NewError(language.GenericParseFailure, "query contains a reserved character")
	}

	items, err := tokenize(query)
	if err != nil {
		return "", err
	}

	// 3. No keyword may lead or trail the query
	if err := checkOperators(items); err != nil {
		return "", err
	}

	// 4. Whitespace runs were dropped by the lexer
	// 5. Join adjacent operands, then 6. substitute keywords while rendering
	items = insertImplicit(items, implicit)
	return render(items), nil
}

// checkBrackets fails when a ')' closes nothing or a '(' is left open.
func checkBrackets(query string) error {
	depth := 0
	for i, r := range query {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth < 0 {
			return language.NewError(language.UnbalancedBrackets, "unexpected ')' at offset %d", i)
		}
	}
	if depth > 0 {
		return language.NewError(language.UnbalancedBrackets, "%d unclosed '('", depth)
	}
	return nil
}

func checkOperators(items []item) error {
	if len(items) == 0 {
		return nil
	}
	if first := items[0]; first.kind == keywordItem {
		return language.NewError(language.MalformedOperatorPlacement, "query starts with %s", first.text)
	}
	if last := items[len(items)-1]; last.kind == keywordItem {
		return language.NewError(language.MalformedOperatorPlacement, "query ends with %s", last.text)
	}
	return nil
}

// insertImplicit joins every pair of adjacent operands with the implicit connective.
func insertImplicit(items []item, implicit tree.Connective) []item {
	out := make([]item, 0, len(items)*2)
	for i, it := range items {
		if i > 0 && items[i-1].endsOperand() && it.beginsOperand() {
			out = append(out, item{kind: keywordItem, text: implicit.Keyword(), connective: implicit})
		}
		out = append(out, it)
	}
	return out
}

func render(items []item) string {
	var b strings.Builder
	for i, it := range items {
		if i > 0 && items[i-1].kind != openItem && it.kind != closeItem {
			b.WriteByte(' ')
		}
		if it.kind == keywordItem {
			b.WriteRune(symbols[it.connective])
			continue
		}
		b.WriteString(it.text)
	}
	return b.String()
}

// Readable replaces the internal symbols of a preprocessed query with
// bracketed keywords, for logs and error messages.
func Readable(normalized string) string {
	return readableReplacer.Replace(normalized)
}

var readableReplacer = strings.NewReplacer(
	string(andSymbol), "<<AND>>",
	string(andNotSymbol), "<<AND NOT>>",
	string(orSymbol), "<<OR>>",
	string(orNotSymbol), "<<OR NOT>>",
)
