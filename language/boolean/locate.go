package boolean

import (
	"strings"
	"unicode/utf8"

	"github.com/kyle-williams-1/boolq/tree"
)

// locate returns the byte offsets of every occurrence of the connective's
// symbol at parenthesis depth zero. Quoted sections are skipped.
func locate(text string, connective tree.Connective) []int {
	symbol := symbols[connective]

	var positions []int
	depth := 0
	quoted := false
	for i, r := range text {
		switch {
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '(':
			depth++
		case r == ')':
			depth--
		case r == symbol && depth == 0:
			positions = append(positions, i)
		}
	}
	return positions
}

// split cuts text at the symbol offsets returned by locate.
func split(text string, positions []int) []string {
	segments := make([]string, 0, len(positions)+1)
	start := 0
	for _, pos := range positions {
		segments = append(segments, text[start:pos])
		_, size := utf8.DecodeRuneInString(text[pos:])
		start = pos + size
	}
	return append(segments, text[start:])
}

// stripOuterBrackets removes parentheses that wrap the whole of text,
// repeatedly. "(a OR b) AND (x OR y)" is left alone because the first
// bracket closes before the end.
func stripOuterBrackets(text string) string {
	for strings.HasPrefix(text, "(") {
		if matchingBracket(text) != len(text)-1 {
			break
		}
		text = strings.TrimSpace(text[1 : len(text)-1])
	}
	return text
}

// matchingBracket returns the offset of the ')' closing text[0], or -1.
func matchingBracket(text string) int {
	depth := 0
	quoted := false
	for i, r := range text {
		switch {
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '(':
			depth++
		case r == ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// indexUnquoted returns the offset of the first c outside quotes, or -1.
func indexUnquoted(text string, c rune) int {
	quoted := false
	for i, r := range text {
		switch {
		case r == '"':
			quoted = !quoted
		case !quoted && r == c:
			return i
		}
	}
	return -1
}
