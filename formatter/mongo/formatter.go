// Package mongo converts query trees into MongoDB filter documents.
package mongo

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kyle-williams-1/boolq/formatter"
	"github.com/kyle-williams-1/boolq/tree"
	"go.mongodb.org/mongo-driver/bson"
)

// ErrTextSearch is returned when free-text terms cannot be expressed with a
// single MongoDB $text clause and no default fields are configured.
var ErrTextSearch = errors.New("free-text term needs default fields")

// MongoFormatter represents a MongoDB BSON formatter for query trees.
type MongoFormatter struct {
	defaultFields []string
}

// New creates a new MongoDB BSON formatter instance. Free-text terms are
// matched against defaultFields; with none, they become a $text search.
func New(defaultFields ...string) *MongoFormatter {
	return &MongoFormatter{defaultFields: defaultFields}
}

// Ensure MongoFormatter implements the generic interface
var _ formatter.Formatter[bson.M] = (*MongoFormatter)(nil)

// state is carried through a single Format call.
type state struct {
	negated  bool
	textUsed bool
}

// Format converts a query tree into a BSON filter document.
func (f *MongoFormatter) Format(node tree.Node) (bson.M, error) {
	if node == nil {
		return nil, errors.New("nil node")
	}
	return f.nodeToBSON(node, &state{})
}

func (f *MongoFormatter) nodeToBSON(node tree.Node, st *state) (bson.M, error) {
	switch n := node.(type) {
	case *tree.Group:
		if n == nil || len(n.Children) == 0 {
			return nil, errors.New("empty group")
		}
		return f.groupToBSON(n, st)
	case *tree.Leaf:
		if n == nil {
			return nil, errors.New("nil leaf")
		}
		if n.HasField() {
			return f.fieldToBSON(n)
		}
		return f.freeTextToBSON(n, st)
	}
	return nil, fmt.Errorf("unsupported node %T", node)
}

// groupToBSON maps connectives onto query operators. The negated connectives
// keep the first child as is and wrap the rest in $nor:
//
//	a AND NOT b AND NOT c  ->  {$and: [a, {$nor: [b, c]}]}
//	a OR NOT b OR NOT c    ->  {$or: [a, {$nor: [b]}, {$nor: [c]}]}
func (f *MongoFormatter) groupToBSON(g *tree.Group, st *state) (bson.M, error) {
	if len(g.Children) == 1 {
		return f.nodeToBSON(g.Children[0], st)
	}

	first, err := f.nodeToBSON(g.Children[0], st)
	if err != nil {
		return nil, err
	}

	switch g.Connective {
	case tree.And, tree.Or:
		conditions := []bson.M{first}
		for _, child := range g.Children[1:] {
			c, err := f.nodeToBSON(child, st)
			if err != nil {
				return nil, err
			}
			conditions = append(conditions, c)
		}
		if g.Connective == tree.Or {
			return bson.M{"$or": conditions}, nil
		}
		return f.buildAndResult(conditions), nil

	case tree.AndNot:
		excluded, err := f.negatedChildren(g.Children[1:], st)
		if err != nil {
			return nil, err
		}
		return bson.M{"$and": []bson.M{first, {"$nor": excluded}}}, nil

	case tree.OrNot:
		excluded, err := f.negatedChildren(g.Children[1:], st)
		if err != nil {
			return nil, err
		}
		conditions := []bson.M{first}
		for _, c := range excluded {
			conditions = append(conditions, bson.M{"$nor": []bson.M{c}})
		}
		return bson.M{"$or": conditions}, nil
	}
	return nil, fmt.Errorf("unknown connective %q", g.Connective)
}

func (f *MongoFormatter) negatedChildren(children []tree.Node, st *state) ([]bson.M, error) {
	outer := st.negated
	st.negated = !outer
	defer func() { st.negated = outer }()

	var conditions []bson.M
	for _, child := range children {
		c, err := f.nodeToBSON(child, st)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, c)
	}
	return conditions, nil
}

// buildAndResult merges plain field matches on distinct fields into one
// document and falls back to $and otherwise.
func (f *MongoFormatter) buildAndResult(conditions []bson.M) bson.M {
	merged := bson.M{}
	for _, c := range conditions {
		if !isSimpleFieldValue(c) {
			return bson.M{"$and": conditions}
		}
		for k := range c {
			if _, exists := merged[k]; exists {
				return bson.M{"$and": conditions}
			}
		}
		for k, v := range c {
			merged[k] = v
		}
	}
	return merged
}

// isSimpleFieldValue checks if a BSON condition is a single field match
// without any top-level operator.
func isSimpleFieldValue(condition bson.M) bool {
	if len(condition) != 1 {
		return false
	}
	for k := range condition {
		return !strings.HasPrefix(k, "$")
	}
	return false
}

func (f *MongoFormatter) fieldToBSON(leaf *tree.Leaf) (bson.M, error) {
	if leaf.Phrase {
		return bson.M{leaf.Field: leaf.Value}, nil
	}
	value, err := parseValue(leaf.Value)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", leaf.Field, err)
	}
	return bson.M{leaf.Field: value}, nil
}

func (f *MongoFormatter) freeTextToBSON(leaf *tree.Leaf, st *state) (bson.M, error) {
	if len(f.defaultFields) > 0 {
		return f.createDefaultFieldSearch(leaf), nil
	}

	// MongoDB allows one $text clause per query and none under $nor
	if st.negated {
		return nil, fmt.Errorf("%w: %q is negated", ErrTextSearch, leaf.Value)
	}
	if st.textUsed {
		return nil, fmt.Errorf("%w: %q is a second free-text term", ErrTextSearch, leaf.Value)
	}
	st.textUsed = true

	search := leaf.Value
	if leaf.Phrase {
		search = `"` + search + `"`
	}
	return bson.M{"$text": bson.M{"$search": search}}, nil
}

// createDefaultFieldSearch creates a BSON query that searches for the value in all default fields
func (f *MongoFormatter) createDefaultFieldSearch(leaf *tree.Leaf) bson.M {
	var regex bson.M
	if leaf.Phrase {
		regex = bson.M{"$regex": "^" + escapeRegex(leaf.Value) + "$", "$options": "i"}
	} else {
		regex = parseValueToRegex(leaf.Value)
	}

	if len(f.defaultFields) == 1 {
		return bson.M{f.defaultFields[0]: regex}
	}

	conditions := make([]bson.M, 0, len(f.defaultFields))
	for _, field := range f.defaultFields {
		conditions = append(conditions, bson.M{field: regex})
	}
	return bson.M{"$or": conditions}
}

// parseValueToRegex parses a value string and returns a regex BSON query
func parseValueToRegex(valueStr string) bson.M {
	if isRegex(valueStr) {
		return parseRegex(valueStr)
	}
	if strings.Contains(valueStr, "*") {
		return parseWildcard(valueStr)
	}
	return bson.M{"$regex": "^" + escapeRegex(valueStr) + "$", "$options": "i"}
}

// parseValue types a field value, handling comparisons, regexes, wildcards,
// dates, numbers and booleans
func parseValue(valueStr string) (interface{}, error) {
	parsers := []func(string) (interface{}, bool, error){
		tryParseComparison,
		tryParseRegex,
		tryParseWildcard,
		tryParseDate,
		tryParseNumber,
		tryParseBoolean,
	}

	for _, parser := range parsers {
		if result, handled, err := parser(valueStr); handled {
			return result, err
		}
	}

	return valueStr, nil
}

func tryParseComparison(valueStr string) (interface{}, bool, error) {
	if !strings.HasPrefix(valueStr, ">") && !strings.HasPrefix(valueStr, "<") {
		return nil, false, nil
	}
	result, err := parseComparison(valueStr)
	return result, true, err
}

func tryParseRegex(valueStr string) (interface{}, bool, error) {
	if !isRegex(valueStr) {
		return nil, false, nil
	}
	return parseRegex(valueStr), true, nil
}

func tryParseWildcard(valueStr string) (interface{}, bool, error) {
	if !strings.Contains(valueStr, "*") {
		return nil, false, nil
	}
	return parseWildcard(valueStr), true, nil
}

func tryParseDate(valueStr string) (interface{}, bool, error) {
	if date, err := parseDate(valueStr); err == nil {
		return date, true, nil
	}
	return nil, false, nil
}

func tryParseNumber(valueStr string) (interface{}, bool, error) {
	if num, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return num, true, nil
	}
	return nil, false, nil
}

func tryParseBoolean(valueStr string) (interface{}, bool, error) {
	if valueStr == "true" || valueStr == "false" {
		return valueStr == "true", true, nil
	}
	return nil, false, nil
}

var comparisonOperators = []struct {
	prefix   string
	operator string
}{
	{">=", "$gte"},
	{"<=", "$lte"},
	{">", "$gt"},
	{"<", "$lt"},
}

// parseComparison parses comparison operators like >value, <value, >=value, <=value
func parseComparison(valueStr string) (bson.M, error) {
	for _, op := range comparisonOperators {
		if !strings.HasPrefix(valueStr, op.prefix) {
			continue
		}
		value := strings.TrimSpace(valueStr[len(op.prefix):])
		if value == "" {
			return nil, fmt.Errorf("comparison %q has no operand", valueStr)
		}
		if isDateLike(value) {
			date, err := parseDate(value)
			if err != nil {
				return nil, err
			}
			return bson.M{op.operator: date}, nil
		}
		num, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number: %w", err)
		}
		return bson.M{op.operator: num}, nil
	}
	return nil, errors.New("invalid comparison operator")
}

// isDateLike checks if a string looks like a date
func isDateLike(s string) bool {
	return strings.ContainsAny(s, "-/:T")
}

func isRegex(valueStr string) bool {
	return len(valueStr) > 2 && strings.HasPrefix(valueStr, "/") && strings.HasSuffix(valueStr, "/")
}

// parseRegex strips the slashes and anchors the pattern for an exact match
func parseRegex(valueStr string) bson.M {
	pattern := valueStr[1 : len(valueStr)-1]
	if !strings.HasPrefix(pattern, "^") {
		pattern = "^" + pattern
	}
	if !strings.HasSuffix(pattern, "$") {
		pattern = pattern + "$"
	}
	return bson.M{"$regex": pattern}
}

// parseWildcard turns a wildcard pattern into an anchored regex:
// *J* contains, *J ends with, J* starts with, J*K both.
func parseWildcard(valueStr string) bson.M {
	parts := strings.Split(valueStr, "*")
	for i, p := range parts {
		parts[i] = escapeRegex(p)
	}
	pattern := strings.Join(parts, ".*")

	if !strings.HasPrefix(valueStr, "*") {
		pattern = "^" + pattern
	}
	if !strings.HasSuffix(valueStr, "*") {
		pattern = pattern + "$"
	}
	return bson.M{"$regex": pattern}
}

var dateFormats = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02T15:04:05",
	"01/02/2006",
	"2006/01/02",
}

// parseDate parses a date string in various formats
func parseDate(dateStr string) (time.Time, error) {
	for _, format := range dateFormats {
		if date, err := time.Parse(format, dateStr); err == nil {
			return date, nil
		}
	}
	return time.Time{}, errors.New("unable to parse date: " + dateStr)
}

var regexEscaper = strings.NewReplacer(
	`\`, `\\`, `^`, `\^`, `$`, `\$`, `.`, `\.`, `|`, `\|`, `?`, `\?`, `*`, `\*`,
	`+`, `\+`, `(`, `\(`, `)`, `\)`, `[`, `\[`, `]`, `\]`, `{`, `\{`, `}`, `\}`,
)

// escapeRegex escapes special regex characters in a string
func escapeRegex(s string) string {
	return regexEscaper.Replace(s)
}

// ExtJSONFormatter renders the MongoDB filter as relaxed extended JSON.
type ExtJSONFormatter struct {
	mongo *MongoFormatter
}

// NewExtJSON creates a string formatter around a MongoFormatter.
func NewExtJSON(defaultFields ...string) *ExtJSONFormatter {
	return &ExtJSONFormatter{mongo: New(defaultFields...)}
}

var _ formatter.Formatter[string] = (*ExtJSONFormatter)(nil)

// Format returns the filter document for node as extended JSON.
func (f *ExtJSONFormatter) Format(node tree.Node) (string, error) {
	doc, err := f.mongo.Format(node)
	if err != nil {
		return "", err
	}
	b, err := bson.MarshalExtJSON(ordered(doc), false, false)
	if err != nil {
		return "", fmt.Errorf("marshal filter: %w", err)
	}
	return string(b), nil
}

// ordered rewrites every document in v as a bson.D with sorted keys, so the
// marshalled text does not depend on map iteration order.
func ordered(v interface{}) interface{} {
	switch x := v.(type) {
	case bson.M:
		d := make(bson.D, 0, len(x))
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			d = append(d, bson.E{Key: k, Value: ordered(x[k])})
		}
		return d
	case []bson.M:
		a := make(bson.A, 0, len(x))
		for _, m := range x {
			a = append(a, ordered(m))
		}
		return a
	}
	return v
}
