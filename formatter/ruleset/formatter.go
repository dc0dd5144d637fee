// Package ruleset converts query trees to and from the JSON ruleset shape used
// by query-builder widgets:
//
//	{"condition":"OR","rules":[{"value":"a"},{"entity":"columnsearch","field":"title","value":"b"}]}
package ruleset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kyle-williams-1/boolq/formatter"
	"github.com/kyle-williams-1/boolq/tree"
	"github.com/valyala/fastjson"
)

// EntityColumnSearch marks a rule that matches a specific field.
const EntityColumnSearch = "columnsearch"

// Formatter encodes trees as JSON rulesets.
type Formatter struct{}

// New creates a new ruleset formatter instance.
func New() *Formatter {
	return &Formatter{}
}

// Ensure Formatter implements the generic interface
var _ formatter.Formatter[string] = (*Formatter)(nil)

var parserPool fastjson.ParserPool

// Format returns the JSON ruleset for node. A bare leaf is wrapped in a
// one-child AND ruleset since the root of a ruleset is always a group.
func (f *Formatter) Format(node tree.Node) (string, error) {
	b, err := Marshal(node)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Marshal returns the JSON ruleset for node.
func Marshal(node tree.Node) ([]byte, error) {
	if leaf, ok := node.(*tree.Leaf); ok {
		node = tree.Term(leaf)
	}

	var a fastjson.Arena
	v, err := encode(&a, node)
	if err != nil {
		return nil, err
	}
	return v.MarshalTo(nil), nil
}

func encode(a *fastjson.Arena, node tree.Node) (*fastjson.Value, error) {
	switch n := node.(type) {
	case *tree.Group:
		if n == nil {
			return nil, errors.New("nil group")
		}
		rules := a.NewArray()
		for i, child := range n.Children {
			v, err := encode(a, child)
			if err != nil {
				return nil, err
			}
			rules.SetArrayItem(i, v)
		}
		obj := a.NewObject()
		obj.Set("condition", a.NewString(n.Connective.Keyword()))
		obj.Set("rules", rules)
		return obj, nil
	case *tree.Leaf:
		if n == nil {
			return nil, errors.New("nil leaf")
		}
		obj := a.NewObject()
		if n.HasField() {
			obj.Set("entity", a.NewString(EntityColumnSearch))
			obj.Set("field", a.NewString(n.Field))
		}
		obj.Set("value", a.NewString(n.Value))
		if n.Phrase {
			obj.Set("phrase", a.NewTrue())
		}
		return obj, nil
	}
	return nil, fmt.Errorf("unsupported node %T", node)
}

// Unmarshal decodes a JSON ruleset into a tree. Conditions are matched case
// insensitively and may use underscores, so "and_not" reads as AND NOT.
func Unmarshal(data []byte) (*tree.Group, error) {
	p := parserPool.Get()
	defer parserPool.Put(p)

	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("invalid ruleset JSON: %w", err)
	}
	if v.Type() != fastjson.TypeObject || !v.Exists("condition") {
		return nil, errors.New("ruleset root must be an object with a condition")
	}

	node, err := decode(v, "$")
	if err != nil {
		return nil, err
	}
	return node.(*tree.Group), nil
}

func decode(v *fastjson.Value, path string) (tree.Node, error) {
	if v.Type() != fastjson.TypeObject {
		return nil, fmt.Errorf("%s: expected object, got %s", path, v.Type())
	}
	if v.Exists("condition") || v.Exists("rules") {
		return decodeGroup(v, path)
	}
	return decodeLeaf(v, path)
}

func decodeGroup(v *fastjson.Value, path string) (*tree.Group, error) {
	condition := strings.ToUpper(strings.ReplaceAll(string(v.GetStringBytes("condition")), "_", " "))
	connective, err := tree.ParseConnective(condition)
	if err != nil {
		return nil, fmt.Errorf("%s.condition: %w", path, err)
	}

	rulesValue := v.Get("rules")
	if rulesValue == nil {
		return nil, fmt.Errorf("%s.rules: missing", path)
	}
	rules, err := rulesValue.Array()
	if err != nil {
		return nil, fmt.Errorf("%s.rules: %w", path, err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("%s.rules: group has no rules", path)
	}

	group := &tree.Group{Connective: connective, Children: make([]tree.Node, 0, len(rules))}
	for i, rule := range rules {
		child, err := decode(rule, fmt.Sprintf("%s.rules[%d]", path, i))
		if err != nil {
			return nil, err
		}
		group.Children = append(group.Children, child)
	}
	return group, nil
}

func decodeLeaf(v *fastjson.Value, path string) (*tree.Leaf, error) {
	leaf := &tree.Leaf{
		Value:  string(v.GetStringBytes("value")),
		Phrase: v.GetBool("phrase"),
	}
	if strings.TrimSpace(leaf.Value) == "" {
		return nil, fmt.Errorf("%s.value: empty value", path)
	}

	field := string(v.GetStringBytes("field"))
	entity := string(v.GetStringBytes("entity"))
	switch {
	case entity == EntityColumnSearch && field == "":
		return nil, fmt.Errorf("%s.field: column search without a field", path)
	case entity == EntityColumnSearch, entity == "" && field != "":
		leaf.Field = field
	}
	return leaf, nil
}
