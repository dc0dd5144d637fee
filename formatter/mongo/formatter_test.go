package mongo_test

import (
	"testing"
	"time"

	"github.com/kyle-williams-1/boolq/formatter/mongo"
	. "github.com/kyle-williams-1/boolq/tests/shared/helpers"
	"github.com/kyle-williams-1/boolq/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestFormatFieldValues(t *testing.T) {
	formatter := mongo.New()

	tests := []struct {
		name     string
		leaf     *tree.Leaf
		expected bson.M
	}{
		{"string", F("name", "john"), bson.M{"name": "john"}},
		{"number", F("age", "42"), bson.M{"age": 42.0}},
		{"boolean", F("active", "true"), bson.M{"active": true}},
		{"date", F("created", "2024-01-15"), bson.M{"created": time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)}},
		{"greater than", F("age", ">18"), bson.M{"age": bson.M{"$gt": 18.0}}},
		{"less or equal", F("age", "<=65"), bson.M{"age": bson.M{"$lte": 65.0}}},
		{"date comparison", F("created", ">=2024-01-01"), bson.M{"created": bson.M{"$gte": time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}}},
		{"starts with", F("name", "jo*"), bson.M{"name": bson.M{"$regex": "^jo.*"}}},
		{"ends with", F("name", "*hn"), bson.M{"name": bson.M{"$regex": ".*hn$"}}},
		{"contains", F("name", "*oh*"), bson.M{"name": bson.M{"$regex": ".*oh.*"}}},
		{"infix wildcard escapes dots", F("host", "a.*.com"), bson.M{"host": bson.M{"$regex": `^a\..*\.com$`}}},
		{"regex", F("code", "/[A-Z]+/"), bson.M{"code": bson.M{"$regex": "^[A-Z]+$"}}},
		{"time of day stays a string", F("time", "10:30"), bson.M{"time": "10:30"}},
		{"phrase is literal", &tree.Leaf{Field: "age", Value: "42", Phrase: true}, bson.M{"age": "42"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc, err := formatter.Format(test.leaf)
			require.NoError(t, err)
			assert.Equal(t, test.expected, doc)
		})
	}
}

func TestFormatConnectives(t *testing.T) {
	formatter := mongo.New()

	tests := []struct {
		name     string
		node     tree.Node
		expected bson.M
	}{
		{
			name:     "single child unwraps",
			node:     G(tree.And, F("a", "1")),
			expected: bson.M{"a": 1.0},
		},
		{
			name:     "AND merges distinct fields",
			node:     G(tree.And, F("a", "x"), F("b", "y")),
			expected: bson.M{"a": "x", "b": "y"},
		},
		{
			name: "AND keeps repeated fields apart",
			node: G(tree.And, F("a", ">1"), F("a", "<5")),
			expected: bson.M{"$and": []bson.M{
				{"a": bson.M{"$gt": 1.0}},
				{"a": bson.M{"$lt": 5.0}},
			}},
		},
		{
			name:     "OR",
			node:     G(tree.Or, F("a", "x"), F("b", "y")),
			expected: bson.M{"$or": []bson.M{{"a": "x"}, {"b": "y"}}},
		},
		{
			name: "AND NOT",
			node: G(tree.AndNot, F("a", "x"), F("b", "y"), F("c", "z")),
			expected: bson.M{"$and": []bson.M{
				{"a": "x"},
				{"$nor": []bson.M{{"b": "y"}, {"c": "z"}}},
			}},
		},
		{
			name: "OR NOT",
			node: G(tree.OrNot, F("a", "x"), F("b", "y"), F("c", "z")),
			expected: bson.M{"$or": []bson.M{
				{"a": "x"},
				{"$nor": []bson.M{{"b": "y"}}},
				{"$nor": []bson.M{{"c": "z"}}},
			}},
		},
		{
			name: "nested group",
			node: G(tree.And, G(tree.Or, F("a", "x"), F("b", "y")), F("c", "z")),
			expected: bson.M{"$and": []bson.M{
				{"$or": []bson.M{{"a": "x"}, {"b": "y"}}},
				{"c": "z"},
			}},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc, err := formatter.Format(test.node)
			require.NoError(t, err)
			assert.Equal(t, test.expected, doc)
		})
	}
}

func TestFormatFreeText(t *testing.T) {
	t.Run("text search", func(t *testing.T) {
		doc, err := mongo.New().Format(G(tree.Or, L("a"), F("title", "b")))
		require.NoError(t, err)
		assert.Equal(t, bson.M{"$or": []bson.M{
			{"$text": bson.M{"$search": "a"}},
			{"title": "b"},
		}}, doc)
	})

	t.Run("text search phrase", func(t *testing.T) {
		doc, err := mongo.New().Format(P("big data"))
		require.NoError(t, err)
		assert.Equal(t, bson.M{"$text": bson.M{"$search": `"big data"`}}, doc)
	})

	t.Run("single default field", func(t *testing.T) {
		doc, err := mongo.New("name").Format(L("john"))
		require.NoError(t, err)
		assert.Equal(t, bson.M{"name": bson.M{"$regex": "^john$", "$options": "i"}}, doc)
	})

	t.Run("default fields", func(t *testing.T) {
		doc, err := mongo.New("name", "bio").Format(L("jo*"))
		require.NoError(t, err)
		assert.Equal(t, bson.M{"$or": []bson.M{
			{"name": bson.M{"$regex": "^jo.*"}},
			{"bio": bson.M{"$regex": "^jo.*"}},
		}}, doc)
	})

	t.Run("default field phrase is escaped", func(t *testing.T) {
		doc, err := mongo.New("name").Format(P("a.b c"))
		require.NoError(t, err)
		assert.Equal(t, bson.M{"name": bson.M{"$regex": `^a\.b c$`, "$options": "i"}}, doc)
	})

	t.Run("negated default field search", func(t *testing.T) {
		doc, err := mongo.New("name").Format(G(tree.AndNot, F("a", "x"), L("john")))
		require.NoError(t, err)
		assert.Equal(t, bson.M{"$and": []bson.M{
			{"a": "x"},
			{"$nor": []bson.M{{"name": bson.M{"$regex": "^john$", "$options": "i"}}}},
		}}, doc)
	})
}

func TestFormatErrors(t *testing.T) {
	tests := []struct {
		name string
		node tree.Node
	}{
		{"nil node", nil},
		{"empty group", &tree.Group{Connective: tree.And}},
		{"bad comparison", F("age", ">abc")},
		{"empty comparison", F("age", ">=")},
		{"bad date comparison", F("created", ">2024-13-45")},
		{"second text search", G(tree.And, L("a"), L("b"))},
		{"negated text search", G(tree.AndNot, F("a", "x"), L("b"))},
		{"unknown connective", &tree.Group{Connective: "XOR", Children: []tree.Node{L("a"), L("b")}}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := mongo.New().Format(test.node)
			assert.Error(t, err)
		})
	}
}

func TestTextSearchErrorsAreTyped(t *testing.T) {
	_, err := mongo.New().Format(G(tree.Or, L("a"), L("b")))
	assert.ErrorIs(t, err, mongo.ErrTextSearch)
}

func TestExtJSONFormatter(t *testing.T) {
	out, err := mongo.NewExtJSON().Format(G(tree.Or, F("a", "x"), F("b", "2")))
	require.NoError(t, err)
	assert.JSONEq(t, `{"$or":[{"a":"x"},{"b":2.0}]}`, out)
}

func TestExtJSONFormatterIsDeterministic(t *testing.T) {
	formatter := mongo.NewExtJSON("name", "bio")
	node := G(tree.And,
		F("c", "z"), F("a", "x"), F("b", "y"),
		G(tree.Or, L("john"), F("d", "1")),
	)

	first, err := formatter.Format(G(tree.And, F("c", "z"), F("a", "x"), F("b", "y")))
	require.NoError(t, err)
	assert.Equal(t, `{"a":"x","b":"y","c":"z"}`, first)

	expected, err := formatter.Format(node)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		out, err := formatter.Format(node)
		require.NoError(t, err)
		require.Equal(t, expected, out)
	}
	assert.Contains(t, expected, `{"name":{"$options":"i","$regex":"^john$"}}`)
}
