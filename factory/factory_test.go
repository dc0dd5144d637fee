package factory_test

import (
	"testing"

	"github.com/kyle-williams-1/boolq/config"
	"github.com/kyle-williams-1/boolq/factory"
	"github.com/kyle-williams-1/boolq/formatter/mongo"
	"github.com/kyle-williams-1/boolq/formatter/ruleset"
	"github.com/kyle-williams-1/boolq/formatter/text"
	"github.com/kyle-williams-1/boolq/language/boolean"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCreateParser(t *testing.T) {
	parser, err := factory.CreateParser(config.Default())
	require.NoError(t, err)
	assert.IsType(t, &boolean.Parser{}, parser)

	_, err = factory.CreateParser(config.Default().WithLanguage("sql"))
	assert.ErrorContains(t, err, "unsupported language type: sql")
}

func TestCreateFormatter(t *testing.T) {
	tests := []struct {
		formatterType config.FormatterType
		expected      interface{}
	}{
		{config.FormatterText, &text.Formatter{}},
		{config.FormatterRuleset, &ruleset.Formatter{}},
		{config.FormatterMongo, &mongo.ExtJSONFormatter{}},
	}

	for _, test := range tests {
		t.Run(string(test.formatterType), func(t *testing.T) {
			f, err := factory.CreateFormatter(config.Default().WithFormatter(test.formatterType))
			require.NoError(t, err)
			assert.IsType(t, test.expected, f)
		})
	}

	_, err := factory.CreateFormatter(config.Default().WithFormatter("xml"))
	assert.ErrorContains(t, err, "unsupported formatter type: xml")
}

func TestParserAndFormatterAgree(t *testing.T) {
	cfg := config.Default().WithFormatter(config.FormatterText)

	parser, err := factory.CreateParser(cfg)
	require.NoError(t, err)
	f, err := factory.CreateFormatter(cfg)
	require.NoError(t, err)

	group, err := parser.Parse("a OR b AND c")
	require.NoError(t, err)
	out, err := f.Format(group)
	require.NoError(t, err)
	assert.Equal(t, "(a OR (b AND c))", out)
}

func TestCreateBSONFormatterUsesDefaultFields(t *testing.T) {
	cfg := config.Default().WithDefaultFields([]string{"name"})

	parser, err := factory.CreateParser(cfg)
	require.NoError(t, err)
	group, err := parser.Parse("john")
	require.NoError(t, err)

	doc, err := factory.CreateBSONFormatter(cfg).Format(group)
	require.NoError(t, err)
	assert.Equal(t, bson.M{"name": bson.M{"$regex": "^john$", "$options": "i"}}, doc)
}
