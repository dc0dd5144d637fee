package registry_test

import (
	"testing"

	"github.com/kyle-williams-1/boolq/config"
	"github.com/kyle-williams-1/boolq/formatter"
	"github.com/kyle-williams-1/boolq/formatter/text"
	"github.com/kyle-williams-1/boolq/registry"
	"github.com/kyle-williams-1/boolq/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreRegistered(t *testing.T) {
	r := registry.New()

	assert.Equal(t, []config.LanguageType{config.LanguageBoolean}, r.Languages.ListLanguages())
	assert.Equal(t,
		[]config.FormatterType{config.FormatterMongo, config.FormatterRuleset, config.FormatterText},
		r.Formatters.ListFormatters(),
	)
}

func TestGetFormatter(t *testing.T) {
	r := registry.New()
	group := tree.NewGroup(tree.Or, tree.NewLeaf("a"), tree.NewFieldLeaf("title", "b"))

	tests := []struct {
		formatterType config.FormatterType
		expected      string
	}{
		{config.FormatterText, "(a OR title:b)"},
		{config.FormatterRuleset, `{"condition":"OR","rules":[{"value":"a"},{"entity":"columnsearch","field":"title","value":"b"}]}`},
		{config.FormatterMongo, `{"$or":[{"$text":{"$search":"a"}},{"title":"b"}]}`},
	}

	for _, test := range tests {
		t.Run(string(test.formatterType), func(t *testing.T) {
			f, err := r.Formatters.GetFormatter(config.Default().WithFormatter(test.formatterType))
			require.NoError(t, err)
			out, err := f.Format(group)
			require.NoError(t, err)
			if test.formatterType == config.FormatterText {
				assert.Equal(t, test.expected, out)
			} else {
				assert.JSONEq(t, test.expected, out)
			}
		})
	}
}

func TestGetLanguage(t *testing.T) {
	r := registry.New()

	parser, err := r.Languages.GetLanguage(config.Default())
	require.NoError(t, err)
	group, err := parser.Parse("a b")
	require.NoError(t, err)
	assert.Len(t, group.Children, 2)

	_, err = r.Languages.GetLanguage(config.Default().WithLanguage("sql"))
	assert.ErrorContains(t, err, "unsupported language type")
}

func TestRegisterFormatter(t *testing.T) {
	r := registry.New()
	const upper config.FormatterType = "upper"

	r.Formatters.RegisterFormatter(upper, func(*config.Config) formatter.Formatter[string] {
		return text.New()
	})

	assert.Contains(t, r.Formatters.ListFormatters(), upper)
	assert.NoError(t, r.ValidateConfig(config.Default().WithFormatter(upper)))
}

func TestValidateConfig(t *testing.T) {
	r := registry.New()

	tests := []struct {
		name    string
		cfg     *config.Config
		wantErr string
	}{
		{"default", config.Default(), ""},
		{"mongo", config.Default().WithFormatter(config.FormatterMongo), ""},
		{"nil", nil, "nil config"},
		{"unknown language", config.Default().WithLanguage("sql"), "invalid language"},
		{"unknown formatter", config.Default().WithFormatter("xml"), "invalid formatter"},
		{"bad depth", config.Default().WithMaxDepth(0), "invalid config"},
		{"negated default connective", config.Default().WithDefaultConnective(tree.AndNot), "invalid config"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := r.ValidateConfig(test.cfg)
			if test.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, test.wantErr)
		})
	}
}
