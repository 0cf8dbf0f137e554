package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefinition(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "only_whitespace", input: " \n\t ", expected: ""},
		{name: "lowercases", input: "CREATE INDEX Foo ON Bar (Id)", expected: "create index foo on bar (id)"},
		{name: "collapses_whitespace", input: "select  1\n\n\tfrom   t", expected: "select 1 from t"},
		{name: "vertical_tab", input: "select\v1", expected: "select 1"},
		{name: "non_breaking_space", input: "select\u00a01", expected: "select 1"},
		{name: "unicode_spaces_trimmed", input: "\u2003select 1\u3000", expected: "select 1"},
		{name: "block_comment", input: "select /* hint */ 1", expected: "select 1"},
		{name: "multiline_block_comment", input: "select /*\n * a\n * b\n */ 1", expected: "select 1"},
		{name: "non_greedy_block_comment", input: "a /* x */ b /* y */ c", expected: "a b c"},
		{name: "line_comment", input: "select 1 -- trailing\nfrom t", expected: "select 1 from t"},
		{name: "line_comment_at_end", input: "select 1 -- trailing", expected: "select 1"},
		{name: "nested_after_removal", input: "a //**/* x */ b", expected: "a b"},
		{name: "unterminated_block_comment", input: "select /* open", expected: "select /* open"},
		{
			name:     "function_body",
			input:    "CREATE OR REPLACE FUNCTION public.f()\n RETURNS integer\n LANGUAGE sql\nAS $function$\n  SELECT 1; -- one\n$function$\n",
			expected: "create or replace function public.f() returns integer language sql as $function$ select 1; $function$",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeDefinition(tt.input))
		})
	}
}

func TestNormalizeDefinitionIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"SELECT 1",
		"a //**/* x */ b",
		"/*/**/*/ tail",
		"-/**/- gone\nkept",
		"x /* unterminated",
		"A\v\vB  C",
		"CREATE TRIGGER t BEFORE INSERT ON x -- c\n FOR EACH ROW EXECUTE FUNCTION f()",
	}

	for _, in := range inputs {
		once := NormalizeDefinition(in)
		assert.Equal(t, once, NormalizeDefinition(once), "input %q", in)
	}
}

func TestNormalizeDefinitionCommentInvariant(t *testing.T) {
	base := "CREATE UNIQUE INDEX orders_pkey ON public.orders USING btree (id)"
	tokens := strings.Fields(base)

	decorated := strings.Join(tokens, "\n\n /* generated */ \n")
	assert.Equal(t, NormalizeDefinition(base), NormalizeDefinition(decorated))

	withLineComments := strings.Join(tokens, " -- note\n   ")
	assert.Equal(t, NormalizeDefinition(base), NormalizeDefinition(withLineComments))
}

func TestNormalizeObject(t *testing.T) {
	obj := Object{"name": "Orders_Idx", "definition": "CREATE INDEX  x -- c"}
	normalizeObject(obj, []string{"definition", "missing"})

	assert.Equal(t, "Orders_Idx", obj["name"], "identifier fields keep their case")
	assert.Equal(t, "create index x", obj["definition"])
	_, added := obj["missing"]
	assert.False(t, added)
}
