package promptdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplacePlaceholders_SingleBrace(t *testing.T) {
	out, report := ReplacePlaceholders("Hello {name}!", map[string]string{"name": "Alice"}, SyntaxBoth)
	assert.Equal(t, "Hello Alice!", out)
	assert.Equal(t, []string{"name"}, report.Replaced)
	assert.Empty(t, report.Unresolved)
}

func TestReplacePlaceholders_DoubleBrace(t *testing.T) {
	out, _ := ReplacePlaceholders("Hello {{name}}!", map[string]string{"name": "Alice"}, SyntaxBoth)
	assert.Equal(t, "Hello Alice!", out)
}

func TestReplacePlaceholders_DoubleCheckedBeforeSingle(t *testing.T) {
	// {{name}} must resolve as one double-brace token, not as {name} inside braces
	out, _ := ReplacePlaceholders("{{name}}", map[string]string{"name": "X"}, SyntaxBoth)
	assert.Equal(t, "X", out)
}

func TestReplacePlaceholders_SingleOnlySyntax(t *testing.T) {
	out, _ := ReplacePlaceholders("{a} {{b}}", map[string]string{"a": "1", "b": "2"}, SyntaxSingleBrace)
	// With single-brace syntax, {{b}} reads as "{" + "{b}" + "}"
	assert.Equal(t, "1 {2}", out)
}

func TestReplacePlaceholders_DoubleOnlySyntax(t *testing.T) {
	out, report := ReplacePlaceholders("{a} {{b}}", map[string]string{"a": "1", "b": "2"}, SyntaxDoubleBrace)
	assert.Equal(t, "{a} 2", out)
	assert.Equal(t, []string{"b"}, report.Replaced)
	// {a} is not a token under double-brace syntax, so it is not "found"
	assert.NotContains(t, report.Found, "a")
}

func TestReplacePlaceholders_UnresolvedLeftVerbatim(t *testing.T) {
	out, report := ReplacePlaceholders("Hello {name} and {other}!", map[string]string{"name": "Alice"}, SyntaxBoth)
	assert.Equal(t, "Hello Alice and {other}!", out)
	assert.Equal(t, []string{"other"}, report.Unresolved)
	assert.True(t, report.HasUnresolved())
}

func TestReplacePlaceholders_UnusedValuesReported(t *testing.T) {
	_, report := ReplacePlaceholders("no placeholders", map[string]string{"spare": "x"}, SyntaxBoth)
	assert.Equal(t, []string{"spare"}, report.Unused)
}

func TestReplacePlaceholders_NonIdentifierIgnored(t *testing.T) {
	tests := []string{
		"{not a name}",
		"{a-b}",
		"{}",
		"{a.b}",
		"json: {\"key\": 1}",
	}
	for _, input := range tests {
		out, report := ReplacePlaceholders(input, map[string]string{"a": "x"}, SyntaxBoth)
		assert.Equal(t, input, out, "non-identifier braces must pass through")
		assert.Empty(t, report.Found)
	}
}

func TestReplacePlaceholders_UnbalancedBraces(t *testing.T) {
	out, _ := ReplacePlaceholders("open {name and never close", map[string]string{"name": "x"}, SyntaxBoth)
	assert.Equal(t, "open {name and never close", out)
}

func TestReplacePlaceholders_ReplacementNotRescanned(t *testing.T) {
	// A value containing placeholder syntax is emitted verbatim
	out, _ := ReplacePlaceholders("{a}", map[string]string{"a": "{b}", "b": "BOOM"}, SyntaxBoth)
	assert.Equal(t, "{b}", out)
}

func TestReplacePlaceholders_Idempotent(t *testing.T) {
	values := map[string]string{"name": "Alice"}
	once, _ := ReplacePlaceholders("Hi {name}, {missing}", values, SyntaxBoth)
	twice, _ := ReplacePlaceholders(once, values, SyntaxBoth)
	assert.Equal(t, once, twice)
}

func TestReplacePlaceholders_EmptyValueAllowed(t *testing.T) {
	out, report := ReplacePlaceholders("a{gap}b", map[string]string{"gap": ""}, SyntaxBoth)
	assert.Equal(t, "ab", out)
	assert.Equal(t, []string{"gap"}, report.Replaced)
}

func TestApplyTemplateValues_AllFields(t *testing.T) {
	prompt := MustParse("## System Message\n\nAgent for {company}.\n\n## Conversation\n\n**User:**\nI bought a {product}\n")

	report := prompt.ApplyTemplateValues(map[string]string{
		"company": "Acme",
		"product": "anvil",
	})

	assert.Equal(t, "Agent for Acme.", prompt.SystemMessage)
	assert.Equal(t, "I bought a anvil", prompt.Conversation[0].Content)
	assert.ElementsMatch(t, []string{"company", "product"}, report.Replaced)
}

func TestApplyTemplateValues_ReportAggregatesAcrossFields(t *testing.T) {
	prompt := MustParse("## System Message\n\n{a} {b}\n\n## Conversation\n\n**User:**\n{a} {c}\n")

	report := prompt.ApplyTemplateValues(map[string]string{"a": "1", "unused": "x"})

	assert.Equal(t, []string{"a", "b", "c"}, report.Found)
	assert.Equal(t, []string{"a"}, report.Replaced)
	assert.Equal(t, []string{"b", "c"}, report.Unresolved)
	assert.Equal(t, []string{"unused"}, report.Unused)
}

func TestApplyTemplateValues_NilValues(t *testing.T) {
	prompt := MustParse("## System Message\n\nHello {name}\n")
	report := prompt.ApplyTemplateValues(nil)
	require.NotNil(t, report)
	assert.Equal(t, "Hello {name}", prompt.SystemMessage)
	assert.Equal(t, []string{"name"}, report.Unresolved)
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, isIdentifier("name"))
	assert.True(t, isIdentifier("user_id2"))
	assert.True(t, isIdentifier("X"))
	assert.False(t, isIdentifier(""))
	assert.False(t, isIdentifier("a b"))
	assert.False(t, isIdentifier("a-b"))
	assert.False(t, isIdentifier("a.b"))
}
