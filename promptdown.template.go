package promptdown

import (
	"sort"
	"strings"
)

// TemplateReport describes what a template application did. Unresolved
// placeholders are data, not errors: substitution is best-effort and the
// caller decides whether leftovers matter.
type TemplateReport struct {
	// Found lists the distinct placeholder names present in the prompt.
	Found []string `json:"found,omitempty"`
	// Replaced lists the distinct names that were substituted.
	Replaced []string `json:"replaced,omitempty"`
	// Unresolved lists names found in the text but absent from the values.
	Unresolved []string `json:"unresolved,omitempty"`
	// Unused lists supplied values whose name never occurred in the text.
	Unused []string `json:"unused,omitempty"`
}

// HasUnresolved reports whether any placeholder was left in the text.
func (r *TemplateReport) HasUnresolved() bool {
	return len(r.Unresolved) > 0
}

// ApplyTemplateValues replaces {name} and {{name}} placeholders in the
// system message and every conversation message's content, in place.
// Values are substituted verbatim with no recursion: a replacement value
// that itself contains placeholder syntax is never re-scanned, so applying
// the same mapping twice is idempotent unless a value reintroduces a token.
func (p *StructuredPrompt) ApplyTemplateValues(values map[string]string) *TemplateReport {
	return applyTemplateValues(p, values, SyntaxBoth)
}

// ReplacePlaceholders substitutes placeholders in a single string and
// reports what it found. Malformed (unbalanced) braces are left untouched.
func ReplacePlaceholders(s string, values map[string]string, syntax PlaceholderSyntax) (string, *TemplateReport) {
	state := newTemplateState(values)
	out := state.substitute(s, syntax)
	return out, state.report()
}

// applyTemplateValues runs substitution over all templated prompt fields.
func applyTemplateValues(p *StructuredPrompt, values map[string]string, syntax PlaceholderSyntax) *TemplateReport {
	state := newTemplateState(values)

	p.SystemMessage = state.substitute(p.SystemMessage, syntax)
	for i := range p.Conversation {
		p.Conversation[i].Content = state.substitute(p.Conversation[i].Content, syntax)
	}

	return state.report()
}

// templateState accumulates found/replaced names across fields.
type templateState struct {
	values   map[string]string
	found    map[string]bool
	replaced map[string]bool
}

func newTemplateState(values map[string]string) *templateState {
	return &templateState{
		values:   values,
		found:    make(map[string]bool),
		replaced: make(map[string]bool),
	}
}

// substitute scans s once, left to right. Double-brace tokens are checked
// before single-brace ones so {{x}} is never half-matched as {x} wrapped in
// stray braces. Replacement text is written straight through and never
// re-scanned.
func (t *templateState) substitute(s string, syntax PlaceholderSyntax) string {
	if !strings.Contains(s, SingleBraceOpen) {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))

	i := 0
	for i < len(s) {
		if s[i] != '{' {
			sb.WriteByte(s[i])
			i++
			continue
		}

		if syntax != SyntaxSingleBrace && strings.HasPrefix(s[i:], DoubleBraceOpen) {
			if end, name, ok := t.matchToken(s, i, DoubleBraceOpen, DoubleBraceClose); ok {
				t.emit(&sb, s[i:end], name)
				i = end
				continue
			}
		}
		if syntax != SyntaxDoubleBrace {
			if end, name, ok := t.matchToken(s, i, SingleBraceOpen, SingleBraceClose); ok {
				t.emit(&sb, s[i:end], name)
				i = end
				continue
			}
		}

		// Malformed braces are ordinary text.
		sb.WriteByte(s[i])
		i++
	}

	return sb.String()
}

// matchToken tries to read a placeholder token starting at i. It returns the
// index just past the token and the placeholder name. Non-identifier content
// between the braces is not a token.
func (t *templateState) matchToken(s string, i int, open, close string) (int, string, bool) {
	start := i + len(open)
	rel := strings.Index(s[start:], close)
	if rel < 0 {
		return 0, "", false
	}
	name := s[start : start+rel]
	if !isIdentifier(name) {
		return 0, "", false
	}
	return start + rel + len(close), name, true
}

// emit writes either the replacement value or the original token.
func (t *templateState) emit(sb *strings.Builder, token, name string) {
	t.found[name] = true
	if value, ok := t.values[name]; ok {
		t.replaced[name] = true
		sb.WriteString(value)
		return
	}
	// Unresolved: leave the placeholder verbatim for caller diagnostics.
	sb.WriteString(token)
}

// report assembles the sorted TemplateReport.
func (t *templateState) report() *TemplateReport {
	r := &TemplateReport{}
	for name := range t.found {
		r.Found = append(r.Found, name)
		if t.replaced[name] {
			r.Replaced = append(r.Replaced, name)
		} else {
			r.Unresolved = append(r.Unresolved, name)
		}
	}
	for name := range t.values {
		if !t.found[name] {
			r.Unused = append(r.Unused, name)
		}
	}
	sort.Strings(r.Found)
	sort.Strings(r.Replaced)
	sort.Strings(r.Unresolved)
	sort.Strings(r.Unused)
	return r
}

// isIdentifier reports whether s is a plain placeholder name:
// letters, digits, and underscores only.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}
