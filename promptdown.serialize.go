package promptdown

import (
	"strings"
)

// SerializeOptions configures prompt serialization.
type SerializeOptions struct {
	// Format selects the conversation rendering. FormatAuto picks the table
	// unless any message content contains a newline.
	Format SerializationFormat
}

// DefaultSerializeOptions returns the default serialization options.
func DefaultSerializeOptions() *SerializeOptions {
	return &SerializeOptions{
		Format: FormatAuto,
	}
}

// Serialize renders the prompt as canonical promptdown text. Output is
// deterministic: the same prompt always produces the same bytes, so
// serialized files diff cleanly. If opts is nil, DefaultSerializeOptions is
// used.
//
// The title heading is emitted only when the title is set, and the
// Conversation section only when the conversation is non-empty. FormatTable
// fails if any message content contains a newline; the table form cannot
// represent it. FormatSimplified fails if any content line would itself parse
// as a role marker (a literal "**User:**" line, say); rendered verbatim it
// would re-split into a separate entry on reparse. Such content fits in a
// table as long as it stays on one line.
func (p *StructuredPrompt) Serialize(opts *SerializeOptions) ([]byte, error) {
	if p == nil {
		return nil, NewSerializeError(ErrMsgSerializeNilPrompt)
	}

	if opts == nil {
		opts = DefaultSerializeOptions()
	}

	format := opts.Format
	if format == FormatAuto {
		if p.HasMultilineContent() {
			format = FormatSimplified
		} else {
			format = FormatTable
		}
	}
	if format == FormatTable && p.HasMultilineContent() {
		return nil, NewSerializeError(ErrMsgTableHasNewlines)
	}
	if format == FormatSimplified && contentHasRoleMarker(p) {
		return nil, NewSerializeError(ErrMsgContentHasMarker)
	}

	var lines []string

	if p.Title != "" {
		lines = append(lines, TitlePrefix+p.Title, "")
	}

	lines = append(lines, SectionPrefix+p.MessageHeading.Heading())
	if p.SystemMessage != "" {
		lines = append(lines, strings.Split(p.SystemMessage, "\n")...)
	}

	if len(p.Conversation) > 0 {
		lines = append(lines, "", SectionPrefix+HeadingConversation, "")
		if format == FormatTable {
			lines = append(lines, tableLines(p)...)
		} else {
			lines = append(lines, simplifiedLines(p)...)
		}
	}

	return []byte(strings.Join(lines, "\n") + "\n"), nil
}

// String renders the prompt as canonical promptdown text with default
// options. A nil prompt renders as the empty string.
func (p *StructuredPrompt) String() string {
	data, err := p.Serialize(nil)
	if err != nil {
		return ""
	}
	return string(data)
}

// tableLines renders the conversation as a pipe table. A Name column is
// included only when at least one message carries a name. Literal pipes in
// cells are escaped.
func tableLines(p *StructuredPrompt) []string {
	withNames := p.hasNames()

	headers := []string{"Role"}
	if withNames {
		headers = append(headers, "Name")
	}
	headers = append(headers, "Content")

	dividers := make([]string, len(headers))
	for i := range dividers {
		dividers[i] = TableDividerCell
	}

	lines := []string{tableRow(headers), tableRow(dividers)}
	for _, m := range p.Conversation {
		cells := []string{escapePipes(m.Role)}
		if withNames {
			cells = append(cells, escapePipes(m.Name))
		}
		cells = append(cells, escapePipes(m.Content))
		lines = append(lines, tableRow(cells))
	}
	return lines
}

// tableRow renders cells as "| a | b |".
func tableRow(cells []string) string {
	return TablePipe + " " + strings.Join(cells, " "+TablePipe+" ") + " " + TablePipe
}

// contentHasRoleMarker reports whether any conversation content line would
// itself parse as a role marker in the simplified format.
func contentHasRoleMarker(p *StructuredPrompt) bool {
	for _, m := range p.Conversation {
		for _, line := range strings.Split(m.Content, "\n") {
			if _, ok := parseRoleMarker(strings.TrimSpace(line)); ok {
				return true
			}
		}
	}
	return false
}

// simplifiedLines renders the conversation as bold-role blocks, one blank
// line between entries.
func simplifiedLines(p *StructuredPrompt) []string {
	var lines []string
	for i, m := range p.Conversation {
		marker := BoldMarker + m.Role
		if m.Name != "" {
			marker += " (" + m.Name + ")"
		}
		marker += RoleMarkerClose
		lines = append(lines, marker)
		if m.Content != "" {
			lines = append(lines, strings.Split(m.Content, "\n")...)
		}
		if i < len(p.Conversation)-1 {
			lines = append(lines, "")
		}
	}
	return lines
}
