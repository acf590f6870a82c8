package promptdown

import (
	"os"
	"strings"

	"go.uber.org/zap"
)

// parseState tracks the section scanner through the document.
type parseState int

const (
	stateSeekTitle parseState = iota
	stateSeekSystemMessage
	stateInSystemMessage
	stateInConversation
	stateSkipSection
)

// docLine is a document line with its 1-indexed source line number,
// kept for error metadata and skip diagnostics.
type docLine struct {
	num  int
	text string
}

// Parse parses promptdown document bytes into a StructuredPrompt.
// Parsing is all-or-nothing: a structural error (missing system message,
// unrecognized conversation format) returns a nil prompt.
func Parse(data []byte) (*StructuredPrompt, error) {
	return ParseString(string(data))
}

// ParseString parses promptdown text into a StructuredPrompt.
func ParseString(text string) (*StructuredPrompt, error) {
	return parseDocument(text, zap.NewNop())
}

// ParseFile reads a file and parses it as a promptdown document.
func ParseFile(path string) (*StructuredPrompt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewLoaderError(ErrMsgReadFileFailed, path, err)
	}
	return Parse(data)
}

// MustParse parses promptdown text and panics on error.
func MustParse(text string) *StructuredPrompt {
	p, err := ParseString(text)
	if err != nil {
		panic(err)
	}
	return p
}

// parseDocument runs the line-oriented section state machine:
// seek title -> seek system message -> in system message -> in conversation.
// Heading names are matched case-insensitively after trimming; only level-2
// headings delimit sections.
func parseDocument(text string, logger *zap.Logger) (*StructuredPrompt, error) {
	// Trim UTF-8 BOM
	text = strings.TrimPrefix(text, "\xef\xbb\xbf")

	var (
		state       = stateSeekTitle
		title       string
		heading     = MessageHeadingSystem
		haveMessage bool
		systemLines []string
		convLines   []docLine
		haveConv    bool
	)

	lines := strings.Split(text, "\n")
	for i, raw := range lines {
		line := strings.TrimSuffix(raw, "\r")
		trimmed := strings.TrimSpace(line)
		num := i + 1

		if strings.HasPrefix(trimmed, SectionPrefix) {
			name := strings.TrimSpace(trimmed[len(SectionPrefix):])
			switch {
			case strings.EqualFold(name, HeadingSystemMessage),
				strings.EqualFold(name, HeadingDeveloperMessage):
				if haveMessage {
					if strings.EqualFold(heading.Heading(), name) {
						return nil, NewStructuralError(ErrMsgDuplicateSection, name, num)
					}
					return nil, NewStructuralError(ErrMsgConflictingHeadings, name, num)
				}
				haveMessage = true
				if strings.EqualFold(name, HeadingDeveloperMessage) {
					heading = MessageHeadingDeveloper
				}
				state = stateInSystemMessage
			case strings.EqualFold(name, HeadingConversation):
				if haveConv {
					return nil, NewStructuralError(ErrMsgDuplicateSection, HeadingConversation, num)
				}
				haveConv = true
				state = stateInConversation
			default:
				// Unknown level-2 heading ends the current section.
				state = stateSkipSection
			}
			continue
		}

		if state == stateSeekTitle && strings.HasPrefix(trimmed, TitlePrefix) {
			title = strings.TrimSpace(trimmed[len(TitlePrefix):])
			state = stateSeekSystemMessage
			continue
		}

		switch state {
		case stateInSystemMessage:
			systemLines = append(systemLines, strings.TrimRight(line, " \t"))
		case stateInConversation:
			convLines = append(convLines, docLine{num: num, text: line})
		}
	}

	if !haveMessage {
		return nil, NewMissingSystemMessageError()
	}

	prompt := &StructuredPrompt{
		Title:          title,
		SystemMessage:  joinBodyLines(systemLines),
		MessageHeading: heading,
	}

	conversation, err := parseConversation(convLines, logger)
	if err != nil {
		return nil, err
	}
	prompt.Conversation = conversation

	return prompt, nil
}

// parseConversation detects the conversation sub-format from the first
// non-blank line and dispatches to the matching reader.
func parseConversation(lines []docLine, logger *zap.Logger) ([]Message, error) {
	for i, l := range lines {
		trimmed := strings.TrimSpace(l.text)
		if trimmed == "" {
			continue
		}
		switch {
		case strings.HasPrefix(trimmed, TablePipe):
			logger.Debug(LogMsgFormatDetected, zap.String(LogFieldFormat, "table"))
			return parseTableConversation(lines[i:], logger), nil
		case strings.HasPrefix(trimmed, BoldMarker):
			logger.Debug(LogMsgFormatDetected, zap.String(LogFieldFormat, "simplified"))
			return parseSimplifiedConversation(lines[i:]), nil
		default:
			return nil, NewUnknownConversationFormatError(l.num, trimmed)
		}
	}
	// Section absent or empty: conversation is empty.
	return nil, nil
}

// joinBodyLines joins section body lines, trimming leading and trailing blank
// lines but preserving internal blank lines and per-line indentation.
func joinBodyLines(lines []string) string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
