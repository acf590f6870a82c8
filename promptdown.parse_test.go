package promptdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocTable = `# Customer Support

## System Message

You are a support agent for {company}.

## Conversation

| Role      | Content              |
| --------- | -------------------- |
| User      | My order is late     |
| Assistant | Let me check on that |
`

const testDocSimplified = `# Customer Support

## System Message

You are a support agent.

## Conversation

**User:**
My order is late.
It was due yesterday.

**Assistant:**
Let me check on that.
`

func TestParse_TableDocument(t *testing.T) {
	prompt, err := ParseString(testDocTable)
	require.NoError(t, err)

	assert.Equal(t, "Customer Support", prompt.Title)
	assert.Equal(t, "You are a support agent for {company}.", prompt.SystemMessage)
	assert.Equal(t, MessageHeadingSystem, prompt.MessageHeading)

	require.Len(t, prompt.Conversation, 2)
	assert.Equal(t, Message{Role: "User", Content: "My order is late"}, prompt.Conversation[0])
	assert.Equal(t, Message{Role: "Assistant", Content: "Let me check on that"}, prompt.Conversation[1])
}

func TestParse_SimplifiedDocument(t *testing.T) {
	prompt, err := ParseString(testDocSimplified)
	require.NoError(t, err)

	require.Len(t, prompt.Conversation, 2)
	assert.Equal(t, "User", prompt.Conversation[0].Role)
	assert.Equal(t, "My order is late.\nIt was due yesterday.", prompt.Conversation[0].Content)
	assert.Equal(t, "Let me check on that.", prompt.Conversation[1].Content)
}

func TestParse_NoTitle(t *testing.T) {
	prompt, err := ParseString("## System Message\n\nInstructions.\n")
	require.NoError(t, err)
	assert.Empty(t, prompt.Title)
	assert.Equal(t, "Instructions.", prompt.SystemMessage)
}

func TestParse_NoConversation(t *testing.T) {
	prompt, err := ParseString("# Doc\n\n## System Message\n\nInstructions.\n")
	require.NoError(t, err)
	assert.Empty(t, prompt.Conversation)
}

func TestParse_EmptyConversationSection(t *testing.T) {
	prompt, err := ParseString("## System Message\n\nHi.\n\n## Conversation\n\n\n")
	require.NoError(t, err)
	assert.Empty(t, prompt.Conversation)
}

func TestParse_MissingSystemMessage(t *testing.T) {
	_, err := ParseString("# Title Only\n\nSome stray text.\n")
	require.Error(t, err)
	assert.True(t, IsStructuralError(err))
	assert.Contains(t, err.Error(), ErrMsgMissingSystemMsg)
}

func TestParse_DeveloperMessageAlias(t *testing.T) {
	prompt, err := ParseString("## Developer Message\n\nDev instructions.\n")
	require.NoError(t, err)
	assert.Equal(t, MessageHeadingDeveloper, prompt.MessageHeading)
	assert.Equal(t, "Dev instructions.", prompt.SystemMessage)
}

func TestParse_CaseInsensitiveHeadings(t *testing.T) {
	prompt, err := ParseString("# t\n\n## system message\n\nHello.\n\n## CONVERSATION\n\n**User:**\nHi\n")
	require.NoError(t, err)
	assert.Equal(t, "Hello.", prompt.SystemMessage)
	require.Len(t, prompt.Conversation, 1)
}

func TestParse_DuplicateSystemSection(t *testing.T) {
	_, err := ParseString("## System Message\n\nA.\n\n## System Message\n\nB.\n")
	require.Error(t, err)
	assert.True(t, IsStructuralError(err))
	assert.Contains(t, err.Error(), ErrMsgDuplicateSection)
}

func TestParse_ConflictingMessageHeadings(t *testing.T) {
	_, err := ParseString("## System Message\n\nA.\n\n## Developer Message\n\nB.\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgConflictingHeadings)
}

func TestParse_DuplicateConversationSection(t *testing.T) {
	_, err := ParseString("## System Message\n\nA.\n\n## Conversation\n\n**User:**\nHi\n\n## Conversation\n\n**User:**\nAgain\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgDuplicateSection)
}

func TestParse_UnknownSectionSkipped(t *testing.T) {
	doc := `# Doc

## System Message

Real instructions.

## Notes

These notes are not part of the prompt.

## Conversation

**User:**
Hi
`
	prompt, err := ParseString(doc)
	require.NoError(t, err)
	assert.Equal(t, "Real instructions.", prompt.SystemMessage)
	assert.NotContains(t, prompt.SystemMessage, "notes")
	require.Len(t, prompt.Conversation, 1)
}

func TestParse_UnknownConversationFormat(t *testing.T) {
	_, err := ParseString("## System Message\n\nHi.\n\n## Conversation\n\nplain prose, no table or markers\n")
	require.Error(t, err)
	assert.True(t, IsStructuralError(err))
	assert.Contains(t, err.Error(), ErrMsgUnknownConvFormat)
}

func TestParse_CRLFLineEndings(t *testing.T) {
	doc := "# Doc\r\n\r\n## System Message\r\n\r\nWindows file.\r\n"
	prompt, err := ParseString(doc)
	require.NoError(t, err)
	assert.Equal(t, "Windows file.", prompt.SystemMessage)
}

func TestParse_UTF8BOM(t *testing.T) {
	doc := "\xef\xbb\xbf# Doc\n\n## System Message\n\nWith BOM.\n"
	prompt, err := ParseString(doc)
	require.NoError(t, err)
	assert.Equal(t, "Doc", prompt.Title)
}

func TestParse_SystemMessagePreservesInternalBlankLines(t *testing.T) {
	doc := "## System Message\n\nFirst paragraph.\n\nSecond paragraph.\n\n"
	prompt, err := ParseString(doc)
	require.NoError(t, err)
	assert.Equal(t, "First paragraph.\n\nSecond paragraph.", prompt.SystemMessage)
}

func TestParse_SystemMessageTrimsTrailingWhitespace(t *testing.T) {
	doc := "## System Message\n\nLine with trailing spaces.   \n"
	prompt, err := ParseString(doc)
	require.NoError(t, err)
	assert.Equal(t, "Line with trailing spaces.", prompt.SystemMessage)
}

func TestParse_TitleAfterSectionIsContent(t *testing.T) {
	// A level-1 heading inside the system message body is content, not a title
	doc := "## System Message\n\n# Not a title\n"
	prompt, err := ParseString(doc)
	require.NoError(t, err)
	assert.Empty(t, prompt.Title)
	assert.Equal(t, "# Not a title", prompt.SystemMessage)
}

func TestParse_EmptyDocument(t *testing.T) {
	_, err := ParseString("")
	require.Error(t, err)
	assert.True(t, IsStructuralError(err))
}

func TestMustParse_PanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		MustParse("not a prompt")
	})
	assert.NotPanics(t, func() {
		MustParse(testDocTable)
	})
}
