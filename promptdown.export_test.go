package promptdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportTestPrompt() *StructuredPrompt {
	return &StructuredPrompt{
		Title:         "Export",
		SystemMessage: "Be helpful.",
		Conversation: []Message{
			{Role: "User", Content: "Hi"},
			{Role: "Assistant", Content: "Hello"},
		},
	}
}

func TestToRoleContentPairs(t *testing.T) {
	pairs := exportTestPrompt().ToRoleContentPairs()

	require.Len(t, pairs, 3)
	assert.Equal(t, RoleContentPair{Role: "system", Content: "Be helpful."}, pairs[0])
	// Conversation roles pass through verbatim
	assert.Equal(t, "User", pairs[1].Role)
	assert.Equal(t, "Assistant", pairs[2].Role)
}

func TestToRoleContentPairs_DeveloperHeading(t *testing.T) {
	prompt := exportTestPrompt()
	prompt.MessageHeading = MessageHeadingDeveloper

	pairs := prompt.ToRoleContentPairs()
	assert.Equal(t, "developer", pairs[0].Role)
}

func TestToChatCompletionMessages(t *testing.T) {
	messages := exportTestPrompt().ToChatCompletionMessages()

	require.Len(t, messages, 3)

	// System message content carries a plain string
	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, "Be helpful.", messages[0].Content)

	// Turn roles are lower-cased; content is typed text parts
	assert.Equal(t, "user", messages[1].Role)
	parts, ok := messages[1].Content.([]ContentPart)
	require.True(t, ok)
	require.Len(t, parts, 1)
	assert.Equal(t, PartTypeText, parts[0].Type)
	assert.Equal(t, "Hi", parts[0].Text)

	assert.Equal(t, "assistant", messages[2].Role)
}

func TestToChatCompletionMessages_NamePropagated(t *testing.T) {
	prompt := &StructuredPrompt{
		SystemMessage: "x",
		Conversation:  []Message{{Role: "User", Name: "alice", Content: "Hi"}},
	}

	messages := prompt.ToChatCompletionMessages()
	require.Len(t, messages, 2)
	assert.Equal(t, "alice", messages[1].Name)
	assert.Empty(t, messages[0].Name)
}

func TestToResponsesInput_Defaults(t *testing.T) {
	messages := exportTestPrompt().ToResponsesInput(nil)

	require.Len(t, messages, 3)
	// System maps to developer by default for the Responses API
	assert.Equal(t, "developer", messages[0].Role)
	require.Len(t, messages[0].Content, 1)
	assert.Equal(t, PartTypeInputText, messages[0].Content[0].Type)
	assert.Equal(t, "Be helpful.", messages[0].Content[0].Text)

	assert.Equal(t, "user", messages[1].Role)
	assert.Equal(t, PartTypeInputText, messages[1].Content[0].Type)
}

func TestToResponsesInput_KeepSystemRole(t *testing.T) {
	messages := exportTestPrompt().ToResponsesInput(&ResponsesInputOptions{MapSystemToDeveloper: false})
	assert.Equal(t, "system", messages[0].Role)
}

func TestExport_EmptyConversation(t *testing.T) {
	prompt := &StructuredPrompt{SystemMessage: "Only instructions."}

	pairs := prompt.ToRoleContentPairs()
	require.Len(t, pairs, 1)
	assert.Equal(t, "system", pairs[0].Role)

	messages := prompt.ToChatCompletionMessages()
	require.Len(t, messages, 1)
}

func TestExport_ParsedDocumentEndToEnd(t *testing.T) {
	prompt := MustParse(testDocTable)
	messages := prompt.ToChatCompletionMessages()

	require.Len(t, messages, 3)
	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, "user", messages[1].Role)
	assert.Equal(t, "assistant", messages[2].Role)
}
