package promptdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseConvSimplified(t *testing.T, body string) []Message {
	t.Helper()
	prompt, err := ParseString("## System Message\n\nx\n\n## Conversation\n\n" + body)
	require.NoError(t, err)
	return prompt.Conversation
}

func TestSimplified_BasicExchange(t *testing.T) {
	conv := parseConvSimplified(t, "**User:**\nHi\n\n**Assistant:**\nHello\n")
	require.Len(t, conv, 2)
	assert.Equal(t, Message{Role: "User", Content: "Hi"}, conv[0])
	assert.Equal(t, Message{Role: "Assistant", Content: "Hello"}, conv[1])
}

func TestSimplified_MultilineContent(t *testing.T) {
	body := "**User:**\nLine one\nLine two\n\nLine four after a gap\n\n**Assistant:**\nOK\n"
	conv := parseConvSimplified(t, body)
	require.Len(t, conv, 2)
	assert.Equal(t, "Line one\nLine two\n\nLine four after a gap", conv[0].Content)
}

func TestSimplified_RoleWithName(t *testing.T) {
	conv := parseConvSimplified(t, "**User (alice):**\nHi from alice\n")
	require.Len(t, conv, 1)
	assert.Equal(t, "User", conv[0].Role)
	assert.Equal(t, "alice", conv[0].Name)
}

func TestSimplified_CustomRoles(t *testing.T) {
	conv := parseConvSimplified(t, "**Narrator:**\nScene opens.\n\n**Critic:**\nWeak opening.\n")
	require.Len(t, conv, 2)
	assert.Equal(t, "Narrator", conv[0].Role)
	assert.Equal(t, "Critic", conv[1].Role)
}

func TestSimplified_MalformedMarkerIsContent(t *testing.T) {
	// "**User:" lacks the closing "**" so it belongs to the previous entry
	body := "**User:**\nReal content\n**Assistant:\nstill user content\n"
	conv := parseConvSimplified(t, body)
	require.Len(t, conv, 1)
	assert.Equal(t, "Real content\n**Assistant:\nstill user content", conv[0].Content)
}

func TestSimplified_BoldTextInsideContent(t *testing.T) {
	// Bold emphasis mid-content must not start a new entry
	body := "**User:**\nThis is **important** news\n"
	conv := parseConvSimplified(t, body)
	require.Len(t, conv, 1)
	assert.Equal(t, "This is **important** news", conv[0].Content)
}

func TestSimplified_ContentBeforeFirstMarkerDropped(t *testing.T) {
	// The format detector requires the first non-blank line to be a marker,
	// so this only occurs with blank padding before it
	conv := parseConvSimplified(t, "\n\n**User:**\nHi\n")
	require.Len(t, conv, 1)
}

func TestSimplified_EmptyContentEntry(t *testing.T) {
	conv := parseConvSimplified(t, "**User:**\n\n**Assistant:**\nHello\n")
	require.Len(t, conv, 2)
	assert.Empty(t, conv[0].Content)
	assert.Equal(t, "Hello", conv[1].Content)
}

func TestParseRoleMarker(t *testing.T) {
	tests := []struct {
		line string
		role string
		ok   bool
	}{
		{"**User:**", "User", true},
		{"**Assistant:**", "Assistant", true},
		{"**User (alice):**", "User (alice)", true},
		{"**:**", "", false},
		{"**User:", "", false},
		{"User:**", "", false},
		{"**a**b:**", "", false},
		{"plain text", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			role, ok := parseRoleMarker(tt.line)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.role, role)
			}
		})
	}
}

func TestSplitRoleName(t *testing.T) {
	tests := []struct {
		marker string
		role   string
		name   string
	}{
		{"User", "User", ""},
		{"User (alice)", "User", "alice"},
		{"Game Master (bob)", "Game Master", "bob"},
		{"(orphan)", "(orphan)", ""},
		{"User ()", "User ()", ""},
	}

	for _, tt := range tests {
		t.Run(tt.marker, func(t *testing.T) {
			role, name := splitRoleName(tt.marker)
			assert.Equal(t, tt.role, role)
			assert.Equal(t, tt.name, name)
		})
	}
}
