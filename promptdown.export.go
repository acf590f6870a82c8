package promptdown

import "strings"

// RoleContentPair is the minimal {role, content} shape downstream
// chat-completion clients consume.
type RoleContentPair struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ContentPart is a typed content fragment for part-based chat APIs.
type ContentPart struct {
	// Type is "text" (chat completions) or "input_text" (responses API).
	Type string `json:"type"`
	Text string `json:"text"`
}

// ChatMessage is a chat-completions message. The system message carries its
// content as a plain string; conversation turns carry typed text parts.
type ChatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
	Name    string `json:"name,omitempty"`
}

// ResponsesMessage is a Responses-API input message.
type ResponsesMessage struct {
	Role    string        `json:"role"`
	Content []ContentPart `json:"content"`
}

// ToRoleContentPairs returns the system message followed by the conversation
// as ordered {role, content} pairs. Conversation roles pass through
// verbatim; no case normalization is applied. Callers that need
// chat-completion casing should use ToChatCompletionMessages instead.
//
// The system message is emitted first with the role "system" (or "developer"
// when the document used the Developer Message heading).
func (p *StructuredPrompt) ToRoleContentPairs() []RoleContentPair {
	pairs := make([]RoleContentPair, 0, len(p.Conversation)+1)
	pairs = append(pairs, RoleContentPair{
		Role:    p.systemRole(),
		Content: p.SystemMessage,
	})
	for _, m := range p.Conversation {
		pairs = append(pairs, RoleContentPair{Role: m.Role, Content: m.Content})
	}
	return pairs
}

// ToChatCompletionMessages converts the prompt to chat-completions messages.
// Roles are lower-cased ("Assistant" becomes "assistant"); the system
// message is a plain string while each turn's content is a single text part.
func (p *StructuredPrompt) ToChatCompletionMessages() []ChatMessage {
	messages := make([]ChatMessage, 0, len(p.Conversation)+1)
	messages = append(messages, ChatMessage{
		Role:    p.systemRole(),
		Content: p.SystemMessage,
	})
	for _, m := range p.Conversation {
		messages = append(messages, ChatMessage{
			Role:    strings.ToLower(m.Role),
			Content: []ContentPart{{Type: PartTypeText, Text: m.Content}},
			Name:    m.Name,
		})
	}
	return messages
}

// ResponsesInputOptions configures Responses-API conversion.
type ResponsesInputOptions struct {
	// MapSystemToDeveloper maps the "system" role to "developer", which the
	// Responses API expects. Enabled by default via DefaultResponsesInputOptions.
	MapSystemToDeveloper bool
}

// DefaultResponsesInputOptions returns the default conversion options.
func DefaultResponsesInputOptions() *ResponsesInputOptions {
	return &ResponsesInputOptions{MapSystemToDeveloper: true}
}

// ToResponsesInput converts the prompt to Responses-API input messages:
// lower-cased roles and "input_text" content parts. If opts is nil,
// DefaultResponsesInputOptions is used.
func (p *StructuredPrompt) ToResponsesInput(opts *ResponsesInputOptions) []ResponsesMessage {
	if opts == nil {
		opts = DefaultResponsesInputOptions()
	}

	role := p.systemRole()
	if opts.MapSystemToDeveloper && role == RoleSystem {
		role = RoleDeveloper
	}

	messages := make([]ResponsesMessage, 0, len(p.Conversation)+1)
	messages = append(messages, ResponsesMessage{
		Role:    role,
		Content: []ContentPart{{Type: PartTypeInputText, Text: p.SystemMessage}},
	})
	for _, m := range p.Conversation {
		messages = append(messages, ResponsesMessage{
			Role:    strings.ToLower(m.Role),
			Content: []ContentPart{{Type: PartTypeInputText, Text: m.Content}},
		})
	}
	return messages
}

// systemRole returns the export role for the instruction section.
func (p *StructuredPrompt) systemRole() string {
	if p.MessageHeading == MessageHeadingDeveloper {
		return RoleDeveloper
	}
	return RoleSystem
}
