package promptdown

import "strings"

// Message is a single conversation turn.
type Message struct {
	// Role of the message sender. Free-form: "User", "Assistant", or custom.
	Role string `yaml:"role" json:"role"`
	// Content of the message. May span multiple lines.
	Content string `yaml:"content" json:"content"`
	// Name optionally identifies the author within a role.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
}

// Validate checks the message against the reserved-role rule: "system" (any
// casing) is reserved for the system message section and cannot appear as a
// conversation role. Parsing does not enforce this; callers that feed chat
// APIs should.
func (m Message) Validate() error {
	if strings.EqualFold(m.Role, RoleSystem) {
		return NewReservedRoleError(m.Role)
	}
	return nil
}

// Equal reports whether two messages are equivalent. Roles are compared
// case-insensitively; content and name are compared exactly.
func (m Message) Equal(other Message) bool {
	return strings.EqualFold(m.Role, other.Role) &&
		m.Content == other.Content &&
		m.Name == other.Name
}

// StructuredPrompt is the in-memory representation of a promptdown document.
//
// A StructuredPrompt is a plain value object owned by its caller. It is not
// safe for concurrent mutation (ApplyTemplateValues) without external
// synchronization; treat it as single-owner-at-a-time.
type StructuredPrompt struct {
	// Title is the optional top-level heading. Empty means unset.
	Title string `yaml:"title,omitempty" json:"title,omitempty"`
	// SystemMessage is the instruction text. Always present, possibly empty.
	SystemMessage string `yaml:"system_message" json:"system_message"`
	// MessageHeading records whether the document used "## System Message"
	// or the "## Developer Message" alias, so serialization round-trips.
	MessageHeading MessageHeading `yaml:"-" json:"-"`
	// Conversation is the ordered sequence of turns. May be empty.
	Conversation []Message `yaml:"conversation,omitempty" json:"conversation,omitempty"`
}

// Equal reports whether two prompts are structurally equivalent: same title,
// system message, and ordered conversation (message equality per Message.Equal).
func (p *StructuredPrompt) Equal(other *StructuredPrompt) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.Title != other.Title || p.SystemMessage != other.SystemMessage {
		return false
	}
	if len(p.Conversation) != len(other.Conversation) {
		return false
	}
	for i := range p.Conversation {
		if !p.Conversation[i].Equal(other.Conversation[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the prompt.
func (p *StructuredPrompt) Clone() *StructuredPrompt {
	if p == nil {
		return nil
	}
	clone := &StructuredPrompt{
		Title:          p.Title,
		SystemMessage:  p.SystemMessage,
		MessageHeading: p.MessageHeading,
	}
	if p.Conversation != nil {
		clone.Conversation = make([]Message, len(p.Conversation))
		copy(clone.Conversation, p.Conversation)
	}
	return clone
}

// Validate checks every conversation message against the reserved-role rule.
// It returns the first violation found, or nil.
func (p *StructuredPrompt) Validate() error {
	for _, m := range p.Conversation {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// HasMultilineContent reports whether any conversation message contains a
// newline. The serializer uses this to pick the simplified format.
func (p *StructuredPrompt) HasMultilineContent() bool {
	for _, m := range p.Conversation {
		if strings.Contains(m.Content, "\n") {
			return true
		}
	}
	return false
}

// hasNames reports whether any conversation message carries a name.
func (p *StructuredPrompt) hasNames() bool {
	for _, m := range p.Conversation {
		if m.Name != "" {
			return true
		}
	}
	return false
}
