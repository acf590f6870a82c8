package promptdown

// Markdown markers recognized by the section scanner
const (
	TitlePrefix     = "# "
	SectionPrefix   = "## "
	TablePipe       = "|"
	BoldMarker      = "**"
	RoleMarkerClose = ":**"
	EscapedPipe     = "\\|"
)

// Section heading names - matched case-insensitively after trimming
const (
	HeadingSystemMessage    = "System Message"
	HeadingDeveloperMessage = "Developer Message"
	HeadingConversation     = "Conversation"
)

// Table column header names - matched case-insensitively
const (
	ColumnRole    = "role"
	ColumnName    = "name"
	ColumnContent = "content"
)

// Table divider cell content (e.g. the "---" cells in "| --- | --- |")
const (
	TableDividerCell = "---"
)

// Placeholder delimiters
const (
	SingleBraceOpen  = "{"
	SingleBraceClose = "}"
	DoubleBraceOpen  = "{{"
	DoubleBraceClose = "}}"
)

// PlaceholderSyntax selects which placeholder forms the template engine
// recognizes.
type PlaceholderSyntax int

const (
	// SyntaxBoth recognizes {{name}} and {name}, double-brace first.
	SyntaxBoth PlaceholderSyntax = iota
	// SyntaxSingleBrace recognizes only {name}.
	SyntaxSingleBrace
	// SyntaxDoubleBrace recognizes only {{name}}.
	SyntaxDoubleBrace
)

// Placeholder syntax string values
const (
	SyntaxNameBoth        = "both"
	SyntaxNameSingleBrace = "single"
	SyntaxNameDoubleBrace = "double"
)

// String returns the string representation of the placeholder syntax.
func (s PlaceholderSyntax) String() string {
	switch s {
	case SyntaxSingleBrace:
		return SyntaxNameSingleBrace
	case SyntaxDoubleBrace:
		return SyntaxNameDoubleBrace
	default:
		return SyntaxNameBoth
	}
}

// MessageHeading identifies which instruction heading a document used.
type MessageHeading int

const (
	// MessageHeadingSystem is the "## System Message" heading (default).
	MessageHeadingSystem MessageHeading = iota
	// MessageHeadingDeveloper is the "## Developer Message" alias.
	MessageHeadingDeveloper
)

// Heading returns the literal heading text for serialization.
func (h MessageHeading) Heading() string {
	if h == MessageHeadingDeveloper {
		return HeadingDeveloperMessage
	}
	return HeadingSystemMessage
}

// SerializationFormat selects how a conversation is rendered.
type SerializationFormat int

const (
	// FormatAuto renders a table unless any content contains a newline.
	FormatAuto SerializationFormat = iota
	// FormatTable forces the pipe-table form.
	FormatTable
	// FormatSimplified forces the bold-role block form.
	FormatSimplified
)

// Role constants for chat-completion export
const (
	RoleSystem    = "system"
	RoleDeveloper = "developer"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Content part type constants for API exports
const (
	PartTypeText      = "text"
	PartTypeInputText = "input_text"
)

// PromptFileExtension is the conventional promptdown file extension.
const PromptFileExtension = ".prompt.md"

// Log message constants
const (
	LogMsgParseStart        = "promptdown parse started"
	LogMsgParseComplete     = "promptdown parse complete"
	LogMsgRowSkipped        = "table row skipped"
	LogMsgFormatDetected    = "conversation format detected"
	LogMsgTemplateApplied   = "template values applied"
	LogMsgFileExtension     = "promptdown files should end with '.prompt.md'"
	LogMsgPromptSaved       = "prompt saved"
	LogMsgPromptLoaded      = "prompt loaded"
	LogMsgStorageMigrated   = "storage schema migrated"
	LogMsgStorageConnected  = "storage connected"
	LogMsgSerializeComplete = "promptdown serialize complete"
)

// Log field name constants
const (
	LogFieldLine       = "line"
	LogFieldRow        = "row"
	LogFieldFormat     = "format"
	LogFieldPath       = "path"
	LogFieldName       = "name"
	LogFieldVersion    = "version"
	LogFieldEntries    = "entries"
	LogFieldUnresolved = "unresolved"
	LogFieldReplaced   = "replaced"
	LogFieldBytes      = "bytes"
)

// Storage driver name constants
const (
	StorageDriverNameMemory     = "memory"
	StorageDriverNameFilesystem = "filesystem"
	StorageDriverNamePostgres   = "postgres"
)

// Filesystem storage constants
const (
	// FilesystemDirPermissions for created prompt directories
	FilesystemDirPermissions = 0o755
	// FilesystemFilePermissions for written prompt files
	FilesystemFilePermissions = 0o644
)
