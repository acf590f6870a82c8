package main

// Command names
const (
	CmdNameRender   = "render"
	CmdNameValidate = "validate"
	CmdNameFmt      = "fmt"
	CmdNameVersion  = "version"
	CmdNameHelp     = "help"
)

// Flag names - long form
const (
	FlagPrompt      = "prompt"
	FlagData        = "data"
	FlagDataFile    = "data-file"
	FlagOutput      = "output"
	FlagFormat      = "format"
	FlagSyntax      = "syntax"
	FlagStrictMode  = "strict"
	FlagStrictRoles = "strict-roles"
	FlagWrite       = "write"
)

// Flag names - short form
const (
	FlagPromptShort   = "p"
	FlagDataShort     = "d"
	FlagDataFileShort = "f"
	FlagOutputShort   = "o"
	FlagFormatShort   = "F"
	FlagWriteShort    = "w"
)

// Flag default values
const (
	FlagDefaultOutput = "-" // stdout
	FlagDefaultFormat = "text"
	FlagDefaultSyntax = "both"
)

// Render output formats
const (
	OutputFormatText      = "text"
	OutputFormatJSON      = "json"
	OutputFormatMessages  = "messages"
	OutputFormatPairs     = "pairs"
	OutputFormatResponses = "responses"
)

// Placeholder syntax names
const (
	SyntaxNameBoth   = "both"
	SyntaxNameSingle = "single"
	SyntaxNameDouble = "double"
)

// Exit codes
const (
	ExitCodeSuccess         = 0
	ExitCodeError           = 1
	ExitCodeUsageError      = 2
	ExitCodeValidationError = 3
	ExitCodeInputError      = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Error messages - ALL must be constants
const (
	ErrMsgNoCommand         = "no command specified"
	ErrMsgUnknownCommand    = "unknown command"
	ErrMsgMissingPrompt     = "prompt source required"
	ErrMsgInvalidJSON       = "invalid JSON data"
	ErrMsgInvalidDataFile   = "invalid data file"
	ErrMsgReadFileFailed    = "failed to read file"
	ErrMsgReadStdinFailed   = "failed to read from stdin"
	ErrMsgWriteOutputFailed = "failed to write output"
	ErrMsgParsePromptFailed = "prompt parsing failed"
	ErrMsgSerializeFailed   = "prompt serialization failed"
	ErrMsgInvalidFormat     = "invalid output format"
	ErrMsgInvalidSyntax     = "invalid placeholder syntax"
	ErrMsgJSONMarshalFailed = "failed to marshal JSON"
	ErrMsgUnresolvedValues  = "unresolved placeholders"
)

// Help text templates
const (
	HelpMainUsage = `go-promptdown - Structured LLM prompt markdown CLI

Usage:
    promptdown <command> [options]

Commands:
    render      Parse a prompt, fill in template values, and emit it
    validate    Validate a prompt document without rendering
    fmt         Rewrite a prompt document in canonical form
    version     Show version information
    help        Show help for a command

Use "promptdown help <command>" for more information about a command.`

	HelpRenderUsage = `Parse a prompt, fill in template values, and emit it

Usage:
    promptdown render [options]

Options:
    -p, --prompt <file>     Prompt file (use "-" for stdin)
    -d, --data <json>       JSON object with template values
    -f, --data-file <file>  YAML or JSON file with template values
                            (with both, inline values override the file)
    -o, --output <file>     Output file (default: stdout)
    -F, --format <format>   Output format: text, messages, pairs, responses (default: text)
    --syntax <syntax>       Placeholder syntax: both, single, double (default: both)
    --strict                Fail when placeholders stay unresolved

Examples:
    promptdown render -p agent.prompt.md -d '{"product": "widgets"}'
    promptdown render -p agent.prompt.md -f values.yaml
    cat agent.prompt.md | promptdown render -p - -F messages
    promptdown render -p agent.prompt.md -f values.yaml -o rendered.prompt.md`

	HelpValidateUsage = `Validate a prompt document without rendering

Usage:
    promptdown validate [options]

Options:
    -p, --prompt <file>     Prompt file (use "-" for stdin)
    -F, --format <format>   Output format: text, json (default: text)
    --strict-roles          Reject conversation entries using the System role

Examples:
    promptdown validate -p agent.prompt.md
    promptdown validate -p agent.prompt.md --strict-roles
    cat agent.prompt.md | promptdown validate -p -`

	HelpFmtUsage = `Rewrite a prompt document in canonical form

Usage:
    promptdown fmt [options] [file]

Options:
    -w, --write             Write result back to the source file instead of stdout

Examples:
    promptdown fmt agent.prompt.md
    promptdown fmt -w agent.prompt.md
    cat agent.prompt.md | promptdown fmt`

	HelpVersionUsage = `Show version information

Usage:
    promptdown version [options]

Options:
    -F, --format <format>   Output format: text, json (default: text)`

	HelpHelpUsage = `Show help for a command

Usage:
    promptdown help [command]

Commands:
    render      Show help for render command
    validate    Show help for validate command
    fmt         Show help for fmt command
    version     Show help for version command`
)

// Version output format templates
const (
	VersionTextTemplate = "go-promptdown version %s\nCommit: %s\nBranch: %s\nBuilt: %s\nGo: %s"
	VersionUnknown      = "unknown"
)

// Validation output format templates
const (
	ValidationTextSuccess = "Prompt is valid"
	ValidationTextFailure = "Prompt is invalid"
)

// CLI metadata
const (
	CLIName        = "promptdown"
	CLIDescription = "Structured LLM prompt markdown CLI"
)

// File permission constant
const (
	FilePermissions = 0644
)

// Format string constants
const (
	FmtErrorWithDetail = "%s: %s\n"
	FmtErrorWithCause  = "%s: %v\n"
	FmtNewline         = "\n"
)
