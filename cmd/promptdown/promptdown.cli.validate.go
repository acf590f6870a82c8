package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/itsatony/go-promptdown"
)

// validateConfig holds parsed validate command configuration
type validateConfig struct {
	promptPath  string
	format      string
	strictRoles bool
}

// validationOutput represents JSON output for validation
type validationOutput struct {
	Valid    bool     `json:"valid"`
	Error    string   `json:"error,omitempty"`
	Title    string   `json:"title,omitempty"`
	Messages int      `json:"messages"`
	Roles    []string `json:"roles,omitempty"`
}

func runValidate(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseValidateFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMissingPrompt, err)
		return ExitCodeUsageError
	}

	source, err := readInput(cfg.promptPath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	opts := []promptdown.Option{}
	if cfg.strictRoles {
		opts = append(opts, promptdown.WithStrictRoles(true))
	}
	engine := promptdown.MustNew(opts...)

	prompt, parseErr := engine.Parse(string(source))

	if cfg.format == OutputFormatJSON {
		return outputValidationJSON(prompt, parseErr, stdout)
	}
	return outputValidationText(prompt, parseErr, stdout)
}

func parseValidateFlags(args []string) (*validateConfig, error) {
	fs := flag.NewFlagSet(CmdNameValidate, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &validateConfig{}

	fs.StringVar(&cfg.promptPath, FlagPrompt, "", "")
	fs.StringVar(&cfg.promptPath, FlagPromptShort, "", "")
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")
	fs.BoolVar(&cfg.strictRoles, FlagStrictRoles, false, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.promptPath == "" {
		return nil, errors.New(ErrMsgMissingPrompt)
	}

	if cfg.format != OutputFormatText && cfg.format != OutputFormatJSON {
		return nil, errors.New(ErrMsgInvalidFormat)
	}

	return cfg, nil
}

func outputValidationText(prompt *promptdown.StructuredPrompt, parseErr error, stdout io.Writer) int {
	if parseErr != nil {
		fmt.Fprintln(stdout, ValidationTextFailure)
		fmt.Fprintln(stdout, parseErr.Error())
		return ExitCodeValidationError
	}

	fmt.Fprintln(stdout, ValidationTextSuccess)
	return ExitCodeSuccess
}

func outputValidationJSON(prompt *promptdown.StructuredPrompt, parseErr error, stdout io.Writer) int {
	output := validationOutput{Valid: parseErr == nil}
	if parseErr != nil {
		output.Error = parseErr.Error()
	} else {
		output.Title = prompt.Title
		output.Messages = len(prompt.Conversation)
		output.Roles = conversationRoles(prompt)
	}

	jsonBytes, _ := json.MarshalIndent(output, "", "  ")
	fmt.Fprintln(stdout, string(jsonBytes))

	if !output.Valid {
		return ExitCodeValidationError
	}
	return ExitCodeSuccess
}

// conversationRoles returns the distinct roles in conversation order.
func conversationRoles(prompt *promptdown.StructuredPrompt) []string {
	seen := make(map[string]bool)
	var roles []string
	for _, m := range prompt.Conversation {
		if !seen[m.Role] {
			seen[m.Role] = true
			roles = append(roles, m.Role)
		}
	}
	return roles
}
