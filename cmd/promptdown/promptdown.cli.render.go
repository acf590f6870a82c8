package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/itsatony/go-promptdown"
	"gopkg.in/yaml.v3"
)

// renderConfig holds parsed render command configuration
type renderConfig struct {
	promptPath   string
	dataJSON     string
	dataFilePath string
	outputPath   string
	format       string
	syntax       promptdown.PlaceholderSyntax
	strict       bool
}

func runRender(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseRenderFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMissingPrompt, err)
		return ExitCodeUsageError
	}

	// Read prompt source
	source, err := readInput(cfg.promptPath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	// Load template values
	values, err := loadValues(cfg.dataJSON, cfg.dataFilePath)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidDataFile, err)
		return ExitCodeInputError
	}

	// Parse and substitute
	engine := promptdown.MustNew(promptdown.WithPlaceholderSyntax(cfg.syntax))
	prompt, err := engine.Parse(string(source))
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgParsePromptFailed, err)
		return ExitCodeValidationError
	}

	report := engine.ApplyTemplateValues(prompt, values)
	if report.HasUnresolved() {
		fmt.Fprintf(stderr, FmtErrorWithDetail, ErrMsgUnresolvedValues, strings.Join(report.Unresolved, ", "))
		if cfg.strict {
			return ExitCodeValidationError
		}
	}

	// Format output
	output, err := formatRendered(prompt, cfg.format)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgSerializeFailed, err)
		return ExitCodeError
	}

	if err := writeOutput(cfg.outputPath, output, stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}

	return ExitCodeSuccess
}

func parseRenderFlags(args []string) (*renderConfig, error) {
	fs := flag.NewFlagSet(CmdNameRender, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &renderConfig{}
	var syntaxName string

	fs.StringVar(&cfg.promptPath, FlagPrompt, "", "")
	fs.StringVar(&cfg.promptPath, FlagPromptShort, "", "")
	fs.StringVar(&cfg.dataJSON, FlagData, "", "")
	fs.StringVar(&cfg.dataJSON, FlagDataShort, "", "")
	fs.StringVar(&cfg.dataFilePath, FlagDataFile, "", "")
	fs.StringVar(&cfg.dataFilePath, FlagDataFileShort, "", "")
	fs.StringVar(&cfg.outputPath, FlagOutput, FlagDefaultOutput, "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, FlagDefaultOutput, "")
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")
	fs.StringVar(&syntaxName, FlagSyntax, FlagDefaultSyntax, "")
	fs.BoolVar(&cfg.strict, FlagStrictMode, false, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.promptPath == "" {
		return nil, errors.New(ErrMsgMissingPrompt)
	}

	switch cfg.format {
	case OutputFormatText, OutputFormatMessages, OutputFormatPairs, OutputFormatResponses:
	default:
		return nil, errors.New(ErrMsgInvalidFormat)
	}

	syntax, err := parseSyntaxName(syntaxName)
	if err != nil {
		return nil, err
	}
	cfg.syntax = syntax

	return cfg, nil
}

func parseSyntaxName(name string) (promptdown.PlaceholderSyntax, error) {
	switch name {
	case SyntaxNameBoth:
		return promptdown.SyntaxBoth, nil
	case SyntaxNameSingle:
		return promptdown.SyntaxSingleBrace, nil
	case SyntaxNameDouble:
		return promptdown.SyntaxDoubleBrace, nil
	default:
		return 0, errors.New(ErrMsgInvalidSyntax)
	}
}

// loadValues reads template values from a YAML/JSON file and/or an inline
// JSON string. When both are given, the file loads first and inline values
// override matching keys. Scalar values are stringified; nested structures
// are rejected by the template layer anyway, so stringify keeps the CLI
// forgiving about numbers and booleans.
func loadValues(jsonStr, filePath string) (map[string]string, error) {
	raw := make(map[string]any)

	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, err
		}
		// YAML is a superset of JSON, so one decoder covers both file kinds
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	}
	if jsonStr != "" {
		inline := make(map[string]any)
		if err := json.Unmarshal([]byte(jsonStr), &inline); err != nil {
			return nil, err
		}
		for k, v := range inline {
			raw[k] = v
		}
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		values[k] = fmt.Sprint(v)
	}
	return values, nil
}

func formatRendered(prompt *promptdown.StructuredPrompt, format string) ([]byte, error) {
	switch format {
	case OutputFormatMessages:
		return marshalJSONOutput(prompt.ToChatCompletionMessages())
	case OutputFormatPairs:
		return marshalJSONOutput(prompt.ToRoleContentPairs())
	case OutputFormatResponses:
		return marshalJSONOutput(prompt.ToResponsesInput(nil))
	default:
		return prompt.Serialize(nil)
	}
}

func marshalJSONOutput(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
