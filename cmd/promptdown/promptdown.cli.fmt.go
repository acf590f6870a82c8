package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/itsatony/go-promptdown"
)

// fmtConfig holds parsed fmt command configuration
type fmtConfig struct {
	write bool
	path  string
}

func runFmt(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseFmtFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMissingPrompt, err)
		return ExitCodeUsageError
	}

	source, err := readInput(cfg.path, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	prompt, err := promptdown.Parse(source)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgParsePromptFailed, err)
		return ExitCodeValidationError
	}

	canonical, err := prompt.Serialize(nil)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgSerializeFailed, err)
		return ExitCodeError
	}

	if cfg.write && cfg.path != InputSourceStdin {
		if err := os.WriteFile(cfg.path, canonical, FilePermissions); err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
			return ExitCodeError
		}
		return ExitCodeSuccess
	}

	if _, err := stdout.Write(canonical); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}
	return ExitCodeSuccess
}

func parseFmtFlags(args []string) (*fmtConfig, error) {
	fs := flag.NewFlagSet(CmdNameFmt, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &fmtConfig{}

	fs.BoolVar(&cfg.write, FlagWrite, false, "")
	fs.BoolVar(&cfg.write, FlagWriteShort, false, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Positional file argument; default to stdin
	cfg.path = InputSourceStdin
	if fs.NArg() > 0 {
		cfg.path = fs.Arg(0)
	}

	return cfg, nil
}
