package promptdown

import (
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"
)

// ParseFS reads a promptdown resource from a file system (for example an
// embed.FS holding a prompt pack) and parses it.
func ParseFS(fsys fs.FS, name string) (*StructuredPrompt, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, NewLoaderError(ErrMsgReadResourceFailed, name, err)
	}
	return Parse(data)
}

// ParseFile reads a file and parses it, warning when the path does not use
// the conventional .prompt.md extension.
func (e *Engine) ParseFile(path string) (*StructuredPrompt, error) {
	e.warnExtension(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewLoaderError(ErrMsgReadFileFailed, path, err)
	}

	prompt, err := e.Parse(string(data))
	if err != nil {
		return nil, err
	}
	e.logger.Debug(LogMsgPromptLoaded, zap.String(LogFieldPath, path))
	return prompt, nil
}

// ParseFS reads a promptdown resource from a file system and parses it,
// warning when the name does not use the conventional .prompt.md extension.
func (e *Engine) ParseFS(fsys fs.FS, name string) (*StructuredPrompt, error) {
	e.warnExtension(name)

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, NewLoaderError(ErrMsgReadResourceFailed, name, err)
	}

	return e.Parse(string(data))
}

// WriteFile serializes the prompt and writes it to path.
func (p *StructuredPrompt) WriteFile(path string) error {
	data, err := p.Serialize(nil)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, FilesystemFilePermissions); err != nil {
		return NewLoaderError(ErrMsgWriteFileFailed, path, err)
	}
	return nil
}

// warnExtension logs when a path lacks the .prompt.md extension.
func (e *Engine) warnExtension(path string) {
	if !strings.HasSuffix(path, PromptFileExtension) {
		e.logger.Warn(LogMsgFileExtension, zap.String(LogFieldPath, path))
	}
}
