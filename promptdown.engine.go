package promptdown

import (
	"go.uber.org/zap"
)

// Engine is a configured parser/serializer/template-applier. The zero-config
// package-level functions (Parse, ParseString, ...) cover most uses; an
// Engine adds logging, a fixed placeholder syntax, and strict role checking.
type Engine struct {
	config *engineConfig
	logger *zap.Logger
}

// New creates a new promptdown Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{
		config: config,
		logger: logger,
	}, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// Parse parses promptdown text into a StructuredPrompt.
// Structural errors abort parsing; no partial prompt is returned.
func (e *Engine) Parse(text string) (*StructuredPrompt, error) {
	e.logger.Debug(LogMsgParseStart, zap.Int(LogFieldBytes, len(text)))

	prompt, err := parseDocument(text, e.logger)
	if err != nil {
		return nil, err
	}

	if e.config.strictRoles {
		if err := prompt.Validate(); err != nil {
			return nil, err
		}
	}

	e.logger.Debug(LogMsgParseComplete, zap.Int(LogFieldEntries, len(prompt.Conversation)))
	return prompt, nil
}

// Serialize renders a StructuredPrompt to canonical promptdown text.
func (e *Engine) Serialize(prompt *StructuredPrompt) (string, error) {
	data, err := prompt.Serialize(nil)
	if err != nil {
		return "", err
	}
	e.logger.Debug(LogMsgSerializeComplete, zap.Int(LogFieldBytes, len(data)))
	return string(data), nil
}

// ApplyTemplateValues substitutes placeholders in the prompt in place using
// the engine's configured placeholder syntax, and reports what happened.
func (e *Engine) ApplyTemplateValues(prompt *StructuredPrompt, values map[string]string) *TemplateReport {
	report := applyTemplateValues(prompt, values, e.config.syntax)
	e.logger.Debug(LogMsgTemplateApplied,
		zap.Int(LogFieldReplaced, len(report.Replaced)),
		zap.Int(LogFieldUnresolved, len(report.Unresolved)))
	return report
}

// PlaceholderSyntax returns the engine's configured placeholder syntax.
func (e *Engine) PlaceholderSyntax() PlaceholderSyntax {
	return e.config.syntax
}
