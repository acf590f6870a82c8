package promptdown

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring an Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	logger      *zap.Logger
	syntax      PlaceholderSyntax
	strictRoles bool
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		logger:      nil,
		syntax:      SyntaxBoth,
		strictRoles: false,
	}
}

// WithLogger sets the logger for the engine.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithPlaceholderSyntax restricts which placeholder form the template engine
// recognizes. Use this when a document must not mix {name} and {{name}}
// semantics.
// Default: SyntaxBoth (double-brace scanned first)
func WithPlaceholderSyntax(syntax PlaceholderSyntax) Option {
	return func(c *engineConfig) {
		c.syntax = syntax
	}
}

// WithStrictRoles makes Parse reject documents whose conversation uses the
// reserved "system" role.
// Default: false (roles are free-form, per the document grammar)
func WithStrictRoles(strict bool) Option {
	return func(c *engineConfig) {
		c.strictRoles = strict
	}
}
