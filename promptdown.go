// Package promptdown parses and serializes the promptdown dialect: a
// constrained markdown format that encodes an LLM prompt as an optional
// title, a required system message, and an ordered conversation.
//
// # Document Format
//
// A promptdown document looks like this:
//
//	# Example Prompt
//
//	## System Message
//	You are a helpful assistant.
//
//	## Conversation
//
//	| Role | Content |
//	| --- | --- |
//	| User | Hi, can you help me? |
//	| Assistant | Of course! What do you need? |
//
// Conversations with multi-line content use the simplified format instead of
// a table:
//
//	## Conversation
//
//	**User:**
//	Here is my code.
//	It spans several lines.
//
//	**Assistant:**
//	Thanks, let me take a look.
//
// # Basic Usage
//
// Parse a document and inspect the structured prompt:
//
//	prompt, err := promptdown.ParseString(source)
//	if err != nil {
//	    // err describes the missing or malformed section
//	}
//	fmt.Println(prompt.SystemMessage)
//
// Serialize back to canonical promptdown text:
//
//	text := prompt.String()
//
// # Template Values
//
// Content may contain {name} or {{name}} placeholders. Substitution is
// verbatim and best-effort; unresolved names are reported, not errors:
//
//	report := prompt.ApplyTemplateValues(map[string]string{"topic": "geography"})
//	if len(report.Unresolved) > 0 {
//	    // placeholders left in the text
//	}
//
// # Chat API Export
//
// A parsed prompt converts to the shapes chat-completion clients expect:
//
//	pairs := prompt.ToRoleContentPairs()        // roles verbatim
//	msgs := prompt.ToChatCompletionMessages()   // roles lower-cased
//
// # Configuration
//
// For logging or restricted placeholder syntax, use an Engine with
// functional options:
//
//	engine := promptdown.MustNew(
//	    promptdown.WithLogger(logger),
//	    promptdown.WithPlaceholderSyntax(promptdown.SyntaxDoubleBrace),
//	)
//	prompt, err := engine.Parse(source)
//
// # Storage
//
// Prompts can be kept in a versioned store (memory, filesystem, or
// PostgreSQL) behind the PromptStorage interface:
//
//	store, err := promptdown.OpenStorage("filesystem", "/var/lib/prompts")
package promptdown
