// Package generate turns natural-language prompts into Mermaid code.
// The openai provider calls the Chat Completions API; the mock
// provider matches keywords against the built-in template library and
// needs no API key.
package generate

import (
	"context"
	"regexp"
	"strings"

	"github.com/mermaidkeep/mermaidkeep/internal/diagram"
)

// Prompt length limits.
const (
	MinPromptLen = 3
	MaxPromptLen = 1000
)

// Provider generates Mermaid code from a prompt.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// ValidatePrompt checks the prompt length bounds.
func ValidatePrompt(prompt string) error {
	trimmed := strings.TrimSpace(prompt)
	if len(trimmed) < MinPromptLen {
		return &diagram.ValidationError{Field: "prompt", Reason: "must be at least 3 characters"}
	}
	if len(trimmed) > MaxPromptLen {
		return &diagram.ValidationError{Field: "prompt", Reason: "must be at most 1000 characters"}
	}
	return nil
}

var backtickPattern = regexp.MustCompile("(?s)`(.*?)`")

// extractDiagram pulls Mermaid code out of a model response. The model
// is instructed to wrap code in backticks; multiple blocks are joined,
// and a response without backticks is used as-is.
func extractDiagram(text string) string {
	matches := backtickPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return strings.TrimSpace(text)
	}
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		parts = append(parts, m[1])
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
