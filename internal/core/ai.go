package core

import "context"

// LLMProvider is a single-shot text generation backend.
type LLMProvider interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}

// SuggestionProvider turns extracted document text into engagement suggestions.
type SuggestionProvider interface {
	Suggest(ctx context.Context, text string) (string, error)
}
