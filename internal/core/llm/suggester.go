package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/markdave123-py/postlens/internal/core"
)

var ErrEmptySuggestion = errors.New("provider returned no suggestions")

// DefaultMaxSuggestChars bounds the text forwarded to the provider.
const DefaultMaxSuggestChars = 30000

const engagementPrompt = `Analyze the following social media post text. Provide 3-4 actionable suggestions to improve its engagement. Format the suggestions as a simple bulleted list. Text: "%s"`

var _ core.SuggestionProvider = (*EngagementSuggester)(nil)

// EngagementSuggester asks an LLM for engagement suggestions in one shot.
// maxChars <= 0 forwards text unbounded.
type EngagementSuggester struct {
	llm      core.LLMProvider
	maxChars int
	logger   *slog.Logger
}

func NewEngagementSuggester(llm core.LLMProvider, maxChars int, logger *slog.Logger) *EngagementSuggester {
	if logger == nil {
		logger = slog.Default()
	}
	return &EngagementSuggester{llm: llm, maxChars: maxChars, logger: logger}
}

func (s *EngagementSuggester) Suggest(ctx context.Context, text string) (string, error) {
	if s.llm == nil {
		return "", errors.New("no llm provider configured")
	}

	if truncated, ok := truncateRunes(text, s.maxChars); ok {
		s.logger.Warn("truncating text before suggestion request",
			"chars", utf8.RuneCountInString(text), "limit", s.maxChars)
		text = truncated
	}

	out, err := s.llm.Generate(ctx, "", BuildEngagementPrompt(text))
	if err != nil {
		return "", fmt.Errorf("generate suggestions: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		return "", ErrEmptySuggestion
	}
	return out, nil
}

// BuildEngagementPrompt wraps text in the fixed engagement instruction.
func BuildEngagementPrompt(text string) string {
	return fmt.Sprintf(engagementPrompt, text)
}

// truncateRunes cuts s to at most limit runes. ok reports whether it cut anything.
func truncateRunes(s string, limit int) (string, bool) {
	if limit <= 0 || len(s) <= limit {
		return s, false
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i], true
		}
		n++
	}
	return s, false
}
