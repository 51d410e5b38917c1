package ingestion_engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/markdave123-py/postlens/internal/core"
	"github.com/markdave123-py/postlens/internal/models"
)

var _ Ingestor = (*DocumentIngestor)(nil)

// NewDocumentIngestor builds the pipeline. A nil logger falls back to slog.Default().
func NewDocumentIngestor(extractors Extractors, suggester core.SuggestionProvider, logger *slog.Logger) *DocumentIngestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentIngestor{extractors: extractors, suggester: suggester, logger: logger}
}

// Process extracts text from the payload and, when any text was found,
// asks the suggestion provider for engagement suggestions.
//
// Errors are ErrNoFileProvided, ErrUnsupportedContentType or an
// *ExtractionError. Suggestion failures degrade the response instead.
func (i *DocumentIngestor) Process(ctx context.Context, payload *models.UploadPayload) (*models.AnalysisResponse, error) {
	if payload == nil {
		return nil, ErrNoFileProvided
	}

	family, ok := core.ClassifyContentType(payload.ContentType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedContentType, payload.ContentType)
	}

	log := i.logger.With(
		"invocation_id", uuid.NewString(),
		"family", family.String(),
		"content_type", payload.ContentType,
		"filename", payload.Filename,
		"size", len(payload.Data),
	)

	text, err := i.extract(ctx, family, payload)
	if err != nil {
		log.Error("extraction failed", "error", err)
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		log.Info("no text extracted")
		return &models.AnalysisResponse{Text: NoTextExtracted, Suggestions: NoAnalysisAvailable}, nil
	}

	log.Info("getting AI suggestions", "chars", len(text))
	res := i.suggest(ctx, text)

	suggestions := res.Text
	if res.Unavailable {
		log.Warn("suggestions unavailable", "error", res.Cause)
		suggestions = SuggestionFallback
	} else {
		log.Info("suggestions received")
	}

	return &models.AnalysisResponse{Text: text, Suggestions: suggestions}, nil
}

func (i *DocumentIngestor) extract(ctx context.Context, family core.ContentFamily, payload *models.UploadPayload) (string, error) {
	extractor, ok := i.extractors[family]
	if !ok || extractor == nil {
		return "", &ExtractionError{
			Family:      family,
			ContentType: payload.ContentType,
			Cause:       fmt.Errorf("no extractor registered for %s", family),
		}
	}

	text, err := extractor.Extract(ctx, payload.Data)
	if err != nil {
		return "", &ExtractionError{Family: family, ContentType: payload.ContentType, Cause: err}
	}
	return text, nil
}

// suggest never returns an error; failures come back as an Unavailable result.
func (i *DocumentIngestor) suggest(ctx context.Context, text string) (res SuggestionResult) {
	if i.suggester == nil {
		return SuggestionResult{Unavailable: true, Cause: fmt.Errorf("no suggestion provider configured")}
	}

	defer func() {
		if r := recover(); r != nil {
			res = SuggestionResult{Unavailable: true, Cause: fmt.Errorf("suggestion provider panic: %v", r)}
		}
	}()

	out, err := i.suggester.Suggest(ctx, text)
	if err != nil {
		return SuggestionResult{Unavailable: true, Cause: err}
	}
	return SuggestionResult{Text: out}
}
