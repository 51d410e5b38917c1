// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/markdave123-py/postlens/internal/config"
	"github.com/markdave123-py/postlens/internal/core"
	"github.com/markdave123-py/postlens/internal/core/extraction"
	"github.com/markdave123-py/postlens/internal/core/extraction/ocr"
	"github.com/markdave123-py/postlens/internal/core/ingestion_engine"
	"github.com/markdave123-py/postlens/internal/core/llm"
)

type App struct {
	DocProcessor ingestion_engine.Ingestor
	Server       *Server

	closers []io.Closer
}

// NewApp builds the providers once per process; they are shared read-only by every request.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	a := &App{}

	llmProvider, err := newLLMProvider(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the llm provider, %w", err)
	}
	if c, ok := llmProvider.(io.Closer); ok {
		a.closers = append(a.closers, c)
	}
	logger.Info("suggestion provider initialized", "provider", cfg.SuggestProvider)

	suggester := llm.NewEngagementSuggester(llmProvider, cfg.MaxSuggestChars, logger)

	extractors := ingestion_engine.Extractors{
		core.FamilyPDF:   newPDFExtractor(cfg),
		core.FamilyImage: ocr.NewTesseractExtractor(cfg.OCRLanguage),
	}
	logger.Info("extractors initialized", "pdf_engine", cfg.PDFEngine, "ocr_language", cfg.OCRLanguage)

	a.DocProcessor = ingestion_engine.NewDocumentIngestor(extractors, suggester, logger)
	a.Server = NewServer(cfg, a.DocProcessor, logger)

	return a, nil
}

func newLLMProvider(ctx context.Context, cfg *config.Config) (core.LLMProvider, error) {
	switch cfg.SuggestProvider {
	case config.ProviderOpenAI:
		return llm.NewOpenAILLM(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	default:
		return llm.NewGeminiLLM(ctx, cfg.AIAPIKey, cfg.GenModel)
	}
}

func newPDFExtractor(cfg *config.Config) core.ExtractionProvider {
	if cfg.PDFEngine == config.PDFEngineDocconv {
		return extraction.NewDocconvPDFExtractor()
	}
	return extraction.NewNativePDFExtractor()
}

func (a *App) Close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
}
