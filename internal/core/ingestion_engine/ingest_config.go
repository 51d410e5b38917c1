package ingestion_engine

import (
	"log/slog"

	"github.com/markdave123-py/postlens/internal/core"
)

// Fixed response strings surfaced to callers.
const (
	NoTextExtracted     = "No text could be extracted from the file."
	NoAnalysisAvailable = "No analysis available."
	SuggestionFallback  = "Could not generate AI suggestions at this time."
)

// Extractors is the strategy table keyed by content family.
// Supporting a new family means one new ContentFamily value and one entry here.
type Extractors map[core.ContentFamily]core.ExtractionProvider

// DocumentIngestor orchestrates a single upload:
//
// extractors: one extraction provider per supported content family.
// suggester:  best-effort suggestion provider; its failures never abort a run.
// logger:     receives internal diagnostics that are never returned to callers.
//
// It holds no per-request state and is safe for concurrent use.
type DocumentIngestor struct {
	extractors Extractors
	suggester  core.SuggestionProvider
	logger     *slog.Logger
}

// SuggestionResult is the outcome of the suggestion step. Unavailable is a
// valid terminal value, not an error.
type SuggestionResult struct {
	Text        string
	Unavailable bool
	Cause       error
}
