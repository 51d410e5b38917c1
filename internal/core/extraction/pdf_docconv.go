package extraction

import (
	"bytes"
	"context"
	"fmt"

	"code.sajari.com/docconv"

	"github.com/markdave123-py/postlens/internal/core"
)

var _ core.ExtractionProvider = (*DocconvPDFExtractor)(nil)

// DocconvPDFExtractor implements core.ExtractionProvider using sajari/docconv.
// It shells out to poppler's pdftotext, which must be on PATH.
type DocconvPDFExtractor struct{}

func NewDocconvPDFExtractor() *DocconvPDFExtractor {
	return &DocconvPDFExtractor{}
}

func (e *DocconvPDFExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}

	body, _, err := docconv.ConvertPDF(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("docconv: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	return body, nil
}
