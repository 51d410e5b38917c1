// Package ocr recognises text in raster images with Tesseract.
// Building it requires cgo and the tesseract/leptonica development headers.
package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"github.com/markdave123-py/postlens/internal/core"
	"github.com/markdave123-py/postlens/internal/core/extraction"
)

var _ core.ExtractionProvider = (*TesseractExtractor)(nil)

// DefaultLanguage is the traineddata model used when none is configured.
const DefaultLanguage = "eng"

// TesseractExtractor runs OCR with one fixed language model.
// A gosseract client is not safe for concurrent use, so each call gets its own.
type TesseractExtractor struct {
	language string
}

func NewTesseractExtractor(language string) *TesseractExtractor {
	if language == "" {
		language = DefaultLanguage
	}
	return &TesseractExtractor{language: language}
}

// Extract returns whatever Tesseract recognised, possibly empty. It fails only
// when the bytes are not a decodable image or the engine itself errors.
func (e *TesseractExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	if _, err := extraction.DetectImageFormat(data); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.language); err != nil {
		return "", fmt.Errorf("tesseract language %q: %w", e.language, err)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("tesseract load image: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract recognise: %w", err)
	}
	return text, nil
}
