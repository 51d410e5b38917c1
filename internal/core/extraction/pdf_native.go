package extraction

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/markdave123-py/postlens/internal/core"
)

var _ core.ExtractionProvider = (*NativePDFExtractor)(nil)

var ErrEmptyDocument = errors.New("empty document")

// NativePDFExtractor reads PDF text in-process with ledongthuc/pdf.
type NativePDFExtractor struct{}

func NewNativePDFExtractor() *NativePDFExtractor {
	return &NativePDFExtractor{}
}

// Extract concatenates the plain text of every page, one page per line block.
func (e *NativePDFExtractor) Extract(ctx context.Context, data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}

	// the reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("parse pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	for n := 1; n <= r.NumPage(); n++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := r.Page(n)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read page %d: %w", n, err)
		}
		if strings.TrimSpace(pageText) == "" {
			continue
		}

		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(pageText)
	}

	return b.String(), nil
}
