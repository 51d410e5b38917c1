package core

import (
	"context"
	"mime"
	"strings"
)

// ContentFamily is the closed set of document families the pipeline can extract text from.
type ContentFamily int

const (
	FamilyPDF ContentFamily = iota + 1
	FamilyImage
)

func (f ContentFamily) String() string {
	switch f {
	case FamilyPDF:
		return "pdf"
	case FamilyImage:
		return "image"
	default:
		return "unknown"
	}
}

// ExtractionProvider turns raw document bytes of one family into plain text.
type ExtractionProvider interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// ClassifyContentType maps a declared MIME type to its content family.
// Parameters such as charset are ignored and matching is case-insensitive.
func ClassifyContentType(declared string) (ContentFamily, bool) {
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil {
		// malformed parameters: match on the bare type, as for well-formed ones
		mediaType, _, _ = strings.Cut(declared, ";")
		mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	}

	switch {
	case mediaType == "application/pdf":
		return FamilyPDF, true
	case strings.HasPrefix(mediaType, "image/"):
		return FamilyImage, true
	default:
		return 0, false
	}
}
