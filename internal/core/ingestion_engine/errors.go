package ingestion_engine

import (
	"errors"
	"fmt"

	"github.com/markdave123-py/postlens/internal/core"
)

var (
	ErrNoFileProvided         = errors.New("no file provided")
	ErrUnsupportedContentType = errors.New("unsupported content type")
	ErrExtractionFailed       = errors.New("extraction failed")
)

// ExtractionError reports a failed extraction. It matches ErrExtractionFailed
// with errors.Is and unwraps to the provider's cause.
type ExtractionError struct {
	Family      core.ContentFamily
	ContentType string
	Cause       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s extraction of %q failed: %v", e.Family, e.ContentType, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtractionFailed
}
