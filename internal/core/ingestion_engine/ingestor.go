package ingestion_engine

import (
	"context"

	"github.com/markdave123-py/postlens/internal/models"
)

// Ingestor runs one pipeline invocation per uploaded file.
type Ingestor interface {
	Process(ctx context.Context, payload *models.UploadPayload) (*models.AnalysisResponse, error)
}
