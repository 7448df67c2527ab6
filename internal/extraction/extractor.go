package extraction

import (
	"context"

	"github.com/Sportinger/argus/internal/models"
)

// Extractor defines the interface for turning a raw document into graph
// facts. Implementations own prompt construction and output parsing; the
// underlying model call is an external collaborator.
type Extractor interface {
	Extract(ctx context.Context, doc *models.RawDocument) (*models.ExtractionResult, error)
}
