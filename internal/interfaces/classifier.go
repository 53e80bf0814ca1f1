package interfaces

import (
	"context"

	"trendforge/internal/types"
)

// Classifier is a loaded sentiment model. Implementations must be safe to reuse
// across requests once constructed.
type Classifier interface {
	Classify(ctx context.Context, text string) (types.Classification, error)
}
