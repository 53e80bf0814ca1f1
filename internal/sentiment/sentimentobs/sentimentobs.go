package sentimentobs

import (
	"context"

	"trendforge/internal/interfaces"
	"trendforge/internal/logger"
	"trendforge/internal/trace"
	"trendforge/internal/types"
)

// observableClassifier wraps a Classifier with logging and tracing
type observableClassifier struct {
	classifier interfaces.Classifier
	provider   string
}

var _ interfaces.Classifier = (*observableClassifier)(nil)

// Wrap wraps a classifier with observability middleware
func Wrap(classifier interfaces.Classifier, provider string) interfaces.Classifier {
	return &observableClassifier{
		classifier: classifier,
		provider:   provider,
	}
}

func (oc *observableClassifier) Classify(ctx context.Context, text string) (types.Classification, error) {
	ctx, span := trace.StartSpan(ctx, "sentiment.Classify")
	defer span.End()

	// Skip(1) reports the scorer as the caller, not this wrapper
	logger.DebugSkip(ctx, 1, "Classifying headline", "provider", oc.provider, "text", text)

	c, err := oc.classifier.Classify(ctx, text)
	if err != nil {
		trace.RecordError(ctx, err)
		logger.ErrorWithErrSkip(ctx, 1, "Headline classification failed", err, "provider", oc.provider)
		return types.Classification{}, err
	}

	span.SetAttributes(trace.Attrs("label", string(c.Label), "score", c.Score)...)
	logger.DebugSkip(ctx, 1, "Headline classified",
		"provider", oc.provider,
		"label", c.Label,
		"score", c.Score,
	)
	return c, nil
}
