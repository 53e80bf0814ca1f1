package noop

import (
	"context"
	"errors"

	"trendforge/internal/logger"
	"trendforge/internal/types"
)

// ErrDisabled is returned for every headline when sentiment scoring is turned off
var ErrDisabled = errors.New("sentiment model disabled")

// NoopClassifier is the fallback used when no sentiment provider is configured.
// Every headline ends up UNKNOWN.
type NoopClassifier struct{}

func NewNoopClassifier() *NoopClassifier {
	return &NoopClassifier{}
}

func (c *NoopClassifier) Classify(ctx context.Context, text string) (types.Classification, error) {
	logger.Debug(ctx, "Noop classifier called - sentiment disabled")
	return types.Classification{}, ErrDisabled
}
