package news

import (
	"context"
	"fmt"

	"trendforge/internal/interfaces"
	"trendforge/internal/logger"
	"trendforge/internal/trace"
	"trendforge/internal/types"
)

// Scorer labels headlines with a sentiment model constructed once by the caller
type Scorer struct {
	model interfaces.Classifier
}

func NewScorer(model interfaces.Classifier) *Scorer {
	return &Scorer{model: model}
}

// Score classifies every headline independently. A failure for one headline
// yields UNKNOWN with score 0 for that headline only; order is preserved.
func (s *Scorer) Score(ctx context.Context, headlines []types.Headline) []types.SentimentResult {
	ctx, span := trace.StartSpan(ctx, "news.Score")
	defer span.End()

	results := make([]types.SentimentResult, len(headlines))
	failed := 0
	for i, h := range headlines {
		results[i] = types.SentimentResult{Headline: h, Sentiment: types.Unknown, Score: 0}

		c, err := s.classify(ctx, h.Title)
		if err != nil {
			failed++
			logger.Warn(ctx, "Sentiment classification failed", "title", h.Title, "error", err)
			continue
		}
		results[i].Sentiment = c.Label
		results[i].Score = c.Score
	}

	if failed > 0 {
		logger.Info(ctx, "Headlines scored", "total", len(headlines), "unknown", failed)
	}
	return results
}

func (s *Scorer) classify(ctx context.Context, text string) (c types.Classification, err error) {
	if s.model == nil {
		return c, fmt.Errorf("%w: no model loaded", types.ErrClassification)
	}
	defer func() {
		if r := recover(); r != nil {
			c = types.Classification{}
			err = fmt.Errorf("%w: model panicked: %v", types.ErrClassification, r)
		}
	}()

	c, err = s.model.Classify(ctx, text)
	if err != nil {
		return types.Classification{}, fmt.Errorf("%w: %v", types.ErrClassification, err)
	}
	if c.Label != types.Positive && c.Label != types.Negative {
		return types.Classification{}, fmt.Errorf("%w: unexpected label %q", types.ErrClassification, c.Label)
	}
	if c.Score < 0 || c.Score > 1 {
		return types.Classification{}, fmt.Errorf("%w: score %.4f out of range", types.ErrClassification, c.Score)
	}
	return c, nil
}
