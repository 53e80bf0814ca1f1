package sentiment

import (
	"context"

	"trendforge/internal/interfaces"
	"trendforge/internal/logger"
	"trendforge/internal/sentiment/huggingface"
	"trendforge/internal/sentiment/lexicon"
	"trendforge/internal/sentiment/noop"
	"trendforge/internal/sentiment/sentimentobs"
	"trendforge/internal/store"
)

// NewClassifier builds the configured model once, wrapped with observability.
// A Hugging Face provider without a token degrades to the lexicon model.
func NewClassifier(ctx context.Context, cfg *store.Config) interfaces.Classifier {
	var classifier interfaces.Classifier
	provider := cfg.Sentiment.Provider

	switch provider {
	case store.ProviderHuggingFace:
		hf, err := huggingface.New(cfg)
		if err != nil {
			logger.Warn(ctx, "Hugging Face classifier unavailable - using lexicon model", "error", err)
			provider = store.ProviderLexicon
			classifier = lexicon.New()
			break
		}
		logger.Info(ctx, "Using Hugging Face inference for sentiment", "model", cfg.Sentiment.Model)
		classifier = hf
	case store.ProviderNone:
		logger.Warn(ctx, "Sentiment disabled - every headline will be UNKNOWN")
		classifier = noop.NewNoopClassifier()
	default:
		logger.Info(ctx, "Using lexicon sentiment model")
		classifier = lexicon.New()
	}

	return sentimentobs.Wrap(classifier, provider)
}
