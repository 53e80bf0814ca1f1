package news

import (
	"context"
	"fmt"

	"trendforge/internal/logger"
	"trendforge/internal/store"
	"trendforge/internal/types"
)

// Service gathers headlines from the configured sources and scores them
type Service struct {
	fetcher Fetcher
	scorer  *Scorer
	cfg     *ServiceConfig
}

// ServiceConfig configures the news service
type ServiceConfig struct {
	Sources          []store.NewsSource // searched per asset, filtered by the matcher
	GeneralSources   []store.NewsSource // broad feeds, unfiltered
	MaxHeadlines     int                // cap on related headlines across all sources
	GeneralPerSource int                // entries taken from each general feed
}

// ServiceConfigFrom derives the service configuration from the app config
func ServiceConfigFrom(cfg *store.Config) *ServiceConfig {
	return &ServiceConfig{
		Sources:          enabled(cfg.News.Sources),
		GeneralSources:   enabled(cfg.News.GeneralSources),
		MaxHeadlines:     cfg.News.MaxHeadlines,
		GeneralPerSource: cfg.News.GeneralPerSource,
	}
}

// DefaultServiceConfig returns the built-in source lists
func DefaultServiceConfig() *ServiceConfig {
	return ServiceConfigFrom(store.DefaultConfig())
}

func enabled(sources []store.NewsSource) []store.NewsSource {
	out := make([]store.NewsSource, 0, len(sources))
	for _, s := range sources {
		if s.IsEnabled() {
			out = append(out, s)
		}
	}
	return out
}

func NewService(fetcher Fetcher, scorer *Scorer, cfg *ServiceConfig) *Service {
	if cfg == nil {
		cfg = DefaultServiceConfig()
	}
	return &Service{
		fetcher: fetcher,
		scorer:  scorer,
		cfg:     cfg,
	}
}

// Related returns scored headlines about the asset, at most MaxHeadlines,
// in source order. An empty result is reported as ErrNoMatchingNews.
func (s *Service) Related(ctx context.Context, name, ticker string) ([]types.SentimentResult, error) {
	headlines := s.RelatedHeadlines(ctx, name, ticker)
	if len(headlines) == 0 {
		return []types.SentimentResult{}, fmt.Errorf("%s: %w", name, types.ErrNoMatchingNews)
	}
	return s.scorer.Score(ctx, headlines), nil
}

// RelatedHeadlines runs fetch and match without scoring
func (s *Service) RelatedHeadlines(ctx context.Context, name, ticker string) []types.Headline {
	out := []types.Headline{}
	for _, src := range s.cfg.Sources {
		remaining := s.cfg.MaxHeadlines - len(out)
		if remaining <= 0 {
			break
		}
		pool, err := s.fetcher.Fetch(ctx, src, name, src.Limit)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to fetch news source", err, "source", src.Name, "name", name)
			continue
		}
		out = append(out, Filter(pool, name, ticker, remaining)...)
	}

	logger.Info(ctx, "Related news collected", "name", name, "ticker", ticker, "headlines", len(out))
	return out
}

// General returns the first GeneralPerSource entries of every broad feed, scored
func (s *Service) General(ctx context.Context) []types.SentimentResult {
	out := []types.Headline{}
	for _, src := range s.cfg.GeneralSources {
		limit := s.cfg.GeneralPerSource
		if src.Limit > 0 {
			limit = src.Limit
		}
		pool, err := s.fetcher.Fetch(ctx, src, "", limit)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to fetch news source", err, "source", src.Name)
			continue
		}
		out = append(out, pool...)
	}

	logger.Info(ctx, "General news collected", "headlines", len(out))
	return s.scorer.Score(ctx, out)
}

// Latest returns the first GeneralPerSource entries of every asset source for
// name, scored but not filtered by the matcher.
func (s *Service) Latest(ctx context.Context, name string) []types.SentimentResult {
	out := []types.Headline{}
	for _, src := range s.cfg.Sources {
		pool, err := s.fetcher.Fetch(ctx, src, name, s.cfg.GeneralPerSource)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to fetch news source", err, "source", src.Name, "name", name)
			continue
		}
		out = append(out, pool...)
	}
	return s.scorer.Score(ctx, out)
}
