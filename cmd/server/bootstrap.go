package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"trendforge/internal/chart"
	"trendforge/internal/interfaces"
	"trendforge/internal/logger"
	"trendforge/internal/market"
	"trendforge/internal/news"
	"trendforge/internal/sentiment"
	"trendforge/internal/snapshot"
	"trendforge/internal/store"
	"trendforge/internal/ta"
	"trendforge/internal/trace"
)

// initializeSystem loads .env and starts the logger and tracer
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

func loadConfig(ctx context.Context, path string) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, err
	}
	return cfg, nil
}

// initializeMarket returns the provider and a resolver that shares its catalog endpoint
func initializeMarket(ctx context.Context, cfg *store.Config) (*market.CoinGecko, *market.Resolver) {
	gecko := market.NewCoinGecko(cfg)
	if cfg.Secrets.CoinGeckoAPIKey == "" {
		logger.Info(ctx, "No COINGECKO_API_KEY set - using the public rate limit", "requests_per_second", cfg.Market.RequestsPerSecond)
	}
	resolver := market.NewResolver(gecko, cfg.Market.PriorityIDs, time.Duration(cfg.Market.CatalogTTLMinutes)*time.Minute)
	return gecko, resolver
}

// initializeNews builds the scraper and scorer around the already loaded model
func initializeNews(cfg *store.Config, model interfaces.Classifier) *news.Service {
	scraper := news.NewScraper(time.Duration(cfg.News.TimeoutSeconds) * time.Second)
	return news.NewService(scraper, news.NewScorer(model), news.ServiceConfigFrom(cfg))
}

func indicatorParams(cfg *store.Config) ta.Params {
	return ta.Params{
		RSIPeriod:  cfg.Indicators.RSIPeriod,
		MACDFast:   cfg.Indicators.MACDFast,
		MACDSlow:   cfg.Indicators.MACDSlow,
		MACDSignal: cfg.Indicators.MACDSignal,
	}
}

// initializeSnapshots wires the orchestrator with logging and prometheus metrics
func initializeSnapshots(cfg *store.Config, md interfaces.MarketData, resolver interfaces.Resolver, ns *news.Service) snapshot.Service {
	svc := snapshot.NewService(md, resolver, ns, snapshot.Config{
		HistoryDays: cfg.Market.HistoryDays,
		Params:      indicatorParams(cfg),
	})

	svc = snapshot.NewLoggingMiddleware(svc)
	svc = snapshot.NewInstrumentingMiddleware(
		kitprometheus.NewCounterFrom(prometheus.CounterOpts{
			Namespace: "trendforge",
			Subsystem: "snapshot",
			Name:      "requests_total",
			Help:      "Number of snapshot requests.",
		}, []string{"method", "error"}),
		kitprometheus.NewHistogramFrom(prometheus.HistogramOpts{
			Namespace: "trendforge",
			Subsystem: "snapshot",
			Name:      "request_duration_seconds",
			Help:      "Snapshot request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "error"}),
		kitprometheus.NewCounterFrom(prometheus.CounterOpts{
			Namespace: "trendforge",
			Subsystem: "snapshot",
			Name:      "sections_total",
			Help:      "Snapshot section outcomes by status.",
		}, []string{"section", "status"}),
		svc,
	)
	return svc
}

func renderChart(f ta.Frame, label string, w io.Writer) error {
	return chart.Render(f, label, w, chart.DefaultOptions())
}

// initializeModel loads the sentiment model once for the life of the process
func initializeModel(ctx context.Context, cfg *store.Config) interfaces.Classifier {
	return sentiment.NewClassifier(ctx, cfg)
}
