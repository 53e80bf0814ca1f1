package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trendforge/internal/logger"
	"trendforge/internal/server"
	"trendforge/internal/trace"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := initializeSystem(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(ctx, *configPath)
	if err != nil {
		os.Exit(1)
	}

	model := initializeModel(ctx, cfg)
	gecko, resolver := initializeMarket(ctx, cfg)
	newsSvc := initializeNews(cfg, model)
	snapshots := initializeSnapshots(cfg, gecko, resolver, newsSvc)

	srv := server.New(cfg, server.Deps{
		Market:    gecko,
		News:      newsSvc,
		Snapshots: snapshots,
		Chart:     renderChart,
		Metrics:   promhttp.Handler(),
	})

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		if err != nil {
			logger.ErrorWithErr(ctx, "Server stopped", err)
		}
	case <-ctx.Done():
		logger.Info(context.Background(), "Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithErr(shutdownCtx, "Server shutdown failed", err)
	}
	if err := trace.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithErr(shutdownCtx, "Tracer shutdown failed", err)
	}
}
