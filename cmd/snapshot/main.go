package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"trendforge/internal/chart"
	"trendforge/internal/logger"
	"trendforge/internal/market"
	"trendforge/internal/news"
	"trendforge/internal/sentiment"
	"trendforge/internal/snapshot"
	"trendforge/internal/store"
	"trendforge/internal/ta"
	"trendforge/internal/trace"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func setDefaultEnv(key, value string) {
	if _, ok := os.LookupEnv(key); !ok {
		os.Setenv(key, value)
	}
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	pngPath := flag.String("png", "", "write the price/RSI/MACD chart to this file")
	asJSON := flag.Bool("json", false, "print the report as JSON")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: snapshot [flags] <ticker>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	ticker := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if ticker == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	// keep stdout for the report unless the caller asks for more
	setDefaultEnv("LOG_LEVEL", "WARN")
	setDefaultEnv("LOG_TRACING_ENABLED", "false")
	must(logger.Init())
	must(trace.Init())
	ctx := context.Background()
	defer trace.Shutdown(ctx)

	cfg, err := store.LoadConfig(*configPath)
	must(err)

	model := sentiment.NewClassifier(ctx, cfg)
	gecko := market.NewCoinGecko(cfg)
	resolver := market.NewResolver(gecko, cfg.Market.PriorityIDs, time.Duration(cfg.Market.CatalogTTLMinutes)*time.Minute)
	scraper := news.NewScraper(time.Duration(cfg.News.TimeoutSeconds) * time.Second)
	newsSvc := news.NewService(scraper, news.NewScorer(model), news.ServiceConfigFrom(cfg))

	svc := snapshot.NewService(gecko, resolver, newsSvc, snapshot.Config{
		HistoryDays: cfg.Market.HistoryDays,
		Params: ta.Params{
			RSIPeriod:  cfg.Indicators.RSIPeriod,
			MACDFast:   cfg.Indicators.MACDFast,
			MACDSlow:   cfg.Indicators.MACDSlow,
			MACDSignal: cfg.Indicators.MACDSignal,
		},
	})

	report, err := svc.Snapshot(ctx, ticker)
	must(err)

	if *asJSON {
		b, err := json.MarshalIndent(report, "", "  ")
		must(err)
		fmt.Println(string(b))
	} else {
		fmt.Println("TrendForge - Crypto Snapshot")
		for _, line := range report.Lines() {
			fmt.Println(line)
		}
	}

	if *pngPath != "" {
		if report.Chart.Frame == nil {
			fmt.Fprintln(os.Stderr, snapshot.MsgChartUnavailable)
			os.Exit(1)
		}
		f, err := os.Create(*pngPath)
		must(err)
		defer f.Close()
		must(chart.Render(*report.Chart.Frame, strings.ToUpper(ticker), f, chart.DefaultOptions()))
		fmt.Fprintf(os.Stderr, "Chart written to %s\n", *pngPath)
	}
}
