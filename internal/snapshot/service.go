package snapshot

import (
	"context"
	"errors"
	"strings"

	"trendforge/internal/interfaces"
	"trendforge/internal/logger"
	"trendforge/internal/ta"
	"trendforge/internal/types"
)

// ErrEmptyTicker is the only error Snapshot returns; every other failure is a section status
var ErrEmptyTicker = errors.New("ticker is empty")

// Service builds the full snapshot for one ticker
type Service interface {
	Snapshot(ctx context.Context, ticker string) (Report, error)
}

// NewsProvider supplies scored headlines
type NewsProvider interface {
	Related(ctx context.Context, name, ticker string) ([]types.SentimentResult, error)
	General(ctx context.Context) []types.SentimentResult
}

type Config struct {
	HistoryDays int
	Params      ta.Params
}

type service struct {
	market   interfaces.MarketData
	resolver interfaces.Resolver
	news     NewsProvider
	cfg      Config
}

func NewService(market interfaces.MarketData, resolver interfaces.Resolver, news NewsProvider, cfg Config) Service {
	if cfg.HistoryDays <= 0 {
		cfg.HistoryDays = 30
	}
	return &service{
		market:   market,
		resolver: resolver,
		news:     news,
		cfg:      cfg,
	}
}

func (s *service) Snapshot(ctx context.Context, ticker string) (Report, error) {
	raw := strings.TrimSpace(ticker)
	if raw == "" {
		return Report{}, ErrEmptyTicker
	}

	var r Report
	r.Query = types.AssetQuery{RawTicker: raw}

	id, ok := s.resolver.Resolve(ctx, raw)
	if !ok {
		s.unresolved(ctx, &r)
		return r, nil
	}
	r.Query.ResolvedID = id
	s.identify(ctx, &r)

	s.price(ctx, &r)
	s.chart(ctx, &r)
	s.related(ctx, &r)

	logger.Signal(ctx, id, string(r.Chart.Reading.RSI), string(r.Chart.Reading.MACD),
		"price", r.Price.Status, "news", r.News.Status, "headlines", len(r.News.Items))
	return r, nil
}

func (s *service) unresolved(ctx context.Context, r *Report) {
	logger.Warn(ctx, "Ticker not recognized, falling back to general news", "ticker", r.Query.RawTicker,
		"error", types.ErrUnresolvedAsset)

	r.Query.DisplayName = r.Query.RawTicker
	r.Query.Symbol = strings.ToUpper(r.Query.RawTicker)
	r.Price = PriceSection{Status: StatusUnresolved}
	r.Chart = ChartSection{Status: StatusUnresolved, Reading: ta.Interpret(ta.Frame{})}

	items := s.news.General(ctx)
	r.News = NewsSection{Status: StatusUnresolved, Message: MsgUnresolved, General: true, Items: items}
}

// identify fills display name and symbol; metadata is best effort
func (s *service) identify(ctx context.Context, r *Report) {
	id := r.Query.ResolvedID
	r.Query.DisplayName = id
	r.Query.Symbol = strings.ToUpper(r.Query.RawTicker)

	meta, err := s.market.Metadata(ctx, id)
	if err != nil {
		logger.Warn(ctx, "Coin metadata unavailable, using id as name", "id", id, "error", err)
		return
	}
	if meta.Name != "" {
		r.Query.DisplayName = meta.Name
	}
	if meta.Symbol != "" {
		r.Query.Symbol = strings.ToUpper(meta.Symbol)
	}
}

func (s *service) price(ctx context.Context, r *Report) {
	q, err := s.market.SpotPrice(ctx, r.Query.ResolvedID)
	if err != nil || len(q) == 0 {
		logger.Warn(ctx, "Price data unavailable", "id", r.Query.ResolvedID, "error", err)
		r.Price = PriceSection{Status: StatusUnavailable, Message: MsgPriceUnavailable}
		return
	}
	r.Price = PriceSection{Status: StatusOK, Quote: q}
}

func (s *service) chart(ctx context.Context, r *Report) {
	raw, err := s.market.History(ctx, r.Query.ResolvedID, s.cfg.HistoryDays)
	series := ta.BuildSeries(raw)
	if err != nil || series.Empty() {
		logger.Warn(ctx, "Chart data unavailable", "id", r.Query.ResolvedID, "error", err)
		r.Chart = ChartSection{Status: StatusUnavailable, Message: MsgChartUnavailable, Reading: ta.Interpret(ta.Frame{})}
		return
	}

	frame := ta.Compute(series, s.cfg.Params)
	reading := ta.Interpret(frame)
	r.Chart = ChartSection{Status: StatusOK, Frame: &frame, Reading: reading}
	if reading.RSI == ta.RSINoData {
		logger.Info(ctx, "Series shorter than RSI window", "id", r.Query.ResolvedID, "points", series.Len(),
			"error", types.ErrInsufficientHistory)
		r.Chart.Message = MsgShortHistory
	}
}

func (s *service) related(ctx context.Context, r *Report) {
	items, err := s.news.Related(ctx, r.Query.DisplayName, r.Query.RawTicker)
	switch {
	case errors.Is(err, types.ErrNoMatchingNews) || (err == nil && len(items) == 0):
		r.News = NewsSection{Status: StatusEmpty, Message: MsgNoNews, Items: []types.SentimentResult{}}
	case err != nil:
		logger.ErrorWithErr(ctx, "News lookup failed", err, "name", r.Query.DisplayName)
		r.News = NewsSection{Status: StatusEmpty, Message: MsgNoNews, Items: []types.SentimentResult{}}
	default:
		r.News = NewsSection{Status: StatusOK, Items: items}
	}
}
