package market

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"trendforge/internal/api"
	"trendforge/internal/interfaces"
	"trendforge/internal/logger"
	"trendforge/internal/store"
	"trendforge/internal/trace"
	"trendforge/internal/types"
)

// CoinGecko is the market data provider backed by the public CoinGecko v3 API
type CoinGecko struct {
	client     *api.Client
	vsCurrency string
	quotes     []string
}

var _ interfaces.MarketData = (*CoinGecko)(nil)

// NewCoinGecko builds a client from config; the demo API key is sent when present
func NewCoinGecko(cfg *store.Config) *CoinGecko {
	opts := []api.ClientOption{
		api.WithBaseURL(strings.TrimRight(cfg.Market.BaseURL, "/")),
		api.WithTimeout(time.Duration(cfg.Market.TimeoutSeconds) * time.Second),
		api.WithRateLimit(cfg.Market.RequestsPerSecond, 3),
		api.WithLogging(true),
	}
	for k, v := range api.JSONHeaders() {
		opts = append(opts, api.WithHeader(k, v))
	}
	if cfg.Secrets.CoinGeckoAPIKey != "" {
		opts = append(opts, api.WithHeader("x-cg-demo-api-key", cfg.Secrets.CoinGeckoAPIKey))
	}
	return New(api.NewClient(opts...), cfg.Market.VsCurrency, cfg.Market.QuoteCurrencies)
}

func New(client *api.Client, vsCurrency string, quotes []string) *CoinGecko {
	lowered := make([]string, len(quotes))
	for i, q := range quotes {
		lowered[i] = strings.ToLower(q)
	}
	return &CoinGecko{
		client:     client,
		vsCurrency: strings.ToLower(vsCurrency),
		quotes:     lowered,
	}
}

// simplePriceResponse is keyed by coin id, then by quote currency
type simplePriceResponse map[string]map[string]decimal.NullDecimal

type marketChartResponse struct {
	// each entry should be [timestamp-ms, price]; nulls and short rows are dropped
	Prices [][]*float64 `json:"prices"`
}

type coinResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// SpotPrice returns the configured quote currencies for id.
// Currencies the provider leaves out are omitted; none at all is ErrUpstreamUnavailable.
func (g *CoinGecko) SpotPrice(ctx context.Context, id string) (types.Quote, error) {
	ctx, span := trace.StartSpan(ctx, "coingecko.SpotPrice")
	defer span.End()

	path := fmt.Sprintf("/simple/price?ids=%s&vs_currencies=%s",
		url.QueryEscape(id), url.QueryEscape(strings.Join(g.quotes, ",")))
	resp, err := g.client.GET(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("price %s: %w: %v", id, types.ErrUpstreamUnavailable, err)
	}

	var body simplePriceResponse
	if err := resp.ParseJSON(&body); err != nil {
		return nil, fmt.Errorf("price %s: %w: %v", id, types.ErrUpstreamUnavailable, err)
	}

	entry, ok := body[id]
	if !ok {
		return nil, fmt.Errorf("price %s: %w: id missing from response", id, types.ErrUpstreamUnavailable)
	}

	quote := make(types.Quote, len(g.quotes))
	for _, cur := range g.quotes {
		if v, ok := entry[cur]; ok && v.Valid {
			quote[cur] = v.Decimal
		}
	}
	if len(quote) == 0 {
		return nil, fmt.Errorf("price %s: %w: no quote currencies present", id, types.ErrUpstreamUnavailable)
	}
	return quote, nil
}

// History returns the raw (timestamp-ms, price) pairs for the last `days` days
func (g *CoinGecko) History(ctx context.Context, id string, days int) ([]types.RawPrice, error) {
	ctx, span := trace.StartSpan(ctx, "coingecko.History")
	defer span.End()

	path := fmt.Sprintf("/coins/%s/market_chart?vs_currency=%s&days=%d",
		url.PathEscape(id), url.QueryEscape(g.vsCurrency), days)
	resp, err := g.client.GET(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w: %v", id, types.ErrUpstreamUnavailable, err)
	}

	var body marketChartResponse
	if err := resp.ParseJSON(&body); err != nil {
		return nil, fmt.Errorf("chart %s: %w: %v", id, types.ErrUpstreamUnavailable, err)
	}

	raw := make([]types.RawPrice, 0, len(body.Prices))
	dropped := 0
	for _, row := range body.Prices {
		if len(row) < 2 || row[0] == nil || row[1] == nil {
			dropped++
			continue
		}
		raw = append(raw, types.RawPrice{TimestampMs: int64(*row[0]), Price: *row[1]})
	}
	if dropped > 0 {
		logger.Warn(ctx, "Dropped malformed chart rows", "id", id, "dropped", dropped)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("chart %s: %w: empty price history", id, types.ErrUpstreamUnavailable)
	}
	return raw, nil
}

// Metadata returns display name and symbol for id
func (g *CoinGecko) Metadata(ctx context.Context, id string) (types.CoinMeta, error) {
	ctx, span := trace.StartSpan(ctx, "coingecko.Metadata")
	defer span.End()

	path := fmt.Sprintf("/coins/%s?localization=false&tickers=false&market_data=false&community_data=false&developer_data=false&sparkline=false",
		url.PathEscape(id))
	resp, err := g.client.GET(ctx, path)
	if err != nil {
		return FallbackMeta(id), err
	}

	var body coinResponse
	if err := resp.ParseJSON(&body); err != nil {
		return FallbackMeta(id), err
	}

	meta := FallbackMeta(id)
	if body.Name != "" {
		meta.Name = body.Name
	}
	if body.Symbol != "" {
		meta.Symbol = strings.ToUpper(body.Symbol)
	}
	return meta, nil
}

// CoinList fetches the full asset catalog
func (g *CoinGecko) CoinList(ctx context.Context) ([]types.CoinMeta, error) {
	ctx, span := trace.StartSpan(ctx, "coingecko.CoinList")
	defer span.End()

	resp, err := g.client.GET(ctx, "/coins/list")
	if err != nil {
		return nil, fmt.Errorf("coin list: %w", err)
	}

	var body []coinResponse
	if err := resp.ParseJSON(&body); err != nil {
		return nil, fmt.Errorf("coin list: %w", err)
	}

	coins := make([]types.CoinMeta, 0, len(body))
	for _, c := range body {
		if c.ID == "" {
			continue
		}
		coins = append(coins, types.CoinMeta{ID: c.ID, Name: c.Name, Symbol: c.Symbol})
	}
	return coins, nil
}

// FallbackMeta is used when metadata cannot be fetched: the id doubles as name and symbol
func FallbackMeta(id string) types.CoinMeta {
	return types.CoinMeta{ID: id, Name: id, Symbol: strings.ToUpper(id)}
}
