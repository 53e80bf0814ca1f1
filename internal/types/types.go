package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawPrice is a (timestamp-ms, price) pair as delivered by the market data provider
type RawPrice struct {
	TimestampMs int64
	Price       float64
}

type PricePoint struct {
	Time  time.Time `json:"time"`
	Price float64   `json:"price"`
}

// Quote maps a lower-case quote currency ("usd", "cad") to the spot price
type Quote map[string]decimal.Decimal

// Float64s converts the quote for JSON exposure as plain numbers
func (q Quote) Float64s() map[string]float64 {
	out := make(map[string]float64, len(q))
	for cur, v := range q {
		out[cur] = v.InexactFloat64()
	}
	return out
}

type CoinMeta struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// AssetQuery tracks a user-supplied ticker through resolution.
// ResolvedID is empty when the asset could not be resolved.
type AssetQuery struct {
	RawTicker   string `json:"raw_ticker"`
	ResolvedID  string `json:"resolved_id,omitempty"`
	DisplayName string `json:"display_name"`
	Symbol      string `json:"symbol"`
}

func (q AssetQuery) Resolved() bool {
	return q.ResolvedID != ""
}

type Headline struct {
	Title  string `json:"title"`
	Link   string `json:"link"`
	Source string `json:"source"`
}

type SentimentLabel string

const (
	Positive SentimentLabel = "POSITIVE"
	Negative SentimentLabel = "NEGATIVE"
	Unknown  SentimentLabel = "UNKNOWN"
)

// Classification is a single model verdict; Score is the confidence in [0,1]
type Classification struct {
	Label SentimentLabel `json:"label"`
	Score float64        `json:"score"`
}

type SentimentResult struct {
	Headline
	Sentiment SentimentLabel `json:"sentiment"`
	Score     float64        `json:"score"`
}
