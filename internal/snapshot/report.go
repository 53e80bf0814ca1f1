package snapshot

import (
	"fmt"
	"sort"
	"strings"

	"trendforge/internal/ta"
	"trendforge/internal/types"
)

// Status is the outcome of one report section
type Status string

const (
	StatusOK          Status = "ok"
	StatusUnavailable Status = "unavailable"
	StatusUnresolved  Status = "unresolved"
	StatusEmpty       Status = "empty"
)

// Messages shown to the user for failed or empty sections
const (
	MsgUnresolved       = "Ticker not recognized. Showing general crypto news instead:"
	MsgPriceUnavailable = "Price data unavailable."
	MsgChartUnavailable = "Chart data unavailable."
	MsgNoNews           = "No news found for this coin."
	MsgShortHistory     = "Not enough history for RSI."
)

type PriceSection struct {
	Status  Status      `json:"status"`
	Message string      `json:"message,omitempty"`
	Quote   types.Quote `json:"quote,omitempty"`
}

type ChartSection struct {
	Status  Status     `json:"status"`
	Message string     `json:"message,omitempty"`
	Frame   *ta.Frame  `json:"frame,omitempty"`
	Reading ta.Reading `json:"reading"`
}

type NewsSection struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	// General is set when the asset was not resolved and broad feeds were used instead
	General bool                    `json:"general"`
	Items   []types.SentimentResult `json:"items"`
}

// Report joins the price and news pipelines for one ticker
type Report struct {
	Query types.AssetQuery `json:"query"`
	Price PriceSection     `json:"price"`
	Chart ChartSection     `json:"chart"`
	News  NewsSection      `json:"news"`
}

// Lines renders the report the way the dashboard lays it out
func (r Report) Lines() []string {
	var lines []string

	if !r.Query.Resolved() {
		lines = append(lines, r.News.Message)
		return append(lines, newsLines(r.News.Items)...)
	}

	switch r.Price.Status {
	case StatusOK:
		lines = append(lines, fmt.Sprintf("%s: %s", strings.ToUpper(r.Query.RawTicker), formatQuote(r.Price.Quote)))
	default:
		lines = append(lines, r.Price.Message)
	}

	switch r.Chart.Status {
	case StatusOK:
		lines = append(lines, "Technical Analysis Summary:")
		for _, l := range r.Chart.Reading.Summary() {
			lines = append(lines, "- "+l)
		}
	default:
		lines = append(lines, r.Chart.Message)
	}

	lines = append(lines, "Latest News & Sentiment:")
	if r.News.Status != StatusOK {
		return append(lines, r.News.Message)
	}
	return append(lines, newsLines(r.News.Items)...)
}

func formatQuote(q types.Quote) string {
	curs := make([]string, 0, len(q))
	for cur := range q {
		curs = append(curs, cur)
	}
	// usd first, then alphabetical
	sort.Slice(curs, func(i, j int) bool {
		if curs[i] == "usd" || curs[j] == "usd" {
			return curs[i] == "usd"
		}
		return curs[i] < curs[j]
	})

	parts := make([]string, len(curs))
	for i, cur := range curs {
		parts[i] = q[cur].String() + " " + strings.ToUpper(cur)
	}
	return strings.Join(parts, " / ")
}

func newsLines(items []types.SentimentResult) []string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = fmt.Sprintf("- %s (%s) -> %s (%.2f) - %s", it.Title, it.Link, it.Sentiment, it.Score, it.Source)
	}
	return lines
}
