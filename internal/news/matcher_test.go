package news

import (
	"fmt"
	"testing"

	"trendforge/internal/types"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		coin   string
		ticker string
		want   bool
	}{
		{"name in first tokens", "Bitcoin surges past $70k", "Bitcoin", "BTC", true},
		{"ticker in first tokens", "BTC ETF inflows hit record", "Bitcoin", "BTC", true},
		{"standalone beyond position six", "Analysts say the market partners with Bitcoin Inc", "Bitcoin", "BTC", true},
		{"standalone word", "XYZ partners with Bitcoin Inc", "Bitcoin", "BTC", true},
		{"substring never matches", "Canada eyes new regulation", "Cardano", "ada", false},
		// the standalone token ADA is a hit even next to Canada
		{"standalone ticker next to Canada", "Canada eyes new ADA regulation", "Cardano", "ada", true},
		{"punctuation attached", "Bitcoin's rally stalls", "Bitcoin", "BTC", false},
		{"tab separated leading token", "Solana\tupgrade ships", "Solana", "SOL", true},
		{"case insensitive", "ETHEREUM devs schedule fork", "Ethereum", "eth", true},
		{"unrelated", "Fed holds rates steady", "Bitcoin", "BTC", false},
		{"empty terms", "Anything  at all", "", " ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.title, tt.coin, tt.ticker); got != tt.want {
				t.Errorf("Matches(%q, %q, %q): expected %v, got %v", tt.title, tt.coin, tt.ticker, tt.want, got)
			}
		})
	}
}

func TestFilterCapsInOrder(t *testing.T) {
	pool := []types.Headline{}
	for i := 0; i < 10; i++ {
		pool = append(pool, types.Headline{Title: fmt.Sprintf("Bitcoin update %d", i), Source: "A"})
		pool = append(pool, types.Headline{Title: fmt.Sprintf("Stocks update %d", i), Source: "A"})
	}

	got := Filter(pool, "Bitcoin", "BTC", 5)
	if len(got) != 5 {
		t.Fatalf("Expected 5 headlines, got %d", len(got))
	}
	for i, h := range got {
		want := fmt.Sprintf("Bitcoin update %d", i)
		if h.Title != want {
			t.Errorf("Expected %q at %d, got %q", want, i, h.Title)
		}
	}
}

func TestFilterNoLimit(t *testing.T) {
	pool := []types.Headline{{Title: "BTC one"}, {Title: "BTC two"}, {Title: "other"}}
	if got := Filter(pool, "Bitcoin", "btc", 0); len(got) != 2 {
		t.Errorf("Expected 2 headlines, got %d", len(got))
	}
}
