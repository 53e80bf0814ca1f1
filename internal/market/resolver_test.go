package market

import (
	"context"
	"errors"
	"testing"
	"time"

	"trendforge/internal/types"
)

type fakeCatalog struct {
	coins []types.CoinMeta
	err   error
	calls int
}

func (f *fakeCatalog) CoinList(ctx context.Context) ([]types.CoinMeta, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.coins, nil
}

func testCoins() []types.CoinMeta {
	return []types.CoinMeta{
		{ID: "uniswap", Symbol: "uni", Name: "Uniswap"},
		{ID: "uni-fake", Symbol: "uni", Name: "Uni Fake"},
		{ID: "pepe", Symbol: "pepe", Name: "Pepe"},
		{ID: "chainlink", Symbol: "link", Name: "Chainlink"},
		{ID: "link-two", Symbol: "chainlink", Name: "Link Two"},
	}
}

func TestResolvePriorityFirst(t *testing.T) {
	cat := &fakeCatalog{coins: testCoins()}
	r := NewResolver(cat, map[string]string{"BTC": "bitcoin"}, time.Hour)

	id, ok := r.Resolve(context.Background(), "  btc ")
	if !ok || id != "bitcoin" {
		t.Errorf("Expected bitcoin, got %q (%v)", id, ok)
	}
	if cat.calls != 0 {
		t.Errorf("Expected no catalog fetch for priority alias, got %d", cat.calls)
	}
}

func TestResolveCatalogOrder(t *testing.T) {
	r := NewResolver(&fakeCatalog{coins: testCoins()}, nil, time.Hour)

	tests := []struct {
		query string
		want  string
	}{
		{"UNI", "uniswap"},        // first listed symbol wins
		{"Pepe", "pepe"},          // symbol
		{"uniswap", "uniswap"},    // id
		{"uni fake", "uni-fake"},  // name
		{"chainlink", "link-two"}, // symbol match beats id match
	}
	for _, tt := range tests {
		id, ok := r.Resolve(context.Background(), tt.query)
		if !ok || id != tt.want {
			t.Errorf("Resolve(%q): expected %s, got %q (%v)", tt.query, tt.want, id, ok)
		}
	}
}

func TestResolveUnknown(t *testing.T) {
	r := NewResolver(&fakeCatalog{coins: testCoins()}, nil, time.Hour)
	if id, ok := r.Resolve(context.Background(), "notacoin"); ok {
		t.Errorf("Expected unresolved, got %q", id)
	}
	if _, ok := r.Resolve(context.Background(), "   "); ok {
		t.Error("Expected blank input unresolved")
	}
}

func TestResolveCachesCatalog(t *testing.T) {
	cat := &fakeCatalog{coins: testCoins()}
	r := NewResolver(cat, nil, time.Hour)
	r.Resolve(context.Background(), "uni")
	r.Resolve(context.Background(), "pepe")
	if cat.calls != 1 {
		t.Errorf("Expected 1 catalog fetch, got %d", cat.calls)
	}
}

func TestResolveRefetchesAfterTTL(t *testing.T) {
	cat := &fakeCatalog{coins: testCoins()}
	r := NewResolver(cat, nil, time.Millisecond)
	r.Resolve(context.Background(), "uni")
	time.Sleep(5 * time.Millisecond)
	r.Resolve(context.Background(), "uni")
	if cat.calls != 2 {
		t.Errorf("Expected 2 catalog fetches, got %d", cat.calls)
	}
}

func TestResolveFetchFailureNotCached(t *testing.T) {
	cat := &fakeCatalog{err: errors.New("boom")}
	r := NewResolver(cat, nil, time.Hour)
	if _, ok := r.Resolve(context.Background(), "uni"); ok {
		t.Fatal("Expected unresolved on catalog failure")
	}

	cat.err = nil
	cat.coins = testCoins()
	id, ok := r.Resolve(context.Background(), "uni")
	if !ok || id != "uniswap" {
		t.Errorf("Expected uniswap after recovery, got %q (%v)", id, ok)
	}
	if cat.calls != 2 {
		t.Errorf("Expected 2 catalog fetches, got %d", cat.calls)
	}
}
