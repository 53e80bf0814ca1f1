package market

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trendforge/internal/api"
	"trendforge/internal/types"
)

func newTestGecko(t *testing.T, handler http.HandlerFunc) *CoinGecko {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := api.NewClient(api.WithBaseURL(srv.URL), api.WithTimeout(2*time.Second))
	return New(client, "USD", []string{"usd", "CAD"})
}

func TestSpotPrice(t *testing.T) {
	g := newTestGecko(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/simple/price" {
			t.Errorf("Expected /simple/price, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("vs_currencies"); got != "usd,cad" {
			t.Errorf("Expected vs_currencies usd,cad, got %q", got)
		}
		w.Write([]byte(`{"bitcoin":{"usd":64250.12,"cad":88010.5}}`))
	})

	q, err := g.SpotPrice(context.Background(), "bitcoin")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if q["usd"].String() != "64250.12" {
		t.Errorf("Expected usd 64250.12, got %s", q["usd"])
	}
	if q["cad"].String() != "88010.5" {
		t.Errorf("Expected cad 88010.5, got %s", q["cad"])
	}
}

func TestSpotPricePartialAndMissing(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		wantLen int
	}{
		{"null cad dropped", `{"bitcoin":{"usd":1.5,"cad":null}}`, false, 1},
		{"id missing", `{}`, true, 0},
		{"no currencies", `{"bitcoin":{}}`, true, 0},
		{"malformed", `not json`, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGecko(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})
			q, err := g.SpotPrice(context.Background(), "bitcoin")
			if tt.wantErr {
				if !errors.Is(err, types.ErrUpstreamUnavailable) {
					t.Fatalf("Expected ErrUpstreamUnavailable, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if len(q) != tt.wantLen {
				t.Errorf("Expected %d currencies, got %d", tt.wantLen, len(q))
			}
		})
	}
}

func TestSpotPriceServerError(t *testing.T) {
	g := newTestGecko(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	_, err := g.SpotPrice(context.Background(), "bitcoin")
	if !errors.Is(err, types.ErrUpstreamUnavailable) {
		t.Fatalf("Expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestHistorySkipsMalformedRows(t *testing.T) {
	g := newTestGecko(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/bitcoin/market_chart" {
			t.Errorf("Expected market_chart path, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("days"); got != "30" {
			t.Errorf("Expected days=30, got %q", got)
		}
		if got := r.URL.Query().Get("vs_currency"); got != "usd" {
			t.Errorf("Expected vs_currency=usd, got %q", got)
		}
		w.Write([]byte(`{"prices":[[1700000000000,100.5],[1700003600000,null],[1700007200000],[1700010800000,102]]}`))
	})

	raw, err := g.History(context.Background(), "bitcoin", 30)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(raw) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(raw))
	}
	if raw[0].TimestampMs != 1700000000000 || raw[0].Price != 100.5 {
		t.Errorf("Expected first row (1700000000000, 100.5), got %+v", raw[0])
	}
	if raw[1].Price != 102 {
		t.Errorf("Expected second price 102, got %v", raw[1].Price)
	}
}

func TestHistoryEmpty(t *testing.T) {
	g := newTestGecko(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"prices":[]}`))
	})
	_, err := g.History(context.Background(), "bitcoin", 30)
	if !errors.Is(err, types.ErrUpstreamUnavailable) {
		t.Fatalf("Expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestMetadata(t *testing.T) {
	g := newTestGecko(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"cardano","name":"Cardano","symbol":"ada"}`))
	})
	meta, err := g.Metadata(context.Background(), "cardano")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if meta.Name != "Cardano" || meta.Symbol != "ADA" {
		t.Errorf("Expected Cardano/ADA, got %s/%s", meta.Name, meta.Symbol)
	}
}

func TestMetadataFallback(t *testing.T) {
	g := newTestGecko(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})
	meta, err := g.Metadata(context.Background(), "dogecoin")
	if err == nil {
		t.Fatal("Expected error")
	}
	if meta.Name != "dogecoin" || meta.Symbol != "DOGECOIN" {
		t.Errorf("Expected fallback dogecoin/DOGECOIN, got %s/%s", meta.Name, meta.Symbol)
	}
}

func TestCoinList(t *testing.T) {
	g := newTestGecko(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/list" {
			t.Errorf("Expected /coins/list, got %s", r.URL.Path)
		}
		w.Write([]byte(`[{"id":"bitcoin","symbol":"btc","name":"Bitcoin"},{"id":"","symbol":"x","name":"X"}]`))
	})
	coins, err := g.CoinList(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(coins) != 1 || coins[0].ID != "bitcoin" {
		t.Errorf("Expected only bitcoin, got %+v", coins)
	}
}
