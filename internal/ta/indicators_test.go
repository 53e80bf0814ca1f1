package ta

import (
	"math"
	"testing"

	"trendforge/internal/types"
)

func seriesOf(prices ...float64) Series {
	raw := make([]types.RawPrice, len(prices))
	for i, p := range prices {
		raw[i] = types.RawPrice{TimestampMs: int64(i) * 3600_000, Price: p}
	}
	return BuildSeries(raw)
}

func linear(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func TestRSIWarmup(t *testing.T) {
	f := Compute(seriesOf(linear(20, 100, 1)...), DefaultParams())

	for i := 0; i < 13; i++ {
		if f.RSI[i].Valid {
			t.Errorf("Expected RSI absent at index %d", i)
		}
	}
	for i := 13; i < 20; i++ {
		if !f.RSI[i].Valid {
			t.Fatalf("Expected RSI defined at index %d", i)
		}
	}
}

func TestRSIShortSeries(t *testing.T) {
	f := Compute(seriesOf(linear(13, 100, 1)...), DefaultParams())
	for i, v := range f.RSI {
		if v.Valid {
			t.Errorf("Expected RSI absent at index %d for short series", i)
		}
	}
}

func TestRSISaturatesWithoutLosses(t *testing.T) {
	f := Compute(seriesOf(linear(30, 100, 2)...), DefaultParams())
	for i := 13; i < 30; i++ {
		if f.RSI[i].Float64 != 100 {
			t.Errorf("Expected RSI 100 at %d, got %f", i, f.RSI[i].Float64)
		}
	}
}

func TestRSIZeroWithoutGains(t *testing.T) {
	f := Compute(seriesOf(linear(20, 100, -1)...), DefaultParams())
	if got := f.RSI[19].Float64; got != 0 {
		t.Errorf("Expected RSI 0 for falling prices, got %f", got)
	}
}

func TestRSIFlatWindow(t *testing.T) {
	prices := make([]float64, 15)
	for i := range prices {
		prices[i] = 7
	}
	f := Compute(seriesOf(prices...), DefaultParams())
	if got := f.RSI[14].Float64; got != 50 {
		t.Errorf("Expected RSI 50 for flat prices, got %f", got)
	}
}

func TestRSIKnownValues(t *testing.T) {
	prices := make([]float64, 16)
	for i := range prices {
		prices[i] = 1 + float64(i%2)
	}
	f := Compute(seriesOf(prices...), DefaultParams())

	// window 0..13 holds 7 gains and 6 losses of 1
	want := 100 - 100/(1+7.0/6.0)
	if got := f.RSI[13].Float64; math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected RSI %f at 13, got %f", want, got)
	}
	if got := f.RSI[14].Float64; math.Abs(got-50) > 1e-9 {
		t.Errorf("Expected RSI 50 at 14, got %f", got)
	}
}

func TestRSIBounded(t *testing.T) {
	prices := []float64{44, 44.3, 44.1, 44.2, 43.6, 44.3, 44.8, 45.1, 45.4, 45.8, 46.1, 45.9, 46.3, 46.1, 45.6, 46.3, 46.2, 46.0, 46.4, 46.2, 45.6, 46.2}
	f := Compute(seriesOf(prices...), DefaultParams())
	for i, v := range f.RSI {
		if v.Valid && (v.Float64 < 0 || v.Float64 > 100) {
			t.Errorf("RSI out of range at %d: %f", i, v.Float64)
		}
	}
}

func TestEMASeededWithFirstValue(t *testing.T) {
	got := EMA([]float64{1, 2, 3}, 3)
	want := []float64{1, 1.5, 2.25}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("Expected EMA %f at %d, got %f", want[i], i, got[i])
		}
	}
}

func TestMACDDefinedEverywhere(t *testing.T) {
	f := Compute(seriesOf(linear(5, 10, 1)...), DefaultParams())
	for i := 0; i < 5; i++ {
		if !f.MACD[i].Valid || !f.Signal[i].Valid {
			t.Errorf("Expected MACD and signal defined at %d", i)
		}
	}
	if f.MACD[0].Float64 != 0 || f.Signal[0].Float64 != 0 {
		t.Errorf("Expected zero MACD/signal at first point, got %f/%f", f.MACD[0].Float64, f.Signal[0].Float64)
	}
}

func TestMACDConstantPrices(t *testing.T) {
	prices := make([]float64, 40)
	for i := range prices {
		prices[i] = 3
	}
	f := Compute(seriesOf(prices...), DefaultParams())
	for i := range prices {
		if f.MACD[i].Float64 != 0 || f.Signal[i].Float64 != 0 {
			t.Fatalf("Expected flat MACD at %d, got %f/%f", i, f.MACD[i].Float64, f.Signal[i].Float64)
		}
	}
}

func TestComputeEmpty(t *testing.T) {
	f := Compute(Series{}, DefaultParams())
	if len(f.RSI) != 0 || len(f.MACD) != 0 || len(f.Signal) != 0 {
		t.Error("Expected no indicator values for empty series")
	}
	if f.MACDConvergedFrom() != 33 {
		t.Errorf("Expected convergence index 33, got %d", f.MACDConvergedFrom())
	}
}

func TestComputeZeroParamsUseDefaults(t *testing.T) {
	f := Compute(seriesOf(linear(20, 1, 1)...), Params{})
	if f.Params != DefaultParams() {
		t.Errorf("Expected default params, got %+v", f.Params)
	}
}
