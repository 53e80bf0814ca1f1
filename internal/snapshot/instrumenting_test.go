package snapshot

import (
	"context"
	"strings"
	"testing"

	"github.com/go-kit/kit/metrics"
)

// recorder is shared by every labelled child so totals can be checked per label set
type recorder struct {
	counts  map[string]float64
	observe map[string]int
}

func newRecorder() *recorder {
	return &recorder{counts: map[string]float64{}, observe: map[string]int{}}
}

type fakeCounter struct {
	rec *recorder
	lvs []string
}

func (c *fakeCounter) With(labelValues ...string) metrics.Counter {
	return &fakeCounter{rec: c.rec, lvs: append(append([]string{}, c.lvs...), labelValues...)}
}

func (c *fakeCounter) Add(delta float64) {
	c.rec.counts[strings.Join(c.lvs, ",")] += delta
}

type fakeHistogram struct {
	rec *recorder
	lvs []string
}

func (h *fakeHistogram) With(labelValues ...string) metrics.Histogram {
	return &fakeHistogram{rec: h.rec, lvs: append(append([]string{}, h.lvs...), labelValues...)}
}

func (h *fakeHistogram) Observe(value float64) {
	h.rec.observe[strings.Join(h.lvs, ",")]++
}

func TestInstrumentingMiddleware(t *testing.T) {
	reqs, sections := newRecorder(), newRecorder()
	base := NewService(healthyMarket(), fakeResolver{"btc": "bitcoin"}, &fakeNews{related: scored("BTC up")}, Config{})
	svc := NewInstrumentingMiddleware(&fakeCounter{rec: reqs}, &fakeHistogram{rec: reqs}, &fakeCounter{rec: sections}, base)

	if _, err := svc.Snapshot(context.Background(), "btc"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	svc.Snapshot(context.Background(), "")

	if got := reqs.counts["method,Snapshot,error,false"]; got != 1 {
		t.Errorf("Expected 1 successful request, got %v", got)
	}
	if got := reqs.counts["method,Snapshot,error,true"]; got != 1 {
		t.Errorf("Expected 1 failed request, got %v", got)
	}
	if got := reqs.observe["method,Snapshot,error,false"]; got != 1 {
		t.Errorf("Expected 1 duration observation, got %d", got)
	}
	for _, key := range []string{"section,price,status,ok", "section,chart,status,ok", "section,news,status,ok"} {
		if sections.counts[key] != 1 {
			t.Errorf("Expected %s counted once, got %v", key, sections.counts[key])
		}
	}
}

func TestLoggingMiddlewarePassesThrough(t *testing.T) {
	base := NewService(healthyMarket(), fakeResolver{"btc": "bitcoin"}, &fakeNews{related: scored("BTC up")}, Config{})
	r, err := NewLoggingMiddleware(base).Snapshot(context.Background(), "btc")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if r.Query.ResolvedID != "bitcoin" {
		t.Errorf("Expected bitcoin, got %s", r.Query.ResolvedID)
	}
	if _, err := NewLoggingMiddleware(base).Snapshot(context.Background(), ""); err == nil {
		t.Error("Expected error for empty ticker")
	}
}
