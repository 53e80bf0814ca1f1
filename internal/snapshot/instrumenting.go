package snapshot

import (
	"context"
	"strconv"
	"time"

	"github.com/go-kit/kit/metrics"
)

// instrumentingMiddleware wraps Service and records request and section metrics
type instrumentingMiddleware struct {
	reqCount    metrics.Counter
	reqDuration metrics.Histogram
	sections    metrics.Counter
	svc         Service
}

func (s *instrumentingMiddleware) Snapshot(ctx context.Context, ticker string) (report Report, err error) {
	defer func(start time.Time) {
		s.recordMetrics("Snapshot", start, err)
		if err == nil {
			s.recordSections(report)
		}
	}(time.Now())
	return s.svc.Snapshot(ctx, ticker)
}

func (s *instrumentingMiddleware) recordMetrics(method string, startTime time.Time, err error) {
	labels := []string{
		"method", method,
		"error", strconv.FormatBool(err != nil),
	}
	s.reqCount.With(labels...).Add(1)
	s.reqDuration.With(labels...).Observe(time.Since(startTime).Seconds())
}

func (s *instrumentingMiddleware) recordSections(r Report) {
	for section, status := range map[string]Status{
		"price": r.Price.Status,
		"chart": r.Chart.Status,
		"news":  r.News.Status,
	} {
		s.sections.With("section", section, "status", string(status)).Add(1)
	}
}

// NewInstrumentingMiddleware counts requests by error and section outcomes by status.
// reqCount and reqDuration take labels method and error; sections takes section and status.
func NewInstrumentingMiddleware(reqCount metrics.Counter, reqDuration metrics.Histogram, sections metrics.Counter, svc Service) Service {
	return &instrumentingMiddleware{
		reqCount:    reqCount,
		reqDuration: reqDuration,
		sections:    sections,
		svc:         svc,
	}
}
