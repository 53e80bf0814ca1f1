package snapshot

import (
	"context"

	"trendforge/internal/logger"
)

// loggingMiddleware times every snapshot and logs its outcome
type loggingMiddleware struct {
	svc Service
}

func NewLoggingMiddleware(svc Service) Service {
	return &loggingMiddleware{svc: svc}
}

func (s *loggingMiddleware) Snapshot(ctx context.Context, ticker string) (Report, error) {
	timer := logger.StartOperation(ctx, "snapshot", "ticker", ticker)

	report, err := s.svc.Snapshot(timer.GetContext(), ticker)
	if err != nil {
		timer.EndWithError(err)
		return report, err
	}

	timer.End(
		"resolved_id", report.Query.ResolvedID,
		"price", string(report.Price.Status),
		"chart", string(report.Chart.Status),
		"news", string(report.News.Status),
	)
	return report, nil
}
