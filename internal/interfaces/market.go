package interfaces

import (
	"context"

	"trendforge/internal/types"
)

type MarketData interface {
	SpotPrice(ctx context.Context, id string) (types.Quote, error)
	History(ctx context.Context, id string, days int) ([]types.RawPrice, error)
	Metadata(ctx context.Context, id string) (types.CoinMeta, error)
}

// Resolver maps a free-form ticker or name to a canonical asset id
type Resolver interface {
	Resolve(ctx context.Context, raw string) (string, bool)
}
