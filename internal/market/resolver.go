package market

import (
	"context"
	"strings"
	"sync"
	"time"

	"trendforge/internal/interfaces"
	"trendforge/internal/logger"
	"trendforge/internal/types"
)

// CatalogSource supplies the full list of known assets
type CatalogSource interface {
	CoinList(ctx context.Context) ([]types.CoinMeta, error)
}

// catalogIndex answers lookups in the order of the upstream list:
// symbol matches first, then id or name, first listed entry wins.
type catalogIndex struct {
	bySymbol   map[string]string
	byIDOrName map[string]string
}

func newCatalogIndex(coins []types.CoinMeta) *catalogIndex {
	idx := &catalogIndex{
		bySymbol:   make(map[string]string, len(coins)),
		byIDOrName: make(map[string]string, len(coins)*2),
	}
	for _, c := range coins {
		putFirst(idx.bySymbol, c.Symbol, c.ID)
		putFirst(idx.byIDOrName, c.ID, c.ID)
		putFirst(idx.byIDOrName, c.Name, c.ID)
	}
	return idx
}

func putFirst(m map[string]string, key, id string) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return
	}
	if _, exists := m[key]; !exists {
		m[key] = id
	}
}

func (idx *catalogIndex) lookup(q string) (string, bool) {
	if id, ok := idx.bySymbol[q]; ok {
		return id, true
	}
	id, ok := idx.byIDOrName[q]
	return id, ok
}

// catalogCache holds the indexed catalog until it expires
type catalogCache struct {
	mu        sync.RWMutex
	index     *catalogIndex
	fetchedAt time.Time
	ttl       time.Duration
}

func (c *catalogCache) get() (*catalogIndex, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.index == nil || time.Since(c.fetchedAt) > c.ttl {
		return nil, false
	}
	return c.index, true
}

func (c *catalogCache) set(idx *catalogIndex) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.index = idx
	c.fetchedAt = time.Now()
}

// Resolver resolves tickers through a fixed alias table and then the cached catalog
type Resolver struct {
	source   CatalogSource
	priority map[string]string
	cache    *catalogCache
	loadMu   sync.Mutex
}

var _ interfaces.Resolver = (*Resolver)(nil)

func NewResolver(source CatalogSource, priority map[string]string, ttl time.Duration) *Resolver {
	lowered := make(map[string]string, len(priority))
	for k, v := range priority {
		lowered[strings.ToLower(k)] = v
	}
	return &Resolver{
		source:   source,
		priority: lowered,
		cache:    &catalogCache{ttl: ttl},
	}
}

// Resolve returns the canonical id for raw, or false when nothing matches or the
// catalog cannot be fetched. A failed fetch is not cached.
func (r *Resolver) Resolve(ctx context.Context, raw string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(raw))
	if q == "" {
		return "", false
	}
	if id, ok := r.priority[q]; ok {
		return id, true
	}

	idx, err := r.catalog(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load asset catalog", err, "query", q)
		return "", false
	}
	return idx.lookup(q)
}

func (r *Resolver) catalog(ctx context.Context) (*catalogIndex, error) {
	if idx, ok := r.cache.get(); ok {
		return idx, nil
	}

	r.loadMu.Lock()
	defer r.loadMu.Unlock()

	// another request may have loaded it while we waited
	if idx, ok := r.cache.get(); ok {
		return idx, nil
	}

	coins, err := r.source.CoinList(ctx)
	if err != nil {
		return nil, err
	}
	idx := newCatalogIndex(coins)
	r.cache.set(idx)
	logger.Info(ctx, "Asset catalog loaded", "coins", len(coins))
	return idx, nil
}
