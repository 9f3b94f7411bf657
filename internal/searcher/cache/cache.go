// Package cache provides a Redis-backed cache for search results, with
// singleflight suppression so concurrent identical queries compute once.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/retriva/retriva/internal/indexer/tokenizer"
	"github.com/retriva/retriva/internal/searcher"
	"github.com/retriva/retriva/pkg/config"
	pkgredis "github.com/retriva/retriva/pkg/redis"
)

const keyPrefix = "search:"

// QueryCache caches search results in Redis keyed by a normalised form of
// the query and its options. Because the index and corpus are immutable
// for the lifetime of a run, cached entries never go stale within one run.
type QueryCache struct {
	client *pkgredis.Client
	cfg    config.RedisConfig
	group  singleflight.Group
	logger *slog.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a QueryCache over the given Redis client.
func New(client *pkgredis.Client, cfg config.RedisConfig) *QueryCache {
	return &QueryCache{
		client: client,
		cfg:    cfg,
		logger: slog.Default().With("component", "query-cache"),
	}
}

// Get returns the cached result for the query/options pair, if present.
func (c *QueryCache) Get(ctx context.Context, query string, opts searcher.Options) (*searcher.Result, bool) {
	key := c.buildKey(query, opts)
	data, err := c.client.Get(ctx, key)
	if err != nil {
		if pkgredis.IsNilError(err) {
			c.misses.Add(1)
			return nil, false
		}
		c.logger.Error("cache get failed", "key", key, "error", err)
		c.misses.Add(1)
		return nil, false
	}
	var result searcher.Result
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	c.logger.Debug("cache hit", "query", query, "key", key)
	return &result, true
}

// Set stores a result under the query/options pair with the configured TTL.
func (c *QueryCache) Set(ctx context.Context, query string, opts searcher.Options, result *searcher.Result) {
	key := c.buildKey(query, opts)
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.cfg.CacheTTL); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

// GetOrCompute returns the cached result or computes and stores it,
// collapsing concurrent identical queries into a single computation. The
// second return value reports whether the result came from cache.
func (c *QueryCache) GetOrCompute(
	ctx context.Context,
	query string,
	opts searcher.Options,
	computeFn func() (*searcher.Result, error),
) (*searcher.Result, bool, error) {
	if result, ok := c.Get(ctx, query, opts); ok {
		return result, true, nil
	}
	key := c.buildKey(query, opts)
	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		if result, ok := c.Get(ctx, query, opts); ok {
			return result, nil
		}
		result, err := computeFn()
		if err != nil {
			return nil, err
		}
		c.Set(ctx, query, opts, result)
		return result, nil
	})
	if err != nil {
		return nil, false, err
	}
	return val.(*searcher.Result), false, nil
}

// Invalidate removes every cached search result.
func (c *QueryCache) Invalidate(ctx context.Context) error {
	pattern := keyPrefix + "*"
	deleted, err := c.client.FlushByPattern(ctx, pattern)
	if err != nil {
		return fmt.Errorf("invalidating cache: %w", err)
	}
	c.logger.Info("cache invalidated", "keys_deleted", deleted)
	return nil
}

// Stats returns the in-process hit and miss counters.
func (c *QueryCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// buildKey hashes the normalised query and options into a Redis key.
func (c *QueryCache) buildKey(query string, opts searcher.Options) string {
	raw := fmt.Sprintf("%s:op=%s:rank=%t", normalizeQuery(query), opts.Op, opts.Rank)
	hash := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}

// normalizeQuery produces a canonical key form: tokenized terms sorted, so
// queries differing only in term order or duplicates share an entry.
// Sorting is safe because intersection and union are commutative.
func normalizeQuery(query string) string {
	terms := tokenizer.Tokenize(query)
	sorted := make([]string, len(terms))
	copy(sorted, terms)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
