// Package handler exposes the search engine over HTTP: query evaluation
// with operator and ranking options, cache statistics, and cache
// invalidation.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/retriva/retriva/internal/analytics"
	"github.com/retriva/retriva/internal/indexer/tokenizer"
	"github.com/retriva/retriva/internal/searcher"
	"github.com/retriva/retriva/internal/searcher/cache"
	apperrors "github.com/retriva/retriva/pkg/errors"
	"github.com/retriva/retriva/pkg/logger"
	"github.com/retriva/retriva/pkg/metrics"
	"github.com/retriva/retriva/pkg/middleware"
	"github.com/retriva/retriva/pkg/tracing"
)

// SearchBackend evaluates queries; implemented by *searcher.Searcher.
type SearchBackend interface {
	Search(ctx context.Context, query string, opts searcher.Options) (*searcher.Result, error)
}

// Handler wires search requests through the cache, backend, metrics, and
// analytics collector.
type Handler struct {
	backend      SearchBackend
	cache        *cache.QueryCache
	collector    *analytics.Collector
	metrics      *metrics.Metrics
	defaultOp    searcher.Operator
	defaultLimit int
	maxResults   int
	logger       *slog.Logger
}

// New creates a Handler. cache, collector, and m may be nil to disable
// caching, analytics, and metrics respectively. defaultLimit applies when
// a request carries no limit parameter; maxResults caps both.
func New(backend SearchBackend, queryCache *cache.QueryCache, collector *analytics.Collector, m *metrics.Metrics, defaultOp searcher.Operator, defaultLimit, maxResults int) *Handler {
	return &Handler{
		backend:      backend,
		cache:        queryCache,
		collector:    collector,
		metrics:      m,
		defaultOp:    defaultOp,
		defaultLimit: defaultLimit,
		maxResults:   maxResults,
		logger:       slog.Default().With("component", "search-handler"),
	}
}

// Search handles GET /api/v1/search?q=...&op=AND|OR&rank=true&limit=N.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	query := r.URL.Query().Get("q")

	opts := searcher.Options{Op: h.defaultOp}
	if opParam := r.URL.Query().Get("op"); opParam != "" {
		op, err := searcher.ParseOperator(opParam)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "op must be AND or OR")
			return
		}
		opts.Op = op
	}
	if rankParam := r.URL.Query().Get("rank"); rankParam != "" {
		rank, err := strconv.ParseBool(rankParam)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "rank must be a boolean")
			return
		}
		opts.Rank = rank
	}
	limit := h.defaultLimit
	if limit <= 0 || limit > h.maxResults {
		limit = h.maxResults
	}
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed < 1 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
		if limit > h.maxResults {
			limit = h.maxResults
		}
	}

	ctx, span := tracing.StartSpan(ctx, "search", middleware.GetRequestID(ctx))
	span.SetAttr("query", query)
	span.SetAttr("operator", opts.Op.String())

	var result *searcher.Result
	var err error
	cacheHit := false
	if h.cache != nil {
		result, cacheHit, err = h.cache.GetOrCompute(ctx, query, opts, func() (*searcher.Result, error) {
			return h.backend.Search(ctx, query, opts)
		})
	} else {
		result, err = h.backend.Search(ctx, query, opts)
	}
	span.End()

	if err != nil {
		span.SetAttr("error", err.Error())
		span.Log()
		log.Error("search execution failed", "query", query, "error", err)
		h.recordQuery(opts, "error", cacheHit, start, 0)
		h.writeError(w, apperrors.HTTPStatusCode(err), "search failed")
		return
	}

	truncated := *result
	if len(truncated.Hits) > limit {
		truncated.Hits = truncated.Hits[:limit]
	}

	latencyMs := time.Since(start).Milliseconds()
	log.Info("search completed",
		"query", query,
		"operator", opts.Op.String(),
		"ranked", opts.Rank,
		"total_hits", result.TotalHits,
		"returned", len(truncated.Hits),
		"cache_hit", cacheHit,
		"latency_ms", latencyMs,
	)
	span.Log()

	outcome := "hit"
	if result.TotalHits == 0 {
		outcome = "zero_result"
	}
	h.recordQuery(opts, outcome, cacheHit, start, len(truncated.Hits))

	if h.collector != nil {
		eventType := analytics.EventCacheMiss
		if cacheHit {
			eventType = analytics.EventCacheHit
		}
		h.collector.Track(analytics.SearchEvent{
			Type:      eventType,
			Query:     query,
			Operator:  opts.Op.String(),
			Ranked:    opts.Rank,
			Terms:     tokenizer.Tokenize(query),
			TotalHits: result.TotalHits,
			Returned:  len(truncated.Hits),
			LatencyMs: latencyMs,
			CacheHit:  cacheHit,
			Timestamp: time.Now().UTC(),
			RequestID: middleware.GetRequestID(ctx),
		})
	}

	h.writeJSON(w, http.StatusOK, &truncated)
}

// CacheStats handles GET /api/v1/cache/stats.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}

	hits, misses := h.cache.Stats()
	total := hits + misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"hits":     hits,
		"misses":   misses,
		"total":    total,
		"hit_rate": fmt.Sprintf("%.1f%%", hitRate),
	})
}

// CacheInvalidate handles POST /api/v1/cache/invalidate.
func (h *Handler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeError(w, http.StatusServiceUnavailable, "caching is disabled")
		return
	}

	if err := h.cache.Invalidate(r.Context()); err != nil {
		h.logger.Error("cache invalidation failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "cache invalidation failed")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

func (h *Handler) recordQuery(opts searcher.Options, outcome string, cacheHit bool, start time.Time, returned int) {
	if h.metrics == nil {
		return
	}
	h.metrics.SearchQueriesTotal.WithLabelValues(opts.Op.String(), outcome).Inc()
	cacheStatus := "miss"
	if cacheHit {
		cacheStatus = "hit"
		h.metrics.CacheHitsTotal.Inc()
	} else if h.cache != nil {
		h.metrics.CacheMissesTotal.Inc()
	}
	h.metrics.SearchLatency.WithLabelValues(cacheStatus).Observe(time.Since(start).Seconds())
	h.metrics.SearchResultsCount.Observe(float64(returned))
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
