package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Stats is a point-in-time snapshot of aggregated search activity.
type Stats struct {
	TotalQueries int64            `json:"total_queries"`
	ZeroResults  int64            `json:"zero_results"`
	CacheHits    int64            `json:"cache_hits"`
	CacheMisses  int64            `json:"cache_misses"`
	ByOperator   map[string]int64 `json:"by_operator"`
	TopTerms     []TermCount      `json:"top_terms"`
	AvgLatencyMs float64          `json:"avg_latency_ms"`
}

// TermCount pairs a query term with how often it has been searched.
type TermCount struct {
	Term  string `json:"term"`
	Count int64  `json:"count"`
}

// Aggregator consumes search events and maintains running statistics.
type Aggregator struct {
	mu         sync.RWMutex
	total      int64
	zero       int64
	cacheHits  int64
	cacheMiss  int64
	latencySum int64
	byOperator map[string]int64
	termCounts map[string]int64
	logger     *slog.Logger
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		byOperator: make(map[string]int64),
		termCounts: make(map[string]int64),
		logger:     slog.Default().With("component", "analytics-aggregator"),
	}
}

// HandleMessage is a kafka.MessageHandler that decodes a SearchEvent and
// folds it into the running statistics.
func (a *Aggregator) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var event SearchEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("decoding search event: %w", err)
	}
	a.Record(event)
	return nil
}

// Record folds one event into the statistics.
func (a *Aggregator) Record(event SearchEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.total++
	a.latencySum += event.LatencyMs
	a.byOperator[event.Operator]++
	if event.TotalHits == 0 {
		a.zero++
	}
	if event.CacheHit {
		a.cacheHits++
	} else {
		a.cacheMiss++
	}
	for _, term := range event.Terms {
		a.termCounts[term]++
	}
}

// Snapshot returns the current statistics with the ten most-searched
// terms.
func (a *Aggregator) Snapshot() Stats {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stats := Stats{
		TotalQueries: a.total,
		ZeroResults:  a.zero,
		CacheHits:    a.cacheHits,
		CacheMisses:  a.cacheMiss,
		ByOperator:   make(map[string]int64, len(a.byOperator)),
	}
	for op, n := range a.byOperator {
		stats.ByOperator[op] = n
	}
	if a.total > 0 {
		stats.AvgLatencyMs = float64(a.latencySum) / float64(a.total)
	}

	terms := make([]TermCount, 0, len(a.termCounts))
	for term, count := range a.termCounts {
		terms = append(terms, TermCount{Term: term, Count: count})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Term < terms[j].Term
	})
	if len(terms) > 10 {
		terms = terms[:10]
	}
	stats.TopTerms = terms
	return stats
}
