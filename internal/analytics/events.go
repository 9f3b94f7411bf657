// Package analytics tracks search activity: a Collector buffers events and
// publishes them to Kafka, and an Aggregator consumes them back into
// in-process statistics served by the stats Handler.
package analytics

import "time"

// EventType classifies a search event.
type EventType string

const (
	EventSearch     EventType = "search"
	EventCacheHit   EventType = "cache_hit"
	EventCacheMiss  EventType = "cache_miss"
	EventZeroResult EventType = "zero_result"
)

// SearchEvent is the Kafka payload describing one executed query.
type SearchEvent struct {
	Type      EventType `json:"type"`
	Query     string    `json:"query"`
	Operator  string    `json:"operator"`
	Ranked    bool      `json:"ranked"`
	Terms     []string  `json:"terms"`
	TotalHits int       `json:"total_hits"`
	Returned  int       `json:"returned"`
	LatencyMs int64     `json:"latency_ms"`
	CacheHit  bool      `json:"cache_hit"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
}
