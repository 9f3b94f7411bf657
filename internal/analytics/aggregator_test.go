package analytics

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func searchEvent(query string, op string, hits int, latency int64, cacheHit bool, terms ...string) SearchEvent {
	return SearchEvent{
		Type:      EventSearch,
		Query:     query,
		Operator:  op,
		Terms:     terms,
		TotalHits: hits,
		LatencyMs: latency,
		CacheHit:  cacheHit,
		Timestamp: time.Now().UTC(),
	}
}

func TestAggregatorRecordAndSnapshot(t *testing.T) {
	a := NewAggregator()
	a.Record(searchEvent("van eyck", "OR", 3, 10, false, "van", "eyck"))
	a.Record(searchEvent("art", "OR", 2, 20, true, "art"))
	a.Record(searchEvent("zzz", "AND", 0, 30, false, "zzz"))

	stats := a.Snapshot()
	if stats.TotalQueries != 3 {
		t.Errorf("TotalQueries = %d, want 3", stats.TotalQueries)
	}
	if stats.ZeroResults != 1 {
		t.Errorf("ZeroResults = %d, want 1", stats.ZeroResults)
	}
	if stats.CacheHits != 1 || stats.CacheMisses != 2 {
		t.Errorf("cache hits/misses = %d/%d, want 1/2", stats.CacheHits, stats.CacheMisses)
	}
	if stats.ByOperator["OR"] != 2 || stats.ByOperator["AND"] != 1 {
		t.Errorf("ByOperator = %v", stats.ByOperator)
	}
	if stats.AvgLatencyMs != 20 {
		t.Errorf("AvgLatencyMs = %v, want 20", stats.AvgLatencyMs)
	}
}

func TestAggregatorTopTermsOrdering(t *testing.T) {
	a := NewAggregator()
	a.Record(searchEvent("q1", "OR", 1, 1, false, "van", "eyck"))
	a.Record(searchEvent("q2", "OR", 1, 1, false, "van"))
	a.Record(searchEvent("q3", "OR", 1, 1, false, "art", "eyck"))

	stats := a.Snapshot()
	if len(stats.TopTerms) != 3 {
		t.Fatalf("got %d top terms, want 3", len(stats.TopTerms))
	}
	// Counts: van=2, eyck=2, art=1; equal counts order alphabetically.
	if stats.TopTerms[0].Term != "eyck" || stats.TopTerms[1].Term != "van" {
		t.Errorf("top terms = %v", stats.TopTerms)
	}
	if stats.TopTerms[2].Term != "art" {
		t.Errorf("third term = %q, want art", stats.TopTerms[2].Term)
	}
}

func TestAggregatorHandleMessage(t *testing.T) {
	a := NewAggregator()
	payload, err := json.Marshal(searchEvent("art", "OR", 2, 5, false, "art"))
	if err != nil {
		t.Fatalf("marshaling event: %v", err)
	}
	if err := a.HandleMessage(context.Background(), []byte("search"), payload); err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}
	if got := a.Snapshot().TotalQueries; got != 1 {
		t.Errorf("TotalQueries = %d, want 1", got)
	}
}

func TestAggregatorHandleMessageRejectsGarbage(t *testing.T) {
	a := NewAggregator()
	if err := a.HandleMessage(context.Background(), nil, []byte("{not json")); err == nil {
		t.Fatal("expected a decode error")
	}
}
