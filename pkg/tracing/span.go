// Package tracing records timed spans for the query path and emits them
// as structured slog records. A span carries the request id as its trace
// id, so span logs join up with request logs.
package tracing

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type spanCtxKey struct{}

// Span is one timed operation. Child spans share the parent's trace id
// and are emitted with their nesting depth when the root span is logged.
type Span struct {
	name    string
	traceID string
	started time.Time
	elapsed time.Duration

	mu       sync.Mutex
	attrs    []slog.Attr
	children []*Span
}

// StartSpan begins a root span and stores it in the returned context.
// traceID is typically the request id.
func StartSpan(ctx context.Context, name string, traceID string) (context.Context, *Span) {
	s := &Span{
		name:    name,
		traceID: traceID,
		started: time.Now(),
	}
	return context.WithValue(ctx, spanCtxKey{}, s), s
}

// StartChildSpan begins a span nested under the one carried by ctx. When
// ctx holds no span the child behaves as a detached root.
func StartChildSpan(ctx context.Context, name string) (context.Context, *Span) {
	child := &Span{
		name:    name,
		started: time.Now(),
	}
	if parent := SpanFromContext(ctx); parent != nil {
		child.traceID = parent.traceID
		parent.mu.Lock()
		parent.children = append(parent.children, child)
		parent.mu.Unlock()
	}
	return context.WithValue(ctx, spanCtxKey{}, child), child
}

// SpanFromContext returns the span carried by ctx, or nil.
func SpanFromContext(ctx context.Context) *Span {
	s, _ := ctx.Value(spanCtxKey{}).(*Span)
	return s
}

// SetAttr attaches an attribute that will appear on the span's log record.
func (s *Span) SetAttr(key string, value any) {
	s.mu.Lock()
	s.attrs = append(s.attrs, slog.Any(key, value))
	s.mu.Unlock()
}

// End freezes the span's duration. Ending twice keeps the first duration.
func (s *Span) End() {
	if s.elapsed == 0 {
		s.elapsed = time.Since(s.started)
	}
}

// Log emits the span and its children, depth first, one record each.
func (s *Span) Log() {
	s.log(0)
}

func (s *Span) log(depth int) {
	record := make([]slog.Attr, 0, len(s.attrs)+4)
	record = append(record,
		slog.String("trace_id", s.traceID),
		slog.String("span", s.name),
		slog.Int64("duration_ms", s.elapsed.Milliseconds()),
		slog.Int("depth", depth),
	)
	s.mu.Lock()
	record = append(record, s.attrs...)
	children := s.children
	s.mu.Unlock()

	slog.LogAttrs(context.Background(), slog.LevelInfo, "span", record...)
	for _, child := range children {
		child.log(depth + 1)
	}
}
