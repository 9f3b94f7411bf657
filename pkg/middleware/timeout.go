package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Timeout bounds each request with a context deadline. A handler that has
// not produced a response when the deadline expires gets cut off with a
// 504, and any late write from it is discarded.
func Timeout(limit time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), limit)
			defer cancel()

			gw := &guardedWriter{inner: w}
			finished := make(chan struct{})
			go func() {
				next.ServeHTTP(gw, r.WithContext(ctx))
				close(finished)
			}()

			select {
			case <-finished:
			case <-ctx.Done():
				if gw.seal() {
					slog.Warn("request exceeded deadline",
						"method", r.Method,
						"path", r.URL.Path,
						"limit", limit,
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusGatewayTimeout)
					w.Write([]byte(`{"error":"request timeout"}`))
				}
			}
		})
	}
}

// guardedWriter serialises the response between the handler goroutine and
// the timeout path, so exactly one of them writes.
type guardedWriter struct {
	inner  http.ResponseWriter
	mu     sync.Mutex
	sealed bool
	wrote  bool
}

// seal claims the response for the timeout path. It fails if the handler
// already started writing.
func (g *guardedWriter) seal() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.wrote {
		return false
	}
	g.sealed = true
	return true
}

func (g *guardedWriter) Header() http.Header {
	return g.inner.Header()
}

func (g *guardedWriter) WriteHeader(code int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.sealed {
		return
	}
	g.wrote = true
	g.inner.WriteHeader(code)
}

func (g *guardedWriter) Write(b []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.sealed {
		return len(b), nil
	}
	g.wrote = true
	return g.inner.Write(b)
}
