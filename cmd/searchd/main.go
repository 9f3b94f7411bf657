// Command searchd builds an in-memory inverted index from the configured
// document source at startup and serves boolean keyword queries over HTTP,
// with optional Redis result caching, Prometheus metrics, and Kafka-backed
// search analytics.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/retriva/retriva/internal/analytics"
	"github.com/retriva/retriva/internal/searcher"
	"github.com/retriva/retriva/internal/searcher/cache"
	"github.com/retriva/retriva/internal/searcher/handler"
	"github.com/retriva/retriva/internal/source"
	"github.com/retriva/retriva/pkg/config"
	"github.com/retriva/retriva/pkg/health"
	"github.com/retriva/retriva/pkg/kafka"
	"github.com/retriva/retriva/pkg/logger"
	"github.com/retriva/retriva/pkg/metrics"
	"github.com/retriva/retriva/pkg/middleware"
	"github.com/retriva/retriva/pkg/postgres"
	pkgredis "github.com/retriva/retriva/pkg/redis"
	"github.com/retriva/retriva/pkg/resilience"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting search service", "port", cfg.Server.Port, "source", cfg.Source.Type)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Port); err != nil {
				slog.Error("metrics server error", "error", err)
			}
		}()
	}

	src, pgClient, err := buildSource(ctx, cfg)
	if err != nil {
		slog.Error("failed to construct document source", "error", err)
		os.Exit(1)
	}
	if pgClient != nil {
		defer pgClient.Close()
	}

	defaultOp, err := searcher.ParseOperator(cfg.Search.DefaultOperator)
	if err != nil {
		slog.Error("invalid default operator", "value", cfg.Search.DefaultOperator, "error", err)
		os.Exit(1)
	}

	s := searcher.New(src, cfg.Source.MaxDocuments)
	buildStart := time.Now()
	ix, store, err := s.Index(ctx)
	if err != nil {
		slog.Error("initial index build failed", "error", err)
		os.Exit(1)
	}
	slog.Info("index ready",
		"docs", ix.DocCount(),
		"terms", ix.TermCount(),
		"corpus_docs", store.Len(),
		"build_time", time.Since(buildStart).Round(time.Millisecond),
	)
	if m != nil {
		m.DocsIndexedTotal.Add(float64(ix.DocCount()))
		m.IndexTerms.Set(float64(ix.TermCount()))
		m.IndexBuildDuration.Observe(time.Since(buildStart).Seconds())
	}

	var queryCache *cache.QueryCache
	var redisClient *pkgredis.Client
	redisClient, err = pkgredis.NewClient(cfg.Redis)
	if err != nil {
		slog.Warn("redis unavailable, search caching disabled", "error", err)
	} else {
		defer redisClient.Close()
		queryCache = cache.New(redisClient, cfg.Redis)
		slog.Info("search cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)
	}

	aggregator := analytics.NewAggregator()
	var collector *analytics.Collector
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.SearchEvents)
		defer producer.Close()
		collector = analytics.NewCollector(producer, 10000)
		collector.Start(ctx)
		defer collector.Close()

		consumer := kafka.NewConsumer(cfg.Kafka, cfg.Kafka.Topics.SearchEvents, aggregator.HandleMessage)
		go func() {
			if err := consumer.Start(ctx); err != nil {
				slog.Error("analytics consumer error", "error", err)
			}
		}()
		slog.Info("search analytics enabled", "topic", cfg.Kafka.Topics.SearchEvents)
	}
	analyticsH := analytics.NewHandler(aggregator)

	checker := health.NewChecker()
	checker.Register("index", func(ctx context.Context) health.ComponentHealth {
		if ix.DocCount() > 0 {
			return health.ComponentHealth{
				Status:  health.StatusUp,
				Message: fmt.Sprintf("%d docs, %d terms", ix.DocCount(), ix.TermCount()),
			}
		}
		return health.ComponentHealth{Status: health.StatusDegraded, Message: "index is empty"}
	})
	checker.Register("redis", func(ctx context.Context) health.ComponentHealth {
		if redisClient == nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: "not configured"}
		}
		if err := redisClient.Ping(ctx); err != nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
		}
		return health.ComponentHealth{Status: health.StatusUp}
	})
	if pgClient != nil {
		checker.Register("postgres", func(ctx context.Context) health.ComponentHealth {
			if err := pgClient.Ping(ctx); err != nil {
				return health.ComponentHealth{Status: health.StatusDown, Message: err.Error()}
			}
			return health.ComponentHealth{Status: health.StatusUp}
		})
	}

	h := handler.New(s, queryCache, collector, m, defaultOp, cfg.Search.DefaultLimit, cfg.Search.MaxResults)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/search", h.Search)
	mux.HandleFunc("GET /api/v1/cache/stats", h.CacheStats)
	mux.HandleFunc("POST /api/v1/cache/invalidate", h.CacheInvalidate)
	mux.HandleFunc("GET /api/v1/analytics", analyticsH.Stats)
	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())

	var chain http.Handler = mux
	if m != nil {
		chain = middleware.Metrics(m)(chain)
	}
	chain = middleware.Timeout(cfg.Server.WriteTimeout)(chain)
	chain = middleware.RequestID(chain)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      chain,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("search service listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("search service stopped")
}

// buildSource constructs the configured document source. For the postgres
// source the connection is established with retry, and the client is
// returned so the caller can close it and register health checks.
func buildSource(ctx context.Context, cfg *config.Config) (source.Source, *postgres.Client, error) {
	switch cfg.Source.Type {
	case "", "static":
		return source.NewStatic(source.SampleDocuments()), nil, nil
	case "file":
		if cfg.Source.Path == "" {
			return nil, nil, fmt.Errorf("file source requires source.path")
		}
		return source.NewFile(cfg.Source.Path), nil, nil
	case "postgres":
		if cfg.Source.Table == "" {
			return nil, nil, fmt.Errorf("postgres source requires source.table")
		}
		var client *postgres.Client
		err := resilience.Retry(ctx, "postgres-connect", resilience.RetryConfig{MaxAttempts: 5}, func() error {
			var connErr error
			client, connErr = postgres.New(cfg.Postgres)
			return connErr
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		return source.NewPostgres(client, cfg.Source.Table), client, nil
	default:
		return nil, nil, fmt.Errorf("unknown source type %q", cfg.Source.Type)
	}
}
