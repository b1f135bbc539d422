package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/brokertools/directory/internal/config"
	"github.com/brokertools/directory/internal/content"
	"github.com/brokertools/directory/internal/content/cache"
	"github.com/brokertools/directory/internal/content/sanity"
	"github.com/brokertools/directory/internal/db"
	"github.com/brokertools/directory/internal/db/memory"
	dbRedis "github.com/brokertools/directory/internal/db/redis"
	logpkg "github.com/brokertools/directory/internal/logger"
	"github.com/brokertools/directory/internal/metrics"
	"github.com/brokertools/directory/internal/repository/listing"
	chiTransport "github.com/brokertools/directory/internal/transport/chi"
	comparisonuc "github.com/brokertools/directory/internal/usecase/comparison"
	healthuc "github.com/brokertools/directory/internal/usecase/health"
	searchuc "github.com/brokertools/directory/internal/usecase/search"
	"github.com/brokertools/directory/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg := config.MustLoad(env)

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting directory API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("content_project", cfg.Content.ProjectID),
		zap.String("content_dataset", cfg.Content.Dataset),
		zap.String("cache_driver", cfg.Cache.Driver),
	)

	// Register content metrics explicitly (no init())
	metrics.RegisterContentMetrics()

	client, err := sanity.NewClient(&sanity.Config{
		ProjectID:         cfg.Content.ProjectID,
		Dataset:           cfg.Content.Dataset,
		APIVersion:        cfg.Content.APIVersion,
		Token:             cfg.Content.Token,
		UseCDN:            cfg.Content.UseCDN,
		Timeout:           time.Duration(cfg.Content.TimeoutSec) * time.Second,
		RequestsPerSecond: cfg.Content.RequestsPerSecond,
		Burst:             cfg.Content.Burst,
		Logger:            logger,
	})
	if err != nil {
		logger.Fatal("Failed to create content client", zap.Error(err))
	}

	ctx := context.Background()
	store, err := openCacheStore(ctx, &cfg.Cache)
	if err != nil {
		logger.Fatal("Failed to open cache store", zap.Error(err))
	}

	// Fetcher chain: HTTP client -> cache (optional)
	var fetcher content.Fetcher = client
	var cachePinger healthuc.CachePinger
	if store != nil {
		defer store.Close()
		fetcher = cache.New(client, store,
			time.Duration(cfg.Cache.TTLSec)*time.Second, cfg.Cache.KeyPrefix,
			metrics.ContentCacheTotal, logger)
		cachePinger = store
		logger.Info("Content cache enabled",
			zap.String("driver", cfg.Cache.Driver),
			zap.Int("ttl_sec", cfg.Cache.TTLSec),
		)
	}

	repo := listing.New(fetcher)

	searchSvc := searchuc.New(repo)
	comparisonSvc := comparisonuc.New(repo, comparisonuc.Options{
		MaxAlternatives:     cfg.Comparison.MaxAlternatives,
		SummaryAlternatives: cfg.Comparison.SummaryAlternatives,
		SummaryFeatures:     cfg.Comparison.SummaryFeatures,
		MaxProviders:        cfg.Comparison.MaxProviders,
		SuggestedProducts:   cfg.Comparison.SuggestedProducts,
	})
	healthSvc := healthuc.New(client, cachePinger)

	server := chiTransport.NewServer(searchSvc, comparisonSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: cfg.HTTP.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}).Handler)
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// openCacheStore creates the cache backend for the configured driver.
// Returns a nil store when caching is disabled.
func openCacheStore(ctx context.Context, cfg *config.CacheConfig) (db.Store, error) {
	ttl := time.Duration(cfg.TTLSec) * time.Second
	switch cfg.Driver {
	case config.CacheNone:
		return nil, nil
	case config.CacheMemory:
		return memory.NewStore(ttl, 2*ttl), nil
	case config.CacheRedis:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("create redis store: %w", err)
		}
		if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
			store.Close()
			return nil, fmt.Errorf("redis not ready: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.CodeInternalError,
						Message: "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
