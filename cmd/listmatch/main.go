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
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ishare-cloud/listmatch/internal/config"
	"github.com/ishare-cloud/listmatch/internal/db"
	dbRedis "github.com/ishare-cloud/listmatch/internal/db/redis"
	"github.com/ishare-cloud/listmatch/internal/domain/criteria"
	"github.com/ishare-cloud/listmatch/internal/domain/listing"
	logpkg "github.com/ishare-cloud/listmatch/internal/logger"
	"github.com/ishare-cloud/listmatch/internal/metrics"
	listingrepo "github.com/ishare-cloud/listmatch/internal/repository/listing"
	"github.com/ishare-cloud/listmatch/internal/source/ishare"
	"github.com/ishare-cloud/listmatch/internal/source/postgres"
	chiTransport "github.com/ishare-cloud/listmatch/internal/transport/chi"
	healthuc "github.com/ishare-cloud/listmatch/internal/usecase/health"
	searchuc "github.com/ishare-cloud/listmatch/internal/usecase/search"
	"github.com/ishare-cloud/listmatch/internal/version"
)

// source combines the listing supplier with a reachability check.
type source interface {
	listingrepo.Source
	Ping(ctx context.Context) error
}

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting listmatch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("source_driver", cfg.Source.Driver),
	)

	// Create listing source based on driver
	var src source
	switch cfg.Source.Driver {
	case "ishare":
		src = ishare.New(ishare.Config{
			BaseURL: cfg.Source.IShare.BaseURL,
			Timeout: time.Duration(cfg.Source.IShare.TimeoutSec) * time.Second,
		}, logger)
	case "postgres":
		pg, err := postgres.New(cfg.Source.Postgres.DSN, logger)
		if err != nil {
			logger.Fatal("Failed to create postgres source", zap.Error(err))
		}
		defer func() { _ = pg.Close() }()
		src = pg
	default:
		logger.Fatal("Unknown source driver", zap.String("driver", cfg.Source.Driver))
	}

	// Optional Redis listing cache
	var store db.Store
	if len(cfg.Cache.Addrs) > 0 {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(context.Background(), 10*time.Second); err != nil {
			logger.Fatal("Cache store not ready", zap.Error(err))
		}
		logger.Info("Connected to listing cache")
	}

	// Register engine metrics explicitly (no init())
	metrics.RegisterEngineMetrics()

	policy, err := policyFromConfig(cfg.Engine)
	if err != nil {
		logger.Fatal("Invalid engine policy", zap.Error(err))
	}

	// Repository and use case services
	repo := listingrepo.New(
		src, store,
		time.Duration(cfg.Cache.TTLSec)*time.Second, cfg.Cache.KeyPrefix,
		metrics.ListingCacheTotal, logger,
	)
	searchSvc := searchuc.New(repo, policy, logger)

	var cachePinger healthuc.CachePinger
	if store != nil {
		cachePinger = store
	}
	healthSvc := healthuc.New(cachePinger, src)

	// Create chi server
	server := chiTransport.NewServer(searchSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
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

// policyFromConfig overlays the configured engine settings on the defaults.
func policyFromConfig(cfg config.EngineConfig) (searchuc.Policy, error) {
	p := searchuc.DefaultPolicy()

	if cfg.AvailableStatus != "" {
		p.AvailableStatus = cfg.AvailableStatus
	}
	if cfg.BaseScore != nil {
		p.BaseScore = *cfg.BaseScore
	}
	if cfg.FieldWeight != nil {
		p.FieldWeight = *cfg.FieldWeight
	}
	if cfg.PriceBonusWeight != nil {
		p.PriceBonusWeight = *cfg.PriceBonusWeight
	}
	if cfg.BudgetFraction != nil {
		p.BudgetFraction = *cfg.BudgetFraction
	}
	if cfg.CheapestMargin != nil {
		p.CheapestMargin = *cfg.CheapestMargin
	}

	for name, fields := range cfg.RelaxationOrder {
		d, err := listing.ParseDomain(name)
		if err != nil {
			return searchuc.Policy{}, fmt.Errorf("engine.relaxation_order: %w", err)
		}
		order := make([]criteria.Field, len(fields))
		for i, f := range fields {
			order[i] = criteria.Field(f)
		}
		p.RelaxationOrder[d] = order
	}

	if err := p.Validate(); err != nil {
		return searchuc.Policy{}, fmt.Errorf("engine policy: %w", err)
	}
	return p, nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
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
			if requestID == "" {
				requestID = uuid.NewString()
			}

			// Set X-Request-ID in response header
			w.Header().Set("X-Request-ID", requestID)

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
