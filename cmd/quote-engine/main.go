// cmd/quote-engine/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"quote-engine/internal/api"
	"quote-engine/internal/catalog"
	"quote-engine/internal/common/config"
	"quote-engine/internal/common/database"
	"quote-engine/internal/common/logger"
	"quote-engine/internal/common/observability"
	"quote-engine/internal/engine/assembler"
	"quote-engine/internal/notify"
	"quote-engine/internal/roof"
	"quote-engine/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting quote engine...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("quote-engine")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Wire the engine ---
	productCatalog := catalog.New(
		pg.DB, redis.Client,
		time.Duration(cfg.Catalog.CacheTTL)*time.Second,
		log,
	)
	quoteAssembler := assembler.New(productCatalog, cfg.Engine, log)
	quoteStore := store.New(pg.DB, log)

	notifier, err := notify.New(ctx, cfg.Notifications, log)
	if err != nil {
		zapLog.Fatal("notifier init failed", zap.Error(err))
	}

	roofClient := roof.NewClient(
		cfg.RoofAnalysis.BaseURL,
		time.Duration(cfg.RoofAnalysis.Timeout)*time.Millisecond,
		log,
	)

	apiServer := api.NewServer(
		quoteAssembler, quoteStore, notifier, roofClient,
		time.Duration(cfg.Server.RequestTimeout)*time.Millisecond,
		log,
	)

	// --- API Server ---
	httpServer := &http.Server{
		Addr:    cfg.Server.ListenAddress,
		Handler: apiServer.Handler(),
	}
	go func() {
		zapLog.Info("API server listening", zap.String("address", cfg.Server.ListenAddress))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("API server failed", zap.Error(err))
		}
	}()

	// --- Ops Server (metrics, pprof, health) ---
	opsMux := http.NewServeMux()
	opsMux.Handle("/metrics", promhttp.Handler())
	opsMux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","time":"%s"}`, time.Now().Format(time.RFC3339))
	})
	opsMux.HandleFunc("/debug/pprof/", pprof.Index)
	opsMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	opsMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	opsMux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	opsServer := &http.Server{
		Addr:    cfg.Server.MetricsAddress,
		Handler: opsMux,
	}
	go func() {
		zapLog.Info("Ops server listening", zap.String("address", cfg.Server.MetricsAddress))
		if err := opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Ops server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("API server shutdown failed", zap.Error(err))
	}
	if err := opsServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Ops server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Quote engine stopped gracefully")
}
