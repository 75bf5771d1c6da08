/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the Gastei ledger server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (optional) and environment configuration
  2. Set up the logger
  3. Open the configured key-value backend (memory/sqlite/redis)
  4. Build the ledger and load its state from the store
  5. Start the HTTP server with graceful shutdown

ENVIRONMENT:
  ADDR            Listen address            (default :8080)
  DATA_BACKEND    memory | sqlite | redis   (default sqlite)
  SQLITE_DB_PATH  SQLite database path      (default ./data/gastei.db)
  REDIS_ADDR      Redis host:port           (default localhost:6379)
  CORS_ORIGINS    Comma-separated origins
  LOG_LEVEL       logrus level              (default info)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the store
  4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - internal/config: Environment parsing
*/
package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/suxen/gastei/api"
	"github.com/suxen/gastei/internal/config"
	"github.com/suxen/gastei/internal/logging"
	"github.com/suxen/gastei/ledger"
	"github.com/suxen/gastei/ledger/kv"
	"github.com/suxen/gastei/store/redis"
	"github.com/suxen/gastei/store/sqlite"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	store, closer, err := openStore(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to open store")
	}
	if closer != nil {
		defer closer.Close()
	}

	ldg := ledger.New(store, log)
	if err := ldg.Load(context.Background()); err != nil {
		log.WithError(err).Fatal("failed to load ledger state")
	}

	handler := api.NewHandler(ldg, store, log)
	router := api.NewRouter(handler, cfg.CORSOrigins)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.Addr).WithField("backend", cfg.DataBackend).
			Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}
	log.Info("server stopped")
}

// openStore builds the configured kv.Store. The second return value is
// non-nil when the backend holds resources to release on exit.
func openStore(cfg *config.Config) (kv.Store, io.Closer, error) {
	switch cfg.DataBackend {
	case config.BackendMemory:
		return kv.NewMemory(), nil, nil

	case config.BackendRedis:
		s, err := redis.New(cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil

	default: // sqlite
		if dir := filepath.Dir(cfg.SQLiteDBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, err
			}
		}
		s, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	}
}
