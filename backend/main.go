package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"royaltydesk/m/internal/api"
	"royaltydesk/m/internal/config"
	"royaltydesk/m/internal/dashboard"
	"royaltydesk/m/internal/database"
	"royaltydesk/m/internal/logger"
	"royaltydesk/m/internal/migrations"
	"royaltydesk/m/internal/seed"
	"royaltydesk/m/internal/store"
	"royaltydesk/m/internal/store/memory"
	"royaltydesk/m/internal/store/sqlstore"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		log.Fatal("unable to load catalog", zap.Error(err))
	}

	var tables store.Store
	switch cfg.DataBackend {
	case config.BackendMemory:
		mem, err := memory.New(catalog)
		if err != nil {
			log.Fatal("unable to build memory store", zap.Error(err))
		}
		tables = mem
	default:
		if err := migrations.Run(cfg.DatabaseDSN); err != nil {
			log.Fatal("unable to migrate database", zap.Error(err))
		}
		db, err := database.Connect(cfg.DatabaseDSN)
		if err != nil {
			log.Fatal("unable to open database", zap.Error(err))
		}
		defer db.Close()

		if cfg.SeedSample || cfg.CatalogPath != "" {
			res, err := seed.LoadCatalog(context.Background(), db, catalog)
			if err != nil {
				log.Fatal("unable to seed catalog", zap.Error(err))
			}
			if res.Skipped {
				log.Info("catalog already present, seed skipped")
			} else {
				log.Info("seeded royalty catalog",
					zap.Int("authors", res.Authors),
					zap.Int("books", res.Books),
					zap.Int("sales", res.Sales),
					zap.Int("withdrawals", res.Withdrawals),
				)
			}
		}
		tables = sqlstore.New(db)
	}

	dashboards := dashboard.NewService(tables, log.Named("dashboard"))
	handler := api.New(dashboards, log.Named("http"), api.WithLegacyErrorStatus(cfg.LegacyErrorStatus))

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	log.Info("royalty dashboard server starting",
		zap.String("port", cfg.HTTPPort),
		zap.String("backend", cfg.DataBackend),
		zap.Bool("legacy_error_status", cfg.LegacyErrorStatus),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", zap.Error(err))
		os.Exit(1)
	}
	log.Info("server stopped")
}

func loadCatalog(cfg config.Config) (store.Tables, error) {
	if cfg.CatalogPath != "" {
		return seed.ReadFile(cfg.CatalogPath)
	}
	return seed.Sample()
}
