// Package main provides the standalone equipment and inventory engine
// daemon. It wires together configuration, database, content catalog, and
// the periodic state checkpoint.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/ltroylove/CrimsionMud3-sub001/internal/config"
	"github.com/ltroylove/CrimsionMud3-sub001/internal/game/inventory"
	"github.com/ltroylove/CrimsionMud3-sub001/internal/observability"
	"github.com/ltroylove/CrimsionMud3-sub001/internal/server"
	"github.com/ltroylove/CrimsionMud3-sub001/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	checkpoint := flag.Duration("checkpoint", time.Minute, "interval between state checkpoints")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	// Initialize logger
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting equipment engine")

	// Connect to PostgreSQL
	ctx := context.Background()
	dbStart := time.Now()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	logger.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("database", cfg.Database.Name),
		zap.Duration("elapsed", time.Since(dbStart)),
	)

	// Load content
	catalog, err := inventory.LoadCatalog(cfg.Content.ItemsDir)
	if err != nil {
		logger.Fatal("loading item templates", zap.Error(err))
	}
	logger.Info("content loaded",
		zap.Int("templates", len(catalog.All())),
		zap.String("items_dir", cfg.Content.ItemsDir),
	)

	// Restore persisted state. The daemon only checkpoints the registry;
	// game-facing managers are constructed by the embedding server.
	reg := inventory.NewRegistry()
	items := postgres.NewInventoryRepository(pool.DB())
	if err := items.LoadInto(ctx, reg, catalog); err != nil {
		logger.Fatal("restoring item instances", zap.Error(err))
	}
	logger.Info("state restored", zap.Int("instances", len(reg.AllInstances())))

	// Wire lifecycle
	lifecycle := server.NewLifecycle(logger)

	lifecycle.Add("postgres", &server.FuncService{
		StartFn: func() error {
			// Pool is already connected; just keep it alive
			for {
				time.Sleep(30 * time.Second)
				if err := pool.Health(ctx, 5*time.Second); err != nil {
					logger.Warn("database health check failed", zap.Error(err))
				}
			}
		},
		StopFn: func() {
			pool.Close()
		},
	})

	stopCh := make(chan struct{})
	lifecycle.Add("checkpoint", &server.FuncService{
		StartFn: func() error {
			ticker := time.NewTicker(*checkpoint)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					if err := items.SaveAll(ctx, reg); err != nil {
						logger.Error("checkpoint failed", zap.Error(err))
					}
				case <-stopCh:
					return nil
				}
			}
		},
		StopFn: func() {
			close(stopCh)
			// Final checkpoint so a clean shutdown loses nothing.
			if err := items.SaveAll(ctx, reg); err != nil {
				logger.Error("final checkpoint failed", zap.Error(err))
			}
		},
	})

	logger.Info("engine initialized", zap.Duration("startup", time.Since(start)))

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("engine error", zap.Error(err))
	}
}
