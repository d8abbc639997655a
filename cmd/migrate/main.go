package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/qs3c/castquest_server/config"
	"github.com/qs3c/castquest_server/internal/database"
	"github.com/qs3c/castquest_server/internal/pkg/logger"
	"github.com/qs3c/castquest_server/internal/pkg/resetclock"
	"github.com/qs3c/castquest_server/internal/repository"
	"github.com/qs3c/castquest_server/internal/service"
)

var (
	dryRun = flag.Bool("dry-run", false, "Only print pending schema changes, don't migrate")
	prune  = flag.Bool("prune-cast-limits", false, "Delete daily cast counters older than 30 days after migrating")
)

func main() {
	flag.Parse()

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Server.Mode, cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.Database.Driver == "memory" {
		zlog.Info("Memory store configured, nothing to migrate")
		return
	}

	db, err := database.NewPostgres(&cfg.Database)
	if err != nil {
		zlog.Fatal("Failed to connect database", zap.Error(err))
	}

	if *dryRun {
		migrator := db.Migrator()
		for _, m := range database.Models {
			zlog.Info("Table status",
				zap.String("model", fmt.Sprintf("%T", m)),
				zap.Bool("exists", migrator.HasTable(m)))
		}
		zlog.Info("Dry run, no changes applied")
		return
	}

	if err := database.AutoMigrate(db); err != nil {
		zlog.Fatal("Failed to migrate database", zap.Error(err))
	}
	zlog.Info("Schema migrated", zap.Int("models", len(database.Models)))

	if *prune {
		clock, err := resetclock.New(cfg.Ledger.Timezone)
		if err != nil {
			zlog.Fatal("Invalid ledger timezone", zap.Error(err))
		}
		repos := repository.NewRepositories(db)
		limits := service.NewCastLimitService(repos.CastLimits, clock, service.LedgerHooks{}, zlog)

		deleted, err := limits.PruneOld(context.Background())
		if err != nil {
			zlog.Fatal("Failed to prune cast limits", zap.Error(err))
		}
		zlog.Info("Pruned cast limits", zap.Int64("deleted", deleted))
	}
}
