package main

import (
	"os"

	"github.com/stocknest/internal/config"
	"github.com/stocknest/internal/logger"
	"github.com/stocknest/internal/models"
	"github.com/stocknest/internal/provider"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.App.Mode, cfg.Log.ToLoggerOptions())

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		logger.Errorw("db_init_failed", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	if err := models.AutoMigrate(); err != nil {
		logger.Errorw("db_migrate_failed", "error", err)
		os.Exit(1)
	}

	c := provider.NewContainer(cfg)

	// persists the configured default on first run
	rate, err := c.Setting.ConversionRate()
	if err != nil {
		logger.Errorw("conversion_rate_init_failed", "error", err)
		os.Exit(1)
	}

	logger.Infow("stocknest_ready",
		"driver", cfg.Database.Driver,
		"media_root", cfg.Media.Root,
		"conversion_rate", rate.String(),
	)
}
