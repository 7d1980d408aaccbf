package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/maxviazov/reporting-dashboard/internal/config"
	"github.com/maxviazov/reporting-dashboard/internal/logger"
	"github.com/maxviazov/reporting-dashboard/internal/repository"
)

type runtime struct {
	cfg *config.Config
	log zerolog.Logger
	db  *repository.Repository
}

// bootstrap loads config, builds the logger and opens the pool. Callers must call close.
func bootstrap(ctx context.Context, configPath string) (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.Logger.ServiceName == "" {
		cfg.Logger.ServiceName = cfg.App.Name
	}
	if cfg.Logger.ServiceVersion == "" {
		cfg.Logger.ServiceVersion = cfg.App.Version
	}
	if cfg.Logger.Env == "" && cfg.App.Env != "test" {
		cfg.Logger.Env = cfg.App.Env
	}

	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := repository.New(ctx, cfg, &log)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &runtime{cfg: cfg, log: log, db: db}, nil
}

func (r *runtime) close() {
	r.db.Close()
}
