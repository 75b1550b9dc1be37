package root

import (
	"fmt"

	"kireiroutine/internal/catalog"
	"kireiroutine/internal/config"
	"kireiroutine/internal/logger"
	"kireiroutine/internal/planner"
	"kireiroutine/internal/storage"
)

func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	logger.SetVerbose(verbose || cfg.Verbose)
	logger.Debug("config: %s (engine=%s db=%s)", path, cfg.Engine, cfg.DBPath)
	return cfg, nil
}

func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", cfg.CatalogPath, err)
	}
	logger.Debug("catalog: %s", cfg.CatalogPath)
	return cat, nil
}

func openPlanner() (*planner.Planner, config.Config, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, nil, err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, cfg, nil, err
	}
	kv, err := storage.Open(cfg.Engine, cfg.DBPath)
	if err != nil {
		return nil, cfg, nil, fmt.Errorf("open storage: %w", err)
	}
	cleanup := func() {
		if err := kv.Close(); err != nil {
			logger.Warn("close storage: %v", err)
		}
	}
	return planner.New(cat, kv, nil), cfg, cleanup, nil
}
