package catalog

import (
	"context"

	"github.com/lisongmechlab/lsml-sub001/internal/config"
)

// Open loads the catalog from the first configured source: Postgres, then
// SQLite, then YAML.
func Open(ctx context.Context, cfg config.CatalogConfig) (*Memory, error) {
	switch {
	case cfg.DatabaseURL != "":
		pool, err := ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer pool.Close()
		return NewPGStore(pool).Load(ctx)
	case cfg.SQLitePath != "":
		return LoadSQLite(ctx, cfg.SQLitePath)
	default:
		return LoadYAML(cfg.YAMLPath)
	}
}
