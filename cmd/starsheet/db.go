package main

import (
	"context"
	"fmt"
	"strings"

	"starsheet/internal/config"
	"starsheet/internal/store"
	"starsheet/internal/store/postgres"
	"starsheet/internal/store/sqlite"
)

// openDB picks the store backend from the DSN scheme.
func openDB(ctx context.Context, cfg *config.ProjectConfig) (store.Store, error) {
	dsn := cfg.Database.DSN
	switch {
	case dsn == "":
		return nil, fmt.Errorf("database.dsn is not configured")
	case strings.HasPrefix(dsn, "sqlite://"):
		return sqlite.New(ctx, dsn)
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgres.New(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported database DSN scheme in %q", dsn)
	}
}
