// Package app opens the catalog named by the configuration together with the services
// backing it. Both the server and the CLI start from here.
package app

import (
	"context"
	"log/slog"

	"github.com/p-n-ai/pai-manual/internal/catalog"
	"github.com/p-n-ai/pai-manual/internal/manual"
	"github.com/p-n-ai/pai-manual/internal/platform/cache"
	"github.com/p-n-ai/pai-manual/internal/platform/config"
	"github.com/p-n-ai/pai-manual/internal/platform/database"
	"github.com/p-n-ai/pai-manual/internal/web"
)

// Runtime is a loaded catalog and the connections it was loaded through.
type Runtime struct {
	Catalog *manual.StaticCatalog[string]
	DB      *database.DB
	Cache   *cache.Cache
}

// Open loads the catalog from the configured source. For the postgres source a Redis
// snapshot is consulted first when the cache is enabled; an unreachable cache only
// costs the snapshot.
func Open(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	rt := &Runtime{}

	var load func(context.Context) (*manual.StaticCatalog[string], error)
	switch cfg.Catalog.Source {
	case config.SourcePostgres:
		db, err := OpenDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		rt.DB = db

		src, err := catalog.NewPostgresSource(db.Pool)
		if err != nil {
			rt.Close()
			return nil, err
		}
		load = src.Load
	default:
		dir := cfg.Catalog.Path
		load = func(context.Context) (*manual.StaticCatalog[string], error) {
			return catalog.LoadDir(dir)
		}
	}

	var snaps catalog.Snapshots
	if cfg.Cache.Enabled && cfg.UsesDatabase() {
		c, err := cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			slog.Warn("snapshot cache unavailable", "error", err)
		} else {
			rt.Cache = c
			snaps = catalog.NewSnapshotCache(c, cfg.Catalog.Name, cfg.Cache.TTL)
		}
	}

	cat, err := catalog.LoadCached(ctx, snaps, load)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.Catalog = cat

	slog.Info("catalog ready",
		"source", cfg.Catalog.Source,
		"sections", len(cat.ListSections()),
		"pages", len(cat.Flatten()),
	)
	return rt, nil
}

// OpenDatabase connects to the configured PostgreSQL database.
func OpenDatabase(ctx context.Context, cfg *config.Config) (*database.DB, error) {
	return database.New(ctx, database.Options{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
}

// Checks returns the open connections for readiness reporting.
func (r *Runtime) Checks() []web.HealthChecker {
	var checks []web.HealthChecker
	if r.DB != nil {
		checks = append(checks, r.DB)
	}
	if r.Cache != nil {
		checks = append(checks, r.Cache)
	}
	return checks
}

// Close releases the connections.
func (r *Runtime) Close() {
	if r.DB != nil {
		r.DB.Close()
	}
	if r.Cache != nil {
		if err := r.Cache.Close(); err != nil {
			slog.Warn("closing cache", "error", err)
		}
	}
}
