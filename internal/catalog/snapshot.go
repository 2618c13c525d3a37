package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/p-n-ai/pai-manual/internal/manual"
	"github.com/p-n-ai/pai-manual/internal/platform/cache"
)

// snapshotVersion is bumped whenever the snapshot encoding changes.
const snapshotVersion = 1

// Snapshots stores serialised catalogs.
type Snapshots interface {
	Get(ctx context.Context) (*manual.StaticCatalog[string], bool, error)
	Put(ctx context.Context, cat manual.Catalog[string]) error
}

// SnapshotCache keeps a JSON snapshot of the catalog in Redis so that server instances
// can skip the PostgreSQL read on startup.
type SnapshotCache struct {
	store *cache.Cache
	key   string
	ttl   time.Duration
}

// NewSnapshotCache creates a snapshot cache. name distinguishes manuals sharing a Redis;
// a non-positive ttl uses cache.DefaultTTL.
func NewSnapshotCache(store *cache.Cache, name string, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		store: store,
		key:   SnapshotKey(name),
		ttl:   cache.TTL(ttl),
	}
}

// SnapshotKey returns the Redis key holding the snapshot of the named manual.
func SnapshotKey(name string) string {
	return cache.Key("catalog", fmt.Sprintf("v%d", snapshotVersion), name)
}

// Get returns the cached catalog. The boolean is false on a cache miss.
func (c *SnapshotCache) Get(ctx context.Context) (*manual.StaticCatalog[string], bool, error) {
	data, ok, err := c.store.Get(ctx, c.key)
	if err != nil || !ok {
		return nil, false, err
	}

	cat, err := decodeSnapshot(data)
	if err != nil {
		return nil, false, err
	}
	return cat, true, nil
}

// Put stores cat, replacing any previous snapshot.
func (c *SnapshotCache) Put(ctx context.Context, cat manual.Catalog[string]) error {
	data, err := json.Marshal(Documents(cat))
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return c.store.Set(ctx, c.key, data, c.ttl)
}

func decodeSnapshot(data []byte) (*manual.StaticCatalog[string], error) {
	var docs []SectionDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return FromDocuments(docs)
}

// LoadCached returns the snapshot when present, otherwise calls load and stores its
// result. Cache failures are logged and never prevent loading from the source.
func LoadCached(ctx context.Context, snaps Snapshots, load func(context.Context) (*manual.StaticCatalog[string], error)) (*manual.StaticCatalog[string], error) {
	if snaps == nil {
		return load(ctx)
	}

	cat, ok, err := snaps.Get(ctx)
	switch {
	case err != nil:
		slog.Warn("catalog snapshot unavailable", "error", err)
	case ok:
		slog.Info("catalog loaded from snapshot", "pages", len(cat.Flatten()))
		return cat, nil
	}

	cat, err = load(ctx)
	if err != nil {
		return nil, err
	}
	if err := snaps.Put(ctx, cat); err != nil {
		slog.Warn("storing catalog snapshot failed", "error", err)
	}
	return cat, nil
}
