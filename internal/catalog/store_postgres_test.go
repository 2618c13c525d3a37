package catalog_test

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/p-n-ai/pai-manual/internal/catalog"
	"github.com/p-n-ai/pai-manual/internal/manual"
	"github.com/p-n-ai/pai-manual/internal/platform/database"
)

func TestNewPostgresSource_NilPool(t *testing.T) {
	if _, err := catalog.NewPostgresSource(nil); err == nil {
		t.Fatal("expected error for nil pool")
	}
}

func TestPostgresSource_ImportAndLoad(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	ctx := context.Background()
	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("manual"),
		postgres.WithUsername("manual"),
		postgres.WithPassword("manual"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	url, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("ConnectionString() error = %v", err)
	}
	db, err := database.New(ctx, database.Options{URL: url, MaxConns: 4, MinConns: 1})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(db.Close)

	src, err := catalog.NewPostgresSource(db.Pool)
	if err != nil {
		t.Fatalf("NewPostgresSource() error = %v", err)
	}
	if err := src.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	want, err := catalog.LoadDir(setupTestManual(t))
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if err := src.Import(ctx, want); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	// A second import replaces rather than duplicates.
	if err := src.Import(ctx, want); err != nil {
		t.Fatalf("second Import() error = %v", err)
	}

	got, err := src.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	gotFlat, wantFlat := got.Flatten(), want.Flatten()
	if len(gotFlat) != len(wantFlat) {
		t.Fatalf("loaded %d pages, want %d", len(gotFlat), len(wantFlat))
	}
	for i := range wantFlat {
		if gotFlat[i] != wantFlat[i] {
			t.Errorf("page[%d] = %+v, want %+v", i, gotFlat[i], wantFlat[i])
		}
	}

	_, sub, ok := got.Lookup("campaigns", "create")
	if !ok {
		t.Fatal("campaigns/create missing after load")
	}
	if sub.Content[manual.LevelAvanzado] == "" {
		t.Error("avanzado content lost in round trip")
	}
	if len(sub.SearchKeywords) != 2 || sub.SearchKeywords[1] != "envío" {
		t.Errorf("keywords = %v", sub.SearchKeywords)
	}
}
