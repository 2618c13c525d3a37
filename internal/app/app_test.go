package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/p-n-ai/pai-manual/internal/platform/config"
)

func writeManual(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"manual.yaml": "groups:\n  - intro.yaml\n",
		"intro.yaml": `sections:
  - id: intro
    title: Introducción
    subsections:
      - id: what
        title: Qué es
        content:
          basico: Simulador de campañas de phishing.
`,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestOpen_YAML(t *testing.T) {
	cfg := &config.Config{Catalog: config.CatalogConfig{Source: config.SourceYAML, Path: writeManual(t)}}

	rt, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rt.Close()

	if _, _, ok := rt.Catalog.Lookup("intro", "what"); !ok {
		t.Error("intro/what missing")
	}
	if len(rt.Checks()) != 0 {
		t.Errorf("yaml source should have no readiness checks, got %d", len(rt.Checks()))
	}
}

func TestOpen_YAMLCacheIgnored(t *testing.T) {
	cfg := &config.Config{
		Catalog: config.CatalogConfig{Source: config.SourceYAML, Path: writeManual(t)},
		Cache:   config.CacheConfig{Enabled: true, URL: "redis://127.0.0.1:1"},
	}

	rt, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rt.Close()

	if rt.Cache != nil {
		t.Error("cache should not be opened for the yaml source")
	}
}

func TestOpen_MissingDir(t *testing.T) {
	cfg := &config.Config{Catalog: config.CatalogConfig{Source: config.SourceYAML, Path: filepath.Join(t.TempDir(), "nope")}}
	if _, err := Open(context.Background(), cfg); err == nil {
		t.Fatal("expected error for missing content directory")
	}
}

func TestOpen_BadDatabaseURL(t *testing.T) {
	cfg := &config.Config{
		Catalog:  config.CatalogConfig{Source: config.SourcePostgres},
		Database: config.DatabaseConfig{URL: "postgres://localhost:notaport/manual"},
	}
	if _, err := Open(context.Background(), cfg); err == nil {
		t.Fatal("expected error for invalid database URL")
	}
}
