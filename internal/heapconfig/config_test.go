package heapconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brendanddev/simulated-heap/internal/heap"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Size != 4096 || cfg.Strategy != "FirstFit" {
		t.Errorf("got %+v", cfg)
	}

	cfg = DefaultConfig(WithSize(128), WithStrategy("BestFit"))
	if cfg.Size != 128 || cfg.Strategy != "BestFit" {
		t.Errorf("got %+v", cfg)
	}
}

func TestParseStrategy(t *testing.T) {
	cases := map[string]heap.Strategy{
		"FirstFit": heap.FirstFit,
		"BestFit":  heap.BestFit,
		"WorstFit": heap.WorstFit,
		"NextFit":  heap.NextFit,
	}

	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			got, ok := ParseStrategy(name)
			if !ok || got != want {
				t.Errorf("ParseStrategy(%q) = %v, %v", name, got, ok)
			}
		})
	}

	t.Run("Unknown", func(t *testing.T) {
		if _, ok := ParseStrategy("bogus"); ok {
			t.Error("expected ok=false for an unrecognised strategy name")
		}
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "heap.json")

	if err := os.WriteFile(path, []byte(`{"size":256,"strategy":"WorstFit"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Size != 256 || cfg.Strategy != "WorstFit" {
		t.Errorf("got %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
