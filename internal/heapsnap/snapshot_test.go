package heapsnap

import (
	"strings"
	"testing"

	"github.com/brendanddev/simulated-heap/internal/heap"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	h := heap.New(64, heap.WithStrategy(heap.BestFit))

	addr, ok, err := h.Allocate(16)
	if err != nil || !ok {
		t.Fatalf("Allocate: %v, %v", ok, err)
	}

	if err := h.Write(addr, 7); err != nil {
		t.Fatal(err)
	}

	data, err := Save(h)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	restored, err := Load(data, "^1.0.0")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if restored.HeapSize() != h.HeapSize() {
		t.Errorf("HeapSize = %d, want %d", restored.HeapSize(), h.HeapSize())
	}

	if len(restored.Blocks()) != len(h.Blocks()) {
		t.Errorf("got %d blocks, want %d", len(restored.Blocks()), len(h.Blocks()))
	}

	v, err := restored.Read(addr)
	if err != nil || v != 7 {
		t.Errorf("Read(%d) = %d, %v, want 7, nil", addr, v, err)
	}
}

func TestLoadRejectsIncompatibleVersion(t *testing.T) {
	h := heap.New(32)
	h.Allocate(8)

	data, err := Save(h)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Load(data, "^2.0.0"); err == nil {
		t.Fatal("expected an error for an incompatible format version")
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	if _, err := Load([]byte("not json"), "^1.0.0"); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}

func TestLoadRejectsUnknownStrategy(t *testing.T) {
	h := heap.New(32)
	h.Allocate(8)

	data, err := Save(h)
	if err != nil {
		t.Fatal(err)
	}

	data = []byte(strings.Replace(string(data), `"FirstFit"`, `"QuantumFit"`, 1))

	if _, err := Load(data, "^1.0.0"); err == nil {
		t.Fatal("expected an error for an unknown strategy name")
	}
}
