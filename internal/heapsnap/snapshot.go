// Package heapsnap persists and restores simulated-heap state as
// versioned JSON, checking each snapshot's format version against a
// semver constraint on load.
package heapsnap

import (
	"encoding/json"
	"fmt"

	semver "github.com/Masterminds/semver/v3"

	"github.com/brendanddev/simulated-heap/internal/heap"
	"github.com/brendanddev/simulated-heap/internal/heapconfig"
)

// FormatVersion is the semver tag embedded in every snapshot this
// package writes.
const FormatVersion = "1.0.0"

// blockEntry is the on-disk shape of one heap.BlockSnapshot.
type blockEntry struct {
	Start      int   `json:"start"`
	Size       int   `json:"size"`
	Free       bool  `json:"free"`
	References []int `json:"references,omitempty"`
}

// document is the on-disk shape of a full heap snapshot.
type document struct {
	FormatVersion string       `json:"format_version"`
	Size          int          `json:"size"`
	Strategy      string       `json:"strategy"`
	Buffer        []byte       `json:"buffer"`
	Blocks        []blockEntry `json:"blocks"`
}

// Save serializes h's current state — buffer, block list, and strategy
// — to versioned JSON.
func Save(h *heap.Heap) ([]byte, error) {
	blocks := h.Snapshot()

	doc := document{
		FormatVersion: FormatVersion,
		Size:          h.HeapSize(),
		Strategy:      h.Strategy().String(),
		Buffer:        h.Buffer(),
		Blocks:        make([]blockEntry, len(blocks)),
	}

	for i, b := range blocks {
		doc.Blocks[i] = blockEntry{
			Start:      b.Start,
			Size:       b.Size,
			Free:       b.Free,
			References: b.References,
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("heapsnap: marshal: %w", err)
	}

	return data, nil
}

// Load parses a snapshot previously produced by Save and reconstructs
// the Heap it describes, provided the snapshot's FormatVersion satisfies
// the compat constraint (e.g. "^1.0.0"). A snapshot written by an
// incompatible format version is rejected rather than guessed at.
func Load(data []byte, compat string) (*heap.Heap, error) {
	var doc document

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("heapsnap: unmarshal: %w", err)
	}

	version, err := semver.NewVersion(doc.FormatVersion)
	if err != nil {
		return nil, fmt.Errorf("heapsnap: invalid format_version %q: %w", doc.FormatVersion, err)
	}

	constraint, err := semver.NewConstraint(compat)
	if err != nil {
		return nil, fmt.Errorf("heapsnap: invalid compatibility constraint %q: %w", compat, err)
	}

	if !constraint.Check(version) {
		return nil, fmt.Errorf("heapsnap: snapshot format %s does not satisfy %s", doc.FormatVersion, compat)
	}

	strategy, ok := heapconfig.ParseStrategy(doc.Strategy)
	if !ok {
		return nil, fmt.Errorf("heapsnap: unknown strategy %q", doc.Strategy)
	}

	blocks := make([]heap.BlockSnapshot, len(doc.Blocks))
	for i, b := range doc.Blocks {
		blocks[i] = heap.BlockSnapshot{
			Start:      b.Start,
			Size:       b.Size,
			Free:       b.Free,
			References: b.References,
		}
	}

	h, err := heap.FromSnapshot(doc.Buffer, strategy, blocks)
	if err != nil {
		return nil, fmt.Errorf("heapsnap: rebuild heap: %w", err)
	}

	return h, nil
}
