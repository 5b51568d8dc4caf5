package heap

import "fmt"

// BlockSnapshot is the reconstructable shape of a Block, used by callers
// that persist and restore heap state (see the sibling heapsnap
// package). It intentionally omits the transient mark bit: a restored
// heap always starts unmarked, the same invariant every other public
// operation maintains.
type BlockSnapshot struct {
	Start      int
	Size       int
	Free       bool
	References []int
}

// FromSnapshot reconstructs a Heap directly from a backing buffer and an
// ordered, tiling block list, without replaying allocate/free calls — the
// padding and split bookkeeping that allocate would normally perform is
// already baked into the persisted block boundaries.
//
// blocks must tile [0, len(buffer)) exactly: ascending, contiguous,
// positive-size, starting at 0. Violating this is a programmer error (a
// corrupt or hand-edited snapshot) and is reported as an error rather
// than silently repaired.
func FromSnapshot(buffer []byte, strategy Strategy, blocks []BlockSnapshot) (*Heap, error) {
	if len(blocks) == 0 {
		return nil, fmt.Errorf("heap: snapshot has no blocks")
	}

	if blocks[0].Start != 0 {
		return nil, fmt.Errorf("heap: snapshot first block starts at %d, want 0", blocks[0].Start)
	}

	h := &Heap{
		buffer:   append([]byte(nil), buffer...),
		blocks:   make([]*Block, 0, len(blocks)),
		allocs:   make(map[int]*Block),
		strategy: strategy,
		roots:    NewRootSet(),
	}

	want := 0

	for i, bs := range blocks {
		if bs.Size <= 0 {
			return nil, fmt.Errorf("heap: snapshot block %d has non-positive size %d", i, bs.Size)
		}

		if bs.Start != want {
			return nil, fmt.Errorf("heap: snapshot block %d starts at %d, want %d", i, bs.Start, want)
		}

		b := newBlock(bs.Start, bs.Size)
		b.free = bs.Free
		b.references = append([]int(nil), bs.References...)

		h.blocks = append(h.blocks, b)

		if !bs.Free {
			h.allocs[bs.Start] = b
		}

		want += bs.Size
	}

	if want != len(h.buffer) {
		return nil, fmt.Errorf("heap: snapshot blocks cover %d bytes, want %d", want, len(h.buffer))
	}

	return h, nil
}

// Snapshot returns the current block list as a sequence of BlockSnapshot
// values, suitable for persistence by the heapsnap package.
func (h *Heap) Snapshot() []BlockSnapshot {
	out := make([]BlockSnapshot, len(h.blocks))
	for i, b := range h.blocks {
		out[i] = BlockSnapshot{
			Start:      b.start,
			Size:       b.size,
			Free:       b.free,
			References: append([]int(nil), b.references...),
		}
	}

	return out
}

// Buffer returns a copy of the heap's backing buffer, for persistence.
func (h *Heap) Buffer() []byte {
	return append([]byte(nil), h.buffer...)
}
