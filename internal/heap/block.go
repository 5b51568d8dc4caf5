// Package heap implements a simulated byte-addressable heap: a fixed-size
// backing buffer, a block list covering it end to end, a choice of
// placement policies, and a mark-and-sweep collector driven by an external
// root set and per-block reference lists.
package heap

import "fmt"

// Block describes one contiguous region of the heap's backing buffer.
//
// A Block is either free or allocated. The marked bit is transient: it is
// only meaningful during a collection cycle and is false at every other
// observation point. references holds plain addresses, not owning handles
// — this package's language-neutral substitute for pointers; duplicates
// are permitted and the mark phase tolerates them via its already-marked
// short-circuit.
type Block struct {
	start      int
	size       int
	free       bool
	marked     bool
	references []int
}

// newBlock constructs a free block covering [start, start+size).
func newBlock(start, size int) *Block {
	return &Block{start: start, size: size, free: true}
}

// Start returns the block's offset into the backing buffer.
func (b *Block) Start() int { return b.start }

// Size returns the block's length in bytes.
func (b *Block) Size() int { return b.size }

// Free reports whether the block is currently unallocated.
func (b *Block) Free() bool { return b.free }

// IsMarked reports the block's transient GC mark bit.
func (b *Block) IsMarked() bool { return b.marked }

// References returns the block's outgoing reference addresses. The slice
// is returned as-is for read access; callers must not mutate it.
func (b *Block) References() []int { return b.references }

func (b *Block) setSize(size int)   { b.size = size }
func (b *Block) setFree(free bool)  { b.free = free }
func (b *Block) setStart(start int) { b.start = start }

// mark sets the GC mark bit.
func (b *Block) mark() { b.marked = true }

// unmark clears the GC mark bit.
func (b *Block) unmark() { b.marked = false }

// AddReference appends addr to the block's reference list. references is
// not deduplicated; adding the same address twice is legal and the mark
// phase will simply visit it twice.
func (b *Block) AddReference(addr int) {
	b.references = append(b.references, addr)
}

// RemoveReference removes the first occurrence of addr, if any.
func (b *Block) RemoveReference(addr int) {
	for i, ref := range b.references {
		if ref == addr {
			b.references = append(b.references[:i], b.references[i+1:]...)
			return
		}
	}
}

// String renders the block as "[start,end) free|alloc marked?" for use by
// demo and snapshot tooling.
func (b *Block) String() string {
	status := "alloc"
	if b.free {
		status = "free"
	}

	marked := ""
	if b.marked {
		marked = " marked"
	}

	return fmt.Sprintf("[%d,%d) %s%s", b.start, b.start+b.size, status, marked)
}
