package heap

import "fmt"

// Alignment is the byte alignment every address returned by Allocate must
// satisfy.
const Alignment = 8

// Config configures a new Heap, in the functional-options shape.
type Config struct {
	Strategy Strategy
}

// Option mutates a Config.
type Option func(*Config)

func defaultConfig() *Config {
	return &Config{Strategy: FirstFit}
}

// WithStrategy sets the initial placement strategy.
func WithStrategy(s Strategy) Option {
	return func(c *Config) { c.Strategy = s }
}

// Heap owns a fixed-size backing byte buffer together with the block list
// that tiles it, an allocation index for O(1) lookup by address, and the
// placement policy used to service allocation requests.
//
// Heap is not safe for concurrent use: it models a single-threaded
// abstract machine, and re-entering a Heap method from within a callback
// invoked by one of its own methods (e.g. a reference walker that
// allocates) is undefined behaviour.
type Heap struct {
	buffer   []byte
	blocks   []*Block
	allocs   map[int]*Block
	strategy Strategy
	cursor   int
	roots    *RootSet
}

// New creates a Heap over a backing buffer of size bytes, covered
// initially by a single free block. size must be positive.
func New(size int, opts ...Option) *Heap {
	if size <= 0 {
		panic("heap: size must be positive")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Heap{
		buffer:   make([]byte, size),
		blocks:   []*Block{newBlock(0, size)},
		allocs:   make(map[int]*Block),
		strategy: cfg.Strategy,
		roots:    NewRootSet(),
	}
}

// HeapSize returns the total size of the backing buffer.
func (h *Heap) HeapSize() int { return len(h.buffer) }

// SetStrategy changes the placement policy used by future allocations.
func (h *Heap) SetStrategy(s Strategy) { h.strategy = s }

// Strategy returns the currently configured placement policy.
func (h *Heap) Strategy() Strategy { return h.strategy }

// Blocks returns the current block list in ascending-start order. The
// returned slice is owned by the Heap and must not be mutated by callers;
// it is invalidated by the next allocate/free/collect call.
func (h *Heap) Blocks() []*Block { return h.blocks }

// Allocations returns a snapshot of the address-to-block map for
// currently-allocated blocks.
func (h *Heap) Allocations() map[int]*Block {
	out := make(map[int]*Block, len(h.allocs))
	for addr, b := range h.allocs {
		out[addr] = b
	}

	return out
}

// RootSet returns the heap's owned root set.
func (h *Heap) RootSet() *RootSet { return h.roots }

// FindBlock returns the block whose start equals addr, if any.
func (h *Heap) FindBlock(addr int) (*Block, bool) {
	for _, b := range h.blocks {
		if b.start == addr {
			return b, true
		}
	}

	return nil, false
}

// blockIndex returns the position of b within h.blocks.
func (h *Heap) blockIndex(b *Block) int {
	for i, candidate := range h.blocks {
		if candidate == b {
			return i
		}
	}

	return -1
}

func alignUp(x, alignment int) int {
	return (x + alignment - 1) &^ (alignment - 1)
}

// Allocate services a request for size bytes, returning the aligned start
// address of a new allocated region, or ok=false if no free block can
// accommodate the request after alignment padding. err is non-nil only
// for the programmer-error case of an unrecognised strategy; insufficient
// space is reported as ok=false, err=nil.
func (h *Heap) Allocate(size int) (addr int, ok bool, err error) {
	switch h.strategy {
	case FirstFit, BestFit, WorstFit, NextFit:
	default:
		return 0, false, ErrUnknownStrategy(h.strategy)
	}

	// A zero (or negative) request is rejected outright: splitting a
	// chosen block down to a zero-size remainder would produce a block
	// that violates the "every block size is strictly positive"
	// invariant, so allocate(0) simply reports no allocation rather
	// than returning a zero-use address.
	if size <= 0 {
		return 0, false, nil
	}

	idx, found := selectBlock(h.strategy, h.blocks, size, h.cursor)
	if !found {
		return 0, false, nil
	}

	chosen := h.blocks[idx]

	alignedStart := alignUp(chosen.start, Alignment)
	padding := alignedStart - chosen.start

	if padding > 0 {
		if chosen.size-padding < size {
			return 0, false, nil
		}

		pad := newBlock(chosen.start, padding)
		chosen.setStart(alignedStart)
		chosen.setSize(chosen.size - padding)

		h.blocks = append(h.blocks, nil)
		copy(h.blocks[idx+1:], h.blocks[idx:])
		h.blocks[idx] = pad
		idx++
	}

	if chosen.size < size {
		return 0, false, nil
	}

	if chosen.size > size {
		remainder := newBlock(chosen.start+size, chosen.size-size)
		chosen.setSize(size)

		h.blocks = append(h.blocks, nil)
		copy(h.blocks[idx+2:], h.blocks[idx+1:])
		h.blocks[idx+1] = remainder
	}

	chosen.setFree(false)
	h.allocs[chosen.start] = chosen
	h.cursor = idx

	return chosen.start, true, nil
}

// Free releases the allocated block starting at addr and coalesces it
// with any free neighbours. It fails with an *Error of category
// CategoryInvalidFree if addr does not name a currently-allocated block.
func (h *Heap) Free(addr int) error {
	b, ok := h.allocs[addr]
	if !ok {
		return ErrInvalidFree(addr)
	}

	b.setFree(true)
	delete(h.allocs, addr)

	idx := h.blockIndex(b)

	if idx+1 < len(h.blocks) && h.blocks[idx+1].free {
		succ := h.blocks[idx+1]
		b.setSize(b.size + succ.size)
		h.blocks = append(h.blocks[:idx+1], h.blocks[idx+2:]...)
	}

	if idx-1 >= 0 && h.blocks[idx-1].free {
		pred := h.blocks[idx-1]
		pred.setSize(pred.size + b.size)
		h.blocks = append(h.blocks[:idx], h.blocks[idx+1:]...)
	}

	return nil
}

// containingBlock returns the allocated block containing addr, if any.
// The byte at start+size-1 is in range; start+size is not.
func (h *Heap) containingBlock(addr int) (*Block, bool) {
	for _, b := range h.blocks {
		if b.free {
			continue
		}

		if addr >= b.start && addr < b.start+b.size {
			return b, true
		}
	}

	return nil, false
}

// Read returns the byte currently stored at addr. It fails with an
// *Error of category CategoryInvalidAccess if addr does not lie within
// any currently-allocated block.
func (h *Heap) Read(addr int) (byte, error) {
	if _, ok := h.containingBlock(addr); !ok {
		return 0, ErrInvalidAccess(addr)
	}

	return h.buffer[addr], nil
}

// Write stores v at addr. It fails with an *Error of category
// CategoryInvalidAccess if addr does not lie within any currently-
// allocated block.
func (h *Heap) Write(addr int, v byte) error {
	if _, ok := h.containingBlock(addr); !ok {
		return ErrInvalidAccess(addr)
	}

	h.buffer[addr] = v

	return nil
}

// String renders the block list, one block per line, for debugging and
// demo output.
func (h *Heap) String() string {
	out := fmt.Sprintf("Heap(size=%d, strategy=%s)\n", len(h.buffer), h.strategy)
	for _, b := range h.blocks {
		out += "  " + b.String() + "\n"
	}

	return out
}
