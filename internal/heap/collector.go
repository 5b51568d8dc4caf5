package heap

// CollectionStats summarises one Collector.Collect cycle. It is additive
// to the void-returning collect() contract this package implements:
// callers that ignore the return value still observe the documented
// side effects on the Heap.
type CollectionStats struct {
	Marked         int
	Swept          int
	BytesReclaimed int
}

// Collector performs mark-and-sweep garbage collection over a Heap,
// treating a RootSet as the set of externally-reachable starting points.
type Collector struct {
	heap  *Heap
	roots *RootSet
}

// NewCollector binds a Collector to heap and roots. roots is typically
// heap.RootSet(), but a Collector only holds a non-owning handle to it —
// the Heap remains its owner.
func NewCollector(h *Heap, roots *RootSet) *Collector {
	return &Collector{heap: h, roots: roots}
}

// Collect runs one mark-and-sweep cycle: it marks every block reachable
// from the root set through reference chains, then frees every allocated
// block that was not marked, then clears mark bits so the heap leaves the
// cycle with every block unmarked. Collect never fails — it reclaims
// whatever it can and returns.
func (c *Collector) Collect() CollectionStats {
	marked := c.mark()
	return c.sweep(marked)
}

// mark walks the reference graph from every root address and returns the
// set of block-start addresses it found reachable. Traversal is
// depth-first; the already-marked short-circuit both deduplicates
// revisits and terminates cycles.
func (c *Collector) mark() map[int]struct{} {
	visited := make(map[int]struct{})

	for _, root := range c.roots.Iterate() {
		c.markFrom(root, visited)
	}

	return visited
}

func (c *Collector) markFrom(addr int, visited map[int]struct{}) {
	b, ok := c.heap.allocs[addr]
	if !ok || b.free {
		return
	}

	if _, seen := visited[addr]; seen {
		return
	}

	b.mark()
	visited[addr] = struct{}{}

	for _, ref := range b.references {
		c.markFrom(ref, visited)
	}
}

// sweep frees every allocated-unmarked block and clears the mark bit on
// every surviving block. It snapshots the addresses to free before
// calling Heap.Free, since Free mutates the block list (via coalescing)
// as it runs — sweeping a slice while it is being spliced out from under
// the iterator would skip or double-visit entries.
func (c *Collector) sweep(marked map[int]struct{}) CollectionStats {
	var toFree []int

	stats := CollectionStats{Marked: len(marked)}

	for _, b := range c.heap.blocks {
		if b.free {
			continue
		}

		if _, ok := marked[b.start]; ok {
			continue
		}

		toFree = append(toFree, b.start)
	}

	for _, addr := range toFree {
		b, ok := c.heap.allocs[addr]
		if !ok {
			continue
		}

		size := b.size
		if err := c.heap.Free(addr); err == nil {
			stats.Swept++
			stats.BytesReclaimed += size
		}
	}

	for _, b := range c.heap.blocks {
		b.unmark()
	}

	return stats
}
