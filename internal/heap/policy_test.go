package heap

import "testing"

func TestSelectBlock(t *testing.T) {
	mk := func(specs ...[2]int) []*Block {
		blocks := make([]*Block, len(specs))
		for i, s := range specs {
			blocks[i] = newBlock(s[0], s[1])
		}

		return blocks
	}

	t.Run("FirstFit", func(t *testing.T) {
		blocks := mk([2]int{0, 8}, [2]int{8, 32}, [2]int{40, 16})
		blocks[0].setFree(false)

		idx, ok := selectBlock(FirstFit, blocks, 10, 0)
		if !ok || idx != 1 {
			t.Errorf("got idx=%d ok=%v, want 1 true", idx, ok)
		}
	})

	t.Run("BestFitTieBreaksFirst", func(t *testing.T) {
		blocks := mk([2]int{0, 32}, [2]int{32, 16}, [2]int{48, 16})

		idx, ok := selectBlock(BestFit, blocks, 16, 0)
		if !ok || idx != 1 {
			t.Errorf("got idx=%d ok=%v, want 1 true", idx, ok)
		}
	})

	t.Run("WorstFitTieBreaksFirst", func(t *testing.T) {
		blocks := mk([2]int{0, 32}, [2]int{32, 32}, [2]int{64, 8})

		idx, ok := selectBlock(WorstFit, blocks, 8, 0)
		if !ok || idx != 0 {
			t.Errorf("got idx=%d ok=%v, want 0 true", idx, ok)
		}
	})

	t.Run("NextFitWrapsFromCursor", func(t *testing.T) {
		blocks := mk([2]int{0, 32}, [2]int{32, 4}, [2]int{36, 4})

		idx, ok := selectBlock(NextFit, blocks, 16, 1)
		if !ok || idx != 0 {
			t.Errorf("got idx=%d ok=%v, want 0 true (wrapped)", idx, ok)
		}
	})

	t.Run("NoneBigEnough", func(t *testing.T) {
		blocks := mk([2]int{0, 4})

		if _, ok := selectBlock(FirstFit, blocks, 100, 0); ok {
			t.Error("expected no candidate")
		}
	})
}

func TestHeapNextFitCursorReanchors(t *testing.T) {
	h := New(128, WithStrategy(NextFit))

	p1, _, _ := h.Allocate(16)
	p2, _, _ := h.Allocate(16)

	if err := h.Free(p1); err != nil {
		t.Fatal(err)
	}

	// cursor should now resume scanning from p2's block onward, so the
	// next allocation should not reuse the freed p1 region even though
	// it is large enough — it should continue past it.
	p3, ok, err := h.Allocate(16)
	if err != nil || !ok {
		t.Fatalf("Allocate(16) = %v, %v", ok, err)
	}

	if p3 == p1 {
		t.Errorf("NextFit reused freed block %d instead of continuing the scan", p1)
	}

	_ = p2
	checkInvariants(t, h)
}
