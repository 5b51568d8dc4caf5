// Command heapdemo drives a simulated-heap instance through allocation,
// deallocation, and a mark-and-sweep collection cycle, printing the
// resulting block layout at each step. It is a thin demonstration driver
// over the internal/heap library.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/brendanddev/simulated-heap/internal/heap"
	"github.com/brendanddev/simulated-heap/internal/heapcli"
	"github.com/brendanddev/simulated-heap/internal/heapconfig"
	"github.com/brendanddev/simulated-heap/internal/heapsnap"
)

func main() {
	size := flag.Int("size", 0, "heap size in bytes (overrides -config)")
	strategyName := flag.String("strategy", "", "placement strategy: FirstFit, BestFit, WorstFit, NextFit (overrides -config)")
	configPath := flag.String("config", "", "path to a JSON heap config file")
	watch := flag.Bool("watch", false, "watch -config for strategy changes until interrupted")
	snapshotPath := flag.String("snapshot", "", "path to write a JSON heap snapshot after the demo runs")
	verbose := flag.Bool("verbose", false, "enable informational logging")
	flag.Parse()

	log := heapcli.NewLogger(*verbose)

	cfg := heapconfig.DefaultConfig()

	if *configPath != "" {
		loaded, err := heapconfig.Load(*configPath)
		if err != nil {
			heapcli.ExitWithError("%v", err)
		}

		cfg = loaded
		log.Info("loaded config from %s: %+v", *configPath, cfg)
	}

	if *size > 0 {
		cfg.Size = *size
	}

	if *strategyName != "" {
		cfg.Strategy = *strategyName
	}

	strategy, ok := heapconfig.ParseStrategy(cfg.Strategy)
	if !ok {
		heapcli.ExitWithError("unknown strategy %q", cfg.Strategy)
	}

	h := heap.New(cfg.Size, heap.WithStrategy(strategy))

	log.Info("heapdemo v%s: heap size=%d strategy=%s", heapcli.Version, cfg.Size, strategy)

	runDemo(h, log)

	if *snapshotPath != "" {
		data, err := heapsnap.Save(h)
		if err != nil {
			heapcli.ExitWithError("saving snapshot: %v", err)
		}

		if err := os.WriteFile(*snapshotPath, data, 0o644); err != nil {
			heapcli.ExitWithError("writing snapshot: %v", err)
		}

		log.Info("wrote snapshot to %s", *snapshotPath)
	}

	if *watch {
		if *configPath == "" {
			heapcli.ExitWithError("-watch requires -config")
		}

		watchStrategy(h, *configPath, log)
	}
}

// runDemo exercises allocate and write, then a mark-and-sweep collection
// cycle that frees the unreachable block, printing the heap layout at
// each step.
func runDemo(h *heap.Heap, log *heapcli.Logger) {
	fmt.Println("--- initial heap ---")
	fmt.Print(h)

	a, ok, err := h.Allocate(16)
	mustAllocate(a, ok, err, "a")

	b, ok, err := h.Allocate(16)
	mustAllocate(b, ok, err, "b")

	c, ok, err := h.Allocate(16)
	mustAllocate(c, ok, err, "c")

	d, ok, err := h.Allocate(16)
	mustAllocate(d, ok, err, "d")

	if err := h.Write(a, 42); err != nil {
		heapcli.ExitWithError("writing a: %v", err)
	}

	blockA, _ := h.FindBlock(a)
	blockB, _ := h.FindBlock(b)
	blockA.AddReference(b)
	blockB.AddReference(c)

	h.RootSet().Add(a)

	fmt.Println("\n--- after allocation ---")
	fmt.Print(h)

	col := heap.NewCollector(h, h.RootSet())
	stats := col.Collect()

	log.Info("collected: marked=%d swept=%d bytes_reclaimed=%d", stats.Marked, stats.Swept, stats.BytesReclaimed)

	fmt.Println("\n--- after collection (d is unreachable) ---")
	fmt.Print(h)
}

func mustAllocate(addr int, ok bool, err error, name string) {
	if err != nil {
		heapcli.ExitWithError("allocating %s: %v", name, err)
	}

	if !ok {
		heapcli.ExitWithError("allocating %s: heap exhausted", name)
	}
}

// watchStrategy re-applies the configured placement strategy whenever
// configPath changes on disk, until the process receives SIGINT/SIGTERM.
func watchStrategy(h *heap.Heap, configPath string, log *heapcli.Logger) {
	w, err := heapconfig.NewWatcher(configPath)
	if err != nil {
		heapcli.ExitWithError("%v", err)
	}
	defer w.Close()

	w.Watch(func(cfg heapconfig.HeapConfig) {
		strategy, ok := heapconfig.ParseStrategy(cfg.Strategy)
		if !ok {
			log.Warn("ignoring config reload: unknown strategy %q", cfg.Strategy)
			return
		}

		h.SetStrategy(strategy)
		log.Info("reloaded strategy: %s", strategy)
	})

	fmt.Printf("watching %s for strategy changes (ctrl-c to stop)\n", configPath)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
}
