// Package heapconfig loads and hot-reloads the configuration that drives
// a simulated heap: its size and placement strategy. The heap package
// itself never touches the filesystem — this package is the ambient
// configuration layer that sits in front of it, in the functional-options
// shape.
package heapconfig

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/brendanddev/simulated-heap/internal/heap"
)

// HeapConfig is the on-disk shape of a heap's configuration.
type HeapConfig struct {
	Size     int    `json:"size"`
	Strategy string `json:"strategy"`
}

// Option mutates a HeapConfig being built with DefaultConfig.
type Option func(*HeapConfig)

// DefaultConfig returns the baseline configuration: a 4096-byte heap
// using FirstFit.
func DefaultConfig(opts ...Option) HeapConfig {
	cfg := HeapConfig{Size: 4096, Strategy: "FirstFit"}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithSize overrides the configured heap size.
func WithSize(size int) Option {
	return func(c *HeapConfig) { c.Size = size }
}

// WithStrategy overrides the configured placement strategy name.
func WithStrategy(strategy string) Option {
	return func(c *HeapConfig) { c.Strategy = strategy }
}

// Load reads and parses a HeapConfig from the JSON file at path.
func Load(path string) (HeapConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return HeapConfig{}, fmt.Errorf("heapconfig: read %s: %w", path, err)
	}

	var cfg HeapConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return HeapConfig{}, fmt.Errorf("heapconfig: parse %s: %w", path, err)
	}

	return cfg, nil
}

// ParseStrategy resolves a strategy name ("FirstFit", "BestFit",
// "WorstFit", "NextFit") to a heap.Strategy.
func ParseStrategy(name string) (heap.Strategy, bool) {
	switch name {
	case "FirstFit":
		return heap.FirstFit, true
	case "BestFit":
		return heap.BestFit, true
	case "WorstFit":
		return heap.WorstFit, true
	case "NextFit":
		return heap.NextFit, true
	default:
		return heap.FirstFit, false
	}
}
