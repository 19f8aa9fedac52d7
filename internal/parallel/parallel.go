// Package parallel splits loops over positions into chunks executed concurrently.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Maximum number of goroutines running at once.
	MinChunkSize int  // Minimum number of positions per goroutine.
}

// DefaultConfig returns a configuration using all CPUs.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 4096,
	}
}

// Sequential returns a configuration that never spawns goroutines.
func Sequential() Config {
	return Config{}
}

// Ranges calls fn(start, end) over disjoint chunks covering [0, n), and returns once all calls returned.
//
// If parallelism is disabled, or n is too small to be split, fn(0, n) is called in the current goroutine.
func Ranges(n int, cfg Config, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	numWorkers := max(cfg.NumWorkers, 1)
	minChunk := max(cfg.MinChunkSize, 1)
	if !cfg.Enabled || numWorkers == 1 || n < 2*minChunk {
		fn(0, n)
		return
	}
	chunkSize := max((n+numWorkers-1)/numWorkers, minChunk)

	var g errgroup.Group
	g.SetLimit(numWorkers)
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	_ = g.Wait()
}

// NumChunks returns how many chunks Ranges would use for n positions.
func NumChunks(n int, cfg Config) int {
	if n <= 0 {
		return 0
	}
	numWorkers := max(cfg.NumWorkers, 1)
	minChunk := max(cfg.MinChunkSize, 1)
	if !cfg.Enabled || numWorkers == 1 || n < 2*minChunk {
		return 1
	}
	chunkSize := max((n+numWorkers-1)/numWorkers, minChunk)
	return (n + chunkSize - 1) / chunkSize
}
