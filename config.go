package kdtree

import (
	"fmt"
	"log/slog"
	"runtime"
)

// Config controls KD-tree construction.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Workers bounds the number of goroutines building independent
	// subtrees at once; the build forks down to floor(log2(Workers)) levels. The resulting tree is identical for every worker count.
	// 0 means runtime.NumCPU(); 1 builds sequentially. Must be >= 0.
	Workers int

	// ParallelThreshold is the smallest subset size whose subtrees are
	// handed to separate goroutines. Smaller subsets are built inline.
	// Must be >= 0. Default: 4096.
	ParallelThreshold int

	// Logger receives a debug record per build. Nil discards output.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		ParallelThreshold: 4096,
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Workers < 0 {
		return fmt.Errorf("kdtree: Workers must be >= 0 (0 means runtime.NumCPU()), got %d: %w", cfg.Workers, ErrInvalidArgument)
	}
	if cfg.ParallelThreshold < 0 {
		return fmt.Errorf("kdtree: ParallelThreshold must be >= 0, got %d: %w", cfg.ParallelThreshold, ErrInvalidArgument)
	}
	return nil
}

// applyDefaults fills in zero-valued config fields with their defaults.
// It runs after validation so that negative values are still reported.
func applyDefaults(cfg *Config) {
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
}
