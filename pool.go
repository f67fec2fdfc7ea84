package patternlib

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"sync"

	"github.com/goodtwin/go-patternlib/internal/annotation"
	"github.com/goodtwin/go-patternlib/internal/extract"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps extraction goroutines; parsing is CPU bound and
	// files are small.
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for the rest of the process.
	cpuDivisor = 2
)

// ResolvePoolSize determines the extraction pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by CLIs.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers.
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}

// fileResult holds the outcome of extracting one source.
type fileResult struct {
	path   string
	blocks []annotation.Block
	size   int
	cached bool
	err    error
}

// extractAll reads and parses files concurrently. Results are indexed like
// files so callers can merge them in source order.
func extractAll(ctx context.Context, ex *extract.Extractor, cache *ParseCache, files []string, workers int) []fileResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := workers
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]fileResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = fileResult{path: files[idx], err: ctx.Err()}
					continue
				}
				results[idx] = extractFile(ctx, ex, cache, files[idx])
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// extractFile processes a single source.
func extractFile(ctx context.Context, ex *extract.Extractor, cache *ParseCache, path string) fileResult {
	result := fileResult{path: path}

	content, err := os.ReadFile(path) // #nosec G304 -- configured source path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			result.err = fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		} else {
			result.err = fmt.Errorf("%w: %s: %v", ErrSourceRead, path, err)
		}
		return result
	}
	result.size = len(content)

	if blocks, ok := cache.Get(path, content); ok {
		result.blocks = blocks
		result.cached = true
		return result
	}

	blocks, err := ex.Extract(ctx, content, path)
	if err != nil {
		result.err = fmt.Errorf("extracting %s: %w", path, err)
		return result
	}
	cache.Put(path, content, blocks)
	result.blocks = blocks
	return result
}
