package palette

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
)

// Opener returns a fresh reader over the palette source data
type Opener func(ctx context.Context) (io.ReadCloser, error)

// Cache loads a palette from its source once and hands out the same
// read-only instance afterwards. Failed loads are not retained, so a later
// Get reads the source again.
type Cache struct {
    mutex   sync.Mutex
    open    Opener
    palette *Palette
}


// NewCache creates a cache that loads from the passed in opener on first use.
func NewCache(open Opener) *Cache {
    return &Cache{open: open}
}


// Returns the cached palette, loading it from the source on the first call.
// Concurrent callers block until the single load completes.
//
// @Parameters
// - ctx:  The context handler for the source read
//
// @Returns
// - The shared palette instance
// - Error if it occurs, otherwise nil on success
//
func (cache *Cache) Get(ctx context.Context) (*Palette, error) {
    cache.mutex.Lock()
    defer cache.mutex.Unlock()

    // If the palette was already loaded
    if cache.palette != nil {
        return cache.palette, nil
    }

    readCloser, err := cache.open(ctx)
    if err != nil {
        return nil, fmt.Errorf("could not open palette source: %w", err)
    }
    // Close the source on local exit
    defer readCloser.Close()

    palette, err := Load(readCloser)
    if err != nil {
        return nil, err
    }

    cache.palette = palette
    return palette, nil
}


// FileOpener returns an Opener reading the palette from a local file.
func FileOpener(filePath string) Opener {
    return func(ctx context.Context) (io.ReadCloser, error) {
        if err := ctx.Err(); err != nil {
            return nil, err
        }
        return os.Open(filePath)
    }
}
