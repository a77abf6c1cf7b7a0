// Package cache keeps rendered diagrams between CLI runs.
//
// Rendering the drag state machine through Graphviz is slow next to
// everything else the floatsheet CLI does, so each rendered diagram is
// stored under the hash of the DOT source it came from. A changed state
// machine hashes differently and never reads a stale diagram.
//
// Entries are the rendered bytes themselves, one file per diagram named
// after its hash and format, so a cached SVG opens straight from the
// cache directory:
//
//	store, _ := cache.Open(dir, cache.WithMaxAge(30*24*time.Hour))
//	key := cache.NewKey([]byte(dot), "svg")
//	if svg, ok, _ := store.Get(ctx, key); ok {
//	    return svg
//	}
//
// Callers that want no caching simply hold no store.
package cache

import (
	"context"
	"fmt"

	"github.com/matzehuels/floatsheet/pkg/errors"
)

// Cache stores rendered diagrams by key.
type Cache interface {
	// Get returns the diagram for key and whether it was found. Stale
	// and unreadable entries count as misses.
	Get(ctx context.Context, key Key) ([]byte, bool, error)

	// Put stores data under key, replacing any previous entry.
	Put(ctx context.Context, key Key, data []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key Key) error
}

// Key names one rendered diagram: the hash of its source and the output
// format.
type Key struct {
	Sum    string
	Format string
}

// NewKey returns the key for source rendered as format ("svg", "png").
func NewKey(source []byte, format string) Key {
	return Key{Sum: Hash(source), Format: format}
}

func (k Key) String() string {
	if len(k.Sum) < 12 {
		return k.Sum + "." + k.Format
	}
	return fmt.Sprintf("%s.%s", k.Sum[:12], k.Format)
}

// validate rejects keys that would not map to a single file.
func (k Key) validate() error {
	if len(k.Sum) != hashLen || !isHex(k.Sum) {
		return errors.New(errors.ErrCodeInvalidInput, "cache key: invalid hash %q", k.Sum)
	}
	if k.Format == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache key: empty format")
	}
	for _, r := range k.Format {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return errors.New(errors.ErrCodeInvalidInput, "cache key: invalid format %q", k.Format)
		}
	}
	return nil
}
