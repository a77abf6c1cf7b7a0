package cache

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache keeps each diagram as a plain file under dir, fanned out
// into subdirectories by the first two characters of its hash:
//
//	<dir>/3f/a9c1...e2.svg
//
// Staleness is judged by file modification time, so an entry's age is
// visible to ordinary tools.
type FileCache struct {
	dir    string
	maxAge time.Duration
	now    func() time.Time
}

// Option configures a FileCache.
type Option func(*FileCache)

// WithMaxAge makes entries older than d misses. Zero keeps entries
// forever.
func WithMaxAge(d time.Duration) Option {
	return func(c *FileCache) { c.maxAge = d }
}

// Open returns a cache rooted at dir, creating it if needed.
func Open(dir string, opts ...Option) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	c := &FileCache{dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

// Get reads the diagram for key. Stale and empty files are removed and
// reported as misses.
func (c *FileCache) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	if err := key.validate(); err != nil {
		return nil, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	path := c.path(key)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if c.stale(info) || info.Size() == 0 {
		_ = os.Remove(path)
		return nil, false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Put writes data for key. The file is written beside its final name
// and renamed into place, so readers never see a partial diagram.
func (c *FileCache) Put(ctx context.Context, key Key, data []byte) error {
	if err := key.validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".put-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	now := c.now()
	if err := os.Chtimes(tmp.Name(), now, now); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes the diagram for key.
func (c *FileCache) Delete(ctx context.Context, key Key) error {
	if err := key.validate(); err != nil {
		return err
	}
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Prune removes stale entries and leftovers of interrupted writes, and
// reports how many files it removed.
func (c *FileCache) Prune(ctx context.Context) (int, error) {
	removed := 0
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		leftover := strings.HasPrefix(d.Name(), ".put-") && c.now().Sub(info.ModTime()) > time.Minute
		if !leftover && !c.stale(info) {
			return nil
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		removed++
		return nil
	})
	return removed, err
}

func (c *FileCache) stale(info fs.FileInfo) bool {
	return c.maxAge > 0 && c.now().Sub(info.ModTime()) > c.maxAge
}

// path maps key to its file.
func (c *FileCache) path(key Key) string {
	return filepath.Join(c.dir, key.Sum[:2], key.Sum[2:]+"."+key.Format)
}

var _ Cache = (*FileCache)(nil)
