// Package fs provides file-based storage for cached chapter HTML and the
// assembled Markdown output.
package fs

import (
	"os"
	"path/filepath"

	"github.com/fwojciec/pinemd"
)

// Ensure CacheStore implements pinemd.CacheStore at compile time.
var _ pinemd.CacheStore = (*CacheStore)(nil)

// CacheStore keeps raw chapter HTML in a directory so that re-runs
// convert from disk instead of refetching.
type CacheStore struct {
	dir string
}

// NewCacheStore creates a CacheStore rooted at dir. The directory is
// created on the first Save.
func NewCacheStore(dir string) *CacheStore {
	return &CacheStore{dir: dir}
}

// Load returns the cached bytes for the chapter.
// Returns ENOTFOUND if the chapter has not been cached.
func (s *CacheStore) Load(chapter *pinemd.Chapter) ([]byte, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, chapter.CachedPath))
	if os.IsNotExist(err) {
		return nil, pinemd.Errorf(pinemd.ENOTFOUND, "chapter %q not cached", chapter.Title)
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// Save persists the chapter's raw HTML.
func (s *CacheStore) Save(chapter *pinemd.Chapter, raw []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, chapter.CachedPath), raw, 0644)
}
