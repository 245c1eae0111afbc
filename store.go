package pinemd

// CacheStore persists raw chapter HTML between runs, so re-runs convert
// from disk instead of refetching.
type CacheStore interface {
	// Load returns the cached bytes for the chapter.
	// Returns ENOTFOUND if the chapter has not been cached.
	Load(chapter *Chapter) ([]byte, error)

	// Save persists the chapter's raw HTML.
	Save(chapter *Chapter, raw []byte) error
}
