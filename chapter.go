package pinemd

import "context"

// Chapter represents one entry discovered on the manual's index page.
// Chapters are created in document order and never mutated afterwards.
type Chapter struct {
	// Index is the 1-based, dense position of the chapter on the index page.
	Index int

	// SourceURL is the absolute URL of the chapter page.
	SourceURL string

	// Title is the trimmed anchor text from the index page.
	Title string

	// AnchorSlug is Slugify(Title). Duplicate titles produce colliding
	// slugs; only the first occurrence is reachable by fragment link,
	// matching the behavior of the manual itself.
	AnchorSlug string

	// CachedPath is the file name of the chapter's raw HTML within the
	// cache directory.
	CachedPath string
}

// Validate returns an error if the chapter contains invalid fields.
func (c *Chapter) Validate() error {
	if c.Index < 1 {
		return Errorf(EINVALID, "chapter index must be 1-based")
	}
	if c.SourceURL == "" {
		return Errorf(EINVALID, "chapter source URL required")
	}
	if c.Title == "" {
		return Errorf(EINVALID, "chapter title required")
	}
	return nil
}

// TOCLine returns the chapter's table of contents entry.
func (c *Chapter) TOCLine() string {
	return "- [" + c.Title + "](#" + c.AnchorSlug + ")"
}

// ChapterSource discovers the ordered chapter list from the manual index.
type ChapterSource interface {
	// Discover fetches the index page and returns one chapter per page
	// link, in the order encountered. Entries are not deduplicated: a
	// link appearing twice on the index yields two chapters.
	Discover(ctx context.Context) ([]*Chapter, error)
}
