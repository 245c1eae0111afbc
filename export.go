package pinemd

import "context"

// ImageRewriter localizes image references in assembled Markdown.
type ImageRewriter interface {
	// Rewrite scans the Markdown for convertible remote images, stores
	// local copies and rewrites their references. A failure for a single
	// image is skipped and its original reference stays in place.
	Rewrite(ctx context.Context, markdown string) (string, error)
}

// Exporter renders the assembled Markdown file to another format.
type Exporter interface {
	// Export renders the Markdown file at mdPath. A missing external
	// tool is not an error; implementations degrade to a logged skip.
	Export(ctx context.Context, mdPath string) error
}
