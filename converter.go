package pinemd

// Converter turns one chapter's raw HTML into a Markdown fragment.
type Converter interface {
	// Convert sanitizes and converts raw chapter HTML into Markdown.
	// Malformed markup never fails the conversion: unmatched chrome
	// markers are skipped and unknown elements render as their
	// children's output.
	Convert(raw []byte) (string, error)
}
