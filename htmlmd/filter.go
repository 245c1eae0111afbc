package htmlmd

import (
	"regexp"
	"strings"
)

// unwantedPatterns are removed from the assembled Markdown, in order,
// before blank-line collapsing. They target residue the site's build
// tooling leaves behind once the chrome is stripped.
var unwantedPatterns = []*regexp.Regexp{
	// Build-tool comment markers that survive conversion.
	regexp.MustCompile(`<!--[^>]*-->`),
	// Version picker and theme switcher text.
	regexp.MustCompile(`(?m)^(?:Version|Theme)\b.*$`),
	// Stray tab-indented lines left over from script and style blocks.
	// TODO: this also removes tab-indented code outside fenced blocks;
	// confirm against sample pages before narrowing the pattern.
	regexp.MustCompile(`(?m)^\t.*$`),
}

// blankRuns matches two or more consecutive blank lines.
var blankRuns = regexp.MustCompile(`\n{3,}`)

// FilterUnwanted removes residual unwanted text from assembled Markdown,
// collapses runs of blank lines into one, and trims the document.
// Pattern removal runs first: deleting lines can itself create new
// blank-line runs. The filter is idempotent.
func FilterUnwanted(markdown string) string {
	out := markdown
	for _, re := range unwantedPatterns {
		out = re.ReplaceAllString(out, "")
	}
	out = blankRuns.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
