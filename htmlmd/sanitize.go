// Package htmlmd converts the manual's HTML into Markdown. The
// conversion is deliberately site-specific: the chrome removal markers,
// the colorized code container and the link rewriting rules all target
// one site's markup conventions.
package htmlmd

import (
	"bytes"

	"github.com/fwojciec/pinemd"
)

const divClose = "</div>"

// Sanitize removes known chrome from raw HTML at the byte level, before
// parsing. Some of the stripped fragments are malformed enough to break
// tree-based removal, which is why this pass works on bytes. Both
// removals are best-effort: an absent marker leaves the input unchanged.
func Sanitize(raw []byte, site *pinemd.Site) []byte {
	out := removeBreadcrumb(raw, []byte(site.BreadcrumbMarker))
	out = removeOnThisPage(out, []byte(site.OnThisPageMarker))
	return out
}

// removeBreadcrumb excises the first breadcrumb container: from its open
// marker through the first closing div that follows.
func removeBreadcrumb(raw, marker []byte) []byte {
	start := bytes.Index(raw, marker)
	if start == -1 {
		return raw
	}
	end := bytes.Index(raw[start:], []byte(divClose))
	if end == -1 {
		return raw
	}
	end += start + len(divClose)
	return excise(raw, start, end)
}

// removeOnThisPage excises the smallest div enclosing the "On this page"
// heading: the nearest div-open before the marker through the next
// div-close after it.
func removeOnThisPage(raw, marker []byte) []byte {
	pos := bytes.Index(raw, marker)
	if pos == -1 {
		return raw
	}
	start := bytes.LastIndex(raw[:pos], []byte("<div"))
	if start == -1 {
		return raw
	}
	end := bytes.Index(raw[pos:], []byte(divClose))
	if end == -1 {
		return raw
	}
	end += pos + len(divClose)
	return excise(raw, start, end)
}

// excise returns raw without the span [start, end).
func excise(raw []byte, start, end int) []byte {
	out := make([]byte, 0, len(raw)-(end-start))
	out = append(out, raw[:start]...)
	out = append(out, raw[end:]...)
	return out
}
