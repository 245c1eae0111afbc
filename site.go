package pinemd

import "strings"

// Site describes the markup conventions of the manual being scraped.
// The chrome markers, class names and link rules are all specific to one
// site; the converter makes no attempt to generalize beyond it.
type Site struct {
	// BaseURL is the scheme+host prefix used to absolutize relative links.
	BaseURL string

	// ManualPath is the path prefix of the manual. Links under
	// BaseURL+ManualPath are rewritten to in-document anchors.
	ManualPath string

	// IndexURL points at the manual's table-of-contents page.
	IndexURL string

	// BreadcrumbMarker opens the breadcrumb container that is excised
	// byte-wise before parsing.
	BreadcrumbMarker string

	// OnThisPageMarker is the heading identifying the "On this page"
	// widget, removed together with its smallest enclosing div.
	OnThisPageMarker string

	// CodeClasses is the class token pair identifying the site's
	// colorized code container, rendered as a fenced code block.
	CodeClasses [2]string

	// OutputFile is the assembled Markdown artifact name.
	OutputFile string
}

// DefaultSite returns the profile for the Pine Script v6 User Manual.
func DefaultSite() *Site {
	return &Site{
		BaseURL:          "https://www.tradingview.com",
		ManualPath:       "/pine-script-docs",
		IndexURL:         "https://www.tradingview.com/pine-script-docs",
		BreadcrumbMarker: `<div class="breadcrumb"`,
		OnThisPageMarker: `<h2>On this page`,
		CodeClasses:      [2]string{"codeblock", "pine-colorizer"},
		OutputFile:       "PineScript_v6_Manual.md",
	}
}

// ManualURL reports whether the absolute URL points inside the manual.
// The classification is a pure string check against the site profile;
// no network lookup is involved.
func (s *Site) ManualURL(absURL string) bool {
	return strings.Contains(absURL, s.BaseURL) && strings.Contains(absURL, s.ManualPath)
}

// AbsoluteURL resolves an href against the site's base URL. Hrefs that
// already carry a scheme are returned unchanged.
func (s *Site) AbsoluteURL(href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	return s.BaseURL + href
}
