// Package goquery implements chapter discovery over the manual's index
// page using goquery selectors.
package goquery

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pinemd"
)

// Ensure IndexSource implements pinemd.ChapterSource at compile time.
var _ pinemd.ChapterSource = (*IndexSource)(nil)

// IndexSource discovers chapters from the manual's index page.
type IndexSource struct {
	site    *pinemd.Site
	fetcher pinemd.Fetcher
}

// NewIndexSource creates an IndexSource for the given site profile.
func NewIndexSource(site *pinemd.Site, fetcher pinemd.Fetcher) *IndexSource {
	return &IndexSource{site: site, fetcher: fetcher}
}

// Discover fetches the index page and returns one chapter per page link,
// in document order. Page links carrying an in-page fragment are
// skipped. Duplicates are preserved: a link listed twice on the index
// yields two chapters.
func (s *IndexSource) Discover(ctx context.Context) ([]*pinemd.Chapter, error) {
	raw, err := s.fetcher.Fetch(ctx, s.site.IndexURL)
	if err != nil {
		return nil, fmt.Errorf("fetch index %s: %w", s.site.IndexURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, pinemd.Errorf(pinemd.EINVALID, "parse index page: %v", err)
	}

	var chapters []*pinemd.Chapter
	doc.Find("a.page-link").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" || strings.Contains(href, "#") {
			return
		}

		title := strings.TrimSpace(sel.Text())
		index := len(chapters) + 1
		chapters = append(chapters, &pinemd.Chapter{
			Index:      index,
			SourceURL:  s.site.AbsoluteURL(href),
			Title:      title,
			AnchorSlug: pinemd.Slugify(title),
			CachedPath: pinemd.CacheFileName(index, href),
		})
	})

	return chapters, nil
}
