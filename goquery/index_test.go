package goquery_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/pinemd"
	"github.com/fwojciec/pinemd/goquery"
	"github.com/fwojciec/pinemd/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indexPage = `
<html><body>
<nav>
<a class="page-link" href="/pine-script-docs/welcome/">Welcome</a>
<a class="page-link" href="/pine-script-docs/primer/first-steps/">First steps</a>
<a class="page-link" href="/pine-script-docs/language/#operators">Operators</a>
<a class="page-link" href="">Empty</a>
<a class="other-link" href="/pine-script-docs/faq/">FAQ</a>
<a class="page-link" href="https://www.tradingview.com/pine-script-docs/language/">Language</a>
</nav>
</body></html>`

func newSource(t *testing.T, page string) *goquery.IndexSource {
	t.Helper()
	site := pinemd.DefaultSite()
	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) ([]byte, error) {
			require.Equal(t, site.IndexURL, url)
			return []byte(page), nil
		},
	}
	return goquery.NewIndexSource(site, fetcher)
}

func TestIndexSource_Discover(t *testing.T) {
	t.Parallel()

	chapters, err := newSource(t, indexPage).Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, chapters, 3)

	assert.Equal(t, 1, chapters[0].Index)
	assert.Equal(t, "Welcome", chapters[0].Title)
	assert.Equal(t, "welcome", chapters[0].AnchorSlug)
	assert.Equal(t, "https://www.tradingview.com/pine-script-docs/welcome/", chapters[0].SourceURL)
	assert.Equal(t, "00001_pine-script-docs_welcome.html", chapters[0].CachedPath)

	assert.Equal(t, 2, chapters[1].Index)
	assert.Equal(t, "First steps", chapters[1].Title)
	assert.Equal(t, "first-steps", chapters[1].AnchorSlug)
	assert.Equal(t, "00002_pine-script-docs_primer_first-steps.html", chapters[1].CachedPath)

	// The absolute href passes through untouched.
	assert.Equal(t, 3, chapters[2].Index)
	assert.Equal(t, "https://www.tradingview.com/pine-script-docs/language/", chapters[2].SourceURL)
	assert.Equal(t, "00003_pine-script-docs_language.html", chapters[2].CachedPath)
}

func TestIndexSource_Discover_SkipsFragmentsAndEmptyHrefs(t *testing.T) {
	t.Parallel()

	chapters, err := newSource(t, indexPage).Discover(context.Background())
	require.NoError(t, err)

	for _, ch := range chapters {
		assert.NotContains(t, ch.SourceURL, "#")
		assert.NotEmpty(t, ch.SourceURL)
	}
}

func TestIndexSource_Discover_PreservesDuplicates(t *testing.T) {
	t.Parallel()

	page := `
<a class="page-link" href="/pine-script-docs/intro/">Intro</a>
<a class="page-link" href="/pine-script-docs/intro/">Intro</a>`

	chapters, err := newSource(t, page).Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, chapters, 2)

	assert.Equal(t, chapters[0].SourceURL, chapters[1].SourceURL)
	assert.Equal(t, chapters[0].AnchorSlug, chapters[1].AnchorSlug)
	assert.Equal(t, 1, chapters[0].Index)
	assert.Equal(t, 2, chapters[1].Index)
	assert.NotEqual(t, chapters[0].CachedPath, chapters[1].CachedPath)
}

func TestIndexSource_Discover_EmptyIndex(t *testing.T) {
	t.Parallel()

	chapters, err := newSource(t, "<html><body></body></html>").Discover(context.Background())
	require.NoError(t, err)
	assert.Empty(t, chapters)
}

func TestIndexSource_Discover_FetchError(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(context.Context, string) ([]byte, error) {
			return nil, errors.New("connection refused")
		},
	}
	source := goquery.NewIndexSource(pinemd.DefaultSite(), fetcher)

	_, err := source.Discover(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch index")
}
