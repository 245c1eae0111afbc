package imgconv_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/pinemd/imgconv"
	"github.com/fwojciec/pinemd/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriter_Rewrite_NoWebpReferences(t *testing.T) {
	t.Parallel()

	var fetches atomic.Int64
	fetcher := &mock.Fetcher{
		FetchFn: func(context.Context, string) ([]byte, error) {
			fetches.Add(1)
			return nil, errors.New("unexpected fetch")
		},
	}
	r := imgconv.NewRewriter(fetcher, t.TempDir(), false, nil)

	markdown := "# Title\n\n![Chart](https://example.com/chart.png)\n\n[doc](https://example.com/a.webp)"
	out, err := r.Rewrite(context.Background(), markdown)
	require.NoError(t, err)
	assert.Equal(t, markdown, out)
	assert.Equal(t, int64(0), fetches.Load())
}

func TestRewriter_Rewrite_ReusesExistingLocalCopy(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "images")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chart.png"), []byte("png"), 0644))

	fetcher := &mock.Fetcher{
		FetchFn: func(context.Context, string) ([]byte, error) {
			return nil, errors.New("network should not be touched")
		},
	}
	r := imgconv.NewRewriter(fetcher, dir, false, nil)

	out, err := r.Rewrite(context.Background(), "![Chart](https://example.com/img/chart.webp)")
	require.NoError(t, err)
	assert.Equal(t, "![Chart](images/chart.png)", out)
}

func TestRewriter_Rewrite_RepeatedReferenceRewrittenEverywhere(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "images")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chart.png"), []byte("png"), 0644))

	fetcher := &mock.Fetcher{
		FetchFn: func(context.Context, string) ([]byte, error) {
			return nil, errors.New("network should not be touched")
		},
	}
	r := imgconv.NewRewriter(fetcher, dir, false, nil)

	markdown := "![a](https://example.com/chart.webp)\n\n![b](https://example.com/chart.webp)"
	out, err := r.Rewrite(context.Background(), markdown)
	require.NoError(t, err)
	assert.Equal(t, "![a](images/chart.png)\n\n![b](images/chart.png)", out)
}

func TestRewriter_Rewrite_FetchFailureKeepsReference(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(context.Context, string) ([]byte, error) {
			return nil, errors.New("HTTP 404")
		},
	}
	r := imgconv.NewRewriter(fetcher, t.TempDir(), false, nil)

	markdown := "![Chart](https://example.com/chart.webp)"
	out, err := r.Rewrite(context.Background(), markdown)
	require.NoError(t, err)
	assert.Equal(t, markdown, out)
}

func TestRewriter_Rewrite_DecodeFailureKeepsReference(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(context.Context, string) ([]byte, error) {
			return []byte("not a webp image"), nil
		},
	}
	dir := t.TempDir()
	r := imgconv.NewRewriter(fetcher, dir, false, nil)

	markdown := "![Chart](https://example.com/chart.webp)"
	out, err := r.Rewrite(context.Background(), markdown)
	require.NoError(t, err)
	assert.Equal(t, markdown, out)

	// Nothing half-written lands on disk.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRewriter_Rewrite_ForceIgnoresLocalCopy(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "images")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chart.png"), []byte("png"), 0644))

	var fetches atomic.Int64
	fetcher := &mock.Fetcher{
		FetchFn: func(context.Context, string) ([]byte, error) {
			fetches.Add(1)
			return []byte("not a webp image"), nil
		},
	}
	r := imgconv.NewRewriter(fetcher, dir, true, nil)

	markdown := "![Chart](https://example.com/chart.webp)"
	out, err := r.Rewrite(context.Background(), markdown)
	require.NoError(t, err)

	// The forced refetch fails to decode, so the reference survives, but
	// the local copy must not have short-circuited the fetch.
	assert.Equal(t, markdown, out)
	assert.Equal(t, int64(1), fetches.Load())
}
