// Package build orchestrates the manual build: chapter discovery,
// fetch-or-cache, conversion and assembly into one Markdown document.
package build

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/pinemd"
	"github.com/fwojciec/pinemd/htmlmd"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Builder drives the pipeline. Chapter fetches may run in parallel;
// conversion and assembly always follow chapter index order so every
// table of contents anchor lands on its matching heading.
type Builder struct {
	Site      *pinemd.Site
	Source    pinemd.ChapterSource
	Fetcher   pinemd.Fetcher
	Cache     pinemd.CacheStore
	Converter pinemd.Converter

	// Limiter throttles fetches against the site. Optional.
	Limiter *rate.Limiter

	// Concurrency bounds parallel chapter fetches. Defaults to 3.
	Concurrency int

	// Force refetches chapters even when a cached copy exists.
	Force bool

	// RetryDelays overrides the fetch backoff schedule. Used by tests.
	RetryDelays []time.Duration

	Logger *slog.Logger
}

// Result holds the outcome of a build.
type Result struct {
	Markdown string
	Chapters []*pinemd.Chapter
}

// Build produces the assembled manual: a table of contents block
// followed by every chapter's Markdown fragment, post-filtered. Any
// chapter fetch failure aborts the whole build; a partial manual is not
// a supported output.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	logger := b.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	chapters, err := b.Source.Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover chapters: %w", err)
	}
	logger.Info("chapters discovered", "count", len(chapters))

	pages, err := b.loadAll(ctx, chapters, logger)
	if err != nil {
		return nil, err
	}

	tocLines := make([]string, 0, len(chapters))
	fragments := make([]string, 0, len(chapters))
	for i, chapter := range chapters {
		fragment, err := b.Converter.Convert(pages[i])
		if err != nil {
			return nil, fmt.Errorf("convert chapter %q: %w", chapter.Title, err)
		}
		tocLines = append(tocLines, chapter.TOCLine())
		fragments = append(fragments, fragment)
	}

	toc := "# Table of Contents\n\n" + strings.Join(tocLines, "\n") + "\n\n"
	markdown := htmlmd.FilterUnwanted(toc + strings.Join(fragments, "\n\n"))

	return &Result{Markdown: markdown, Chapters: chapters}, nil
}

// loadAll obtains every chapter's raw HTML, from cache when possible.
// Fetches run on a bounded worker pool; results land in index order.
func (b *Builder) loadAll(ctx context.Context, chapters []*pinemd.Chapter, logger *slog.Logger) ([][]byte, error) {
	pages := make([][]byte, len(chapters))

	g, gctx := errgroup.WithContext(ctx)
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = 3
	}
	g.SetLimit(concurrency)

	for i, chapter := range chapters {
		g.Go(func() error {
			raw, err := b.load(gctx, chapter, logger)
			if err != nil {
				return fmt.Errorf("chapter %q: %w", chapter.Title, err)
			}
			pages[i] = raw
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}

// load returns a single chapter's raw HTML. Cached copies win unless
// Force is set; fresh fetches are persisted before conversion.
func (b *Builder) load(ctx context.Context, chapter *pinemd.Chapter, logger *slog.Logger) ([]byte, error) {
	if !b.Force {
		raw, err := b.Cache.Load(chapter)
		if err == nil {
			logger.Info("using cached chapter", "title", chapter.Title, "path", chapter.CachedPath)
			return raw, nil
		}
		if pinemd.ErrorCode(err) != pinemd.ENOTFOUND {
			return nil, err
		}
	}

	if b.Limiter != nil {
		if err := b.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	logger.Info("downloading chapter", "url", chapter.SourceURL)
	delays := b.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	raw, err := fetchWithRetryDelays(ctx, chapter.SourceURL, b.Fetcher.Fetch, delays)
	if err != nil {
		return nil, err
	}

	if err := b.Cache.Save(chapter, raw); err != nil {
		return nil, err
	}
	return raw, nil
}
