// Package imgconv localizes webp images referenced from the assembled
// Markdown. PDF engines generally cannot embed webp, so each remote webp
// is downloaded, re-encoded as PNG next to the output file, and the
// Markdown reference rewritten to the local copy.
package imgconv

import (
	"bytes"
	"context"
	"image/png"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fwojciec/pinemd"
	"golang.org/x/image/webp"
)

// Ensure Rewriter implements pinemd.ImageRewriter at compile time.
var _ pinemd.ImageRewriter = (*Rewriter)(nil)

// webpImageRe matches Markdown image references with a remote webp target.
var webpImageRe = regexp.MustCompile(`!\[[^\]]*\]\((https?://[^)\s]+\.webp)\)`)

// Rewriter converts remote webp images to local PNG files.
type Rewriter struct {
	fetcher pinemd.Fetcher
	dir     string
	force   bool
	logger  *slog.Logger
}

// NewRewriter creates a Rewriter storing PNG files under dir.
// When force is set, existing local copies are converted again.
func NewRewriter(fetcher pinemd.Fetcher, dir string, force bool, logger *slog.Logger) *Rewriter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Rewriter{fetcher: fetcher, dir: dir, force: force, logger: logger}
}

// Rewrite replaces each remote webp reference with a local PNG copy.
// A failed download or decode is logged and skipped, leaving the
// original reference in place; one broken image never aborts the run.
func (r *Rewriter) Rewrite(ctx context.Context, markdown string) (string, error) {
	matches := webpImageRe.FindAllStringSubmatch(markdown, -1)
	if len(matches) == 0 {
		return markdown, nil
	}

	replaced := make(map[string]string) // remote URL -> local path
	for _, m := range matches {
		remote := m[1]
		if _, ok := replaced[remote]; ok {
			continue
		}
		local, err := r.convert(ctx, remote)
		if err != nil {
			r.logger.Warn("image conversion skipped", "url", remote, "err", err)
			continue
		}
		replaced[remote] = local
	}

	out := markdown
	for remote, local := range replaced {
		out = strings.ReplaceAll(out, "("+remote+")", "("+local+")")
	}
	return out, nil
}

// convert fetches one webp image and stores it as PNG, reusing an
// existing local copy unless forced. Returns the path to embed in the
// Markdown, relative to the output file.
func (r *Rewriter) convert(ctx context.Context, remote string) (string, error) {
	name, err := localName(remote)
	if err != nil {
		return "", err
	}
	full := filepath.Join(r.dir, name)
	embed := filepath.ToSlash(filepath.Join(filepath.Base(r.dir), name))

	if !r.force {
		if _, err := os.Stat(full); err == nil {
			return embed, nil
		}
	}

	raw, err := r.fetcher.Fetch(ctx, remote)
	if err != nil {
		return "", err
	}

	img, err := webp.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", pinemd.Errorf(pinemd.EINVALID, "decode webp %s: %v", remote, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}

	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, buf.Bytes(), 0644); err != nil {
		return "", err
	}
	return embed, nil
}

// localName derives the PNG file name from the remote URL path basename.
func localName(remote string) (string, error) {
	u, err := url.Parse(remote)
	if err != nil {
		return "", err
	}
	base := path.Base(u.Path)
	return strings.TrimSuffix(base, path.Ext(base)) + ".png", nil
}
