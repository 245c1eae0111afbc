package mock

import (
	"context"

	"github.com/fwojciec/pinemd"
)

var _ pinemd.ImageRewriter = (*ImageRewriter)(nil)

// ImageRewriter is a mock implementation of pinemd.ImageRewriter.
type ImageRewriter struct {
	RewriteFn func(ctx context.Context, markdown string) (string, error)
}

func (r *ImageRewriter) Rewrite(ctx context.Context, markdown string) (string, error) {
	return r.RewriteFn(ctx, markdown)
}

var _ pinemd.Exporter = (*Exporter)(nil)

// Exporter is a mock implementation of pinemd.Exporter.
type Exporter struct {
	ExportFn func(ctx context.Context, mdPath string) error
}

func (e *Exporter) Export(ctx context.Context, mdPath string) error {
	return e.ExportFn(ctx, mdPath)
}
