package mock

import (
	"context"

	"github.com/fwojciec/pinemd"
)

var _ pinemd.ChapterSource = (*ChapterSource)(nil)

// ChapterSource is a mock implementation of pinemd.ChapterSource.
type ChapterSource struct {
	DiscoverFn func(ctx context.Context) ([]*pinemd.Chapter, error)
}

func (s *ChapterSource) Discover(ctx context.Context) ([]*pinemd.Chapter, error) {
	return s.DiscoverFn(ctx)
}
