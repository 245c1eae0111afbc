// Package slog provides logging decorators for pinemd interfaces. The
// core packages stay free of I/O; observability is layered on here.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pinemd"
)

// Ensure LoggingChapterSource implements pinemd.ChapterSource.
var _ pinemd.ChapterSource = (*LoggingChapterSource)(nil)

// LoggingChapterSource wraps a ChapterSource with discovery logging.
type LoggingChapterSource struct {
	next   pinemd.ChapterSource
	logger *slog.Logger
}

// NewLoggingChapterSource creates a new LoggingChapterSource.
func NewLoggingChapterSource(next pinemd.ChapterSource, logger *slog.Logger) *LoggingChapterSource {
	return &LoggingChapterSource{next: next, logger: logger}
}

// Discover delegates to the wrapped source and logs the operation.
func (s *LoggingChapterSource) Discover(ctx context.Context) (chapters []*pinemd.Chapter, err error) {
	defer func(begin time.Time) {
		s.logger.Info("chapter discovery",
			"count", len(chapters),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Discover(ctx)
}
