package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pinemd"
)

// Ensure LoggingExporter implements pinemd.Exporter.
var _ pinemd.Exporter = (*LoggingExporter)(nil)

// LoggingExporter wraps an Exporter with timing logs.
type LoggingExporter struct {
	next   pinemd.Exporter
	logger *slog.Logger
}

// NewLoggingExporter creates a new LoggingExporter.
func NewLoggingExporter(next pinemd.Exporter, logger *slog.Logger) *LoggingExporter {
	return &LoggingExporter{next: next, logger: logger}
}

// Export delegates to the wrapped exporter and logs the operation.
func (e *LoggingExporter) Export(ctx context.Context, mdPath string) (err error) {
	defer func(begin time.Time) {
		e.logger.Info("pdf export",
			"input", mdPath,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Export(ctx, mdPath)
}
