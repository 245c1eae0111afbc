// Package pandoc renders the assembled Markdown to PDF through external
// tools: pandoc for typesetting and ghostscript for recompression.
// Neither tool is required; absence degrades to a logged skip.
package pandoc

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/fwojciec/pinemd"
)

// Ensure Exporter implements pinemd.Exporter at compile time.
var _ pinemd.Exporter = (*Exporter)(nil)

// CommandRunner abstracts command execution to enable testing without
// real subprocesses.
type CommandRunner interface {
	// LookPath resolves the path of a tool, or errors when the tool is
	// not installed.
	LookPath(name string) (string, error)

	// Run executes the command, returning captured stderr for error
	// reporting.
	Run(ctx context.Context, name string, args ...string) (stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.String(), err
}

// Exporter converts a Markdown file to PDF.
type Exporter struct {
	runner CommandRunner
	logger *slog.Logger
}

// NewExporter creates an Exporter with a real command runner.
func NewExporter(logger *slog.Logger) *Exporter {
	return NewExporterWithRunner(&ExecRunner{}, logger)
}

// NewExporterWithRunner creates an Exporter with a custom runner.
func NewExporterWithRunner(runner CommandRunner, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Exporter{runner: runner, logger: logger}
}

// Export renders mdPath to a PDF alongside it. A missing pandoc is a
// logged skip; a missing ghostscript only skips recompression. The
// resulting PDF replaces any previous one at the same path.
func (e *Exporter) Export(ctx context.Context, mdPath string) error {
	pdfPath := strings.TrimSuffix(mdPath, ".md") + ".pdf"

	pandocPath, err := e.runner.LookPath("pandoc")
	if err != nil {
		e.logger.Warn("pandoc not found, skipping PDF generation", "err", err)
		return nil
	}

	e.logger.Info("rendering PDF", "input", mdPath, "output", pdfPath)
	stderr, err := e.runner.Run(ctx, pandocPath,
		mdPath,
		"--standalone",
		"--toc",
		"--pdf-engine=xelatex",
		"-V", "geometry:margin=1in",
		"-o", pdfPath,
	)
	if err != nil {
		return fmt.Errorf("pandoc: %s: %w", strings.TrimSpace(stderr), err)
	}

	if err := e.recompress(ctx, pdfPath); err != nil {
		// Recompression is best-effort; the uncompressed PDF is valid.
		e.logger.Warn("PDF recompression skipped", "err", err)
	}
	return nil
}

// recompress rewrites the PDF in place through ghostscript's pdfwrite
// device, which typically shrinks pandoc output considerably.
func (e *Exporter) recompress(ctx context.Context, pdfPath string) error {
	gsPath, err := e.runner.LookPath("gs")
	if err != nil {
		return err
	}

	tmpPath := pdfPath + ".tmp"
	stderr, err := e.runner.Run(ctx, gsPath,
		"-sDEVICE=pdfwrite",
		"-dCompatibilityLevel=1.4",
		"-dPDFSETTINGS=/ebook",
		"-dNOPAUSE",
		"-dBATCH",
		"-dQUIET",
		"-sOutputFile="+tmpPath,
		pdfPath,
	)
	if err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("ghostscript: %s: %w", strings.TrimSpace(stderr), err)
	}
	return os.Rename(tmpPath, pdfPath)
}
