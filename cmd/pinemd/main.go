package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pinemd"
	"github.com/fwojciec/pinemd/build"
	"github.com/fwojciec/pinemd/fs"
	pinegoquery "github.com/fwojciec/pinemd/goquery"
	"github.com/fwojciec/pinemd/htmlmd"
	pinehttp "github.com/fwojciec/pinemd/http"
	"github.com/fwojciec/pinemd/imgconv"
	"github.com/fwojciec/pinemd/pandoc"
	pineslog "github.com/fwojciec/pinemd/slog"
	"golang.org/x/time/rate"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pinemd"),
		kong.Description("Combine the Pine Script v6 User Manual into a single Markdown file"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))
	site := pinemd.DefaultSite()

	fetcher := pinehttp.NewFetcher(pinehttp.WithTimeout(cli.Timeout))
	defer fetcher.Close()

	builder := &build.Builder{
		Site: site,
		Source: pineslog.NewLoggingChapterSource(
			pinegoquery.NewIndexSource(site, fetcher), logger),
		Fetcher:     fetcher,
		Cache:       fs.NewCacheStore(cli.CacheDir),
		Converter:   htmlmd.NewConverter(site),
		Limiter:     rate.NewLimiter(rate.Limit(cli.RPS), 1),
		Concurrency: cli.Concurrency,
		Force:       cli.Force,
		Logger:      logger,
	}

	result, err := builder.Build(ctx)
	if err != nil {
		return err
	}

	outPath := cli.OutputPath(site)
	markdown := result.Markdown

	if cli.Images {
		imageDir := filepath.Join(filepath.Dir(outPath), "images")
		rewriter := imgconv.NewRewriter(fetcher, imageDir, cli.Force, logger)
		markdown, err = rewriter.Rewrite(ctx, markdown)
		if err != nil {
			return err
		}
	}

	written, err := fs.WriteIfChanged(outPath, []byte(markdown))
	if err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	if written {
		logger.Info("markdown manual saved", "path", outPath)
	} else {
		logger.Info("markdown manual unchanged", "path", outPath)
	}

	if cli.PDF {
		exporter := pineslog.NewLoggingExporter(pandoc.NewExporter(logger), logger)
		if err := exporter.Export(ctx, outPath); err != nil {
			return err
		}
	}

	return nil
}
