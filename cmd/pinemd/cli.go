package main

import (
	"time"

	"github.com/fwojciec/pinemd"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	PDF         bool          `help:"Also convert the Markdown output to PDF (requires pandoc)."`
	Images      bool          `help:"Convert remote webp images to local PNG files."`
	Force       bool          `short:"f" help:"Refetch cached chapters and reconvert images."`
	Concurrency int           `short:"c" default:"3" help:"Concurrent chapter fetch limit."`
	Timeout     time.Duration `short:"t" default:"30s" help:"Fetch timeout per page."`
	RPS         float64       `name:"rps" default:"2" help:"Fetch rate limit in requests per second."`
	CacheDir    string        `default:"html" help:"Directory for cached chapter HTML."`
	Output      string        `short:"o" help:"Output Markdown path (defaults to the site profile filename)."`
}

// OutputPath returns the output path, falling back to the site profile
// default.
func (c *CLI) OutputPath(site *pinemd.Site) string {
	if c.Output != "" {
		return c.Output
	}
	return site.OutputFile
}
