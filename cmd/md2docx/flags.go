package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all flags for the md2docx CLI.
type cliFlags struct {
	config  string
	output  string
	workers int
	margin  float64
	font    string
	size    float64
	quiet   bool
	verbose bool
	version bool
}

// marginSentinel detects if --margin was explicitly set. Zero is a valid
// margin, so the sentinel is an out-of-range negative value.
const marginSentinel = -1.0

// parseFlags parses CLI flags and returns positional args.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("md2docx", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.Float64Var(&f.margin, "margin", marginSentinel, "page margin in centimeters")
	fs.StringVar(&f.font, "font", "", "report font family")
	fs.Float64Var(&f.size, "size", 0, "report font size in points")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// printUsage writes the CLI usage text.
func printUsage(w io.Writer) {
	fmt.Fprint(w, `md2docx - post-process report documents

Usage:
  md2docx [flags] <input>

Input may be a markdown report (.md, .markdown), a saved document tree
(.json), or a directory scanned for both. Markdown inputs are cleaned,
converted, post-processed, and saved; document trees are post-processed
in place unless -o names a different location.

Flags:
  -c, --config string   config file name or path
  -o, --output string   output file or directory
  -w, --workers int     parallel workers (0 = auto)
      --margin float    page margin in centimeters
      --font string     report font family
      --size float      report font size in points
  -q, --quiet           only show errors
  -v, --verbose         show detailed progress
      --version         print version and exit
`)
}
