package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	md2docx "github.com/ianmenethil/html-md2docx"
	"github.com/ianmenethil/html-md2docx/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrInvalidExtension   = errors.New("file must have .md, .markdown, or .json extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// maxWorkers caps the worker count regardless of the --workers flag.
const maxWorkers = 32

const dirPermissions = 0o750

// FileToProcess represents a single input file.
type FileToProcess struct {
	InputPath  string
	OutputPath string
	Markdown   bool
}

// ProcessResult holds the outcome for a single file.
type ProcessResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// run orchestrates discovery and batch processing.
func run(ctx context.Context, flags *cliFlags, args []string, logger *slog.Logger, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	var err error
	if flags.config != "" {
		cfg, err = config.LoadConfig(flags.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	mergeFlags(flags, cfg)

	inputPath, err := resolveInputPath(args, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no report files found in %s", inputPath)
	}

	proc, err := md2docx.NewProcessor(processorOptions(cfg, logger)...)
	if err != nil {
		return err
	}

	workers := resolveWorkers(flags.workers)
	logger.Debug("starting batch", "files", len(files), "workers", workers)

	results := processBatch(ctx, proc, files, workers)

	failed := printResults(results, flags.quiet, flags.verbose, env)
	if failed > 0 {
		return fmt.Errorf("%d document(s) failed", failed)
	}
	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	if flags.font != "" {
		cfg.Font.Name = flags.font
	}
	if flags.size > 0 {
		cfg.Font.Size = flags.size
	}
	if flags.margin != marginSentinel {
		cfg.Page.MarginCm = flags.margin
	}
}

// processorOptions builds library options from the merged config.
func processorOptions(cfg *config.Config, logger *slog.Logger) []md2docx.Option {
	opts := []md2docx.Option{
		md2docx.WithLogger(logger),
		md2docx.WithFont(cfg.Font.Name, cfg.Font.Size),
		md2docx.WithMarginCm(cfg.Page.MarginCm),
		md2docx.WithSectionBreaks(md2docx.SectionBreaks{
			Prefixes: cfg.SectionBreaks.Prefixes,
			Mode:     cfg.SectionBreaks.Mode,
		}),
	}
	if styles := headingStyles(cfg.Headings); len(styles) > 0 {
		opts = append(opts, md2docx.WithHeadingStyles(styles))
	}
	if rules := categoryRules(cfg.Categories); len(rules) > 0 {
		opts = append(opts, md2docx.WithCategoryRules(rules))
	}
	return opts
}

// headingStyles converts config heading overrides to library form. An
// empty config list keeps the library's built-in overrides.
func headingStyles(headings []config.HeadingConfig) map[string]md2docx.HeadingStyle {
	if len(headings) == 0 {
		return nil
	}
	styles := make(map[string]md2docx.HeadingStyle, len(headings))
	for _, h := range headings {
		styles[h.Style] = md2docx.HeadingStyle{
			Font:  h.Font,
			Size:  h.Size,
			Bold:  h.Bold,
			Color: h.Color,
		}
	}
	return styles
}

// categoryRules converts config categories to library rules, preserving
// the config order as classification priority.
func categoryRules(cats []config.CategoryConfig) []md2docx.CategoryRule {
	rules := make([]md2docx.CategoryRule, 0, len(cats))
	for _, cat := range cats {
		var shape *md2docx.Shape
		if cat.Match.Shape != nil {
			shape = &md2docx.Shape{Cells: cat.Match.Shape.Cells, EmptyIndex: cat.Match.Shape.EmptyIndex}
		}
		rules = append(rules, md2docx.CategoryRule{
			Category: cat.Name,
			Match: md2docx.Matcher{
				AnyOf: cat.Match.AnyOf,
				Fold:  cat.Match.Fold,
				Shape: shape,
			},
			Style: md2docx.Style{
				HeaderFill:   cat.Style.HeaderFill,
				HeaderFont:   cat.Style.HeaderFont,
				ContentFill1: cat.Style.ContentFill1,
				ContentFill2: cat.Style.ContentFill2,
				ContentFont:  cat.Style.ContentFont,
			},
		})
	}
	return rules
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.Dir != "" {
		return cfg.Input.Dir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.Dir
}

// discoverFiles finds all report files to process. Markdown files are
// converted; saved document trees are post-processed.
func discoverFiles(inputPath, outputDir string) ([]FileToProcess, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		md, err := isMarkdown(inputPath)
		if err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "", md)
		return []FileToProcess{{InputPath: inputPath, OutputPath: outPath, Markdown: md}}, nil
	}

	var files []FileToProcess
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".md", ".markdown":
			outPath := resolveOutputPath(path, outputDir, inputPath, true)
			files = append(files, FileToProcess{InputPath: path, OutputPath: outPath, Markdown: true})
		case ".json":
			outPath := resolveOutputPath(path, outputDir, inputPath, false)
			files = append(files, FileToProcess{InputPath: path, OutputPath: outPath, Markdown: false})
		}
		return nil
	})

	return files, err
}

// isMarkdown classifies a single input file by extension.
func isMarkdown(path string) (bool, error) {
	switch filepath.Ext(path) {
	case ".md", ".markdown":
		return true, nil
	case ".json":
		return false, nil
	default:
		return false, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
}

// resolveOutputPath determines the output path for an input file.
// Document trees with no output directory are rewritten in place.
func resolveOutputPath(inputPath, outputDir, baseInputDir string, markdown bool) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputDir == "" {
		if !markdown {
			return inputPath
		}
		return filepath.Join(filepath.Dir(inputPath), base+".json")
	}

	if strings.HasSuffix(outputDir, ".json") {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, base+".json")
		}
	}

	return filepath.Join(outputDir, base+".json")
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}

// resolveWorkers maps the --workers flag to an effective worker count.
func resolveWorkers(n int) int {
	if n > 0 {
		return n
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > maxWorkers {
		workers = maxWorkers
	}
	return workers
}

// processBatch runs files through the processor concurrently. A Processor
// is safe for concurrent use on distinct documents, so one instance is
// shared by all workers.
func processBatch(ctx context.Context, proc *md2docx.Processor, files []FileToProcess, workers int) []ProcessResult {
	if len(files) == 0 {
		return nil
	}

	if workers > len(files) {
		workers = len(files)
	}

	results := make([]ProcessResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ProcessResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = processOne(ctx, proc, files[idx])
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// processOne handles a single file and returns the result.
func processOne(ctx context.Context, proc *md2docx.Processor, f FileToProcess) ProcessResult {
	start := time.Now()
	result := ProcessResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		result.Err = fmt.Errorf("creating output directory: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	if f.Markdown {
		result.Err = proc.ConvertFile(ctx, f.InputPath, f.OutputPath)
	} else if f.OutputPath == f.InputPath {
		result.Err = proc.ProcessFile(ctx, f.InputPath)
	} else {
		result.Err = processTo(ctx, proc, f.InputPath, f.OutputPath)
	}
	result.Duration = time.Since(start)
	return result
}

// processTo post-processes a saved document tree into a different location.
func processTo(ctx context.Context, proc *md2docx.Processor, inPath, outPath string) error {
	if err := copyFile(inPath, outPath); err != nil {
		return fmt.Errorf("%w: %v", md2docx.ErrLoadDocument, err)
	}
	return proc.ProcessFile(ctx, outPath)
}

// copyFile copies src to dst, creating or truncating dst.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src) // #nosec G304 -- discovered path
	if err != nil {
		return err
	}
	// #nosec G306 -- report documents are meant to be readable
	return os.WriteFile(dst, data, 0o644)
}

// printResults outputs per-file results using the provided writers.
func printResults(results []ProcessResult, quiet, verbose bool, env *Environment) int {
	var succeeded, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		succeeded++
		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Processed %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}
