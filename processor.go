package md2docx

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ianmenethil/html-md2docx/docmodel"
	"github.com/ianmenethil/html-md2docx/internal/mdclean"
	"github.com/ianmenethil/html-md2docx/internal/mdconvert"
	"github.com/ianmenethil/html-md2docx/internal/pipeline"
)

// imageDirName is the directory cleaned image references point at,
// relative to the markdown source.
const imageDirName = "Images"

// Processor orchestrates the post-processing pipeline over one document at
// a time. A Processor is stateless across documents and safe for
// concurrent use on distinct documents; a single document must not be
// processed from two goroutines.
type Processor struct {
	logger   *slog.Logger
	fontName string
	fontSize float64
	marginCm float64
	breaks   SectionBreaks
	rules    []CategoryRule
	headings map[string]HeadingStyle

	registry  *pipeline.Registry
	breakCfg  pipeline.BreakConfig
	overrides map[string]pipeline.StyleOverride
}

// NewProcessor creates a Processor with default configuration: the
// built-in category registry, Open Sans 10pt, 1 cm margins, and prefix
// matching with no extra break prefixes. Returns an error for an invalid
// match mode or malformed category rules.
func NewProcessor(opts ...Option) (*Processor, error) {
	p := &Processor{
		logger:   slog.Default(),
		fontName: DefaultFontName,
		fontSize: DefaultFontSize,
		marginCm: DefaultMarginCm,
		breaks:   SectionBreaks{Mode: MatchModePrefix},
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	p.registry = pipeline.NewRegistry(p.pipelineRules())

	mode := pipeline.MatchMode(p.breaks.Mode)
	if mode == "" {
		mode = pipeline.MatchPrefix
	}
	p.breakCfg = pipeline.BreakConfig{Prefixes: p.breaks.Prefixes, Mode: mode}

	if p.headings == nil {
		p.overrides = pipeline.DefaultStyleOverrides()
	} else {
		p.overrides = make(map[string]pipeline.StyleOverride, len(p.headings))
		for style, h := range p.headings {
			p.overrides[style] = pipeline.StyleOverride(h)
		}
	}

	return p, nil
}

// validate checks the match mode and any custom category rules.
func (p *Processor) validate() error {
	switch p.breaks.Mode {
	case "", MatchModePrefix, MatchModeContains:
	default:
		return fmt.Errorf("%w: %q (must be prefix or contains)", ErrInvalidMatchMode, p.breaks.Mode)
	}
	for i, rule := range p.rules {
		if !knownCategories[rule.Category] {
			return fmt.Errorf("%w: rules[%d] %q", ErrUnknownCategory, i, rule.Category)
		}
		colors := []string{
			rule.Style.HeaderFill, rule.Style.HeaderFont,
			rule.Style.ContentFill1, rule.Style.ContentFill2, rule.Style.ContentFont,
		}
		for _, col := range colors {
			if !hexColor.MatchString(col) {
				return fmt.Errorf("%w: rules[%d] %q", ErrInvalidStyle, i, col)
			}
		}
	}
	for style, h := range p.headings {
		if style == "" {
			return fmt.Errorf("%w: heading override with empty style name", ErrInvalidStyle)
		}
		if !hexColor.MatchString(h.Color) {
			return fmt.Errorf("%w: heading %q color %q", ErrInvalidStyle, style, h.Color)
		}
	}
	return nil
}

// pipelineRules converts the public rules to pipeline form, falling back
// to the built-in registry when none were configured.
func (p *Processor) pipelineRules() []pipeline.Rule {
	if len(p.rules) == 0 {
		return pipeline.DefaultRules()
	}
	rules := make([]pipeline.Rule, 0, len(p.rules))
	for _, r := range p.rules {
		var shape *pipeline.ShapeMatch
		if r.Match.Shape != nil {
			shape = &pipeline.ShapeMatch{Cells: r.Match.Shape.Cells, EmptyIndex: r.Match.Shape.EmptyIndex}
		}
		rules = append(rules, pipeline.Rule{
			Category: pipeline.Category(r.Category),
			Match: pipeline.Matcher{
				AnyOf: r.Match.AnyOf,
				Fold:  r.Match.Fold,
				Shape: shape,
			},
			Style: pipeline.Style(r.Style),
		})
	}
	return rules
}

// stage is one isolated step of the pipeline.
type stage struct {
	name string
	fn   func(*docmodel.Document) error
}

// Process runs all post-processing stages over the document in place.
// name identifies the document in log output. A failing stage is logged
// and skipped; the remaining stages still run. The only returned error is
// context cancellation.
func (p *Processor) Process(ctx context.Context, doc *docmodel.Document, name string) error {
	if p.marginCm >= 0 {
		m := docmodel.Cm(p.marginCm)
		pipeline.ApplyMargins(doc, m, m, m, m)
	}

	stages := []stage{
		{"classify-style", p.styleTables},
		{"section-breaks", p.insertBreaks},
		{"image-autofit", p.autofitImages},
		{"font-normalize", p.normalizeFonts},
		{"heading-styles", p.styleHeadings},
	}

	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := runStage(doc, s); err != nil {
			p.logger.Error("stage failed, continuing",
				"document", name, "stage", s.name, "error", err)
		}
	}
	return nil
}

// runStage executes one stage, converting a panic into an error so a
// malformed document can never abort the whole run.
func runStage(doc *docmodel.Document, s stage) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", s.name, r)
		}
	}()
	return s.fn(doc)
}

// styleTables classifies every table and applies its category style.
// Unclassified tables are left entirely unstyled. A failure on one table
// is logged with the table index and does not stop the others.
func (p *Processor) styleTables(doc *docmodel.Document) error {
	usable := pipeline.UsableWidth(doc)
	for i, t := range doc.Tables {
		rule, ok := p.registry.Classify(t)
		if !ok {
			continue
		}
		if err := styleOneTable(t, rule.Style, usable); err != nil {
			p.logger.Error("table styling failed",
				"table", i, "category", rule.Category, "error", err)
		} else {
			p.logger.Debug("table styled", "table", i, "category", rule.Category)
		}
	}
	return nil
}

func styleOneTable(t *docmodel.Table, st pipeline.Style, usable docmodel.Length) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	pipeline.ApplyStyle(t, st, usable)
	return nil
}

// insertBreaks locates the TOC region and inserts section page breaks.
func (p *Processor) insertBreaks(doc *docmodel.Document) error {
	toc := pipeline.LocateTOC(doc.PlainText())
	if !toc.Found() {
		p.logger.Debug("no TOC markers found, no paragraphs excluded")
	}
	inserted := pipeline.InsertSectionBreaks(doc, toc, p.breakCfg)
	if inserted > 0 {
		p.logger.Debug("section breaks inserted", "count", inserted)
	}
	return nil
}

// autofitImages rescales inline images to the usable content width.
func (p *Processor) autofitImages(doc *docmodel.Document) error {
	resized := pipeline.AutofitImages(doc)
	if skipped := len(doc.Images) - resized; skipped > 0 {
		p.logger.Warn("images without valid dimensions skipped", "count", skipped)
	}
	return nil
}

// normalizeFonts applies the report font to all top-level paragraphs.
func (p *Processor) normalizeFonts(doc *docmodel.Document) error {
	pipeline.NormalizeFonts(doc, p.fontName, p.fontSize)
	return nil
}

// styleHeadings reapplies heading typography over the normalized font.
// Runs after font-normalize so overridden paragraph styles keep their own
// font, size, weight, and color.
func (p *Processor) styleHeadings(doc *docmodel.Document) error {
	restyled := pipeline.ApplyStyleOverrides(doc, p.overrides)
	if restyled > 0 {
		p.logger.Debug("heading styles applied", "count", restyled)
	}
	return nil
}

// ProcessFile loads a persisted document, post-processes it, and saves it
// back to the same path. Load and save failures are fatal for the run;
// the save is atomic, so a failure never leaves a partial document behind.
func (p *Processor) ProcessFile(ctx context.Context, path string) error {
	doc, err := docmodel.Load(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoadDocument, err)
	}
	if err := p.Process(ctx, doc, filepath.Base(path)); err != nil {
		return err
	}
	if err := doc.Save(path); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveDocument, err)
	}
	return nil
}

// ConvertFile cleans and converts a markdown report into a document tree,
// post-processes it, and saves it to outPath.
func (p *Processor) ConvertFile(ctx context.Context, mdPath, outPath string) error {
	src, err := os.ReadFile(mdPath) // #nosec G304 -- source path is user-provided
	if err != nil {
		return fmt.Errorf("reading markdown: %w", err)
	}

	cleaned := mdclean.Clean(string(src), imageDirName)

	opts := mdconvert.Options{BaseDir: filepath.Dir(mdPath)}
	if p.marginCm >= 0 {
		opts.Margin = docmodel.Cm(p.marginCm)
	}
	doc, err := mdconvert.Convert([]byte(cleaned), opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConvertMarkdown, err)
	}

	if err := p.Process(ctx, doc, filepath.Base(mdPath)); err != nil {
		return err
	}
	if err := doc.Save(outPath); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveDocument, err)
	}
	return nil
}
