package md2docx

import (
	"log/slog"
	"regexp"
)

// Report typography and page defaults.
const (
	DefaultFontName = "Open Sans"
	DefaultFontSize = 10.0
	DefaultMarginCm = 1.0
)

// Match modes for section-break prefixes.
const (
	MatchModePrefix   = "prefix"
	MatchModeContains = "contains"
)

// knownCategories is the closed category set a rule may belong to.
var knownCategories = map[string]bool{
	"azure":     true,
	"wpengine":  true,
	"cisco":     true,
	"barracuda": true,
	"websites":  true,
	"summary":   true,
}

// hexColor matches a 6-digit RGB hex string without a leading #.
var hexColor = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// Style holds one category's table colors as 6-digit RGB hex strings.
type Style struct {
	HeaderFill   string
	HeaderFont   string
	ContentFill1 string
	ContentFill2 string
	ContentFont  string
}

// Shape is a positional header heuristic: a raw header row with exactly
// Cells cells whose cell at EmptyIndex is empty.
type Shape struct {
	Cells      int
	EmptyIndex int
}

// Matcher decides whether a header signature belongs to a category.
type Matcher struct {
	// AnyOf lists literal header signatures; equality with any entry matches.
	AnyOf [][]string
	// Fold makes AnyOf comparison case-insensitive.
	Fold bool
	// Shape optionally matches the raw header layout.
	Shape *Shape
}

// CategoryRule pairs a category's matcher with its style. Rule order is
// classification priority order.
type CategoryRule struct {
	Category string
	Match    Matcher
	Style    Style
}

// SectionBreaks configures the page-break rule: paragraphs whose trimmed
// text matches one of the prefixes (under the given mode) start a new page.
type SectionBreaks struct {
	Prefixes []string
	Mode     string
}

// HeadingStyle overrides the typography of paragraphs carrying a named
// paragraph style, keyed by style name (e.g. "Heading1"). Overridden
// paragraphs keep this typography instead of the report font.
type HeadingStyle struct {
	Font  string
	Size  float64
	Bold  bool
	Color string
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the structured logger used for stage diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithFont sets the report font applied by the font-normalize stage and
// used for table typography.
func WithFont(name string, size float64) Option {
	return func(p *Processor) {
		p.fontName = name
		p.fontSize = size
	}
}

// WithMarginCm sets the page margin (all four sides) applied on load.
// A negative value leaves section margins untouched.
func WithMarginCm(cm float64) Option {
	return func(p *Processor) {
		p.marginCm = cm
	}
}

// WithSectionBreaks sets the configurable section-break rule.
func WithSectionBreaks(sb SectionBreaks) Option {
	return func(p *Processor) {
		p.breaks = sb
	}
}

// WithHeadingStyles replaces the built-in heading typography overrides.
// An empty non-nil map disables heading styling entirely.
func WithHeadingStyles(styles map[string]HeadingStyle) Option {
	return func(p *Processor) {
		p.headings = styles
	}
}

// WithCategoryRules replaces the built-in classification registry.
func WithCategoryRules(rules []CategoryRule) Option {
	return func(p *Processor) {
		p.rules = rules
	}
}
