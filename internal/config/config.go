// Package config loads and validates the report post-processing
// configuration: input/output locations, report typography, page margins,
// section-break prefixes, and the category classification registry.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ianmenethil/html-md2docx/internal/fileutil"
	"github.com/ianmenethil/html-md2docx/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidColor    = errors.New("invalid color")
	ErrInvalidMode     = errors.New("invalid match mode")
	ErrInvalidShape    = errors.New("invalid shape matcher")
)

// hexColor matches a 6-digit RGB hex string without a leading #.
var hexColor = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// knownCategories is the closed set a config may define rules for.
var knownCategories = map[string]bool{
	"azure":     true,
	"wpengine":  true,
	"cisco":     true,
	"barracuda": true,
	"websites":  true,
	"summary":   true,
}

// Config holds all configuration for report post-processing.
type Config struct {
	Input         InputConfig         `yaml:"input"`
	Output        OutputConfig        `yaml:"output"`
	Font          FontConfig          `yaml:"font"`
	Page          PageConfig          `yaml:"page"`
	SectionBreaks SectionBreaksConfig `yaml:"sectionBreaks"`
	Headings      []HeadingConfig     `yaml:"headings"`
	Categories    []CategoryConfig    `yaml:"categories"`
}

// InputConfig defines input source options.
type InputConfig struct {
	Dir string `yaml:"dir"` // Directory scanned for markdown files (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Output directory (empty = same as source)
}

// FontConfig defines the report typography.
type FontConfig struct {
	Name string  `yaml:"name"` // Font family (default: "Open Sans")
	Size float64 `yaml:"size"` // Point size (default: 10)
}

// PageConfig defines page margins in centimeters.
type PageConfig struct {
	MarginCm float64 `yaml:"marginCm"` // Applied to all four sides (default: 1)
}

// SectionBreaksConfig defines the configurable page-break rule.
type SectionBreaksConfig struct {
	Prefixes []string `yaml:"prefixes"` // Section-title prefixes forcing a break
	Mode     string   `yaml:"mode"`     // "prefix" or "contains" (default: "prefix")
}

// HeadingConfig overrides the typography of one named paragraph style
// (e.g. "Heading1"). When any headings are configured they replace the
// built-in overrides entirely.
type HeadingConfig struct {
	Style string  `yaml:"style"`
	Font  string  `yaml:"font"`
	Size  float64 `yaml:"size"`
	Bold  bool    `yaml:"bold"`
	Color string  `yaml:"color"`
}

// CategoryConfig pairs a category's matching rule with its table style.
// The list order in the config is the classification priority order.
type CategoryConfig struct {
	Name  string      `yaml:"name"`
	Match MatchConfig `yaml:"match"`
	Style StyleConfig `yaml:"style"`
}

// MatchConfig mirrors pipeline.Matcher in config form.
type MatchConfig struct {
	AnyOf [][]string   `yaml:"anyOf"`
	Fold  bool         `yaml:"fold"`
	Shape *ShapeConfig `yaml:"shape"`
}

// ShapeConfig mirrors pipeline.ShapeMatch in config form.
type ShapeConfig struct {
	Cells      int `yaml:"cells"`
	EmptyIndex int `yaml:"emptyIndex"`
}

// StyleConfig holds one category's colors as 6-digit RGB hex strings.
type StyleConfig struct {
	HeaderFill   string `yaml:"headerFill"`
	HeaderFont   string `yaml:"headerFont"`
	ContentFill1 string `yaml:"contentFill1"`
	ContentFill2 string `yaml:"contentFill2"`
	ContentFont  string `yaml:"contentFont"`
}

// DefaultConfig returns the compiled-in configuration: Open Sans 10pt,
// 1 cm margins, prefix matching with no extra prefixes, and an empty
// category list (meaning the built-in registry applies).
func DefaultConfig() *Config {
	return &Config{
		Font:          FontConfig{Name: "Open Sans", Size: 10},
		Page:          PageConfig{MarginCm: 1},
		SectionBreaks: SectionBreaksConfig{Mode: "prefix"},
	}
}

// Validate checks mode, category names, colors, and shape matchers.
// Called automatically by LoadConfig, but available for consumers who
// construct Config manually.
func (c *Config) Validate() error {
	switch c.SectionBreaks.Mode {
	case "", "prefix", "contains":
		// valid
	default:
		return fmt.Errorf("%w: %q (must be prefix or contains)", ErrInvalidMode, c.SectionBreaks.Mode)
	}

	if c.Font.Size < 0 {
		return fmt.Errorf("font.size: must not be negative, got %g", c.Font.Size)
	}
	if c.Page.MarginCm < 0 {
		return fmt.Errorf("page.marginCm: must not be negative, got %g", c.Page.MarginCm)
	}

	for i, h := range c.Headings {
		if h.Style == "" {
			return fmt.Errorf("headings[%d].style: cannot be empty", i)
		}
		if h.Size < 0 {
			return fmt.Errorf("headings[%d].size: must not be negative, got %g", i, h.Size)
		}
		if !hexColor.MatchString(h.Color) {
			return fmt.Errorf("%w: headings[%d].color %q", ErrInvalidColor, i, h.Color)
		}
	}

	for i, cat := range c.Categories {
		if !knownCategories[cat.Name] {
			return fmt.Errorf("%w: categories[%d].name %q", ErrUnknownCategory, i, cat.Name)
		}
		if s := cat.Match.Shape; s != nil {
			if s.Cells <= 0 || s.EmptyIndex < 0 || s.EmptyIndex >= s.Cells {
				return fmt.Errorf("%w: categories[%d] cells=%d emptyIndex=%d", ErrInvalidShape, i, s.Cells, s.EmptyIndex)
			}
		}
		colors := []struct{ field, value string }{
			{"headerFill", cat.Style.HeaderFill},
			{"headerFont", cat.Style.HeaderFont},
			{"contentFill1", cat.Style.ContentFill1},
			{"contentFill2", cat.Style.ContentFill2},
			{"contentFont", cat.Style.ContentFont},
		}
		for _, col := range colors {
			if !hexColor.MatchString(col.value) {
				return fmt.Errorf("%w: categories[%d].style.%s %q", ErrInvalidColor, i, col.field, col.value)
			}
		}
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard
// locations. Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard
// locations. Tries extensions in order: .yaml, .yml; locations in order:
// current directory, then the user config directory under md2docx/.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "md2docx", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
