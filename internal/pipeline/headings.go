package pipeline

import "github.com/ianmenethil/html-md2docx/docmodel"

// StyleOverride rewrites the typography of paragraphs carrying a named
// paragraph style: headings keep their own font, size, weight, and color
// instead of the report font.
type StyleOverride struct {
	Font  string
	Size  float64
	Bold  bool
	Color string // 6-digit RGB hex
}

// DefaultStyleOverrides returns the built-in heading typography: top-level
// headings in 16pt bold blue Arial, second-level headings in 14pt bold
// blue Times New Roman.
func DefaultStyleOverrides() map[string]StyleOverride {
	return map[string]StyleOverride{
		"Heading1": {Font: "Arial", Size: 16, Bold: true, Color: "0000FF"},
		"Heading2": {Font: "Times New Roman", Size: 14, Bold: true, Color: "0005FF"},
	}
}

// ApplyStyleOverrides sets the override typography on every run of every
// top-level paragraph whose Style names an override. Attributes are set
// outright, so running it after font normalization (or twice) always
// converges to the override values. Returns the number of paragraphs
// restyled.
func ApplyStyleOverrides(doc *docmodel.Document, overrides map[string]StyleOverride) int {
	if len(overrides) == 0 {
		return 0
	}
	restyled := 0
	for _, p := range doc.Paragraphs {
		ov, ok := overrides[p.Style]
		if !ok {
			continue
		}
		for i := range p.Runs {
			p.Runs[i].Font = ov.Font
			p.Runs[i].Size = ov.Size
			p.Runs[i].Bold = ov.Bold
			p.Runs[i].Color = ov.Color
		}
		restyled++
	}
	return restyled
}
