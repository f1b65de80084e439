// Package docmodel defines the mutable document tree shared by all
// post-processing stages: sections with page geometry, paragraphs made of
// styled runs, tables with styled cells, and inline images.
//
// The tree is built once per run (by the markdown converter or by loading a
// previously saved document), mutated in place by the pipeline, and persisted
// exactly once. It carries no locking; a single document must not be mutated
// from two goroutines.
package docmodel

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ianmenethil/html-md2docx/internal/fileutil"
)

// Document is the root of the tree. Paragraphs holds only top-level
// paragraphs, in document order; paragraphs inside table cells are reachable
// through Tables.
type Document struct {
	Sections   []Section      `json:"sections"`
	Paragraphs []*Paragraph   `json:"paragraphs"`
	Tables     []*Table       `json:"tables,omitempty"`
	Images     []*InlineImage `json:"images,omitempty"`
}

// Section holds page geometry. Only the first section of a document is
// authoritative for layout computations.
type Section struct {
	PageWidth    Length `json:"pageWidth"`
	PageHeight   Length `json:"pageHeight"`
	MarginTop    Length `json:"marginTop"`
	MarginBottom Length `json:"marginBottom"`
	MarginLeft   Length `json:"marginLeft"`
	MarginRight  Length `json:"marginRight"`
}

// UsableWidth returns page width minus left and right margins.
// The result may be zero or negative if the section is unset or malformed;
// callers decide whether to fall back to defaults.
func (s *Section) UsableWidth() Length {
	return s.PageWidth - s.MarginLeft - s.MarginRight
}

// Paragraph is an ordered sequence of runs. A paragraph with PageBreak set
// renders as a hard page break and usually has no runs.
type Paragraph struct {
	Runs      []Run  `json:"runs,omitempty"`
	Style     string `json:"style,omitempty"`
	PageBreak bool   `json:"pageBreak,omitempty"`
}

// Run is a span of text with uniform formatting. Size is in points;
// Color is a 6-digit RGB hex string without a leading #.
type Run struct {
	Text  string  `json:"text"`
	Font  string  `json:"font,omitempty"`
	Size  float64 `json:"size,omitempty"`
	Bold  bool    `json:"bold,omitempty"`
	Color string  `json:"color,omitempty"`
}

// Text returns the concatenation of the paragraph's run texts.
func (p *Paragraph) Text() string {
	if len(p.Runs) == 1 {
		return p.Runs[0].Text
	}
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// PageBreakParagraph returns a new empty paragraph carrying an explicit
// page-break marker.
func PageBreakParagraph() *Paragraph {
	return &Paragraph{PageBreak: true}
}

// InlineImage is an image embedded in the document flow. PixelWidth and
// PixelHeight are the intrinsic dimensions of the original asset and must
// not change after construction; Width and Height are the rendered size.
type InlineImage struct {
	Path        string `json:"path,omitempty"`
	PixelWidth  int    `json:"pixelWidth"`
	PixelHeight int    `json:"pixelHeight"`
	Width       Length `json:"width"`
	Height      Length `json:"height"`
}

// FirstSection returns the authoritative section, or nil if the document
// has none.
func (d *Document) FirstSection() *Section {
	if len(d.Sections) == 0 {
		return nil
	}
	return &d.Sections[0]
}

// PlainText returns the top-level paragraphs' text joined by newlines,
// in document order. Offsets into this string are the coordinate system
// for the TOC interval.
func (d *Document) PlainText() string {
	parts := make([]string, len(d.Paragraphs))
	for i, p := range d.Paragraphs {
		parts[i] = p.Text()
	}
	return strings.Join(parts, "\n")
}

// ParagraphOffsets returns the start offset of every top-level paragraph
// within PlainText(). Recompute after any structural insertion; the offsets
// are only valid for the paragraph list they were computed from.
func (d *Document) ParagraphOffsets() []int {
	offsets := make([]int, len(d.Paragraphs))
	off := 0
	for i, p := range d.Paragraphs {
		offsets[i] = off
		off += len(p.Text()) + 1 // +1 for the joining newline
	}
	return offsets
}

// Load reads a document tree from its persisted JSON form.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- document path is user-provided
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing document %s: %w", path, err)
	}
	return &doc, nil
}

// Save persists the document tree as JSON. The write is atomic
// (write-then-rename) so a failed save never leaves a partial document
// at the destination.
func (d *Document) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	data = append(data, '\n')
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("saving document %s: %w", path, err)
	}
	return nil
}
