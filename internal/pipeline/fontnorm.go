package pipeline

import "github.com/ianmenethil/html-md2docx/docmodel"

// NormalizeFonts sets every top-level paragraph run to the given font name
// and size. Table cell runs are left alone: classified tables get their
// typography from ApplyStyle, and unclassified tables must stay unstyled.
func NormalizeFonts(doc *docmodel.Document, font string, size float64) {
	for _, p := range doc.Paragraphs {
		for i := range p.Runs {
			p.Runs[i].Font = font
			p.Runs[i].Size = size
		}
	}
}

// ApplyMargins sets the given margins on every section of the document.
func ApplyMargins(doc *docmodel.Document, top, bottom, left, right docmodel.Length) {
	for i := range doc.Sections {
		s := &doc.Sections[i]
		s.MarginTop = top
		s.MarginBottom = bottom
		s.MarginLeft = left
		s.MarginRight = right
	}
}
