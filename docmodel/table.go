package docmodel

import "strings"

// Table is a rectangular grid of cells. Row 0 is always the header row.
type Table struct {
	Rows []Row `json:"rows"`
}

// Row is an ordered sequence of cells.
type Row struct {
	Cells []Cell `json:"cells"`
}

// Cell holds one or more paragraphs plus its own visual styling.
type Cell struct {
	Paragraphs []*Paragraph `json:"paragraphs,omitempty"`
	Fill       string       `json:"fill,omitempty"`
	Borders    *CellBorders `json:"borders,omitempty"`
	Width      Length       `json:"width,omitempty"`
	HAlign     string       `json:"hAlign,omitempty"`
	VAlign     string       `json:"vAlign,omitempty"`
}

// CellBorders describes one border style applied to all four sides.
// Size is in eighth-points, matching the OOXML w:sz attribute.
type CellBorders struct {
	Style string `json:"style"`
	Size  int    `json:"size"`
}

// Text returns the cell's paragraph texts joined by newlines.
func (c *Cell) Text() string {
	parts := make([]string, len(c.Paragraphs))
	for i, p := range c.Paragraphs {
		parts[i] = p.Text()
	}
	return strings.Join(parts, "\n")
}

// SetText replaces the cell content with a single plain-text paragraph.
func (c *Cell) SetText(text string) {
	c.Paragraphs = []*Paragraph{{Runs: []Run{{Text: text}}}}
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of cells in the header row.
func (t *Table) ColCount() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0].Cells)
}

// IsRectangular reports whether every row has the same cell count as the
// header row. A table with no rows is not rectangular.
func (t *Table) IsRectangular() bool {
	if len(t.Rows) == 0 {
		return false
	}
	n := len(t.Rows[0].Cells)
	if n == 0 {
		return false
	}
	for _, row := range t.Rows[1:] {
		if len(row.Cells) != n {
			return false
		}
	}
	return true
}

// HeaderTexts returns the trimmed text of every header-row cell, including
// empty cells. Returns nil for a table with no rows.
func (t *Table) HeaderTexts() []string {
	if len(t.Rows) == 0 {
		return nil
	}
	texts := make([]string, len(t.Rows[0].Cells))
	for i := range t.Rows[0].Cells {
		texts[i] = strings.TrimSpace(t.Rows[0].Cells[i].Text())
	}
	return texts
}

// HeaderSignature returns the table's classification key: the trimmed,
// non-empty header-row cell texts in order.
func (t *Table) HeaderSignature() []string {
	texts := t.HeaderTexts()
	sig := make([]string, 0, len(texts))
	for _, s := range texts {
		if s != "" {
			sig = append(sig, s)
		}
	}
	return sig
}
