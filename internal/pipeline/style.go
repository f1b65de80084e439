package pipeline

import "github.com/ianmenethil/html-md2docx/docmodel"

// Report-wide table typography.
const (
	TableFontName = "Open Sans"
	TableFontSize = 10.0
)

// Cell border: single line at minimal weight (w:sz is in eighth-points).
const (
	borderStyle = "single"
	borderSize  = 4
)

// Cell text alignment applied to every styled cell.
const (
	alignCenter = "center"
)

// Style holds one category's visual rules. Colors are 6-digit RGB hex
// strings without a leading #.
type Style struct {
	HeaderFill   string
	HeaderFont   string
	ContentFill1 string
	ContentFill2 string
	ContentFont  string
}

// ApplyStyle applies a category style to the table: header fill, bold white
// header text, alternating content-row fills, single minimal borders, the
// report table font, centered text, and normalized cell widths computed
// from the usable content width.
//
// The transformation is idempotent: every attribute is set outright, never
// combined with a previous value, so re-applying produces identical output.
func ApplyStyle(t *docmodel.Table, st Style, usableWidth docmodel.Length) {
	for rowIdx := range t.Rows {
		row := &t.Rows[rowIdx]
		header := rowIdx == 0

		fill := st.HeaderFill
		fontColor := st.HeaderFont
		if !header {
			if (rowIdx-1)%2 == 0 {
				fill = st.ContentFill1
			} else {
				fill = st.ContentFill2
			}
			fontColor = st.ContentFont
		}

		var width docmodel.Length
		if n := len(row.Cells); n > 0 {
			width = usableWidth / docmodel.Length(n)
		}

		for cellIdx := range row.Cells {
			cell := &row.Cells[cellIdx]
			cell.Fill = fill
			cell.Borders = &docmodel.CellBorders{Style: borderStyle, Size: borderSize}
			cell.Width = width
			cell.HAlign = alignCenter
			cell.VAlign = alignCenter
			for _, p := range cell.Paragraphs {
				for i := range p.Runs {
					r := &p.Runs[i]
					r.Font = TableFontName
					r.Size = TableFontSize
					r.Color = fontColor
					r.Bold = header
				}
			}
		}
	}
}
