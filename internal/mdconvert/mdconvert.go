// Package mdconvert builds a docmodel document tree from markdown source.
// It replaces the external markdown-to-document converter: headings,
// paragraphs, tables, thematic breaks, and inline images become docmodel
// entities, and referenced image files are probed for their intrinsic
// pixel dimensions.
package mdconvert

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/ianmenethil/html-md2docx/docmodel"
)

// Options configures the conversion.
type Options struct {
	// BaseDir resolves relative image references. Empty means the current
	// working directory.
	BaseDir string
	// Page geometry for the document's single section. Zero values fall
	// back to A4 with 1 cm margins.
	PageWidth  docmodel.Length
	PageHeight docmodel.Length
	Margin     docmodel.Length
}

func (o Options) section() docmodel.Section {
	width := o.PageWidth
	if width <= 0 {
		width = docmodel.A4PageWidth
	}
	height := o.PageHeight
	if height <= 0 {
		height = docmodel.A4PageHeight
	}
	margin := o.Margin
	if margin <= 0 {
		margin = docmodel.DefaultMargin
	}
	return docmodel.Section{
		PageWidth:    width,
		PageHeight:   height,
		MarginTop:    margin,
		MarginBottom: margin,
		MarginLeft:   margin,
		MarginRight:  margin,
	}
}

// converter accumulates the document while walking the markdown AST.
type converter struct {
	src []byte
	doc *docmodel.Document
	opt Options
}

// Convert parses markdown source into a document tree with one section.
func Convert(source []byte, opts Options) (*docmodel.Document, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	root := md.Parser().Parse(text.NewReader(source))

	c := &converter{
		src: source,
		doc: &docmodel.Document{Sections: []docmodel.Section{opts.section()}},
		opt: opts,
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if err := c.convertBlock(n); err != nil {
			return nil, err
		}
	}
	return c.doc, nil
}

func (c *converter) convertBlock(n ast.Node) error {
	switch node := n.(type) {
	case *ast.Heading:
		c.doc.Paragraphs = append(c.doc.Paragraphs, &docmodel.Paragraph{
			Style: fmt.Sprintf("Heading%d", node.Level),
			Runs:  []docmodel.Run{{Text: c.nodeText(node), Bold: true}},
		})
	case *ast.Paragraph:
		c.doc.Paragraphs = append(c.doc.Paragraphs, c.paragraphFromInline(node))
	case *ast.ThematicBreak:
		// Keep the blank separator the exporter places before a rule, so
		// the rule stays textually detached from the preceding paragraph.
		c.doc.Paragraphs = append(c.doc.Paragraphs,
			&docmodel.Paragraph{},
			&docmodel.Paragraph{Runs: []docmodel.Run{{Text: "---"}}},
		)
	case *ast.List:
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			c.doc.Paragraphs = append(c.doc.Paragraphs, &docmodel.Paragraph{
				Style: "ListParagraph",
				Runs:  []docmodel.Run{{Text: "- " + c.nodeText(item)}},
			})
		}
	case *ast.Blockquote:
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			if err := c.convertBlock(child); err != nil {
				return err
			}
		}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		c.doc.Paragraphs = append(c.doc.Paragraphs, &docmodel.Paragraph{
			Style: "Code",
			Runs:  []docmodel.Run{{Text: c.blockLines(n)}},
		})
	case *east.Table:
		c.doc.Tables = append(c.doc.Tables, c.convertTable(node))
	default:
		// Unhandled block kinds (HTML blocks etc.) degrade to plain text.
		if txt := c.nodeText(n); txt != "" {
			c.doc.Paragraphs = append(c.doc.Paragraphs, &docmodel.Paragraph{
				Runs: []docmodel.Run{{Text: txt}},
			})
		}
	}
	return nil
}

// paragraphFromInline builds a paragraph from an inline container,
// splitting bold spans into their own runs and registering inline images.
func (c *converter) paragraphFromInline(n ast.Node) *docmodel.Paragraph {
	p := &docmodel.Paragraph{}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch inline := child.(type) {
		case *ast.Emphasis:
			p.Runs = append(p.Runs, docmodel.Run{
				Text: c.nodeText(inline),
				Bold: inline.Level >= 2,
			})
		case *ast.Image:
			c.doc.Images = append(c.doc.Images, c.convertImage(inline))
		case *ast.Link:
			p.Runs = append(p.Runs, docmodel.Run{Text: c.nodeText(inline)})
		default:
			if txt := c.nodeText(child); txt != "" {
				p.Runs = append(p.Runs, docmodel.Run{Text: txt})
			}
		}
	}
	return p
}

func (c *converter) convertImage(img *ast.Image) *docmodel.InlineImage {
	ref := string(img.Destination)
	w, h := probeImageSize(c.opt.BaseDir, ref)
	return &docmodel.InlineImage{
		Path:        ref,
		PixelWidth:  w,
		PixelHeight: h,
	}
}

func (c *converter) convertTable(table *east.Table) *docmodel.Table {
	t := &docmodel.Table{}
	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		switch row := child.(type) {
		case *east.TableHeader:
			t.Rows = append(t.Rows, c.convertRow(row))
		case *east.TableRow:
			t.Rows = append(t.Rows, c.convertRow(row))
		}
	}
	return t
}

// convertRow turns a header or body row node into a docmodel row; both
// kinds hold TableCell children.
func (c *converter) convertRow(row ast.Node) docmodel.Row {
	var r docmodel.Row
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		if _, ok := cell.(*east.TableCell); !ok {
			continue
		}
		var dc docmodel.Cell
		dc.SetText(c.nodeText(cell))
		r.Cells = append(r.Cells, dc)
	}
	return r
}

// nodeText returns the plain text of a node and its descendants.
func (c *converter) nodeText(n ast.Node) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := node.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(c.src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

// blockLines returns the raw source lines of a code block.
func (c *converter) blockLines(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(c.src))
	}
	return strings.TrimRight(sb.String(), "\n")
}
