package pipeline

import (
	"math"

	"github.com/ianmenethil/html-md2docx/docmodel"
)

// UsableWidth returns the usable content width of the document's
// authoritative section. Unset page width or margins fall back per field to
// A4 width and 1 cm margins, mirroring the default report geometry.
func UsableWidth(doc *docmodel.Document) docmodel.Length {
	pageWidth := docmodel.A4PageWidth
	left := docmodel.DefaultMargin
	right := docmodel.DefaultMargin

	if s := doc.FirstSection(); s != nil {
		if s.PageWidth > 0 {
			pageWidth = s.PageWidth
		}
		if s.MarginLeft > 0 {
			left = s.MarginLeft
		}
		if s.MarginRight > 0 {
			right = s.MarginRight
		}
	}
	return pageWidth - left - right
}

// AutofitImages rescales every inline image so its rendered width equals
// the usable content width, deriving the height from the intrinsic aspect
// ratio rounded to the nearest length unit. Images without valid intrinsic
// dimensions are skipped; the count of resized images is returned.
func AutofitImages(doc *docmodel.Document) int {
	usable := UsableWidth(doc)
	resized := 0
	for _, img := range doc.Images {
		if img.PixelWidth <= 0 || img.PixelHeight <= 0 {
			continue
		}
		ratio := float64(img.PixelHeight) / float64(img.PixelWidth)
		img.Width = usable
		img.Height = docmodel.Length(math.Round(float64(usable) * ratio))
		resized++
	}
	return resized
}
