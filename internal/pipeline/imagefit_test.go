package pipeline

import (
	"testing"

	"github.com/ianmenethil/html-md2docx/docmodel"
)

func TestUsableWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  *docmodel.Document
		want docmodel.Length
	}{
		{
			name: "no sections falls back to a4 with 1cm margins",
			doc:  &docmodel.Document{},
			want: docmodel.A4PageWidth - 2*docmodel.Cm(1),
		},
		{
			name: "explicit geometry",
			doc: &docmodel.Document{Sections: []docmodel.Section{{
				PageWidth:   docmodel.Cm(21),
				MarginLeft:  docmodel.Cm(2),
				MarginRight: docmodel.Cm(2),
			}}},
			want: docmodel.Cm(17),
		},
		{
			name: "zero page width falls back per field",
			doc: &docmodel.Document{Sections: []docmodel.Section{{
				MarginLeft:  docmodel.Cm(2),
				MarginRight: docmodel.Cm(2),
			}}},
			want: docmodel.A4PageWidth - 2*docmodel.Cm(2),
		},
		{
			name: "zero margins fall back per field",
			doc: &docmodel.Document{Sections: []docmodel.Section{{
				PageWidth: docmodel.Cm(30),
			}}},
			want: docmodel.Cm(30) - 2*docmodel.Cm(1),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := UsableWidth(tt.doc); got != tt.want {
				t.Errorf("UsableWidth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAutofitImages(t *testing.T) {
	t.Parallel()

	doc := &docmodel.Document{
		Sections: []docmodel.Section{{
			PageWidth:   docmodel.A4PageWidth,
			MarginLeft:  docmodel.Cm(1),
			MarginRight: docmodel.Cm(1),
		}},
		Images: []*docmodel.InlineImage{
			{Path: "wide.png", PixelWidth: 1600, PixelHeight: 900},
			{Path: "square.png", PixelWidth: 512, PixelHeight: 512},
			{Path: "broken.png", PixelWidth: 0, PixelHeight: 0},
		},
	}

	resized := AutofitImages(doc)
	if resized != 2 {
		t.Fatalf("AutofitImages() = %d, want 2", resized)
	}

	usable := docmodel.A4PageWidth - 2*docmodel.Cm(1)

	wide := doc.Images[0]
	if wide.Width != usable {
		t.Errorf("wide.Width = %d, want %d", wide.Width, usable)
	}
	// 900/1600 aspect: height is 9/16 of the usable width.
	wantHeight := docmodel.Length(float64(usable) * 900.0 / 1600.0)
	if wide.Height != wantHeight {
		t.Errorf("wide.Height = %d, want %d", wide.Height, wantHeight)
	}

	square := doc.Images[1]
	if square.Width != usable || square.Height != usable {
		t.Errorf("square = %dx%d, want %dx%d", square.Width, square.Height, usable, usable)
	}

	broken := doc.Images[2]
	if broken.Width != 0 || broken.Height != 0 {
		t.Errorf("broken image resized to %dx%d, want untouched", broken.Width, broken.Height)
	}
}

func TestAutofitImagesPreservesIntrinsicSize(t *testing.T) {
	t.Parallel()

	doc := &docmodel.Document{
		Images: []*docmodel.InlineImage{{Path: "a.png", PixelWidth: 800, PixelHeight: 600}},
	}
	AutofitImages(doc)

	img := doc.Images[0]
	if img.PixelWidth != 800 || img.PixelHeight != 600 {
		t.Errorf("intrinsic size changed to %dx%d, want 800x600", img.PixelWidth, img.PixelHeight)
	}
}

func TestAutofitImagesNoImages(t *testing.T) {
	t.Parallel()

	if got := AutofitImages(&docmodel.Document{}); got != 0 {
		t.Errorf("AutofitImages() = %d, want 0", got)
	}
}
