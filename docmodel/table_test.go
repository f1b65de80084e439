package docmodel

import (
	"reflect"
	"testing"
)

// makeTable builds a table from plain cell texts, one slice per row.
func makeTable(rows ...[]string) *Table {
	t := &Table{}
	for _, texts := range rows {
		var row Row
		for _, text := range texts {
			var c Cell
			c.SetText(text)
			row.Cells = append(row.Cells, c)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func TestCellText(t *testing.T) {
	t.Parallel()

	var c Cell
	if got := c.Text(); got != "" {
		t.Errorf("empty cell Text() = %q, want empty", got)
	}

	c.Paragraphs = []*Paragraph{para("first"), para("second")}
	want := "first\nsecond"
	if got := c.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}

	c.SetText("replaced")
	if got := c.Text(); got != "replaced" {
		t.Errorf("Text() after SetText = %q, want %q", got, "replaced")
	}
}

func TestIsRectangular(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		table *Table
		want  bool
	}{
		{name: "no rows", table: &Table{}, want: false},
		{name: "empty header row", table: &Table{Rows: []Row{{}}}, want: false},
		{name: "header only", table: makeTable([]string{"a", "b"}), want: true},
		{
			name:  "uniform rows",
			table: makeTable([]string{"a", "b"}, []string{"1", "2"}, []string{"3", "4"}),
			want:  true,
		},
		{
			name:  "ragged rows",
			table: makeTable([]string{"a", "b"}, []string{"1"}),
			want:  false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.table.IsRectangular(); got != tt.want {
				t.Errorf("IsRectangular() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRowAndColCount(t *testing.T) {
	t.Parallel()

	table := makeTable([]string{"a", "b", "c"}, []string{"1", "2", "3"})
	if got := table.RowCount(); got != 2 {
		t.Errorf("RowCount() = %d, want 2", got)
	}
	if got := table.ColCount(); got != 3 {
		t.Errorf("ColCount() = %d, want 3", got)
	}

	empty := &Table{}
	if got := empty.ColCount(); got != 0 {
		t.Errorf("empty ColCount() = %d, want 0", got)
	}
}

func TestHeaderTexts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		table *Table
		want  []string
	}{
		{name: "no rows", table: &Table{}, want: nil},
		{
			name:  "trims whitespace",
			table: makeTable([]string{"  Website ", "Uptime"}),
			want:  []string{"Website", "Uptime"},
		},
		{
			name:  "keeps empty cells",
			table: makeTable([]string{"a", "", "b"}),
			want:  []string{"a", "", "b"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.table.HeaderTexts(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("HeaderTexts() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHeaderSignature(t *testing.T) {
	t.Parallel()

	table := makeTable([]string{"a", "", " b ", ""})
	want := []string{"a", "b"}
	if got := table.HeaderSignature(); !reflect.DeepEqual(got, want) {
		t.Errorf("HeaderSignature() = %v, want %v", got, want)
	}
}
