package pipeline

import (
	"testing"

	"github.com/ianmenethil/html-md2docx/docmodel"
)

// makeTable builds a table from plain cell texts, one slice per row.
func makeTable(rows ...[]string) *docmodel.Table {
	t := &docmodel.Table{}
	for _, texts := range rows {
		var row docmodel.Row
		for _, text := range texts {
			var c docmodel.Cell
			c.SetText(text)
			row.Cells = append(row.Cells, c)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func TestClassifyDefaultRules(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(DefaultRules())

	tests := []struct {
		name     string
		table    *docmodel.Table
		want     Category
		wantNone bool
	}{
		{
			name:  "wpengine literal",
			table: makeTable([]string{"Plugins updated", "Domains secured", "Platform enhancements", "Attacks blocked"}),
			want:  CategoryWPEngine,
		},
		{
			name: "azure failing controls",
			table: makeTable(
				[]string{"Failing Controls - UGC", "Failing Controls - ZenPay"},
				[]string{"3", "1"},
			),
			want: CategoryAzure,
		},
		{
			name:  "azure control states",
			table: makeTable([]string{"Control States:", "UGC", "ZenPay"}),
			want:  CategoryAzure,
		},
		{
			name:  "azure resource states",
			table: makeTable([]string{"Resource States:", "UGC", "ZenPay"}),
			want:  CategoryAzure,
		},
		{
			name:  "azure six cell shape with empty fourth",
			table: makeTable([]string{"Secure Score", "UGC", "ZenPay", "", "Compliance", "Defender"}),
			want:  CategoryAzure,
		},
		{
			name:     "six cells without empty fourth is not azure",
			table:    makeTable([]string{"a", "b", "c", "d", "e", "f"}),
			wantNone: true,
		},
		{
			name: "cisco usage totals",
			table: makeTable([]string{
				"Total Data Transferred", "Total Data - DOWNLOADED", "Total Data - UPLOADED",
				"Total Unique Clients", "Average of clients per day", "Average usage per client",
			}),
			want: CategoryCisco,
		},
		{
			name:  "cisco top clients",
			table: makeTable([]string{"Top clients by usage", "Usage", "Usage", "Top Blocked Sites by URL", "Category", "Sites"}),
			want:  CategoryCisco,
		},
		{
			name:  "barracuda email totals",
			table: makeTable([]string{"Total Emails Processed", "Allowed", "Blocked", "Quarantined"}),
			want:  CategoryBarracuda,
		},
		{
			name:  "barracuda backup status",
			table: makeTable([]string{"Backup Source", "Last Backup", "Size", "Status"}),
			want:  CategoryBarracuda,
		},
		{
			name:  "websites uptime",
			table: makeTable([]string{"Website", "Uptime", "Downtime", "Incidents"}),
			want:  CategoryWebsites,
		},
		{
			name:  "websites ssl expiry",
			table: makeTable([]string{"Website", "SSL Expiry", "Status"}),
			want:  CategoryWebsites,
		},
		{
			name:  "summary exact case",
			table: makeTable([]string{"Business", "Category", "Item", "Notes", "Status"}),
			want:  CategorySummary,
		},
		{
			name:  "summary folds case",
			table: makeTable([]string{"BUSINESS", "category", "Item", "NOTES", "status"}),
			want:  CategorySummary,
		},
		{
			name:  "signature drops empty cells before comparison",
			table: makeTable([]string{"Website", "", "Uptime", "Downtime", "Incidents"}),
			want:  CategoryWebsites,
		},
		{
			name:  "whitespace around headers is trimmed",
			table: makeTable([]string{" Website ", "Uptime\t", "Downtime", "Incidents"}),
			want:  CategoryWebsites,
		},
		{
			name:     "unknown headers",
			table:    makeTable([]string{"foo", "bar"}),
			wantNone: true,
		},
		{
			name:     "case mismatch outside summary",
			table:    makeTable([]string{"WEBSITE", "UPTIME", "DOWNTIME", "INCIDENTS"}),
			wantNone: true,
		},
		{
			name:     "subset of a known signature",
			table:    makeTable([]string{"Website", "Uptime", "Downtime"}),
			wantNone: true,
		},
		{
			name:     "no rows",
			table:    &docmodel.Table{},
			wantNone: true,
		},
		{
			name:     "all empty header",
			table:    makeTable([]string{"", "", ""}),
			wantNone: true,
		},
		{
			name:     "ragged grid",
			table:    makeTable([]string{"Website", "Uptime", "Downtime", "Incidents"}, []string{"only one"}),
			wantNone: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rule, ok := registry.Classify(tt.table)
			if tt.wantNone {
				if ok {
					t.Fatalf("Classify() = %q, want no match", rule.Category)
				}
				return
			}
			if !ok {
				t.Fatalf("Classify() matched nothing, want %q", tt.want)
			}
			if rule.Category != tt.want {
				t.Errorf("Classify() = %q, want %q", rule.Category, tt.want)
			}
		})
	}
}

func TestClassifyNilTable(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(DefaultRules())
	if _, ok := registry.Classify(nil); ok {
		t.Error("Classify(nil) matched, want no match")
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	t.Parallel()

	// Two rules that both accept the same signature: the earlier one must win.
	sig := [][]string{{"a", "b"}}
	registry := NewRegistry([]Rule{
		{Category: CategoryAzure, Match: Matcher{AnyOf: sig}},
		{Category: CategoryCisco, Match: Matcher{AnyOf: sig}},
	})

	rule, ok := registry.Classify(makeTable([]string{"a", "b"}))
	if !ok {
		t.Fatal("Classify() matched nothing")
	}
	if rule.Category != CategoryAzure {
		t.Errorf("Classify() = %q, want first rule %q", rule.Category, CategoryAzure)
	}
}

func TestMatcherShapeBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		shape ShapeMatch
		raw   []string
		want  bool
	}{
		{name: "matching shape", shape: ShapeMatch{Cells: 3, EmptyIndex: 1}, raw: []string{"a", "", "c"}, want: true},
		{name: "wrong cell count", shape: ShapeMatch{Cells: 3, EmptyIndex: 1}, raw: []string{"a", ""}, want: false},
		{name: "cell not empty", shape: ShapeMatch{Cells: 3, EmptyIndex: 1}, raw: []string{"a", "b", "c"}, want: false},
		{name: "index out of range", shape: ShapeMatch{Cells: 0, EmptyIndex: 5}, raw: []string{}, want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := Matcher{Shape: &tt.shape}
			if got := m.Matches(tt.raw, nil); got != tt.want {
				t.Errorf("Matches(%v) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
