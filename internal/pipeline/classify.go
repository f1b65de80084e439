package pipeline

import (
	"strings"

	"github.com/ianmenethil/html-md2docx/docmodel"
)

// Category tags a table for styling. The set is closed; unknown table
// shapes classify as CategoryNone and receive no styling.
type Category string

// Known categories, in registry priority order.
const (
	CategoryAzure     Category = "azure"
	CategoryWPEngine  Category = "wpengine"
	CategoryCisco     Category = "cisco"
	CategoryBarracuda Category = "barracuda"
	CategoryWebsites  Category = "websites"
	CategorySummary   Category = "summary"
	CategoryNone      Category = "none"
)

// Matcher decides whether a header layout belongs to a category. A matcher
// is total: malformed input yields false, never an error.
type Matcher struct {
	// AnyOf lists known literal header signatures; a signature equal to any
	// entry matches. Compared against the empty-dropped signature.
	AnyOf [][]string
	// Fold switches AnyOf comparison to case-insensitive.
	Fold bool
	// Shape is an optional positional heuristic evaluated against the raw
	// (empty-retaining) header texts.
	Shape *ShapeMatch
}

// ShapeMatch matches a raw header layout by cell count and one empty cell
// at a fixed position.
type ShapeMatch struct {
	Cells      int
	EmptyIndex int
}

// Matches reports whether the header layout satisfies the matcher.
// raw holds all trimmed header cell texts; sig holds the non-empty ones.
func (m Matcher) Matches(raw, sig []string) bool {
	for _, want := range m.AnyOf {
		if equalSignature(sig, want, m.Fold) {
			return true
		}
	}
	if m.Shape != nil {
		s := m.Shape
		if len(raw) == s.Cells && s.EmptyIndex >= 0 && s.EmptyIndex < len(raw) && raw[s.EmptyIndex] == "" {
			return true
		}
	}
	return false
}

func equalSignature(sig, want []string, fold bool) bool {
	if len(sig) != len(want) {
		return false
	}
	for i := range sig {
		if fold {
			if !strings.EqualFold(sig[i], want[i]) {
				return false
			}
		} else if sig[i] != want[i] {
			return false
		}
	}
	return true
}

// Rule pairs a category's matcher with its visual style.
type Rule struct {
	Category Category
	Match    Matcher
	Style    Style
}

// Registry is an ordered list of classification rules. Evaluation is
// first-match-wins, so two rules must never both match the same physical
// header layout; whoever adds a rule is responsible for preserving that.
type Registry struct {
	rules []Rule
}

// NewRegistry builds a registry from rules in priority order.
func NewRegistry(rules []Rule) *Registry {
	return &Registry{rules: rules}
}

// Classify fingerprints the table's header row and returns the first rule
// whose matcher accepts it. The second return value is false when no rule
// matches or the table is malformed (no rows, ragged grid, empty header);
// such tables are CategoryNone and must be left unstyled.
func (r *Registry) Classify(t *docmodel.Table) (Rule, bool) {
	if t == nil || !t.IsRectangular() {
		return Rule{}, false
	}
	raw := t.HeaderTexts()
	sig := t.HeaderSignature()
	if len(sig) == 0 {
		return Rule{}, false
	}
	for _, rule := range r.rules {
		if rule.Match.Matches(raw, sig) {
			return rule, true
		}
	}
	return Rule{}, false
}

// Rules returns a copy of the registry's rules in priority order.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// DefaultRules returns the compiled-in registry, one rule per category in
// priority order: azure, wpengine, cisco, barracuda, websites, summary.
//
// The summary matcher is case-insensitive; every other category uses exact
// sequence equality. The azure shape variant inspects the raw header texts
// because the cell it keys on is empty and therefore absent from the
// signature.
func DefaultRules() []Rule {
	return []Rule{
		{
			Category: CategoryAzure,
			Match: Matcher{
				AnyOf: [][]string{
					{"Failing Controls - UGC", "Failing Controls - ZenPay"},
					{"Control States:", "UGC", "ZenPay"},
					{"Resource States:", "UGC", "ZenPay"},
				},
				Shape: &ShapeMatch{Cells: 6, EmptyIndex: 3},
			},
			Style: Style{
				HeaderFill:   "5B9BD5",
				HeaderFont:   "FFFFFF",
				ContentFill1: "DEEBF7",
				ContentFill2: "EFF6FC",
				ContentFont:  "000000",
			},
		},
		{
			Category: CategoryWPEngine,
			Match: Matcher{
				AnyOf: [][]string{
					{"Plugins updated", "Domains secured", "Platform enhancements", "Attacks blocked"},
				},
			},
			Style: Style{
				HeaderFill:   "A9D18E",
				HeaderFont:   "FFFFFF",
				ContentFill1: "E2EFD9",
				ContentFill2: "F1F8EC",
				ContentFont:  "000000",
			},
		},
		{
			Category: CategoryCisco,
			Match: Matcher{
				AnyOf: [][]string{
					{
						"Total Data Transferred", "Total Data - DOWNLOADED", "Total Data - UPLOADED",
						"Total Unique Clients", "Average of clients per day", "Average usage per client",
					},
					{"Top clients by usage", "Usage", "Usage", "Top Blocked Sites by URL", "Category", "Sites"},
				},
			},
			Style: Style{
				HeaderFill:   "FFC000",
				HeaderFont:   "FFFFFF",
				ContentFill1: "FFF2CC",
				ContentFill2: "FFF9E6",
				ContentFont:  "000000",
			},
		},
		{
			Category: CategoryBarracuda,
			Match: Matcher{
				AnyOf: [][]string{
					{"Total Emails Processed", "Allowed", "Blocked", "Quarantined"},
					{"Backup Source", "Last Backup", "Size", "Status"},
				},
			},
			Style: Style{
				HeaderFill:   "2E74B5",
				HeaderFont:   "FFFFFF",
				ContentFill1: "D9E2F3",
				ContentFill2: "EBF0FA",
				ContentFont:  "000000",
			},
		},
		{
			Category: CategoryWebsites,
			Match: Matcher{
				AnyOf: [][]string{
					{"Website", "Uptime", "Downtime", "Incidents"},
					{"Website", "SSL Expiry", "Status"},
				},
			},
			Style: Style{
				HeaderFill:   "ED7D31",
				HeaderFont:   "FFFFFF",
				ContentFill1: "FBE5D6",
				ContentFill2: "FDF2EA",
				ContentFont:  "000000",
			},
		},
		{
			Category: CategorySummary,
			Match: Matcher{
				AnyOf: [][]string{
					{"Business", "Category", "Item", "Notes", "Status"},
				},
				Fold: true,
			},
			Style: Style{
				HeaderFill:   "808080",
				HeaderFont:   "FFFFFF",
				ContentFill1: "D9D9D9",
				ContentFill2: "F2F2F2",
				ContentFont:  "000000",
			},
		},
	}
}
