package pipeline

import (
	"strings"

	"github.com/ianmenethil/html-md2docx/docmodel"
)

// MatchMode selects how section-title prefixes are compared against
// paragraph text.
type MatchMode string

const (
	// MatchPrefix matches paragraphs whose trimmed text starts with a prefix.
	MatchPrefix MatchMode = "prefix"
	// MatchContains matches paragraphs whose trimmed text contains a prefix.
	MatchContains MatchMode = "contains"
)

// sectionStartTitles is the narrower hard-coded rule: a break is always
// forced before paragraphs opening these sections, evaluated before the
// configurable prefixes.
var sectionStartTitles = []string{"Executive Summary", "Appendix"}

// BreakConfig configures the section break inserter.
type BreakConfig struct {
	Prefixes []string
	Mode     MatchMode
}

// InsertSectionBreaks inserts a hard page break (an empty paragraph
// carrying a page-break marker) directly before every top-level paragraph
// whose trimmed text matches a section-title prefix. Returns the number of
// breaks inserted.
//
// Paragraphs whose start offset falls inside the TOC interval are always
// skipped. Matching is first-prefix-wins per paragraph, the hard-coded
// titles are tried before the configured prefixes, and only the first
// matching occurrence of a given literal text triggers a break per pass.
//
// The scan walks a snapshot of the paragraph list and applies all
// insertions afterwards, so inserting never shifts indices already
// visited. A paragraph already immediately preceded by a page-break
// paragraph is skipped, making a re-run with the same configuration a
// no-op.
func InsertSectionBreaks(doc *docmodel.Document, toc Interval, cfg BreakConfig) int {
	offsets := doc.ParagraphOffsets()
	paragraphs := doc.Paragraphs

	seen := make(map[string]bool)
	var insertAt []int

	for i, p := range paragraphs {
		if p.PageBreak {
			continue
		}
		text := strings.TrimSpace(p.Text())
		if text == "" {
			continue
		}
		if toc.Contains(offsets[i]) {
			continue
		}
		if seen[text] {
			continue
		}
		if !matchesAny(text, sectionStartTitles, MatchPrefix) && !matchesAny(text, cfg.Prefixes, cfg.Mode) {
			continue
		}
		// A match claims its literal even when no break is inserted;
		// otherwise a later duplicate of an already-broken title would
		// gain a break on a re-run.
		seen[text] = true
		if i > 0 && paragraphs[i-1].PageBreak {
			continue
		}
		insertAt = append(insertAt, i)
	}

	if len(insertAt) == 0 {
		return 0
	}

	updated := make([]*docmodel.Paragraph, 0, len(paragraphs)+len(insertAt))
	next := 0
	for i, p := range paragraphs {
		if next < len(insertAt) && insertAt[next] == i {
			updated = append(updated, docmodel.PageBreakParagraph())
			next++
		}
		updated = append(updated, p)
	}
	doc.Paragraphs = updated
	return len(insertAt)
}

// matchesAny reports whether text matches one of the prefixes under the
// given mode. The first matching prefix wins; an empty prefix never
// matches.
func matchesAny(text string, prefixes []string, mode MatchMode) bool {
	for _, prefix := range prefixes {
		if prefix == "" {
			continue
		}
		switch mode {
		case MatchContains:
			if strings.Contains(text, prefix) {
				return true
			}
		default:
			if strings.HasPrefix(text, prefix) {
				return true
			}
		}
	}
	return false
}
