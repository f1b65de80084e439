// Package pipeline implements the document post-processing stages: TOC
// boundary location, table classification and styling, section page breaks,
// and inline image autofit. Stages mutate the docmodel tree in place and
// never panic on malformed input; degraded output is preferred over errors.
package pipeline

import "regexp"

// TOC boundary markers. The start marker is a heading literally reading
// "Table of Contents", optionally preceded by whitespace; the end marker is
// a blank line immediately followed by a horizontal-rule line.
var (
	tocStartPattern = regexp.MustCompile(`\s*Table of Contents`)
	tocEndPattern   = regexp.MustCompile(`\n\n---`)
)

// Interval is a half-open [Start, End) range of text offsets into a
// document's plain-text concatenation.
type Interval struct {
	Start int
	End   int
}

// NoInterval is the sentinel "not found" result: downstream consumers
// treat no offset as being inside it.
var NoInterval = Interval{Start: -1, End: -1}

// Found reports whether the interval denotes a located TOC region.
func (iv Interval) Found() bool {
	return iv.Start >= 0 && iv.End > iv.Start
}

// Contains reports whether the text offset falls inside the interval.
// Always false for a not-found interval.
func (iv Interval) Contains(offset int) bool {
	return iv.Found() && offset >= iv.Start && offset < iv.End
}

// LocateTOC finds the table-of-contents block in the document's plain text
// (top-level paragraphs joined by newlines). It returns NoInterval when
// either marker is absent; that is a normal condition, not an error.
//
// The interval is recomputed per invocation rather than cached on the
// document: earlier stages may change the paragraph count, and stale
// offsets are worse than a repeated scan.
func LocateTOC(text string) Interval {
	start := tocStartPattern.FindStringIndex(text)
	if start == nil {
		return NoInterval
	}
	end := tocEndPattern.FindStringIndex(text[start[1]:])
	if end == nil {
		return NoInterval
	}
	return Interval{Start: start[0], End: start[1] + end[1]}
}
