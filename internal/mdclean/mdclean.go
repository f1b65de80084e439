// Package mdclean normalizes exported markdown templates before
// conversion: table-of-contents links lose their targets, image references
// are rewritten to the cleaned image directory, and URL-escaped image names
// are repaired.
package mdclean

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// TOC block boundaries: heading plus a blank line followed by a rule.
	tocStartPattern = regexp.MustCompile(`\s*# Table of Contents`)
	tocEndPattern   = regexp.MustCompile(`\n\n---`)

	// Markdown link [label](target)
	linkPattern = regexp.MustCompile(`\[.*?\]\(.*?\)`)

	// Export artifacts in image references
	templateEscapedDir = regexp.MustCompile(`Template%.*?/`)
	templateDir        = regexp.MustCompile(`Template/`)
	untitledEscaped    = regexp.MustCompile(`Untitled%20(\d+)`)
	untitledLabel      = regexp.MustCompile(`\[Untitled\]`)
)

// Clean applies all cleanup transformations. imageDir is the directory
// (with trailing slash) that image references are rewritten to point at.
// Order matters: TOC links are stripped before image paths change, since
// path rewriting may alter link targets the TOC pass keys on.
func Clean(content, imageDir string) string {
	content = StripTOCLinkTargets(content)
	content = RewriteImagePaths(content, imageDir)
	content = RepairEscapedNames(content)
	return content
}

// StripTOCLinkTargets removes link targets inside the table-of-contents
// block, keeping only the bracketed labels. Content outside the block is
// untouched; if either TOC marker is absent, the input is returned as is.
func StripTOCLinkTargets(content string) string {
	start := tocStartPattern.FindStringIndex(content)
	if start == nil {
		return content
	}
	end := tocEndPattern.FindStringIndex(content[start[1]:])
	if end == nil {
		return content
	}

	sectionStart := start[0]
	sectionEnd := start[1] + end[1]
	section := content[sectionStart:sectionEnd]

	updated := linkPattern.ReplaceAllStringFunc(section, func(link string) string {
		label, _, ok := strings.Cut(link, "]")
		if !ok {
			return link
		}
		return label + "]"
	})
	return content[:sectionStart] + updated + content[sectionEnd:]
}

// RewriteImagePaths points image references exported under "Template/"
// (possibly with an URL-escaped subdirectory) at the given image directory.
func RewriteImagePaths(content, imageDir string) string {
	if imageDir != "" && !strings.HasSuffix(imageDir, "/") {
		imageDir += "/"
	}
	content = templateEscapedDir.ReplaceAllString(content, "Template/")
	content = templateDir.ReplaceAllString(content, imageDir)
	return content
}

// RepairEscapedNames fixes URL-escaped "Untitled 3.png"-style image names
// and drops the meaningless [Untitled] labels the exporter produces.
func RepairEscapedNames(content string) string {
	content = untitledEscaped.ReplaceAllString(content, "Untitled$1")
	content = untitledLabel.ReplaceAllString(content, "[]")
	return content
}
