// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan walks the agent asset tree, derives title and description
// metadata from each readable text file, and emits the metadata manifest.
package scan

import "strings"

// Extract derives a title and description from raw file text.
//
// The title is the first trimmed line that looks like a Markdown heading,
// with its leading # markers stripped; when no heading exists the first
// non-empty line is used instead. The description is the first paragraph
// that is not a heading, with internal newlines collapsed to single
// spaces. Either result may be empty. Extract never fails: any input,
// including empty text, yields a valid pair.
func Extract(text string) (title, description string) {
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			title = stripHeadingPrefix(trimmed)
			break
		}
	}
	if title == "" {
		for _, line := range lines {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				title = trimmed
				break
			}
		}
	}

	for _, p := range splitParagraphs(strings.TrimSpace(text)) {
		p = strings.TrimSpace(p)
		if p == "" || strings.HasPrefix(p, "#") {
			continue
		}
		description = strings.ReplaceAll(p, "\n", " ")
		break
	}

	return title, description
}

// stripHeadingPrefix removes the leading # characters and whitespace.
func stripHeadingPrefix(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, "#"))
}

// splitParagraphs splits text into paragraphs at blank lines. A line
// containing only whitespace counts as blank.
func splitParagraphs(text string) []string {
	var (
		paragraphs []string
		current    []string
	)

	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, "\n"))
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return paragraphs
}
