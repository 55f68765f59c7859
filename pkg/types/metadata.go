// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data structures passed between the
// scan and catalog stages.
package types

// Section identifies one of the scanned asset categories.
type Section string

const (
	SectionPrompts   Section = "prompts"
	SectionToolsets  Section = "toolsets"
	SectionChatmodes Section = "chatmodes"
)

// Sections lists the scanned categories in their fixed processing order.
// Manifest item ordering depends on this order staying stable.
var Sections = []Section{SectionPrompts, SectionToolsets, SectionChatmodes}

// MetadataRecord is the summary produced for one scanned file.
type MetadataRecord struct {
	// Path is the file location relative to the repository root.
	Path string `json:"path" yaml:"path"`

	// Type is the section the file belongs to: prompts, toolsets, or chatmodes.
	Type string `json:"type" yaml:"type"`

	// Filename is the base name of the file.
	Filename string `json:"filename" yaml:"filename"`

	// Title is the first Markdown heading, or the first non-empty line.
	// Empty when the file has no content.
	Title string `json:"title" yaml:"title"`

	// Description is the first non-heading paragraph with internal
	// newlines collapsed to spaces. Empty when no paragraph qualifies.
	Description string `json:"description" yaml:"description"`
}

// Manifest is the generated metadata document written to build/.
type Manifest struct {
	// GeneratedAt is the UTC generation time in ISO-8601 form with a
	// trailing Z.
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`

	// Items holds one record per readable file, per-section path order,
	// sections in declared order.
	Items []MetadataRecord `json:"items" yaml:"items"`
}
