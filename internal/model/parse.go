package model

import "github.com/outlinedev/outline/internal/document"

// ParseResult is the JSON body the external document parse service returns
// for /upload-pdf and /upload-docx.
type ParseResult struct {
	Cover               *CoverInfo           `json:"cover,omitempty"`
	Paragraphs          []document.Paragraph `json:"paragraphs"`
	TableOfContents     []document.TOCEntry  `json:"table_of_contents,omitempty"`
	FrontMatterFound    map[string]bool      `json:"front_matter_found,omitempty"`
	MissingSections     []string             `json:"missing_sections,omitempty"`
	BodySectionsFound   map[string]bool      `json:"body_sections_found,omitempty"`
	MissingBodySections []string             `json:"missing_body_sections,omitempty"`
}
