package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/outlinedev/outline/internal/document"
)

// ExportService renders a document's block list as markdown or HTML.
type ExportService struct {
	documents *DocumentService
	markdown  goldmark.Markdown
}

func NewExportService(documents *DocumentService) *ExportService {
	return &ExportService{
		documents: documents,
		markdown:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (s *ExportService) Markdown(ctx context.Context, userID, docID string) (fileName, content string, err error) {
	doc, err := s.documents.Get(ctx, userID, docID)
	if err != nil {
		return "", "", err
	}
	blocks, err := decodeBlocks(doc.Blocks)
	if err != nil {
		return "", "", err
	}
	return exportFileName(doc.Title, "md"), BlocksToMarkdown(blocks), nil
}

func (s *ExportService) HTML(ctx context.Context, userID, docID string) (fileName, content string, err error) {
	_, md, err := s.Markdown(ctx, userID, docID)
	if err != nil {
		return "", "", err
	}
	doc, err := s.documents.Get(ctx, userID, docID)
	if err != nil {
		return "", "", err
	}
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(md), &buf); err != nil {
		return "", "", err
	}
	return exportFileName(doc.Title, "html"), buf.String(), nil
}

// BlocksToMarkdown renders blocks one per line group; empty paragraphs
// survive as blank lines so round-tripped structure stays readable.
func BlocksToMarkdown(blocks []document.Block) string {
	lines := make([]string, 0, len(blocks))
	for _, block := range blocks {
		content := block.Content
		switch {
		case document.IsHeading(block.Type):
			lines = append(lines, strings.Repeat("#", document.HeadingLevel(block.Type))+" "+content)
		case block.Type == document.TypeCaption:
			lines = append(lines, "*"+content+"*")
		case block.Type == document.TypeBulletedList:
			lines = append(lines, "- "+content)
		case block.Type == document.TypeTodo:
			mark := " "
			if block.Checked {
				mark = "x"
			}
			lines = append(lines, "- ["+mark+"] "+content)
		case block.Type == document.TypeCode:
			lines = append(lines, "```\n"+content+"\n```")
		default:
			lines = append(lines, content)
		}
	}
	return strings.Join(lines, "\n\n") + "\n"
}

func exportFileName(title, ext string) string {
	base := strings.TrimSpace(title)
	if base == "" {
		base = "Untitled"
	}
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("%s.%s", base, ext)
}
