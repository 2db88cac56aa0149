package service

import (
	"strings"
	"testing"

	"github.com/outlinedev/outline/internal/document"
)

func mkBlock(t document.Type, content string) document.Block {
	b := document.NewBlock(t)
	b.Content = content
	return b
}

func TestBlocksToMarkdown(t *testing.T) {
	checked := mkBlock(document.TypeTodo, "review sources")
	checked.Checked = true
	blocks := []document.Block{
		mkBlock(document.TypeHeading1, "Introduction"),
		mkBlock(document.TypeParagraph, "Opening paragraph."),
		mkBlock(document.TypeHeading2, "Background"),
		mkBlock(document.TypeCaption, "Figure 1: overview"),
		mkBlock(document.TypeBulletedList, "first point"),
		mkBlock(document.TypeTodo, "collect data"),
		checked,
		mkBlock(document.TypeCode, "SELECT 1;"),
		mkBlock(document.TypeParagraph, ""),
	}
	got := BlocksToMarkdown(blocks)
	want := strings.Join([]string{
		"# Introduction",
		"Opening paragraph.",
		"## Background",
		"*Figure 1: overview*",
		"- first point",
		"- [ ] collect data",
		"- [x] review sources",
		"```\nSELECT 1;\n```",
		"",
	}, "\n\n") + "\n"
	if got != want {
		t.Fatalf("markdown mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestExportFileName(t *testing.T) {
	tests := []struct {
		title string
		ext   string
		want  string
	}{
		{"My Thesis Draft", "md", "My_Thesis_Draft.md"},
		{"  ", "html", "Untitled.html"},
		{"single", "md", "single.md"},
	}
	for _, tt := range tests {
		if got := exportFileName(tt.title, tt.ext); got != tt.want {
			t.Errorf("exportFileName(%q, %q) = %q, want %q", tt.title, tt.ext, got, tt.want)
		}
	}
}
