package document

import "testing"

func TestTypeFromStyle(t *testing.T) {
	tests := []struct {
		style string
		want  Type
	}{
		{"Heading 1", TypeHeading1},
		{"heading 2", TypeHeading2},
		{"Title Heading 3", TypeHeading3},
		{"Caption", TypeCaption},
		{"Normal", TypeParagraph},
		{"", TypeParagraph},
	}
	for _, tt := range tests {
		if got := typeFromStyle(tt.style); got != tt.want {
			t.Errorf("typeFromStyle(%q) = %s, want %s", tt.style, got, tt.want)
		}
	}
}

func TestMapParagraphsStyles(t *testing.T) {
	paragraphs := []Paragraph{
		{ID: "p1", Style: "Heading 1", Content: "Introduction"},
		{ID: "p2", Style: "Normal", Content: "Body text."},
		{Style: "Caption", Content: "Figure 1: flow"},
	}
	blocks := MapParagraphs(paragraphs, nil)
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}
	if blocks[0].ID != "p1" || blocks[0].Type != TypeHeading1 {
		t.Fatalf("paragraph ids and styles must carry over: %+v", blocks[0])
	}
	if blocks[1].Type != TypeParagraph {
		t.Fatalf("unknown style should map to paragraph, got %s", blocks[1].Type)
	}
	if blocks[2].ID == "" {
		t.Fatal("missing paragraph id should be generated")
	}
	if blocks[2].Type != TypeCaption {
		t.Fatalf("expected caption, got %s", blocks[2].Type)
	}
}

func TestMapParagraphsTOCOverride(t *testing.T) {
	toc := []TOCEntry{
		{Number: "1", Title: "Introduction"},
		{Number: "1.1", Title: "Background"},
		{Number: "2.1.3", Title: "Edge cases"},
	}
	tests := []struct {
		name        string
		content     string
		wantType    Type
		wantContent string
	}{
		{
			name:        "number prefix strips the token",
			content:     "1.1 Background",
			wantType:    TypeHeading2,
			wantContent: "Background",
		},
		{
			name:        "exact title match",
			content:     "Introduction",
			wantType:    TypeHeading1,
			wantContent: "Introduction",
		},
		{
			name:        "deep numbering caps at level 3",
			content:     "2.1.3 Edge cases",
			wantType:    TypeHeading3,
			wantContent: "Edge cases",
		},
		{
			name:        "trailing dot after number",
			content:     "1. Introduction",
			wantType:    TypeHeading1,
			wantContent: "Introduction",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := MapParagraphs([]Paragraph{{ID: "x", Style: "Normal", Content: tt.content}}, toc)
			if blocks[0].Type != tt.wantType {
				t.Fatalf("expected %s, got %s", tt.wantType, blocks[0].Type)
			}
			if blocks[0].Content != tt.wantContent {
				t.Fatalf("expected content %q, got %q", tt.wantContent, blocks[0].Content)
			}
		})
	}
}

func TestTOCOverrideMisses(t *testing.T) {
	toc := []TOCEntry{{Number: "1", Title: "Introduction"}}

	// A bare number with no remaining text stays a paragraph.
	blocks := MapParagraphs([]Paragraph{{ID: "x", Content: "1"}}, toc)
	if blocks[0].Type != TypeParagraph || blocks[0].Content != "1" {
		t.Fatalf("bare number must not become a heading: %+v", blocks[0])
	}

	// Unrelated content keeps its style mapping.
	blocks = MapParagraphs([]Paragraph{{ID: "y", Style: "Heading 2", Content: "Appendix"}}, toc)
	if blocks[0].Type != TypeHeading2 || blocks[0].Content != "Appendix" {
		t.Fatalf("non-matching content must keep its style type: %+v", blocks[0])
	}
}

func TestTOCDepth(t *testing.T) {
	tests := []struct {
		number string
		want   int
	}{
		{"1", 1},
		{"1.2", 2},
		{"1.2.3", 3},
		{"1.2.3.4", 3},
	}
	for _, tt := range tests {
		if got := tocDepth(tt.number); got != tt.want {
			t.Errorf("tocDepth(%q) = %d, want %d", tt.number, got, tt.want)
		}
	}
}
