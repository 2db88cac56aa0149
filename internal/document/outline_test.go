package document

import "testing"

// seedOutline builds: h1 "Intro", p "a", h2 "Sub", p "b", h1 "Next", p "c".
func seedOutline() (*Store, []Block) {
	blocks := []Block{
		NewBlock(TypeHeading1),
		NewBlock(TypeParagraph),
		NewBlock(TypeHeading2),
		NewBlock(TypeParagraph),
		NewBlock(TypeHeading1),
		NewBlock(TypeParagraph),
	}
	blocks[0].Content = "Intro"
	blocks[1].Content = "a"
	blocks[2].Content = "Sub"
	blocks[3].Content = "b"
	blocks[4].Content = "Next"
	blocks[5].Content = "c"
	s := SeedStore(blocks)
	return s, s.Blocks()
}

func TestHasContentUnder(t *testing.T) {
	s, blocks := seedOutline()
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"heading with body", blocks[0].ID, true},
		{"nested heading with body", blocks[2].ID, true},
		{"trailing heading with body", blocks[4].ID, true},
		{"non-heading", blocks[1].ID, false},
		{"unknown id", "missing", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasContentUnder(s, tt.id); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestHasContentUnderEmptyChapter(t *testing.T) {
	blocks := []Block{NewBlock(TypeHeading1), NewBlock(TypeHeading1)}
	s := SeedStore(blocks)
	if HasContentUnder(s, blocks[0].ID) {
		t.Fatal("heading followed by a same-level heading has no content")
	}
	if HasContentUnder(s, blocks[1].ID) {
		t.Fatal("heading at end of document has no content")
	}
}

func TestChapterOf(t *testing.T) {
	s, blocks := seedOutline()

	ch := ChapterOf(s, blocks[0].ID)
	if ch == nil {
		t.Fatal("expected chapter for heading")
	}
	if ch.Title != "Intro" {
		t.Fatalf("expected title Intro, got %q", ch.Title)
	}
	// Level-1 chapter spans until the next level-1 heading, nested h2 included.
	if len(ch.Blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(ch.Blocks))
	}
	if ch.Blocks[3].ID != blocks[3].ID {
		t.Fatal("chapter should stop before the next level-1 heading")
	}

	sub := ChapterOf(s, blocks[2].ID)
	if sub == nil || len(sub.Blocks) != 2 {
		t.Fatalf("expected 2-block subchapter, got %+v", sub)
	}

	if ChapterOf(s, blocks[1].ID) != nil {
		t.Fatal("paragraph must not resolve to a chapter")
	}
	if ChapterOf(s, "missing") != nil {
		t.Fatal("unknown id must not resolve to a chapter")
	}
}

func TestVisibleBlocksCollapse(t *testing.T) {
	s, blocks := seedOutline()
	collapsed := NewCollapsedSet()

	if got := VisibleBlocks(s, collapsed); len(got) != 6 {
		t.Fatalf("nothing collapsed: expected all 6, got %d", len(got))
	}

	// Collapsing the first h1 hides everything through its nested h2.
	collapsed.Add(blocks[0].ID)
	got := VisibleBlocks(s, collapsed)
	if len(got) != 3 {
		t.Fatalf("expected 3 visible blocks, got %d", len(got))
	}
	if got[0].ID != blocks[0].ID || got[1].ID != blocks[4].ID || got[2].ID != blocks[5].ID {
		t.Fatalf("unexpected visible sequence: %+v", got)
	}
}

func TestVisibleBlocksNestedCollapse(t *testing.T) {
	s, blocks := seedOutline()
	collapsed := NewCollapsedSet()
	// Collapsing only the h2 hides its paragraph but keeps the rest.
	collapsed.Add(blocks[2].ID)
	got := VisibleBlocks(s, collapsed)
	if len(got) != 5 {
		t.Fatalf("expected 5 visible blocks, got %d", len(got))
	}
	for _, b := range got {
		if b.ID == blocks[3].ID {
			t.Fatal("paragraph under collapsed h2 must be hidden")
		}
	}
}

func TestToggleCollapseHeadingOnly(t *testing.T) {
	sess := NewSession(nil)
	id := sess.Blocks()[0].ID
	sess.ToggleCollapse(id) // paragraph, no-op
	if len(sess.Collapsed()) != 0 {
		t.Fatal("paragraph must not be collapsible")
	}
	sess.ChangeBlockType(id, TypeHeading1)
	sess.ToggleCollapse(id)
	if got := sess.Collapsed(); len(got) != 1 || got[0] != id {
		t.Fatalf("expected collapsed set [%s], got %v", id, got)
	}
	// Demoting the heading drops its collapse entry.
	sess.ChangeBlockType(id, TypeParagraph)
	if len(sess.Collapsed()) != 0 {
		t.Fatal("demotion must drop the collapse entry")
	}
}
