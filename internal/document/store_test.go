package document

import "testing"

func seedTestStore(types ...Type) *Store {
	blocks := make([]Block, 0, len(types))
	for _, t := range types {
		blocks = append(blocks, NewBlock(t))
	}
	return SeedStore(blocks)
}

func TestNewStoreNeverEmpty(t *testing.T) {
	s := NewStore()
	if s.Len() != 1 {
		t.Fatalf("expected 1 block, got %d", s.Len())
	}
	blocks := s.Blocks()
	if blocks[0].Type != TypeParagraph || blocks[0].Content != "" {
		t.Fatalf("expected empty paragraph, got %+v", blocks[0])
	}
	if s.Focus() != blocks[0].ID {
		t.Fatalf("focus should land on the only block")
	}
}

func TestInsertAfter(t *testing.T) {
	s := seedTestStore(TypeParagraph, TypeParagraph)
	blocks := s.Blocks()
	newID := s.InsertAfter(blocks[0].ID, TypeHeading1)
	if newID == "" {
		t.Fatal("insert after existing block returned empty id")
	}
	got := s.Blocks()
	if len(got) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(got))
	}
	if got[1].ID != newID || got[1].Type != TypeHeading1 {
		t.Fatalf("new block not in position 1: %+v", got[1])
	}
	if s.Focus() != newID {
		t.Fatal("focus should move to the inserted block")
	}
}

func TestInsertAfterUnknownIDIsNoop(t *testing.T) {
	s := seedTestStore(TypeParagraph)
	if id := s.InsertAfter("missing", TypeParagraph); id != "" {
		t.Fatalf("expected empty id, got %q", id)
	}
	if s.Len() != 1 {
		t.Fatalf("store should be unchanged, got %d blocks", s.Len())
	}
}

func TestDeleteLastBlockClearsContent(t *testing.T) {
	s := NewStore()
	only := s.Blocks()[0]
	s.UpdateContent(only.ID, "still here")
	if !s.Delete(only.ID) {
		t.Fatal("delete should report the block as found")
	}
	got := s.Blocks()
	if len(got) != 1 {
		t.Fatalf("expected 1 block, got %d", len(got))
	}
	if got[0].ID != only.ID || got[0].Content != "" {
		t.Fatalf("last block should survive with cleared content: %+v", got[0])
	}
}

func TestDeleteMovesFocusToPreceding(t *testing.T) {
	s := seedTestStore(TypeParagraph, TypeParagraph, TypeParagraph)
	blocks := s.Blocks()
	s.Delete(blocks[1].ID)
	if s.Focus() != blocks[0].ID {
		t.Fatalf("focus should move to preceding block, got %q", s.Focus())
	}
	s2 := seedTestStore(TypeParagraph, TypeParagraph)
	first := s2.Blocks()[0]
	second := s2.Blocks()[1]
	s2.Delete(first.ID)
	if s2.Focus() != second.ID {
		t.Fatalf("deleting the first block should focus the new first, got %q", s2.Focus())
	}
}

func TestChangeTypeClearsCheckedOffTodo(t *testing.T) {
	s := seedTestStore(TypeTodo)
	id := s.Blocks()[0].ID
	s.ToggleChecked(id)
	if !s.Blocks()[0].Checked {
		t.Fatal("toggle should check the todo")
	}
	found, wasHeading := s.ChangeType(id, TypeParagraph)
	if !found || wasHeading {
		t.Fatalf("unexpected change report: found=%v wasHeading=%v", found, wasHeading)
	}
	if s.Blocks()[0].Checked {
		t.Fatal("leaving the todo type must clear the checkbox")
	}
}

func TestChangeTypeReportsHeadingBefore(t *testing.T) {
	s := seedTestStore(TypeHeading2)
	id := s.Blocks()[0].ID
	found, wasHeading := s.ChangeType(id, TypeParagraph)
	if !found || !wasHeading {
		t.Fatalf("expected found and wasHeading, got %v %v", found, wasHeading)
	}
}

func TestToggleCheckedIgnoresNonTodo(t *testing.T) {
	s := seedTestStore(TypeParagraph)
	id := s.Blocks()[0].ID
	s.ToggleChecked(id)
	if s.Blocks()[0].Checked {
		t.Fatal("paragraph must not become checked")
	}
}
