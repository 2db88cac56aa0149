package document

// Store is the ordered block sequence backing one document. All mutations
// are primitive: side-table upkeep (collapse state, assistance results)
// belongs to the owning Session. Lookups on unknown ids are silent no-ops.
type Store struct {
	blocks []Block
	focus  string
}

// NewStore returns a store holding a single empty paragraph, so an editable
// position exists from the start.
func NewStore() *Store {
	first := NewBlock(TypeParagraph)
	return &Store{blocks: []Block{first}, focus: first.ID}
}

// SeedStore builds a store from imported blocks. An empty seed falls back to
// NewStore so the never-empty invariant holds from the first render.
func SeedStore(blocks []Block) *Store {
	if len(blocks) == 0 {
		return NewStore()
	}
	copied := make([]Block, len(blocks))
	copy(copied, blocks)
	return &Store{blocks: copied, focus: copied[0].ID}
}

func (s *Store) Len() int {
	return len(s.blocks)
}

// Blocks returns the blocks in reading order. The slice is a copy.
func (s *Store) Blocks() []Block {
	out := make([]Block, len(s.blocks))
	copy(out, s.blocks)
	return out
}

// Focus reports the id of the block that should currently hold the caret.
func (s *Store) Focus() string {
	return s.focus
}

func (s *Store) SetFocus(id string) {
	if s.indexOf(id) >= 0 {
		s.focus = id
	}
}

func (s *Store) Get(id string) (Block, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Block{}, false
	}
	return s.blocks[idx], true
}

func (s *Store) indexOf(id string) int {
	for i := range s.blocks {
		if s.blocks[i].ID == id {
			return i
		}
	}
	return -1
}

// InsertAfter inserts a fresh empty block of the given type immediately
// after the block with id, makes it the focus target and returns its id.
// Returns "" when id does not resolve.
func (s *Store) InsertAfter(id string, t Type) string {
	idx := s.indexOf(id)
	if idx < 0 {
		return ""
	}
	if !ValidType(t) {
		t = TypeParagraph
	}
	nb := NewBlock(t)
	s.blocks = append(s.blocks, Block{})
	copy(s.blocks[idx+2:], s.blocks[idx+1:])
	s.blocks[idx+1] = nb
	s.focus = nb.ID
	return nb.ID
}

// Delete removes the block with id. Deleting the only remaining block clears
// its content instead, keeping the store non-empty. Focus moves to the
// preceding block, or the first block when none precedes. Reports whether a
// block was found.
func (s *Store) Delete(id string) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	if len(s.blocks) == 1 {
		s.blocks[0].Content = ""
		s.focus = s.blocks[0].ID
		return true
	}
	s.blocks = append(s.blocks[:idx], s.blocks[idx+1:]...)
	focusIdx := idx - 1
	if focusIdx < 0 {
		focusIdx = 0
	}
	s.focus = s.blocks[focusIdx].ID
	return true
}

func (s *Store) UpdateContent(id, text string) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	s.blocks[idx].Content = text
}

// ChangeType retypes a block. Reports whether the block existed and whether
// it was a heading before the change, so the caller can drop stale collapse
// state.
func (s *Store) ChangeType(id string, t Type) (found, wasHeading bool) {
	idx := s.indexOf(id)
	if idx < 0 || !ValidType(t) {
		return false, false
	}
	wasHeading = IsHeading(s.blocks[idx].Type)
	s.blocks[idx].Type = t
	if t != TypeTodo {
		s.blocks[idx].Checked = false
	}
	return true, wasHeading
}

// ToggleChecked flips the checkbox of a todo block. No-op for other types.
func (s *Store) ToggleChecked(id string) {
	idx := s.indexOf(id)
	if idx < 0 || s.blocks[idx].Type != TypeTodo {
		return
	}
	s.blocks[idx].Checked = !s.blocks[idx].Checked
}
