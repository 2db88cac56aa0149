package document

// Chapter is a derived view: a heading plus every block nested beneath it,
// up to the next heading of the same or a higher level. Computed on demand,
// never stored.
type Chapter struct {
	Title  string  `json:"title"`
	Blocks []Block `json:"blocks"`
}

// HasContentUnder reports whether at least one block sits between the given
// heading and the next same-or-higher-level heading (or end of store).
func HasContentUnder(s *Store, headingID string) bool {
	idx := s.indexOf(headingID)
	if idx < 0 {
		return false
	}
	level := HeadingLevel(s.blocks[idx].Type)
	if level == 0 {
		return false
	}
	if idx+1 >= len(s.blocks) {
		return false
	}
	if l := HeadingLevel(s.blocks[idx+1].Type); l != 0 && l <= level {
		return false
	}
	return true
}

// ChapterOf materializes the chapter rooted at headingID, or nil when the id
// does not resolve to a heading block.
func ChapterOf(s *Store, headingID string) *Chapter {
	idx := s.indexOf(headingID)
	if idx < 0 {
		return nil
	}
	level := HeadingLevel(s.blocks[idx].Type)
	if level == 0 {
		return nil
	}
	ch := &Chapter{Title: s.blocks[idx].Content}
	ch.Blocks = append(ch.Blocks, s.blocks[idx])
	for i := idx + 1; i < len(s.blocks); i++ {
		if l := HeadingLevel(s.blocks[i].Type); l != 0 && l <= level {
			break
		}
		ch.Blocks = append(ch.Blocks, s.blocks[i])
	}
	return ch
}

// VisibleBlocks computes the render-order sequence, suppressing every block
// strictly nested under a collapsed heading. A block that ends a collapsed
// range is emitted and evaluated for its own collapse state.
func VisibleBlocks(s *Store, collapsed CollapsedSet) []Block {
	out := make([]Block, 0, len(s.blocks))
	hiddenBelow := 0 // level of the innermost active collapsed heading, 0 = none
	for _, b := range s.blocks {
		level := HeadingLevel(b.Type)
		if hiddenBelow != 0 {
			if level == 0 || level > hiddenBelow {
				continue
			}
			hiddenBelow = 0
		}
		out = append(out, b)
		if level != 0 && collapsed.Has(b.ID) {
			hiddenBelow = level
		}
	}
	return out
}
