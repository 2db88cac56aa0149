package document

import "strings"

// SelectionMenu tracks the current text selection and the lightweight
// context menu anchored to it. It deliberately knows nothing about block
// identity: the text is whatever the view layer reports as selected and may
// span multiple blocks.
type SelectionMenu struct {
	text   string
	anchor Anchor
	open   bool
}

func NewSelectionMenu() *SelectionMenu {
	return &SelectionMenu{}
}

// Report feeds the latest selection-end event. A non-empty selection opens
// the action menu at the given anchor; an empty or whitespace-only one
// closes it.
func (s *SelectionMenu) Report(text string, anchor Anchor) {
	if strings.TrimSpace(text) == "" {
		s.Clear()
		return
	}
	s.text = text
	s.anchor = anchor
	s.open = true
}

func (s *SelectionMenu) Clear() {
	s.text = ""
	s.anchor = Anchor{}
	s.open = false
}

func (s *SelectionMenu) IsOpen() bool {
	return s.open
}

func (s *SelectionMenu) Text() string {
	return s.text
}

func (s *SelectionMenu) Anchor() Anchor {
	return s.anchor
}
