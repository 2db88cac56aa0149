package document

import "strings"

// SlashOption is one entry of the slash-command palette.
type SlashOption struct {
	Type  Type   `json:"type"`
	Label string `json:"label"`
}

// DefaultSlashOptions mirrors the palette the editor shows when "/" is typed
// in an empty block.
var DefaultSlashOptions = []SlashOption{
	{Type: TypeParagraph, Label: "Text"},
	{Type: TypeHeading1, Label: "Heading 1"},
	{Type: TypeHeading2, Label: "Heading 2"},
	{Type: TypeHeading3, Label: "Heading 3"},
	{Type: TypeCaption, Label: "Caption"},
	{Type: TypeBulletedList, Label: "Bulleted list"},
	{Type: TypeTodo, Label: "To-do"},
	{Type: TypeCode, Label: "Code"},
}

// Anchor is the caret screen position captured when the menu opens. Opaque
// to the model; echoed back to the view layer.
type Anchor struct {
	Top  float64 `json:"top"`
	Left float64 `json:"left"`
}

// SlashMenu is the Idle -> Open(filter) -> Idle palette state machine.
// Escape clears the filter but keeps the menu open; an empty filtered list
// keeps the menu logically open as well. Both behaviors are preserved from
// the editor as shipped.
type SlashMenu struct {
	options  []SlashOption
	open     bool
	blockID  string
	anchor   Anchor
	filter   string
	selected int
}

func NewSlashMenu(options []SlashOption) *SlashMenu {
	if len(options) == 0 {
		options = DefaultSlashOptions
	}
	return &SlashMenu{options: options}
}

func (m *SlashMenu) IsOpen() bool {
	return m.open
}

func (m *SlashMenu) BlockID() string {
	return m.blockID
}

func (m *SlashMenu) Anchor() Anchor {
	return m.anchor
}

func (m *SlashMenu) Filter() string {
	return m.filter
}

func (m *SlashMenu) Selected() int {
	return m.selected
}

// Open transitions Idle -> Open, capturing the triggering block and caret
// anchor. Re-opening resets the filter and selection.
func (m *SlashMenu) Open(blockID string, anchor Anchor) {
	m.open = true
	m.blockID = blockID
	m.anchor = anchor
	m.filter = ""
	m.selected = 0
}

func (m *SlashMenu) Close() {
	m.open = false
	m.blockID = ""
	m.filter = ""
	m.selected = 0
}

// Options returns the palette entries matching the current filter,
// case-insensitive substring on the label.
func (m *SlashMenu) Options() []SlashOption {
	if m.filter == "" {
		out := make([]SlashOption, len(m.options))
		copy(out, m.options)
		return out
	}
	needle := strings.ToLower(m.filter)
	out := make([]SlashOption, 0, len(m.options))
	for _, opt := range m.options {
		if strings.Contains(strings.ToLower(opt.Label), needle) {
			out = append(out, opt)
		}
	}
	return out
}

// Keystroke feeds one key into the open menu and applies the commit against
// the store. Recognized keys: "ArrowDown", "ArrowUp", "Enter", "Escape",
// "Backspace" and single printable characters (appended to the filter).
// On Enter the selected option retypes the triggering block and the menu
// returns to Idle; the committed block id is returned so the caller can
// place the caret at its end.
func (m *SlashMenu) Keystroke(s *Store, key string) (committed string) {
	if !m.open {
		return ""
	}
	before := len(m.Options())
	switch key {
	case "ArrowDown":
		if m.selected < before-1 {
			m.selected++
		}
		return ""
	case "ArrowUp":
		if m.selected > 0 {
			m.selected--
		}
		return ""
	case "Enter":
		opts := m.Options()
		if m.selected < 0 || m.selected >= len(opts) {
			return ""
		}
		target := m.blockID
		s.ChangeType(target, opts[m.selected].Type)
		m.Close()
		s.SetFocus(target)
		return target
	case "Escape":
		m.filter = ""
	case "Backspace":
		if m.filter != "" {
			m.filter = m.filter[:len(m.filter)-1]
		}
	default:
		if len([]rune(key)) == 1 {
			m.filter += key
		}
	}
	if after := len(m.Options()); after != before {
		m.selected = 0
	}
	m.clampSelection()
	return ""
}

func (m *SlashMenu) clampSelection() {
	n := len(m.Options())
	if n == 0 {
		m.selected = 0
		return
	}
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}
