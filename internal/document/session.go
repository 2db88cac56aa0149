package document

import "sync"

// Session owns all mutable editor state for one open document: the block
// store plus its presentation and assistance side tables. In the browser all
// of this lives on a single event loop; the server sees concurrent requests,
// so every entry point locks.
type Session struct {
	mu        sync.Mutex
	store     *Store
	collapsed CollapsedSet
	results   *ResultTable
	audio     *AudioSlot
	slash     *SlashMenu
	selection *SelectionMenu
}

func NewSession(store *Store) *Session {
	if store == nil {
		store = NewStore()
	}
	return &Session{
		store:     store,
		collapsed: NewCollapsedSet(),
		results:   NewResultTable(),
		audio:     NewAudioSlot(nil),
		slash:     NewSlashMenu(nil),
		selection: NewSelectionMenu(),
	}
}

func (s *Session) Blocks() []Block {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Blocks()
}

func (s *Session) Focus() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Focus()
}

func (s *Session) Get(id string) (Block, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Get(id)
}

func (s *Session) InsertAfter(id string, t Type) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.InsertAfter(id, t)
}

// DeleteBlock removes the block and purges every side-table entry keyed by
// it: collapse state, assistance results and audio playback.
func (s *Session) DeleteBlock(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.store.Delete(id) {
		return
	}
	s.collapsed.Remove(id)
	s.results.PurgeBlock(id)
	s.audio.Release(id)
}

func (s *Session) UpdateContent(id, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.UpdateContent(id, text)
}

// ChangeBlockType retypes a block; demoting a heading drops its collapse
// entry, since a non-heading cannot be collapsed.
func (s *Session) ChangeBlockType(id string, t Type) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changeTypeLocked(id, t)
}

func (s *Session) changeTypeLocked(id string, t Type) {
	found, wasHeading := s.store.ChangeType(id, t)
	if found && wasHeading && !IsHeading(t) {
		s.collapsed.Remove(id)
	}
}

func (s *Session) ToggleChecked(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.ToggleChecked(id)
}

// ToggleCollapse flips collapse state for a heading block. No-op for
// non-headings and unknown ids.
func (s *Session) ToggleCollapse(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.store.Get(id)
	if !ok || !IsHeading(b.Type) {
		return
	}
	s.collapsed.Toggle(id)
}

func (s *Session) Collapsed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collapsed.IDs()
}

func (s *Session) Visible() []Block {
	s.mu.Lock()
	defer s.mu.Unlock()
	return VisibleBlocks(s.store, s.collapsed)
}

func (s *Session) Chapter(headingID string) *Chapter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ChapterOf(s.store, headingID)
}

func (s *Session) ChapterHasContent(headingID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return HasContentUnder(s.store, headingID)
}

// OpenSlashMenu opens the palette for the given block; the editor triggers
// this when "/" is typed in an empty block.
func (s *Session) OpenSlashMenu(blockID string, anchor Anchor) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.store.Get(blockID)
	if !ok || b.Content != "" {
		return false
	}
	s.slash.Open(blockID, anchor)
	return true
}

// SlashKeystroke feeds one key into the open palette. A commit retypes the
// block through the same demotion rule as ChangeBlockType.
func (s *Session) SlashKeystroke(key string) (committed string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.slash.IsOpen() {
		return ""
	}
	target := s.slash.BlockID()
	wasHeading := false
	if b, ok := s.store.Get(target); ok {
		wasHeading = IsHeading(b.Type)
	}
	committed = s.slash.Keystroke(s.store, key)
	if committed != "" {
		if b, ok := s.store.Get(committed); ok && wasHeading && !IsHeading(b.Type) {
			s.collapsed.Remove(committed)
		}
	}
	return committed
}

func (s *Session) CloseSlashMenu() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slash.Close()
}

// SlashMenuState is a snapshot of the palette for rendering.
type SlashMenuState struct {
	Open     bool          `json:"open"`
	BlockID  string        `json:"block_id,omitempty"`
	Filter   string        `json:"filter"`
	Selected int           `json:"selected"`
	Anchor   Anchor        `json:"anchor"`
	Options  []SlashOption `json:"options"`
}

func (s *Session) SlashMenuState() SlashMenuState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SlashMenuState{
		Open:     s.slash.IsOpen(),
		BlockID:  s.slash.BlockID(),
		Filter:   s.slash.Filter(),
		Selected: s.slash.Selected(),
		Anchor:   s.slash.Anchor(),
		Options:  s.slash.Options(),
	}
}

func (s *Session) ReportSelection(text string, anchor Anchor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Report(text, anchor)
}

func (s *Session) SelectionText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Text()
}

func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Clear()
}

// BeginAssist registers an outbound assistance call for (blockID, kind).
func (s *Session) BeginAssist(blockID string, kind Kind) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results.Begin(blockID, kind)
}

func (s *Session) CompleteAssist(blockID string, kind Kind, token uint64, res Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results.Complete(blockID, kind, token, res)
}

func (s *Session) AssistResult(blockID string, kind Kind) (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results.Get(blockID, kind)
}

func (s *Session) AssistLoading(blockID string, kind Kind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results.Loading(blockID, kind)
}

func (s *Session) DismissAssist(blockID string, kind Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results.Dismiss(blockID, kind)
}

func (s *Session) AssistResults() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results.All()
}

// PlayAudio claims the single playback slot for blockID and returns the
// displaced block id, if any.
func (s *Session) PlayAudio(blockID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audio.Acquire(blockID)
}

func (s *Session) StopAudio(blockID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audio.Release(blockID)
}

func (s *Session) PlayingBlock() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audio.Holder()
}
