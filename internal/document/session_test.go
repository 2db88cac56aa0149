package document

import (
	"encoding/json"
	"testing"
)

func TestAudioSlotSingleHolder(t *testing.T) {
	var evicted []string
	slot := NewAudioSlot(func(id string) { evicted = append(evicted, id) })

	if displaced := slot.Acquire("b1"); displaced != "" {
		t.Fatalf("first acquire displaces nobody, got %q", displaced)
	}
	if displaced := slot.Acquire("b1"); displaced != "" {
		t.Fatalf("re-acquire by the holder displaces nobody, got %q", displaced)
	}
	if displaced := slot.Acquire("b2"); displaced != "b1" {
		t.Fatalf("expected b1 displaced, got %q", displaced)
	}
	if len(evicted) != 1 || evicted[0] != "b1" {
		t.Fatalf("eviction callback should fire once for b1, got %v", evicted)
	}
	slot.Release("b1") // stale release, no-op
	if slot.Holder() != "b2" {
		t.Fatalf("stale release must not free the slot, holder %q", slot.Holder())
	}
	slot.Release("b2")
	if slot.Holder() != "" || slot.Playing("b2") {
		t.Fatal("release by the holder should free the slot")
	}
}

func TestSelectionMenu(t *testing.T) {
	sel := NewSelectionMenu()
	sel.Report("  ", Anchor{})
	if sel.IsOpen() {
		t.Fatal("whitespace-only selection must not open the menu")
	}
	sel.Report("some claim", Anchor{Top: 5})
	if !sel.IsOpen() || sel.Text() != "some claim" {
		t.Fatalf("expected open menu with text, got open=%v text=%q", sel.IsOpen(), sel.Text())
	}
	sel.Clear()
	if sel.IsOpen() || sel.Text() != "" {
		t.Fatal("clear should close the menu and drop the text")
	}
}

func TestSessionDeleteBlockPurgesSideState(t *testing.T) {
	blocks := []Block{NewBlock(TypeHeading1), NewBlock(TypeParagraph)}
	sess := NewSession(SeedStore(blocks))
	headingID := blocks[0].ID

	sess.ToggleCollapse(headingID)
	token, ok := sess.BeginAssist(headingID, KindSuggestion)
	if !ok {
		t.Fatal("begin should succeed")
	}
	sess.CompleteAssist(headingID, KindSuggestion, token, Result{Payload: json.RawMessage(`"x"`)})
	sess.PlayAudio(headingID)

	sess.DeleteBlock(headingID)

	if len(sess.Collapsed()) != 0 {
		t.Fatal("delete must drop collapse state")
	}
	if _, ok := sess.AssistResult(headingID, KindSuggestion); ok {
		t.Fatal("delete must purge assist results")
	}
	if sess.PlayingBlock() != "" {
		t.Fatal("delete must release the audio slot")
	}
}

func TestSessionSlashCommitDropsCollapseOnDemotion(t *testing.T) {
	sess := NewSession(nil)
	id := sess.Blocks()[0].ID
	sess.ChangeBlockType(id, TypeHeading1)
	sess.ToggleCollapse(id)

	// The slash palette only opens on empty blocks, so the heading is still
	// blank here.
	if !sess.OpenSlashMenu(id, Anchor{}) {
		t.Fatal("menu should open on the empty heading")
	}
	// Select "Text" (first option) and commit.
	committed := sess.SlashKeystroke("Enter")
	if committed != id {
		t.Fatalf("expected commit of %q, got %q", id, committed)
	}
	if len(sess.Collapsed()) != 0 {
		t.Fatal("demotion through the palette must drop the collapse entry")
	}
	b, _ := sess.Get(id)
	if b.Type != TypeParagraph {
		t.Fatalf("expected paragraph after commit, got %s", b.Type)
	}
}

func TestSessionKeystrokeClosedMenu(t *testing.T) {
	sess := NewSession(nil)
	if committed := sess.SlashKeystroke("Enter"); committed != "" {
		t.Fatalf("keystroke on a closed menu must be a no-op, got %q", committed)
	}
}
