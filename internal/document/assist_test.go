package document

import (
	"encoding/json"
	"testing"
)

func TestResultTableBeginBlocksReentry(t *testing.T) {
	tbl := NewResultTable()
	token, ok := tbl.Begin("b1", KindSuggestion)
	if !ok || token == 0 {
		t.Fatalf("first begin should succeed, got token=%d ok=%v", token, ok)
	}
	if !tbl.Loading("b1", KindSuggestion) {
		t.Fatal("call should be in flight")
	}
	if _, ok := tbl.Begin("b1", KindSuggestion); ok {
		t.Fatal("second begin for the same (block, kind) must be rejected")
	}
	// A different kind on the same block is independent.
	if _, ok := tbl.Begin("b1", KindDetection); !ok {
		t.Fatal("different kind should begin")
	}
}

func TestResultTableCompleteApplies(t *testing.T) {
	tbl := NewResultTable()
	token, _ := tbl.Begin("b1", KindSuggestion)
	applied := tbl.Complete("b1", KindSuggestion, token, Result{Payload: json.RawMessage(`{"text":"better"}`)})
	if !applied {
		t.Fatal("fresh completion must apply")
	}
	if tbl.Loading("b1", KindSuggestion) {
		t.Fatal("completion should clear the in-flight flag")
	}
	res, ok := tbl.Get("b1", KindSuggestion)
	if !ok {
		t.Fatal("expected stored result")
	}
	if res.Kind != KindSuggestion || res.BlockID != "b1" {
		t.Fatalf("result key fields should be stamped: %+v", res)
	}
}

func TestResultTableStaleCompletionDropped(t *testing.T) {
	tbl := NewResultTable()
	stale, _ := tbl.Begin("b1", KindDetection)
	// First call settles with an error; the user retries before the slow
	// retry of the first response arrives.
	tbl.Complete("b1", KindDetection, stale, Result{Err: "timeout"})
	fresh, _ := tbl.Begin("b1", KindDetection)

	if tbl.Complete("b1", KindDetection, stale, Result{Payload: json.RawMessage(`1`)}) {
		t.Fatal("stale completion must be dropped")
	}
	if !tbl.Complete("b1", KindDetection, fresh, Result{Payload: json.RawMessage(`2`)}) {
		t.Fatal("fresh completion must apply")
	}
	res, _ := tbl.Get("b1", KindDetection)
	if string(res.Payload) != `2` {
		t.Fatalf("stored result should be the fresh one, got %s", res.Payload)
	}
}

func TestResultTablePurgeBlock(t *testing.T) {
	tbl := NewResultTable()
	token, _ := tbl.Begin("b1", KindSuggestion)
	tbl.Complete("b1", KindSuggestion, token, Result{Payload: json.RawMessage(`"x"`)})
	inflight, _ := tbl.Begin("b1", KindSpeech)
	keep, _ := tbl.Begin("b2", KindSuggestion)

	tbl.PurgeBlock("b1")

	if _, ok := tbl.Get("b1", KindSuggestion); ok {
		t.Fatal("purge must drop stored results")
	}
	if tbl.Loading("b1", KindSpeech) {
		t.Fatal("purge must clear in-flight state")
	}
	if tbl.Complete("b1", KindSpeech, inflight, Result{Payload: json.RawMessage(`"late"`)}) {
		t.Fatal("completion of a purged call must never apply")
	}
	if !tbl.Complete("b2", KindSuggestion, keep, Result{Payload: json.RawMessage(`"y"`)}) {
		t.Fatal("other blocks must be untouched")
	}
}

func TestResultTableDismiss(t *testing.T) {
	tbl := NewResultTable()
	token, _ := tbl.Begin("b1", KindPlagiarism)
	tbl.Complete("b1", KindPlagiarism, token, Result{Payload: json.RawMessage(`{}`)})
	tbl.Dismiss("b1", KindPlagiarism)
	if _, ok := tbl.Get("b1", KindPlagiarism); ok {
		t.Fatal("dismiss must remove the result")
	}
	if len(tbl.All()) != 0 {
		t.Fatal("table should be empty after dismiss")
	}
}

func TestValidKind(t *testing.T) {
	for _, k := range []Kind{KindSuggestion, KindDetection, KindPlagiarism, KindSpeech} {
		if !ValidKind(k) {
			t.Errorf("expected %s valid", k)
		}
	}
	if ValidKind(Kind("summary")) {
		t.Error("unknown kind must be invalid")
	}
}
