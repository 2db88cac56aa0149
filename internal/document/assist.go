package document

import "encoding/json"

// Kind names one flavor of external assistance attached to a block.
type Kind string

const (
	KindSuggestion Kind = "suggestion"
	KindDetection  Kind = "detection"
	KindPlagiarism Kind = "plagiarism"
	KindSpeech     Kind = "speech"
)

func ValidKind(k Kind) bool {
	switch k {
	case KindSuggestion, KindDetection, KindPlagiarism, KindSpeech:
		return true
	}
	return false
}

// Result is one assistance outcome keyed by block id. Either Payload or Err
// is set; a failed call surfaces as an inline, dismissible error state.
type Result struct {
	Kind    Kind            `json:"kind"`
	BlockID string          `json:"block_id"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Err     string          `json:"error,omitempty"`
}

type resultKey struct {
	blockID string
	kind    Kind
}

// ResultTable is the side table of assistance results. Results never live on
// the Block itself, so block content stays independent of assistance state.
// Per (block, kind) generation counters make a completed call apply only if
// no newer call has been issued since, closing the last-write-wins race of
// slow responses.
type ResultTable struct {
	results     map[resultKey]Result
	generations map[resultKey]uint64
	inflight    map[resultKey]struct{}
}

func NewResultTable() *ResultTable {
	return &ResultTable{
		results:     make(map[resultKey]Result),
		generations: make(map[resultKey]uint64),
		inflight:    make(map[resultKey]struct{}),
	}
}

// Begin registers a new call for (blockID, kind) and returns its generation
// token. The second return is false when a call of that kind is already in
// flight for the block; re-triggering is disabled until it settles.
func (t *ResultTable) Begin(blockID string, kind Kind) (uint64, bool) {
	key := resultKey{blockID: blockID, kind: kind}
	if _, busy := t.inflight[key]; busy {
		return 0, false
	}
	t.generations[key]++
	t.inflight[key] = struct{}{}
	return t.generations[key], true
}

// Complete stores the outcome of a call begun with the given token. Stale
// completions (a newer call was issued meanwhile) are dropped silently.
// Reports whether the result was applied.
func (t *ResultTable) Complete(blockID string, kind Kind, token uint64, res Result) bool {
	key := resultKey{blockID: blockID, kind: kind}
	delete(t.inflight, key)
	if t.generations[key] != token {
		return false
	}
	res.Kind = kind
	res.BlockID = blockID
	t.results[key] = res
	return true
}

func (t *ResultTable) Loading(blockID string, kind Kind) bool {
	_, busy := t.inflight[resultKey{blockID: blockID, kind: kind}]
	return busy
}

func (t *ResultTable) Get(blockID string, kind Kind) (Result, bool) {
	res, ok := t.results[resultKey{blockID: blockID, kind: kind}]
	return res, ok
}

// Dismiss drops the stored result for (blockID, kind), e.g. when the user
// closes the inline card.
func (t *ResultTable) Dismiss(blockID string, kind Kind) {
	delete(t.results, resultKey{blockID: blockID, kind: kind})
}

// PurgeBlock drops every entry keyed by the block, called when the block is
// deleted. In-flight calls keep running; their completions land on a purged
// generation and are never rendered, which is benign.
func (t *ResultTable) PurgeBlock(blockID string) {
	for key := range t.results {
		if key.blockID == blockID {
			delete(t.results, key)
		}
	}
	for key := range t.generations {
		if key.blockID == blockID {
			// Bump so a late completion of a purged call can never apply.
			t.generations[key]++
		}
	}
	for key := range t.inflight {
		if key.blockID == blockID {
			delete(t.inflight, key)
		}
	}
}

// All returns every stored result, render order unspecified.
func (t *ResultTable) All() []Result {
	out := make([]Result, 0, len(t.results))
	for _, res := range t.results {
		out = append(out, res)
	}
	return out
}
