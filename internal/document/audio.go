package document

// AudioSlot models playback as a single global resource: acquiring it for
// one block implicitly releases whoever held it, so at most one audio stream
// is ever active.
type AudioSlot struct {
	holder  string
	onEvict func(blockID string)
}

// NewAudioSlot takes an optional eviction callback invoked with the previous
// holder's block id whenever acquisition displaces it.
func NewAudioSlot(onEvict func(blockID string)) *AudioSlot {
	return &AudioSlot{onEvict: onEvict}
}

// Acquire claims playback for blockID and returns the displaced holder, if
// any.
func (a *AudioSlot) Acquire(blockID string) (displaced string) {
	if a.holder == blockID {
		return ""
	}
	displaced = a.holder
	a.holder = blockID
	if displaced != "" && a.onEvict != nil {
		a.onEvict(displaced)
	}
	return displaced
}

// Release frees the slot if blockID currently holds it.
func (a *AudioSlot) Release(blockID string) {
	if a.holder == blockID {
		a.holder = ""
	}
}

func (a *AudioSlot) Holder() string {
	return a.holder
}

func (a *AudioSlot) Playing(blockID string) bool {
	return a.holder != "" && a.holder == blockID
}
