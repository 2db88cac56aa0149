package model

// DetectionResult is the AI-content detection vendor payload, decoded
// leniently: missing fields render as zero values.
type DetectionResult struct {
	Score     float64             `json:"score"`
	Sentences []DetectionSentence `json:"sentences,omitempty"`
}

type DetectionSentence struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// PlagiarismResult is the plagiarism vendor payload.
type PlagiarismResult struct {
	Score   float64            `json:"score"`
	Sources []PlagiarismSource `json:"sources,omitempty"`
}

type PlagiarismSource struct {
	URL   string  `json:"url"`
	Title string  `json:"title,omitempty"`
	Score float64 `json:"score"`
}

// SuggestionResult carries one generated chapter suggestion.
type SuggestionResult struct {
	Text string `json:"text"`
}

// SpeechResult points at stored synthesized audio for a block.
type SpeechResult struct {
	FileKey string `json:"file_key"`
	VoiceID string `json:"voice_id"`
}
