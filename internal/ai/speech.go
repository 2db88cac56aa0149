package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultSpeechBaseURL = "https://api.elevenlabs.io"
	defaultSpeechModel   = "eleven_multilingual_v2"
	// Vendor default voice when the profile does not pick one.
	DefaultVoiceID = "pNInz6obpgDQGcFmaJgB"
)

// Speech synthesizes block text into an mp3 byte stream through the
// text-to-speech vendor.
type Speech struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type SpeechConfig struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
	Timeout int    `json:"timeout"`
}

func NewSpeech(cfg SpeechConfig) *Speech {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultSpeechBaseURL
	}
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Speech{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type speechRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

func (s *Speech) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	if s.apiKey == "" {
		return nil, ErrUnavailable
	}
	if voiceID == "" {
		voiceID = DefaultVoiceID
	}
	body := speechRequest{
		Text:    text,
		ModelID: defaultSpeechModel,
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
			Style:           0.0,
			UseSpeakerBoost: true,
		},
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	endpoint := s.baseURL + "/v1/text-to-speech/" + voiceID
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", s.apiKey)
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("speech request failed: %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}
	return io.ReadAll(resp.Body)
}
