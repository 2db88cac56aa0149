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

	"github.com/outlinedev/outline/internal/model"
)

const defaultDetectorBaseURL = "https://api.gowinston.ai"

// Detector calls the AI-content detection and plagiarism vendor. Both checks
// are plain JSON-over-HTTP pass-throughs; payloads are decoded leniently and
// missing fields stay at zero values.
type Detector struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type DetectorConfig struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
	Timeout int    `json:"timeout"`
}

func NewDetector(cfg DetectorConfig) *Detector {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultDetectorBaseURL
	}
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Detector{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type detectRequest struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}

type detectResponse struct {
	Score     float64 `json:"score"`
	Sentences []struct {
		Text  string  `json:"text"`
		Score float64 `json:"score"`
	} `json:"sentences"`
}

func (d *Detector) DetectAI(ctx context.Context, text string) (*model.DetectionResult, error) {
	if d.apiKey == "" {
		return nil, ErrUnavailable
	}
	var out detectResponse
	if err := d.post(ctx, "/v2/ai-content-detection", detectRequest{Text: text}, &out); err != nil {
		return nil, err
	}
	res := &model.DetectionResult{Score: out.Score}
	for _, s := range out.Sentences {
		res.Sentences = append(res.Sentences, model.DetectionSentence{Text: s.Text, Score: s.Score})
	}
	return res, nil
}

type plagiarismRequest struct {
	Text            string   `json:"text"`
	ExcludedSources []string `json:"excluded_sources"`
	Language        string   `json:"language"`
	Country         string   `json:"country"`
}

type plagiarismResponse struct {
	Result struct {
		Score float64 `json:"score"`
	} `json:"result"`
	Score   float64 `json:"score"`
	Sources []struct {
		URL   string  `json:"url"`
		Title string  `json:"title"`
		Score float64 `json:"score"`
	} `json:"sources"`
}

func (d *Detector) CheckPlagiarism(ctx context.Context, text string, excluded []string) (*model.PlagiarismResult, error) {
	if d.apiKey == "" {
		return nil, ErrUnavailable
	}
	if excluded == nil {
		excluded = []string{}
	}
	req := plagiarismRequest{
		Text:            strings.TrimSpace(text),
		ExcludedSources: excluded,
		Language:        "en",
		Country:         "us",
	}
	var out plagiarismResponse
	if err := d.post(ctx, "/v2/plagiarism", req, &out); err != nil {
		return nil, err
	}
	score := out.Result.Score
	if score == 0 {
		score = out.Score
	}
	res := &model.PlagiarismResult{Score: score}
	for _, s := range out.Sources {
		res.Sources = append(res.Sources, model.PlagiarismSource{URL: s.URL, Title: s.Title, Score: s.Score})
	}
	return res, nil
}

func (d *Detector) post(ctx context.Context, path string, body, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+d.apiKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("detector request failed: %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
