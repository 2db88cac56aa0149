package ai

import (
	"context"
	"strings"
	"sync"

	"google.golang.org/genai"
)

type geminiConfig struct {
	APIKey string `json:"api_key"`
}

// geminiProvider talks to the Gemini API through the official genai client.
// The client is built lazily on first use, so a server with no key still
// starts and surfaces ErrUnavailable per request.
type geminiProvider struct {
	apiKey string

	mu     sync.Mutex
	client *genai.Client
}

func init() {
	Register("gemini", func(args interface{}) (IProvider, error) {
		var cfg geminiConfig
		if err := decodeConfig(args, &cfg); err != nil {
			return nil, err
		}
		return &geminiProvider{apiKey: strings.TrimSpace(cfg.APIKey)}, nil
	})
}

func (p *geminiProvider) Name() string {
	return "gemini"
}

func (p *geminiProvider) Generate(ctx context.Context, model string, prompt string) (string, error) {
	client, err := p.getClient(ctx)
	if err != nil {
		return "", err
	}
	resp, err := client.Models.GenerateContent(
		ctx,
		model,
		genai.Text(prompt),
		nil,
	)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text()), nil
}

func (p *geminiProvider) getClient(ctx context.Context) (*genai.Client, error) {
	if p.apiKey == "" {
		return nil, ErrUnavailable
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		return p.client, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	p.client = client
	return client, nil
}
