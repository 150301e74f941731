package llm

import (
	"context"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const defaultOllamaURL = "http://localhost:11434"

type OllamaAdapter struct {
	client      *ollama.LLM
	model       string
	baseURL     string
	temperature float64
}

func NewOllamaAdapter(opts Options) (*OllamaAdapter, error) {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}
	client, err := ollama.New(
		ollama.WithServerURL(baseURL),
		ollama.WithModel(opts.Model),
	)
	if err != nil {
		return nil, err
	}
	return &OllamaAdapter{
		client:      client,
		model:       opts.Model,
		baseURL:     baseURL,
		temperature: opts.Temperature,
	}, nil
}

func (a *OllamaAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	callOpts := []llms.CallOption{llms.WithModel(a.model)}
	if a.temperature != 0 {
		callOpts = append(callOpts, llms.WithTemperature(a.temperature))
	}
	text, err := llms.GenerateFromSinglePrompt(ctx, a.client, prompt, callOpts...)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Ping lists the local models, the cheapest call the server answers.
func (a *OllamaAdapter) Ping(ctx context.Context) error {
	return probe(ctx, a.baseURL+"/api/tags", "")
}
