package llm

import (
	"context"
	"os"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAIAdapter talks to any OpenAI-compatible endpoint, such as a llama.cpp
// or vLLM server on the shop machine.
type OpenAIAdapter struct {
	client      *openai.LLM
	model       string
	baseURL     string
	token       string
	temperature float64
}

func NewOpenAIAdapter(opts Options) (*OpenAIAdapter, error) {
	token := opts.APIKey
	if token == "" {
		token = os.Getenv("OPENAI_API_KEY")
	}
	// The client refuses to start without a token; local servers ignore it.
	if token == "" {
		token = "local"
	}

	clientOpts := []openai.Option{
		openai.WithModel(opts.Model),
		openai.WithToken(token),
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL != "" {
		clientOpts = append(clientOpts, openai.WithBaseURL(baseURL))
	} else {
		baseURL = "https://api.openai.com/v1"
	}

	client, err := openai.New(clientOpts...)
	if err != nil {
		return nil, err
	}
	return &OpenAIAdapter{
		client:      client,
		model:       opts.Model,
		baseURL:     baseURL,
		token:       token,
		temperature: opts.Temperature,
	}, nil
}

func (a *OpenAIAdapter) Generate(ctx context.Context, prompt string) (string, error) {
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

func (a *OpenAIAdapter) Ping(ctx context.Context) error {
	return probe(ctx, a.baseURL+"/models", a.token)
}
