package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderOpenAI Provider = "openai"
)

var (
	ErrUnsupportedProvider = errors.New("llm: unsupported provider")
	// ErrEmptyResponse is returned by adapters when the model produced no
	// text.
	ErrEmptyResponse = errors.New("llm: empty response from model")
)

// Adapter is a single non-streaming text completion backend.
type Adapter interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
}

// Options selects and configures an adapter.
type Options struct {
	Provider    Provider
	Model       string
	BaseURL     string
	APIKey      string
	Temperature float64
}

func NewAdapter(opts Options) (Adapter, error) {
	switch Provider(strings.ToLower(string(opts.Provider))) {
	case ProviderOllama, "":
		return NewOllamaAdapter(opts)
	case ProviderOpenAI:
		return NewOpenAIAdapter(opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, opts.Provider)
	}
}

var pingClient = &http.Client{Timeout: 5 * time.Second}

// probe issues a GET and treats any 2xx as reachable.
func probe(ctx context.Context, url, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := pingClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("llm: %s returned %d", url, resp.StatusCode)
	}
	return nil
}
