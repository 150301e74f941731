package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/logger"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/metrics"
)

const (
	DefaultMaxAttempts = 3
	DefaultTimeout     = 15 * time.Second
	DefaultBackoff     = time.Second
)

// GatewayConfig bounds the retry loop.
type GatewayConfig struct {
	MaxAttempts int
	Timeout     time.Duration // per attempt
	Backoff     time.Duration // fixed pause between attempts
}

func (c GatewayConfig) withDefaults() GatewayConfig {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Backoff < 0 {
		c.Backoff = 0
	}
	return c
}

// Gateway wraps an Adapter with bounded retries. Failures are logged and
// counted but never returned: callers get "" and pick their own fallback.
type Gateway struct {
	adapter Adapter
	cfg     GatewayConfig
	log     logger.Logger
}

func NewGateway(adapter Adapter, cfg GatewayConfig, log logger.Logger) *Gateway {
	if log == nil {
		log = logger.NewNop()
	}
	return &Gateway{adapter: adapter, cfg: cfg.withDefaults(), log: log}
}

// Generate returns the trimmed completion, or "" once every attempt failed
// or came back empty.
func (g *Gateway) Generate(ctx context.Context, prompt string) string {
	if g == nil || g.adapter == nil {
		return ""
	}

	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		text, err := g.attempt(ctx, prompt)
		if err == nil {
			return text
		}

		g.log.WithError(err).Warn("llm attempt failed", map[string]interface{}{
			"attempt":      attempt,
			"max_attempts": g.cfg.MaxAttempts,
		})
		if attempt == g.cfg.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			g.log.Warn("llm retries abandoned", map[string]interface{}{"error": ctx.Err().Error()})
			return ""
		case <-time.After(g.cfg.Backoff):
		}
	}

	g.log.Error("llm gave no answer", map[string]interface{}{"attempts": g.cfg.MaxAttempts})
	return ""
}

func (g *Gateway) attempt(ctx context.Context, prompt string) (string, error) {
	actx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	start := time.Now()
	text, err := g.adapter.Generate(actx, prompt)
	text = strings.TrimSpace(text)
	switch {
	case err == nil && text == "":
		err = ErrEmptyResponse
		metrics.ObserveLLM(metrics.OutcomeEmpty, time.Since(start))
	case errors.Is(err, ErrEmptyResponse):
		metrics.ObserveLLM(metrics.OutcomeEmpty, time.Since(start))
	case err != nil:
		metrics.ObserveLLM(metrics.OutcomeError, time.Since(start))
	default:
		metrics.ObserveLLM(metrics.OutcomeSuccess, time.Since(start))
	}
	return text, err
}

// Ping reports whether the backend is reachable.
func (g *Gateway) Ping(ctx context.Context) error {
	if g == nil || g.adapter == nil {
		return ErrUnsupportedProvider
	}
	return g.adapter.Ping(ctx)
}
