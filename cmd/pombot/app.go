package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/config"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/document"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/llm"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/logger"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/resolver"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/store"
	"github.com/MJBeltran13/ai-chatbot-shop/middlewares/responsecache"
)

// app is the wired process shared by every subcommand that answers
// messages.
type app struct {
	resolver *resolver.Resolver
	gateway  *llm.Gateway
	closers  []io.Closer
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
}

// newApp wires documents, store, model gateway, cache and resolver, then
// runs the first catalog load. A failed first load is returned as loadErr;
// the app still serves the unavailable message.
func newApp(ctx context.Context, cfg *config.Config, log logger.Logger) (_ *app, loadErr error, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	loader := document.NewLoader(cfg.Catalog.Path, cfg.Catalog.SupplementPath, log.With(map[string]interface{}{"component": "document"}))
	st := store.New(loader, log.With(map[string]interface{}{"component": "store"}))

	adapter, err := llm.NewAdapter(llm.Options{
		Provider:    llm.Provider(cfg.LLM.Provider),
		Model:       cfg.LLM.Model,
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Temperature: cfg.LLM.Temperature,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("llm adapter: %w", err)
	}
	a.gateway = llm.NewGateway(adapter, llm.GatewayConfig{
		MaxAttempts: cfg.LLM.MaxAttempts,
		Timeout:     cfg.LLM.Timeout,
		Backoff:     cfg.LLM.Backoff,
	}, log.With(map[string]interface{}{"component": "llm"}))

	var shared responsecache.Shared
	if cfg.Cache.RedisAddress != "" {
		r, err := responsecache.DialRedis(ctx, responsecache.RedisConfig{
			Addr:     cfg.Cache.RedisAddress,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
			TTL:      cfg.Cache.TTL,
		})
		if err != nil {
			// The in-process tier alone is enough to serve.
			log.WithError(err).Warn("shared response cache disabled", map[string]interface{}{"addr": cfg.Cache.RedisAddress})
		} else {
			shared = r
			a.closers = append(a.closers, r)
		}
	}
	cache, err := responsecache.New(cfg.Cache.Capacity, shared)
	if err != nil {
		return nil, nil, err
	}

	debugW, err := openDebugLog(cfg.Debug.MiddlewareLog)
	if err != nil {
		log.WithError(err).Warn("middleware debug log disabled", map[string]interface{}{"path": cfg.Debug.MiddlewareLog})
	} else if debugW != nil {
		a.closers = append(a.closers, debugW)
	}

	var w io.Writer
	if debugW != nil {
		w = debugW
	}
	chain := resolver.BuildChain(cache, w, cfg.Debug.DisabledMiddlewares...)
	a.resolver = resolver.New(st, chain, a.gateway, log.With(map[string]interface{}{"component": "resolver"}))

	_, loadErr = a.resolver.Reload(ctx)
	return a, loadErr, nil
}

func openDebugLog(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}
