// Package resolver turns a customer message into an answer by running it
// through the intent chain against one catalog snapshot.
package resolver

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/lang"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/logger"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/metrics"
	mw "github.com/MJBeltran13/ai-chatbot-shop/internal/middleware"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/store"
	_ "github.com/MJBeltran13/ai-chatbot-shop/middlewares/autoload"
	"github.com/MJBeltran13/ai-chatbot-shop/middlewares/fallback"
	"github.com/MJBeltran13/ai-chatbot-shop/middlewares/responsecache"
)

const (
	ApologyEN = "Sorry, something went wrong while answering your message. Please try again in a moment."
	ApologyTL = "Pasensya na, nagkaproblema sa pagsagot ng iyong mensahe. Pakisubukan ulit mamaya."
)

// Request is one inbound message.
type Request struct {
	Message string
	// Context is copied into the event for middlewares and the debug log
	// (channel, request id, chat id).
	Context map[string]any
}

// Result is a resolved answer.
type Result struct {
	Text    string
	Intent  string
	Tagalog bool
	Version uint64
}

// Resolver answers messages. It is safe for concurrent use.
type Resolver struct {
	chain *mw.Chain
	store *store.Store
	gen   mw.Generator
	log   logger.Logger
}

// New wires a resolver and subscribes it to catalog reloads so per-catalog
// state in the chain is purged after every publish.
func New(st *store.Store, chain *mw.Chain, gen mw.Generator, log logger.Logger) *Resolver {
	if log == nil {
		log = logger.NewNop()
	}
	r := &Resolver{chain: chain, store: st, gen: gen, log: log}
	st.OnReload(r.onReload)
	return r
}

// BuildChain assembles the registered intents plus the response cache. A
// nil cache leaves memoization off.
func BuildChain(cache *responsecache.Cache, debug io.Writer, disabled ...string) *mw.Chain {
	chain := mw.NewChainFromRegistry(debug, disabled...)
	if cache != nil && !contains(disabled, responsecache.ID) {
		chain.Use(cache)
	}
	return chain
}

// Resolve answers message. The returned text is never empty; a non-nil error
// means the text is the generic apology.
func (r *Resolver) Resolve(ctx context.Context, message string) (string, error) {
	res, err := r.Answer(ctx, Request{Message: message})
	return res.Text, err
}

// Answer is Resolve with request metadata and the intent that answered.
func (r *Resolver) Answer(ctx context.Context, req Request) (res Result, err error) {
	start := time.Now()
	text := strings.TrimSpace(req.Message)
	snap := r.store.Current()
	res = Result{Tagalog: lang.IsTagalog(text), Version: snap.Version}

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("resolve: panic: %v", p)
		}
		if err != nil {
			res.Text = lang.Pick(res.Tagalog, ApologyEN, ApologyTL)
			res.Intent = ""
			metrics.ChatFailures.Inc()
			r.log.WithError(err).Error("resolve failed", map[string]interface{}{
				"catalog_version": snap.Version,
			})
		}
		metrics.ObserveChat(res.Intent, time.Since(start))
	}()

	ev := &mw.Event{
		Name:      mw.EventBeforeLLMRequest,
		UserText:  text,
		Query:     strings.ToLower(text),
		Tagalog:   res.Tagalog,
		Snapshot:  snap,
		Generator: r.gen,
		Context:   copyContext(req.Context),
	}
	results, err := r.chain.Dispatch(ctx, ev)
	if err != nil {
		return res, fmt.Errorf("dispatch: %w", err)
	}

	answer, ok := mw.Answer(results)
	if !ok || strings.TrimSpace(*answer.Decision.ReplaceText) == "" {
		res.Text = fallback.HelpMenu(res.Tagalog, snap.Products.Len(), snap.Services.Len())
		res.Intent = "none"
		return res, nil
	}
	res.Text = *answer.Decision.ReplaceText
	res.Intent = answer.MiddlewareID

	reply := &mw.Event{
		Name:     mw.EventBeforeUserReply,
		UserText: text,
		Query:    ev.Query,
		LLMText:  res.Text,
		Tagalog:  res.Tagalog,
		Snapshot: snap,
		Intent:   res.Intent,
		NoCache:  answer.Decision.NoCache,
		Context:  ev.Context,
	}
	if _, err := r.chain.Dispatch(ctx, reply); err != nil {
		// The answer stands; only its memoization failed.
		r.log.WithError(err).Warn("reply dispatch failed", map[string]interface{}{"intent": res.Intent})
	}
	return res, nil
}

// Reload rebuilds the catalog from its documents. Cached answers are purged
// by the reload listener before Reload returns.
func (r *Resolver) Reload(ctx context.Context) (*store.Snapshot, error) {
	snap, err := r.store.Load(ctx)
	if err != nil {
		metrics.CatalogFailed()
		return nil, err
	}
	return snap, nil
}

// Snapshot is the catalog currently being served.
func (r *Resolver) Snapshot() *store.Snapshot { return r.store.Current() }

// LastLoadError is the error of the most recent failed catalog load.
func (r *Resolver) LastLoadError() error { return r.store.LastError() }

func (r *Resolver) onReload(snap *store.Snapshot) {
	metrics.CatalogPublished(snap.Version, snap.Products.Len(), snap.Services.Len())
	if err := r.chain.Purge(context.Background()); err != nil {
		r.log.WithError(err).Warn("cache purge after reload failed", map[string]interface{}{
			"catalog_version": snap.Version,
		})
	}
}

func copyContext(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if strings.TrimSpace(v) == s {
			return true
		}
	}
	return false
}
