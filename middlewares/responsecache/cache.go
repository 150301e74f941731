// Package responsecache memoizes answers per exact query text.
//
// Entries are tied to the catalog generation they were computed from: the
// in-process LRU stores the snapshot version next to the answer and the shared
// tier namespaces its keys by the snapshot digest, so an answer computed
// before a reload is never served after it.
package responsecache

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/metrics"
	mw "github.com/MJBeltran13/ai-chatbot-shop/internal/middleware"
)

const (
	ID              = "response-cache"
	DefaultCapacity = 100
)

// Shared is an optional second cache tier shared between processes.
type Shared interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, answer string) error
	Purge(ctx context.Context) error
}

type entry struct {
	version uint64
	answer  string
}

// Cache is not registered globally; the resolver adds it to the chain with
// the configured capacity and shared tier.
type Cache struct {
	local  *lru.Cache[string, entry]
	shared Shared
}

func New(capacity int, shared Shared) (*Cache, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	local, err := lru.New[string, entry](capacity)
	if err != nil {
		return nil, fmt.Errorf("response cache: %w", err)
	}
	return &Cache{local: local, shared: shared}, nil
}

func (c *Cache) ID() string    { return ID }
func (c *Cache) Priority() int { return 280 }

// Len is the number of answers held in process.
func (c *Cache) Len() int { return c.local.Len() }

func (c *Cache) OnEvent(ctx context.Context, e *mw.Event) (mw.Decision, error) {
	if e == nil || e.Snapshot == nil || e.UserText == "" {
		return mw.Pass()
	}

	switch e.Name {
	case mw.EventBeforeLLMRequest:
		if ent, ok := c.local.Get(e.UserText); ok && ent.version == e.Snapshot.Version {
			metrics.ObserveCache("local", true)
			return mw.Reply(ent.answer, "served from response cache")
		}
		metrics.ObserveCache("local", false)

		if c.shared == nil {
			return mw.Pass()
		}
		answer, ok, err := c.shared.Get(ctx, sharedKey(e))
		if err != nil || !ok {
			// A broken shared tier only costs a recomputation.
			metrics.ObserveCache("shared", false)
			return mw.Pass()
		}
		metrics.ObserveCache("shared", true)
		c.local.Add(e.UserText, entry{version: e.Snapshot.Version, answer: answer})
		return mw.Reply(answer, "served from shared response cache")

	case mw.EventBeforeUserReply:
		if e.NoCache || e.LLMText == "" || e.Intent == ID {
			return mw.Pass()
		}
		c.local.Add(e.UserText, entry{version: e.Snapshot.Version, answer: e.LLMText})
		if c.shared != nil {
			_ = c.shared.Set(ctx, sharedKey(e), e.LLMText)
		}
	}
	return mw.Pass()
}

// Purge drops every cached answer. It runs after each catalog reload.
func (c *Cache) Purge(ctx context.Context) error {
	c.local.Purge()
	if c.shared == nil {
		return nil
	}
	return c.shared.Purge(ctx)
}

func sharedKey(e *mw.Event) string {
	return e.Snapshot.Digest + ":" + e.UserText
}
