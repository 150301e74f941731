package responsecache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mw "github.com/MJBeltran13/ai-chatbot-shop/internal/middleware"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/store"
)

func request(q string, snap *store.Snapshot) *mw.Event {
	return &mw.Event{Name: mw.EventBeforeLLMRequest, UserText: q, Query: q, Snapshot: snap}
}

func reply(q, answer string, snap *store.Snapshot) *mw.Event {
	return &mw.Event{Name: mw.EventBeforeUserReply, UserText: q, Query: q, LLMText: answer, Snapshot: snap, Intent: "price"}
}

func TestCache_MissStoreHit(t *testing.T) {
	c, err := New(0, nil)
	require.NoError(t, err)
	ctx := context.Background()
	snap := &store.Snapshot{Version: 1, Digest: "aa"}

	dec, err := c.OnEvent(ctx, request("how much is camshaft", snap))
	require.NoError(t, err)
	assert.False(t, dec.Cancel)

	_, err = c.OnEvent(ctx, reply("how much is camshaft", "₱1,700", snap))
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	dec, err = c.OnEvent(ctx, request("how much is camshaft", snap))
	require.NoError(t, err)
	require.True(t, dec.Cancel)
	assert.Equal(t, "₱1,700", *dec.ReplaceText)
}

func TestCache_KeyIsExactText(t *testing.T) {
	c, _ := New(10, nil)
	ctx := context.Background()
	snap := &store.Snapshot{Version: 1}

	_, _ = c.OnEvent(ctx, reply("How much is camshaft", "₱1,700", snap))
	dec, _ := c.OnEvent(ctx, request("how much is camshaft", snap))
	assert.False(t, dec.Cancel)
}

func TestCache_SkipsNoCacheAndOwnHits(t *testing.T) {
	c, _ := New(10, nil)
	ctx := context.Background()
	snap := &store.Snapshot{Version: 1}

	ev := reply("tell me a joke", "help menu", snap)
	ev.NoCache = true
	_, _ = c.OnEvent(ctx, ev)
	assert.Equal(t, 0, c.Len())

	ev = reply("hi", "Hello!", snap)
	ev.Intent = ID
	_, _ = c.OnEvent(ctx, ev)
	assert.Equal(t, 0, c.Len())
}

func TestCache_StaleVersionIsIgnored(t *testing.T) {
	c, _ := New(10, nil)
	ctx := context.Background()
	old := &store.Snapshot{Version: 1}
	next := &store.Snapshot{Version: 2}

	// A request that began before a reload finishes after the purge.
	_, _ = c.OnEvent(ctx, reply("how much is camshaft", "₱1,700", old))

	dec, _ := c.OnEvent(ctx, request("how much is camshaft", next))
	assert.False(t, dec.Cancel)
}

func TestCache_PurgeAndCapacity(t *testing.T) {
	c, _ := New(2, nil)
	ctx := context.Background()
	snap := &store.Snapshot{Version: 1}

	for i := 0; i < 3; i++ {
		q := fmt.Sprintf("q%d", i)
		_, _ = c.OnEvent(ctx, reply(q, "a", snap))
	}
	assert.Equal(t, 2, c.Len())

	dec, _ := c.OnEvent(ctx, request("q0", snap))
	assert.False(t, dec.Cancel, "least recently used entry evicted")

	require.NoError(t, c.Purge(ctx))
	assert.Equal(t, 0, c.Len())
}

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *Redis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedis(client, time.Hour)
}

func TestCache_SharedTier(t *testing.T) {
	mr, shared := newMiniRedis(t)
	ctx := context.Background()
	snap := &store.Snapshot{Version: 1, Digest: "abc123"}

	writer, _ := New(10, shared)
	_, _ = writer.OnEvent(ctx, reply("where are you", "Lipa City", snap))

	got, err := mr.Get(keyPrefix + "abc123:where are you")
	require.NoError(t, err)
	assert.Equal(t, "Lipa City", got)

	// A second process with a cold LRU reads through the shared tier.
	reader, _ := New(10, shared)
	dec, err := reader.OnEvent(ctx, request("where are you", &store.Snapshot{Version: 9, Digest: "abc123"}))
	require.NoError(t, err)
	require.True(t, dec.Cancel)
	assert.Equal(t, "Lipa City", *dec.ReplaceText)
	assert.Equal(t, 1, reader.Len())

	// Different catalog content means a different namespace.
	dec, _ = newCache(t, shared).OnEvent(ctx, request("where are you", &store.Snapshot{Version: 1, Digest: "fff"}))
	assert.False(t, dec.Cancel)
}

func TestCache_SharedPurge(t *testing.T) {
	mr, shared := newMiniRedis(t)
	ctx := context.Background()
	require.NoError(t, mr.Set("unrelated", "keep"))

	c, _ := New(10, shared)
	_, _ = c.OnEvent(ctx, reply("hi", "Hello!", &store.Snapshot{Version: 1, Digest: "d"}))
	require.True(t, mr.Exists(keyPrefix+"d:hi"))

	require.NoError(t, c.Purge(ctx))
	assert.False(t, mr.Exists(keyPrefix+"d:hi"))
	assert.True(t, mr.Exists("unrelated"))
}

func TestCache_SharedTierDownStillWorks(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	c := newCache(t, NewRedis(client, time.Minute))
	ctx := context.Background()
	snap := &store.Snapshot{Version: 1, Digest: "d"}
	dec, err := c.OnEvent(ctx, request("hi", snap))
	require.NoError(t, err)
	assert.False(t, dec.Cancel)

	_, err = c.OnEvent(ctx, reply("hi", "Hello!", snap))
	require.NoError(t, err)
	dec, _ = c.OnEvent(ctx, request("hi", snap))
	assert.True(t, dec.Cancel, "local tier still serves")
}

func newCache(t *testing.T, shared Shared) *Cache {
	t.Helper()
	c, err := New(10, shared)
	require.NoError(t, err)
	return c
}
