package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/store"
)

type testMW struct {
	id       string
	priority int
	cancel   bool
	reply    string
	seen     *[]string
}

func (m testMW) ID() string    { return m.id }
func (m testMW) Priority() int { return m.priority }
func (m testMW) OnEvent(_ context.Context, _ *Event) (Decision, error) {
	*m.seen = append(*m.seen, m.id)
	if m.reply != "" {
		return Reply(m.reply, m.id)
	}
	return Decision{Cancel: m.cancel}, nil
}

type purgeMW struct {
	testMW
	purged *int
	err    error
}

func (m purgeMW) Purge(context.Context) error {
	*m.purged++
	return m.err
}

type conditionalTestMW struct {
	testMW
	enabled bool
}

func (m conditionalTestMW) ShouldLoad(_ context.Context, _ *Event) bool { return m.enabled }

func TestChainPriorityAndCancel(t *testing.T) {
	seen := []string{}
	c := NewChain(
		testMW{id: "low", priority: 1, seen: &seen},
		testMW{id: "high", priority: 10, cancel: true, seen: &seen},
		testMW{id: "mid", priority: 5, seen: &seen},
	)

	_, err := c.Dispatch(context.Background(), &Event{Name: EventBeforeLLMRequest})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) != 1 || seen[0] != "high" {
		t.Fatalf("expected only high to run (cancel), got %v", seen)
	}
}

func TestChainConditionalMiddlewareSkip(t *testing.T) {
	seen := []string{}
	c := NewChain(
		conditionalTestMW{testMW: testMW{id: "off", priority: 10, seen: &seen}, enabled: false},
		conditionalTestMW{testMW: testMW{id: "on", priority: 5, seen: &seen}, enabled: true},
	)

	results, err := c.Dispatch(context.Background(), &Event{Name: EventBeforeLLMRequest})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := join(seen); got != "on" {
		t.Fatalf("expected only enabled middleware to run, got %s", got)
	}
	if len(results) != 2 {
		t.Fatalf("expected results for both middlewares, got %d", len(results))
	}
	if results[0].MiddlewareID != "off" || results[0].Decision.Reason == "" {
		t.Fatalf("expected first result to be skipped middleware with a reason, got %+v", results[0])
	}
}

func TestChainStableOrderOnEqualPriority(t *testing.T) {
	seen := []string{}
	c := NewChain(
		testMW{id: "a", priority: 5, seen: &seen},
		testMW{id: "b", priority: 5, seen: &seen},
		testMW{id: "c", priority: 5, seen: &seen},
	)

	_, err := c.Dispatch(context.Background(), &Event{Name: EventBeforeLLMRequest})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := join(seen); got != "a,b,c" {
		t.Fatalf("expected stable registration order, got %s", got)
	}
}

func TestChainAnswerCarriesReply(t *testing.T) {
	seen := []string{}
	c := NewChain(
		testMW{id: "location", priority: 200, reply: "We are in Lipa City.", seen: &seen},
		testMW{id: "price", priority: 170, reply: "₱1,700", seen: &seen},
	)

	ev := &Event{Name: EventBeforeLLMRequest, UserText: "where are you and how much", Query: "where are you and how much"}
	results, err := c.Dispatch(context.Background(), ev)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ans, ok := Answer(results)
	if !ok {
		t.Fatalf("expected an answer, got %+v", results)
	}
	if ans.MiddlewareID != "location" || ev.LLMText != "We are in Lipa City." {
		t.Fatalf("expected location to answer, got %s / %q", ans.MiddlewareID, ev.LLMText)
	}
	if got := join(seen); got != "location" {
		t.Fatalf("expected dispatch to stop at location, got %s", got)
	}
}

func TestChainAnswerNoneWhenNobodyReplies(t *testing.T) {
	seen := []string{}
	c := NewChain(testMW{id: "noop", priority: 1, seen: &seen})
	results, _ := c.Dispatch(context.Background(), &Event{Name: EventBeforeLLMRequest})
	if _, ok := Answer(results); ok {
		t.Fatalf("expected no answer")
	}
}

func TestChainPurgeRunsEveryPurger(t *testing.T) {
	seen := []string{}
	var a, b int
	c := NewChain(
		purgeMW{testMW: testMW{id: "a", priority: 2, seen: &seen}, purged: &a, err: errors.New("redis down")},
		testMW{id: "plain", priority: 1, seen: &seen},
		purgeMW{testMW: testMW{id: "b", priority: 0, seen: &seen}, purged: &b},
	)

	err := c.Purge(context.Background())
	if err == nil || !strings.Contains(err.Error(), "purge a") {
		t.Fatalf("expected first purge error to surface, got %v", err)
	}
	if a != 1 || b != 1 {
		t.Fatalf("expected both purgers to run, got a=%d b=%d", a, b)
	}
}

func TestChainDebugLogJSONL(t *testing.T) {
	seen := []string{}
	var buf bytes.Buffer
	c := NewChain(testMW{id: "greeting", priority: 130, reply: "Hello!", seen: &seen})
	c.SetDebugWriter(&buf)

	ev := &Event{
		Name:     EventBeforeLLMRequest,
		UserText: "hi",
		Query:    "hi",
		Snapshot: &store.Snapshot{Version: 7},
	}
	if _, err := c.Dispatch(context.Background(), ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var entry debugEntry
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("invalid debug line %q: %v", buf.String(), err)
	}
	if entry.MiddlewareID != "greeting" || !entry.Cancel || entry.Version != 7 {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry.OutputChars != len("Hello!") {
		t.Fatalf("expected output chars of the reply, got %d", entry.OutputChars)
	}
}

func TestNewChainFromRegistryDisabled(t *testing.T) {
	saved := registry
	t.Cleanup(func() { registry = saved })
	registry = nil

	seen := []string{}
	Register(testMW{id: "profanity", priority: 290, seen: &seen})
	Register(testMW{id: "greeting", priority: 130, seen: &seen})

	c := NewChainFromRegistry(nil, " profanity")
	list := c.List()
	if len(list) != 1 || list[0].ID() != "greeting" {
		t.Fatalf("expected only greeting, got %d middlewares", len(list))
	}
}

func join(in []string) string {
	if len(in) == 0 {
		return ""
	}
	out := in[0]
	for i := 1; i < len(in); i++ {
		out += "," + in[i]
	}
	return out
}
