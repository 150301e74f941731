package middleware

import (
	"context"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/store"
)

type EventName string

const (
	// EventBeforeLLMRequest carries a customer query through the intent
	// chain. Rule middlewares answer it by cancelling with ReplaceText; if
	// nothing matches earlier, the fallback consults the language model.
	EventBeforeLLMRequest EventName = "before_llm_request"
	EventBeforeUserReply  EventName = "before_user_reply"
)

// Generator is the language model as seen by middlewares: it returns the
// trimmed completion, or "" when no answer could be produced.
type Generator interface {
	Generate(ctx context.Context, prompt string) string
}

type Decision struct {
	Cancel      bool   // stop the pipeline for this event
	Reason      string // for logs
	ReplaceText *string

	// NoCache marks a reply that must not be memoized, such as the help
	// menu served while the model is unreachable.
	NoCache bool
}

type Event struct {
	Name EventName
	// UserText is the message as received (trimmed). It is the cache key.
	UserText string
	// Query is UserText lower-cased; keyword matching runs on it.
	Query string
	// LLMText is the answer on before_user_reply.
	LLMText string
	Tagalog bool

	// Snapshot is the catalog generation this request reads. It is taken
	// once per request and never changes underneath a middleware.
	Snapshot  *store.Snapshot
	Generator Generator

	// Intent is the ID of the middleware that answered, set on
	// before_user_reply.
	Intent  string
	NoCache bool

	Context map[string]any // channel, request id, etc.
}

type Middleware interface {
	ID() string
	Priority() int
	OnEvent(ctx context.Context, e *Event) (Decision, error)
}

// ConditionalMiddleware can opt out of an event before OnEvent runs.
type ConditionalMiddleware interface {
	Middleware
	ShouldLoad(ctx context.Context, e *Event) bool
}

// Purger is implemented by middlewares holding state derived from a catalog
// generation. Purge runs after every catalog reload.
type Purger interface {
	Purge(ctx context.Context) error
}

// Reply is the decision of a middleware that answers the query itself.
func Reply(text, reason string) (Decision, error) {
	return Decision{Cancel: true, ReplaceText: &text, Reason: reason}, nil
}

// Pass lets the event continue down the chain.
func Pass() (Decision, error) {
	return Decision{}, nil
}

// IsQuery reports whether e is a customer query with text to classify.
func IsQuery(e *Event) bool {
	return e != nil && e.Name == EventBeforeLLMRequest && e.Query != ""
}
