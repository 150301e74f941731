package greeting

import (
	"context"
	"fmt"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/catalog"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/lang"
	mw "github.com/MJBeltran13/ai-chatbot-shop/internal/middleware"
)

func init() {
	mw.Register(Greeting{})
	mw.Register(Creator{})
}

// Greeting intercepts salutations and responds immediately without hitting
// the LLM. The reply carries the live catalog counts.
type Greeting struct{}

func (Greeting) ID() string    { return "greeting" }
func (Greeting) Priority() int { return 130 }

// ShouldLoad lets a front-end switch greetings off per request by setting
// Context["greeting"] to false.
func (Greeting) ShouldLoad(_ context.Context, e *mw.Event) bool {
	if e == nil || e.Context == nil {
		return true
	}
	if v, ok := e.Context["greeting"].(bool); ok {
		return v
	}
	return true
}

func (Greeting) OnEvent(_ context.Context, e *mw.Event) (mw.Decision, error) {
	if !mw.IsQuery(e) || !lang.Greeting.Match(e.Query) {
		return mw.Pass()
	}
	products, services := e.Snapshot.Products.Len(), e.Snapshot.Services.Len()
	return mw.Reply(Text(e.Tagalog, products, services), "greeting")
}

// Text renders the greeting for the given catalog counts.
func Text(tagalog bool, products, services int) string {
	if tagalog {
		return fmt.Sprintf("Kumusta! Ako si %s, ang assistant ng %s Auto Parts. Mayroon kaming %d produkto at %d serbisyo. Ano ang maitutulong ko sa iyo?",
			catalog.BotName, catalog.ShopName, products, services)
	}
	return fmt.Sprintf("Hello! I'm %s, the assistant of %s Auto Parts. We currently have %d products and %d services. How can I help you today?",
		catalog.BotName, catalog.ShopName, products, services)
}

const (
	CreatorEN = "I'm " + catalog.BotName + ", created by " + catalog.Creator + " for " + catalog.ShopName + " Auto Parts."
	CreatorTL = "Ako si " + catalog.BotName + ", ginawa ni " + catalog.Creator + " para sa " + catalog.ShopName + " Auto Parts."
)

// Creator answers "who made you".
type Creator struct{}

func (Creator) ID() string    { return "creator" }
func (Creator) Priority() int { return 120 }

func (Creator) OnEvent(_ context.Context, e *mw.Event) (mw.Decision, error) {
	if !mw.IsQuery(e) || !lang.Creator.Match(e.Query) {
		return mw.Pass()
	}
	return mw.Reply(lang.Pick(e.Tagalog, CreatorEN, CreatorTL), "creator")
}
