// Package fallback is the last stop of the chain: it hands the question and
// the grounding text to the language model.
package fallback

import (
	"context"
	"fmt"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/catalog"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/llm"
	mw "github.com/MJBeltran13/ai-chatbot-shop/internal/middleware"
)

func init() {
	mw.Register(LLM{})
}

// LLM answers anything no rule claimed. When the model gives nothing back it
// serves the help menu, which is never cached so the next identical question
// gets another chance at the model.
type LLM struct{}

func (LLM) ID() string    { return "llm-fallback" }
func (LLM) Priority() int { return 0 }

func (LLM) OnEvent(ctx context.Context, e *mw.Event) (mw.Decision, error) {
	if !mw.IsQuery(e) {
		return mw.Pass()
	}
	if e.Generator != nil {
		if answer := e.Generator.Generate(ctx, llm.BuildPrompt(e.Snapshot.Knowledge, e.UserText)); answer != "" {
			return mw.Reply(answer, "llm")
		}
	}
	dec, err := mw.Reply(HelpMenu(e.Tagalog, e.Snapshot.Products.Len(), e.Snapshot.Services.Len()), "help menu")
	dec.NoCache = true
	return dec, err
}

// HelpMenu lists what the rule intents can answer.
func HelpMenu(tagalog bool, products, services int) string {
	if tagalog {
		return fmt.Sprintf(`Pasensya na, hindi ko masagot iyan ngayon. Narito ang maitutulong ko:
• Presyo ng piyesa (hal. "magkano ang camshaft")
• Listahan ng serbisyo (%d serbisyo)
• Listahan ng produkto (%d produkto)
• Warranty, lokasyon at oras ng %s
• Paano magpa-book o umorder`, services, products, catalog.ShopName)
	}
	return fmt.Sprintf(`Sorry, I can't answer that right now. Here's how I can help:
• Part prices (e.g. "how much is camshaft")
• Our service list (%d services)
• Our product catalog (%d products)
• %s warranty, location and hours
• How to book a service or order parts`, services, products, catalog.ShopName)
}
