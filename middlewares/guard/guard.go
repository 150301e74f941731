// Package guard holds the checks that run before any intent is considered.
package guard

import (
	"context"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/lang"
	mw "github.com/MJBeltran13/ai-chatbot-shop/internal/middleware"
)

func init() {
	mw.Register(Unavailable{})
	mw.Register(Profanity{})
}

const (
	UnavailableEN = "Sorry, the PomWorkz catalog is not available right now. Please try again later or contact the shop directly."
	UnavailableTL = "Pasensya na, hindi pa available ang katalogo ng PomWorkz ngayon. Subukan ulit mamaya o makipag-ugnayan sa shop."

	RespectfulEN = "Please use respectful language. I'm happy to help with PomWorkz auto parts and services."
	RespectfulTL = "Pakiusap, gumamit po tayo ng magalang na pananalita. Handa akong tumulong tungkol sa piyesa at serbisyo ng PomWorkz."
)

// Unavailable answers every query while no catalog is loaded.
type Unavailable struct{}

func (Unavailable) ID() string    { return "unavailable" }
func (Unavailable) Priority() int { return 300 }

func (Unavailable) OnEvent(_ context.Context, e *mw.Event) (mw.Decision, error) {
	if e == nil || e.Name != mw.EventBeforeLLMRequest {
		return mw.Pass()
	}
	if e.Snapshot.Available() {
		return mw.Pass()
	}
	dec, err := mw.Reply(lang.Pick(e.Tagalog, UnavailableEN, UnavailableTL), "catalog unavailable")
	dec.NoCache = true
	return dec, err
}

// Profanity short-circuits abusive messages.
type Profanity struct{}

func (Profanity) ID() string    { return "profanity" }
func (Profanity) Priority() int { return 290 }

func (Profanity) OnEvent(_ context.Context, e *mw.Event) (mw.Decision, error) {
	if !mw.IsQuery(e) {
		return mw.Pass()
	}
	if kw := lang.Profanity.Keyword(e.Query); kw != "" {
		return mw.Reply(lang.Pick(e.Tagalog, RespectfulEN, RespectfulTL), "profanity")
	}
	return mw.Pass()
}
