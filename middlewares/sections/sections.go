// Package sections answers warranty and FAQ questions from the free-text
// blocks cut out of the catalog document.
package sections

import (
	"context"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/catalog"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/lang"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/llm"
	mw "github.com/MJBeltran13/ai-chatbot-shop/internal/middleware"
)

func init() {
	mw.Register(Warranty{})
	mw.Register(FAQ{})
}

const (
	// WarrantyTL is served to Tagalog warranty questions in place of the
	// extracted section.
	WarrantyTL = `Impormasyon sa Warranty ng PomWorkz:
- Lahat ng piyesa na binili sa amin ay may warranty laban sa factory defect.
- Ang labor sa mga serbisyo ay may warranty din basta hindi nagalaw ng ibang mekaniko.
- Dalhin lang po ang resibo at ang piyesa sa shop para ma-check.
Para sa eksaktong tagal ng warranty ng bawat item, makipag-ugnayan po sa shop.`

	ApologyEN = "Sorry, I don't have warranty details right now. Please contact PomWorkz directly for warranty concerns."
	ApologyTL = "Pasensya na, wala akong detalye tungkol sa warranty ngayon. Makipag-ugnayan po sa PomWorkz para sa warranty."

	NoFAQEN = "Sorry, there is no FAQ section in our catalog yet. Feel free to ask me about our products, services or prices."
	NoFAQTL = "Pasensya na, wala pang FAQ sa aming katalogo. Magtanong lang po tungkol sa aming mga produkto, serbisyo o presyo."
)

// Warranty returns the warranty block. When the catalog has none it asks the
// model, and apologizes if that fails too.
type Warranty struct{}

func (Warranty) ID() string    { return "warranty" }
func (Warranty) Priority() int { return 150 }

func (Warranty) OnEvent(ctx context.Context, e *mw.Event) (mw.Decision, error) {
	if !mw.IsQuery(e) || !lang.Warranty.Match(e.Query) {
		return mw.Pass()
	}
	snap := e.Snapshot
	if catalog.Found(snap.Warranty) {
		if e.Tagalog {
			return mw.Reply(WarrantyTL, "warranty: tagalog summary")
		}
		return mw.Reply(snap.Warranty, "warranty: section")
	}

	if e.Generator != nil {
		if answer := e.Generator.Generate(ctx, llm.BuildPrompt(snap.Knowledge, e.UserText)); answer != "" {
			return mw.Reply(answer, "warranty: model")
		}
	}
	return mw.Reply(lang.Pick(e.Tagalog, ApologyEN, ApologyTL), "warranty: unavailable")
}

// FAQ returns the FAQ block as extracted.
type FAQ struct{}

func (FAQ) ID() string    { return "faq" }
func (FAQ) Priority() int { return 110 }

func (FAQ) OnEvent(_ context.Context, e *mw.Event) (mw.Decision, error) {
	if !mw.IsQuery(e) || !lang.FAQ.Match(e.Query) {
		return mw.Pass()
	}
	if faq := e.Snapshot.FAQ; catalog.Found(faq) {
		return mw.Reply(faq, "faq: section")
	}
	return mw.Reply(lang.Pick(e.Tagalog, NoFAQEN, NoFAQTL), "faq: none")
}
