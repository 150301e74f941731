package pricing

import (
	"context"
	"fmt"
	"strings"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/catalog"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/lang"
	mw "github.com/MJBeltran13/ai-chatbot-shop/internal/middleware"
)

const minKeywordLen = 3

// Availability handles Tagalog "meron ba kayong ...?" questions.
type Availability struct{}

func (Availability) ID() string    { return "availability" }
func (Availability) Priority() int { return 160 }

func (Availability) ShouldLoad(_ context.Context, e *mw.Event) bool {
	return e != nil && e.Tagalog
}

func (Availability) OnEvent(_ context.Context, e *mw.Event) (mw.Decision, error) {
	if !mw.IsQuery(e) || !lang.Availability.Match(e.Query) {
		return mw.Pass()
	}
	keywords := itemKeywords(e.Query)
	if len(keywords) == 0 {
		return mw.Pass()
	}
	snap := e.Snapshot

	var products []string
	snap.Products.Each(func(name string, price int) bool {
		if matchesAny(name, keywords) {
			products = append(products, fmt.Sprintf("• %s: %s", catalog.Title(name), catalog.Peso(price)))
		}
		return true
	})
	if len(products) > 0 {
		return mw.Reply("Opo, meron kami niyan:\n"+strings.Join(products, "\n"), "availability: product")
	}

	var services []string
	snap.Services.Each(func(name, price string) bool {
		if matchesAny(name, keywords) {
			services = append(services, fmt.Sprintf("• %s: %s", catalog.Title(name), price))
		}
		return true
	})
	if len(services) > 0 {
		return mw.Reply("Hindi po namin ito direktang binebenta, pero may serbisyo kami para diyan:\n"+strings.Join(services, "\n"), "availability: service")
	}

	return mw.Reply(fmt.Sprintf("Pasensya na po, wala kaming %s sa ngayon. Makipag-ugnayan po sa shop para sa special order.", strings.Join(keywords, " ")), "availability: none")
}

// itemKeywords drops availability filler words, leaving the item being asked
// about.
func itemKeywords(q string) []string {
	var out []string
	for _, tok := range lang.Tokens(q) {
		if _, stop := lang.AvailabilityStopWords[tok]; stop {
			continue
		}
		if len(tok) < minKeywordLen {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// matchesAny matches in either direction so "oil" finds "gear oil" and
// "camshafts" finds "camshaft".
func matchesAny(name string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(name, kw) || strings.Contains(kw, name) {
			return true
		}
	}
	phrase := strings.Join(keywords, " ")
	return strings.Contains(phrase, name)
}
