// Package pricing answers questions about what the shop sells and for how
// much, straight from the extracted catalog.
package pricing

import (
	"context"
	"fmt"
	"strings"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/catalog"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/lang"
	mw "github.com/MJBeltran13/ai-chatbot-shop/internal/middleware"
)

func init() {
	mw.Register(ServiceList{})
	mw.Register(Price{})
	mw.Register(Availability{})
	mw.Register(CatalogList{})
}

const (
	NoServicesEN = "Sorry, no services were found in our catalog."
	NoServicesTL = "Pasensya na, walang nakitang serbisyo sa aming katalogo."

	NotFoundEN = "Sorry, I couldn't find that item in our catalog. Try asking for our product list or contact the shop for special orders."
	NotFoundTL = "Pasensya na, hindi ko makita ang item na iyan sa aming katalogo. Subukang itanong ang listahan ng produkto o makipag-ugnayan sa shop."
)

// ServiceList enumerates every service with its quoted price.
type ServiceList struct{}

func (ServiceList) ID() string    { return "service-list" }
func (ServiceList) Priority() int { return 180 }

func (ServiceList) OnEvent(_ context.Context, e *mw.Event) (mw.Decision, error) {
	if !mw.IsQuery(e) || !lang.ServiceList.Match(e.Query) {
		return mw.Pass()
	}
	services := e.Snapshot.Services
	if services.Len() == 0 {
		return mw.Reply(lang.Pick(e.Tagalog, NoServicesEN, NoServicesTL), "service-list: empty")
	}

	var b strings.Builder
	b.WriteString(lang.Pick(e.Tagalog, "Here are the services we offer:\n", "Narito ang aming mga serbisyo:\n"))
	n := 0
	services.Each(func(name, price string) bool {
		n++
		fmt.Fprintf(&b, "\n%d. %s – %s", n, catalog.Title(name), price)
		return true
	})
	return mw.Reply(b.String(), "service-list")
}

// Price looks a named item up: services by containment, then products by
// containment, then products by shared words.
type Price struct{}

func (Price) ID() string    { return "price" }
func (Price) Priority() int { return 170 }

func (Price) OnEvent(_ context.Context, e *mw.Event) (mw.Decision, error) {
	if !mw.IsQuery(e) || !lang.Price.Match(e.Query) {
		return mw.Pass()
	}
	snap := e.Snapshot

	if name, price, ok := containedService(snap.Services, e.Query); ok {
		return mw.Reply(servicePrice(name, price, e.Tagalog), "price: service")
	}
	if name, price, ok := containedProduct(snap.Products, e.Query); ok {
		return mw.Reply(productPrice(name, price, e.Tagalog), "price: product")
	}
	if name, price, ok := overlappingProduct(snap.Products, e.Query); ok {
		return mw.Reply(productPrice(name, price, e.Tagalog), "price: token overlap")
	}
	return mw.Reply(lang.Pick(e.Tagalog, NotFoundEN, NotFoundTL), "price: not found")
}

func containedService(s *catalog.Services, q string) (name, price string, ok bool) {
	s.Each(func(n, p string) bool {
		if strings.Contains(q, n) {
			name, price, ok = n, p, true
			return false
		}
		return true
	})
	return name, price, ok
}

func containedProduct(p *catalog.Products, q string) (name string, price int, ok bool) {
	p.Each(func(n string, v int) bool {
		if strings.Contains(q, n) {
			name, price, ok = n, v, true
			return false
		}
		return true
	})
	return name, price, ok
}

// overlappingProduct returns the first product, in catalog order, sharing at
// least one word with q.
func overlappingProduct(p *catalog.Products, q string) (name string, price int, ok bool) {
	words := lang.TokenSet(q)
	p.Each(func(n string, v int) bool {
		for _, tok := range lang.Tokens(n) {
			if _, hit := words[tok]; hit {
				name, price, ok = n, v, true
				return false
			}
		}
		return true
	})
	return name, price, ok
}

func productPrice(name string, price int, tagalog bool) string {
	if tagalog {
		return fmt.Sprintf("Ang presyo ng %s ay %s.", catalog.Title(name), catalog.Peso(price))
	}
	return fmt.Sprintf("The price of %s is %s.", catalog.Title(name), catalog.Peso(price))
}

func servicePrice(name, price string, tagalog bool) string {
	title := catalog.Title(name)
	if amount, ok := strings.CutPrefix(price, laborLabel); ok {
		amount = strings.TrimSpace(amount)
		if tagalog {
			return fmt.Sprintf("Ang singil sa labor para sa %s ay %s.", title, amount)
		}
		return fmt.Sprintf("Labor for our %s service costs %s.", title, amount)
	}
	if tagalog {
		return fmt.Sprintf("Ang singil para sa %s ay %s.", title, price)
	}
	return fmt.Sprintf("Our %s service costs %s.", title, price)
}

// laborLabel is the prefix catalog normalisation keeps on labor-only prices.
const laborLabel = "Labor:"

// CatalogList prints the whole catalog.
type CatalogList struct{}

func (CatalogList) ID() string    { return "catalog-list" }
func (CatalogList) Priority() int { return 100 }

func (CatalogList) OnEvent(_ context.Context, e *mw.Event) (mw.Decision, error) {
	if !mw.IsQuery(e) || !lang.CatalogList.Match(e.Query) {
		return mw.Pass()
	}
	snap := e.Snapshot
	none := lang.Pick(e.Tagalog, "(none listed)", "(wala pang nakalista)")

	var b strings.Builder
	b.WriteString(lang.Pick(e.Tagalog, "Here is our complete catalog:\n\n", "Narito ang buong katalogo namin:\n\n"))
	b.WriteString(lang.Pick(e.Tagalog, "PRODUCTS:\n", "MGA PRODUKTO:\n"))
	if snap.Products.Len() == 0 {
		b.WriteString(none)
	} else {
		b.WriteString(catalog.FormatProducts(snap.Products, "• "))
	}
	b.WriteString(lang.Pick(e.Tagalog, "\n\nSERVICES:\n", "\n\nMGA SERBISYO:\n"))
	if snap.Services.Len() == 0 {
		b.WriteString(none)
	} else {
		b.WriteString(catalog.FormatServices(snap.Services, "• "))
	}
	return mw.Reply(b.String(), "catalog-list")
}
