package catalog

import (
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	ShopName = "PomWorkz"
	BotName  = "PomBot"
	Creator  = "Marc James Beltran"
)

const preamble = `You are PomBot, the auto parts assistant of PomWorkz Auto Parts.
You ONLY answer questions about the products, services, prices, warranty and shop details listed below.
You were created by Marc James Beltran.
You can respond in English or Tagalog. Reply in the language the customer used.

DO NOT answer any question that is NOT related to the information below.
If asked anything else, reply: "I only answer questions about PomWorkz auto parts and services."

CATALOG DOCUMENT:`

const footer = `STRICT RESPONSE RULES:
- DO NOT answer unrelated questions.
- Always quote prices exactly as listed above, in Philippine pesos (₱).
- Never invent products, services, prices or promos that are not listed above.
- If an item is not listed, say it is not available and suggest contacting the shop.
- Keep answers short and friendly.`

// Input bundles everything the assembler formats.
type Input struct {
	Raw      string
	Products *Products
	Services *Services
	Warranty string
	FAQ      string
	Contact  string
	// Extra is optional supplementary text appended after the contact block.
	Extra string
}

// Assemble builds the grounding text handed to the language model.
func Assemble(in Input) string {
	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString("\n")
	b.WriteString(strings.TrimSpace(in.Raw))
	b.WriteString("\n\nPRODUCTS AND PRICES:\n")
	b.WriteString(FormatProducts(in.Products, "- "))
	b.WriteString("\n\nSERVICES OFFERED:\n")
	b.WriteString(FormatServices(in.Services, "- "))
	b.WriteString("\n\n")
	b.WriteString(orNotFound(in.Warranty, WarrantySpec.Name))
	b.WriteString("\n\n")
	b.WriteString(orNotFound(in.FAQ, FAQSpec.Name))
	b.WriteString("\n\n")
	b.WriteString(orNotFound(in.Contact, ContactSpec.Name))
	if extra := strings.TrimSpace(in.Extra); extra != "" {
		b.WriteString("\n\nADDITIONAL INFORMATION:\n")
		b.WriteString(extra)
	}
	b.WriteString("\n\n")
	b.WriteString(footer)
	return b.String()
}

func orNotFound(section, name string) string {
	if strings.TrimSpace(section) == "" {
		return NotFound(name)
	}
	return section
}

// FormatProducts renders one "Name: ₱1,234" line per product.
func FormatProducts(p *Products, bullet string) string {
	lines := make([]string, 0, p.Len())
	p.Each(func(name string, price int) bool {
		lines = append(lines, bullet+Title(name)+": "+Peso(price))
		return true
	})
	return strings.Join(lines, "\n")
}

// FormatServices renders one "Name: priceText" line per service.
func FormatServices(s *Services, bullet string) string {
	lines := make([]string, 0, s.Len())
	s.Each(func(name, price string) bool {
		lines = append(lines, bullet+Title(name)+": "+price)
		return true
	})
	return strings.Join(lines, "\n")
}

// Peso formats an amount with thousands grouping, e.g. ₱1,700.
func Peso(amount int) string {
	return "₱" + humanize.Comma(int64(amount))
}

// acronyms are written upper-case by Title; extraction lower-cases names, so
// "CVT Cleaning" arrives here as "cvt cleaning".
var acronyms = map[string]struct{}{
	"cvt": {}, "ecu": {}, "abs": {}, "cdi": {}, "oem": {}, "led": {}, "hid": {}, "ac": {}, "dc": {},
}

// Title capitalises each word of a catalog name.
func Title(name string) string {
	words := strings.Fields(cases.Title(language.English).String(name))
	for i, w := range words {
		if _, ok := acronyms[strings.ToLower(strings.Trim(w, "()"))]; ok {
			words[i] = strings.ToUpper(w)
		}
	}
	return strings.Join(words, " ")
}
