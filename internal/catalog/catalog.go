package catalog

import "strings"

// Catalog is everything extracted from one load of the source documents.
type Catalog struct {
	Products *Products
	Services *Services
	Warranty string
	FAQ      string
	Contact  string
	// Raw is the combined source text the extractors ran over.
	Raw string
	// Knowledge is the assembled grounding text for the language model.
	Knowledge string
}

// Build runs every extractor over doc plus the optional supplement and
// assembles the grounding text.
func Build(doc, supplement string) *Catalog {
	doc = strings.TrimSpace(doc)
	supplement = strings.TrimSpace(supplement)

	text := doc
	if supplement != "" {
		if text != "" {
			text += "\n\n"
		}
		text += supplement
	}

	c := &Catalog{
		Products: ExtractProducts(text),
		Services: ExtractServices(text),
		Warranty: ExtractWarranty(text),
		FAQ:      ExtractFAQ(text),
		Contact:  ExtractContact(text),
		Raw:      text,
	}
	c.Knowledge = Assemble(Input{
		Raw:      doc,
		Products: c.Products,
		Services: c.Services,
		Warranty: c.Warranty,
		FAQ:      c.FAQ,
		Contact:  c.Contact,
		Extra:    supplement,
	})
	return c
}

// Empty reports whether nothing usable was extracted.
func (c *Catalog) Empty() bool {
	return c == nil || (c.Products.Len() == 0 && c.Services.Len() == 0 && strings.TrimSpace(c.Raw) == "")
}
