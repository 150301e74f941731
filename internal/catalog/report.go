package catalog

// Report is the extractor output in a form meant for catalog authors.
type Report struct {
	Products []Entry[int]    `json:"products" yaml:"products"`
	Services []Entry[string] `json:"services" yaml:"services"`
	Warranty string          `json:"warranty" yaml:"warranty"`
	FAQ      string          `json:"faq" yaml:"faq"`
	Contact  string          `json:"contact" yaml:"contact"`
	Counts   Counts          `json:"counts" yaml:"counts"`
}

type Counts struct {
	Products int `json:"products" yaml:"products"`
	Services int `json:"services" yaml:"services"`
}

func (c *Catalog) Report() Report {
	if c == nil {
		return Report{}
	}
	return Report{
		Products: c.Products.Entries(),
		Services: c.Services.Entries(),
		Warranty: c.Warranty,
		FAQ:      c.FAQ,
		Contact:  c.Contact,
		Counts:   Counts{Products: c.Products.Len(), Services: c.Services.Len()},
	}
}
