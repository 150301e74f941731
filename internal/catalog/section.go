package catalog

import (
	"strings"
)

const notFoundSuffix = "information not found in the catalog."

// SectionSpec describes how to cut one free-text block out of a document.
type SectionSpec struct {
	// Name is used in the not-found sentinel.
	Name string
	// Header is written above the collected lines.
	Header string
	Start  []string
	Stop   []string
	// LinePrefix, when set, keeps only lines starting with it.
	LinePrefix string
	// StopAtBlank ends the section at the first blank line after content.
	StopAtBlank bool
	// Skip drops lines containing any of these words.
	Skip []string
}

var (
	WarrantySpec = SectionSpec{
		Name:        "Warranty",
		Header:      "WARRANTY INFORMATION:",
		Start:       []string{"warranty"},
		Stop:        []string{"faq", "frequently asked", "contact", "location", "services", "products", "product catalog", "booking", "ordering", "business hours"},
		LinePrefix:  "-",
		StopAtBlank: true,
	}
	FAQSpec = SectionSpec{
		Name:   "FAQ",
		Header: "FREQUENTLY ASKED QUESTIONS:",
		Start:  []string{"faq", "frequently asked questions"},
		Stop:   []string{"warranty", "contact", "location", "services", "products", "product catalog", "booking", "ordering"},
	}
	ContactSpec = SectionSpec{
		Name:   "Contact",
		Header: "CONTACT INFORMATION:",
		Start:  []string{"contact", "store information", "shop information"},
		Stop:   []string{"warranty", "faq", "frequently asked", "services", "products", "product catalog", "booking", "ordering"},
		Skip:   []string{"engine", "cc", "rpm", "torque", "horsepower", "hp"},
	}
)

// NotFound returns the sentinel written when a section has no content.
func NotFound(name string) string {
	return name + " " + notFoundSuffix
}

// Found reports whether an extracted section holds real content.
func Found(section string) bool {
	s := strings.TrimSpace(section)
	return s != "" && !strings.HasSuffix(s, notFoundSuffix)
}

// ExtractSection collects the lines between a start marker and the next stop
// marker or section delimiter.
func ExtractSection(text string, spec SectionSpec) string {
	var (
		kept    []string
		seen    = make(map[string]struct{})
		in      bool
		content bool
	)
	keep := func(line string) {
		key := strings.ToLower(line)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		kept = append(kept, line)
		content = true
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		if in {
			switch {
			case line == "" && spec.StopAtBlank && content:
				in = false
			case line == "":
			case strings.HasPrefix(line, "==="), isHeading(line, spec.Stop):
				in = false
			case hasAnyWord(line, spec.Skip):
			case spec.LinePrefix != "" && !strings.HasPrefix(line, spec.LinePrefix):
			default:
				keep(line)
			}
			if in {
				continue
			}
		}

		if rest, ok := startsSection(line, spec.Start); ok {
			in = true
			content = false
			if rest != "" {
				keep(line)
			}
		}
	}

	if len(kept) == 0 {
		return NotFound(spec.Name)
	}
	return spec.Header + "\n" + strings.Join(kept, "\n")
}

func ExtractWarranty(text string) string { return ExtractSection(text, WarrantySpec) }
func ExtractFAQ(text string) string      { return ExtractSection(text, FAQSpec) }
func ExtractContact(text string) string  { return ExtractSection(text, ContactSpec) }

// startsSection reports whether line opens a section and returns the content
// that follows a "Marker:" label on the same line.
func startsSection(line string, markers []string) (string, bool) {
	cleaned := strings.Trim(line, "=#* \t")
	for _, m := range markers {
		if len(cleaned) < len(m) || !strings.EqualFold(cleaned[:len(m)], m) {
			continue
		}
		rest := strings.TrimSpace(cleaned[len(m):])
		if i := strings.Index(rest, ":"); i >= 0 {
			return strings.TrimSpace(rest[i+1:]), true
		}
		if isHeading(line, markers) {
			return "", true
		}
	}
	return "", false
}

// isHeading reports whether line is a bare section title starting with one of
// markers. Labelled lines such as "Location: Lipa City" are not headings.
func isHeading(line string, markers []string) bool {
	if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") {
		return false
	}
	cleaned := strings.ToLower(strings.TrimRight(strings.Trim(line, "=#* \t"), ":"))
	if cleaned == "" || strings.Contains(cleaned, ":") {
		return false
	}
	for _, m := range markers {
		if strings.HasPrefix(cleaned, m) && len(cleaned) <= len(m)+25 {
			return true
		}
	}
	return false
}

func hasAnyWord(line string, words []string) bool {
	if len(words) == 0 {
		return false
	}
	for _, tok := range strings.Fields(strings.ToLower(line)) {
		tok = strings.Trim(tok, ".,;:!?()[]\"'")
		for _, w := range words {
			if tok == w {
				return true
			}
		}
	}
	return false
}
