package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	minPrice = 50
	maxPrice = 50000

	maxNameLen        = 50
	minProductNameLen = 3
	minServiceNameLen = 4
)

// currency matches the peso glyph, "PHP", or the bare "n" left behind when
// the glyph is lost in a legacy PDF encoding.
const currency = `(?:₱|PHP|n)`

// rangedPrice captures a number optionally followed by a second bound.
const rangedPrice = `([\d,]+(?:[ \t]*(?:-|–|—|to)[ \t]*` + currency + `?[ \t]*[\d,]+)?)`

// servicePrice keeps an optional "Labor:" label so labor quotes stay
// recognisable.
const servicePrice = `((?:labor:?[ \t]*)?` + currency + `[ \t]*[\d,]+(?:[ \t]*(?:-|–|—|to)[ \t]*` + currency + `?[ \t]*[\d,]+)?)`

// Tried in order; the first pattern to yield a given name wins.
var productPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^[ \t]*(?:[-•*][ \t]+)?(.+?)[ \t]*[-–—][ \t]*` + currency + `[ \t]*` + rangedPrice),
	regexp.MustCompile(`(?im)^[ \t]*(?:[-•*][ \t]+)?(.+?)[ \t]*:[ \t]*` + currency + `[ \t]*` + rangedPrice),
	regexp.MustCompile(`(?i)([a-z][a-z ().]{2,49}?)[ \t]*[-–—:][ \t]*(?:₱|PHP)[ \t]*` + rangedPrice),
}

var servicePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^[ \t]*(?:[-•*][ \t]+)?(.+?)[ \t]*[-–—:][ \t]*` + servicePrice),
	regexp.MustCompile(`(?i)([a-z][a-z ().&/]{3,49}?)[ \t]*[-–—:][ \t]*` + servicePrice),
}

var serviceIndicators = []string{
	"labor", "upgrade", "cleaning", "works", "refresh", "repair",
	"installation", "install", "service", "tune", "change oil", "overhaul",
}

var skipWords = map[string]struct{}{
	"monday": {}, "tuesday": {}, "wednesday": {}, "thursday": {}, "friday": {},
	"saturday": {}, "sunday": {}, "phone": {}, "email": {}, "warranty": {},
	"hours": {}, "location": {}, "contact": {}, "open": {}, "address": {},
	"faq": {}, "total": {}, "mobile": {}, "website": {},
}

var (
	productNameShape = regexp.MustCompile(`^[a-z][a-z ().]*$`)
	serviceNameShape = regexp.MustCompile(`^[a-z][a-z ().&/']*$`)
	spaceRun         = regexp.MustCompile(`\s+`)
	legacyPeso       = regexp.MustCompile(`(?i)(^|[^a-z])n[ \t]*(\d)`)
	phpPrefix        = regexp.MustCompile(`(?i)\bphp[ \t]*`)
	firstDigit       = regexp.MustCompile(`\d`)
	rangeMarker      = regexp.MustCompile(`(?i)[-–—]|\bto\b`)
)

// ExtractProducts finds "<name> <separator> <currency><digits>" entries whose
// names look like parts rather than services.
func ExtractProducts(text string) *Products {
	out := NewProducts()
	for _, re := range productPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := normalizeName(m[1])
			if !validName(name, minProductNameLen, productNameShape) {
				continue
			}
			if hasServiceIndicator(name) {
				continue
			}
			if rangeMarker.MatchString(m[2]) {
				continue
			}
			price, ok := parsePrice(m[2])
			if !ok || price < minPrice || price > maxPrice {
				continue
			}
			out.Add(name, price)
		}
	}
	return out
}

// ExtractServices finds service entries in two passes: a regex pass over the
// whole text, then a line scan inside the services section.
func ExtractServices(text string) *Services {
	out := NewServices()
	for _, re := range servicePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := normalizeName(m[1])
			if !validName(name, minServiceNameLen, serviceNameShape) {
				continue
			}
			price := m[2]
			lp := strings.ToLower(price)
			if !hasServiceIndicator(name) && !rangeMarker.MatchString(price) && !strings.Contains(lp, "labor") {
				continue
			}
			out.Add(name, normalizeServicePrice(price))
		}
	}
	scanServiceSection(text, out)
	return out
}

var (
	serviceLine     = regexp.MustCompile(`^(?:[-•*][ \t]*)?(.+?)[ \t]*(?:[:–—]|[ \t]-[ \t])[ \t]*(.*\d.*)$`)
	otherSectionHdr = []string{"product", "warranty", "faq", "frequently asked", "contact", "location", "business hours", "booking", "ordering"}
)

func scanServiceSection(text string, out *Services) {
	in := false
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		lower := strings.ToLower(line)
		if isServicesHeading(lower) {
			in = true
			continue
		}
		if !in {
			continue
		}
		if strings.HasPrefix(line, "===") || isHeading(line, otherSectionHdr) {
			in = false
			continue
		}
		m := serviceLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := normalizeName(m[1])
		if !validName(name, minServiceNameLen, serviceNameShape) {
			continue
		}
		if out.Has(name) {
			continue
		}
		out.Add(name, normalizeServicePrice(m[2]))
	}
}

func isServicesHeading(lower string) bool {
	if !strings.Contains(lower, "services") {
		return false
	}
	return strings.HasPrefix(lower, "=") || strings.HasSuffix(lower, ":") || isHeading(lower, []string{"services", "services offered", "our services"})
}

func normalizeName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "-•* \t")
	s = strings.ToLower(s)
	return spaceRun.ReplaceAllString(s, " ")
}

func validName(name string, minLen int, shape *regexp.Regexp) bool {
	if len(name) < minLen || len(name) > maxNameLen {
		return false
	}
	if !shape.MatchString(name) {
		return false
	}
	return !hasSkipWord(name)
}

func hasServiceIndicator(name string) bool {
	for _, ind := range serviceIndicators {
		if strings.Contains(name, ind) {
			return true
		}
	}
	return false
}

func hasSkipWord(name string) bool {
	for _, w := range strings.Fields(name) {
		w = strings.Trim(w, "().&/'")
		if _, ok := skipWords[w]; ok {
			return true
		}
	}
	return false
}

func parsePrice(s string) (int, bool) {
	s = strings.NewReplacer(",", "", " ", "", "\t", "").Replace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// normalizeServicePrice turns legacy "n" markers and "PHP" into the peso
// glyph and makes sure a currency marker is present.
func normalizeServicePrice(s string) string {
	s = strings.TrimSpace(s)
	s = legacyPeso.ReplaceAllString(s, "${1}₱${2}")
	s = phpPrefix.ReplaceAllString(s, "₱")
	if !strings.Contains(s, "₱") {
		if loc := firstDigit.FindStringIndex(s); loc != nil {
			s = s[:loc[0]] + "₱" + s[loc[0]:]
		}
	}
	s = strings.Replace(s, "labor:", "Labor:", 1)
	return spaceRun.ReplaceAllString(s, " ")
}
