// Package lang holds the English/Tagalog keyword tables the intent
// middlewares match against, plus Tagalog detection.
package lang

import (
	"strings"
	"unicode"
)

// Table is the trigger vocabulary of one intent, split by language.
// Multi-word keywords match as phrases; every keyword must sit on word
// boundaries, so "hi" does not fire on "this".
type Table struct {
	EN []string
	TL []string
}

// Match reports whether q contains any keyword of either language.
func (t Table) Match(q string) bool {
	return t.Keyword(q) != ""
}

// Keyword returns the first keyword found in q, English first.
func (t Table) Keyword(q string) string {
	q = strings.ToLower(q)
	for _, set := range [][]string{t.EN, t.TL} {
		for _, kw := range set {
			if ContainsWord(q, kw) {
				return kw
			}
		}
	}
	return ""
}

// ContainsWord reports whether phrase occurs in s delimited by non-word
// characters or the ends of s. Both arguments are expected in lower case.
func ContainsWord(s, phrase string) bool {
	if phrase == "" {
		return false
	}
	for off := 0; off <= len(s)-len(phrase); {
		i := strings.Index(s[off:], phrase)
		if i < 0 {
			return false
		}
		start := off + i
		end := start + len(phrase)
		if boundaryBefore(s, start) && boundaryAfter(s, end) {
			return true
		}
		off = start + 1
	}
	return false
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r := lastRune(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r := []rune(s[i:])[0]
	return !isWordRune(r)
}

func lastRune(s string) rune {
	r := []rune(s)
	return r[len(r)-1]
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Tokens splits s into lower-case alphanumeric words.
func Tokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !isWordRune(r)
	})
}

// TokenSet is Tokens as a set.
func TokenSet(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, t := range Tokens(s) {
		out[t] = struct{}{}
	}
	return out
}

// "may" is left out: it is also English ("may I know..."), and the Tagalog
// questions that use it nearly always carry "ba", "po" or "kayo" as well.
var tagalogIndicators = map[string]struct{}{
	"ang": {}, "ng": {}, "mga": {}, "po": {}, "opo": {}, "ba": {}, "kayo": {},
	"kayong": {}, "meron": {}, "mayroon": {}, "magkano": {}, "presyo": {},
	"halaga": {}, "bayad": {}, "saan": {}, "nasaan": {}, "ano": {}, "anong": {},
	"paano": {}, "pwede": {}, "puwede": {}, "gusto": {}, "kailangan": {},
	"ninyo": {}, "niyo": {}, "nyo": {}, "hindi": {}, "wala": {}, "yung": {},
	"salamat": {}, "kumusta": {}, "kamusta": {}, "musta": {}, "magandang": {},
	"umaga": {}, "hapon": {}, "gabi": {}, "sino": {}, "gumawa": {}, "lugar": {},
	"oras": {}, "bukas": {}, "sarado": {}, "serbisyo": {}, "produkto": {},
	"piyesa": {}, "ilan": {}, "lang": {}, "din": {}, "rin": {}, "naman": {},
	"kami": {}, "namin": {}, "natin": {}, "ako": {}, "ko": {}, "sa": {},
}

// IsTagalog reports whether q contains any Tagalog indicator word.
func IsTagalog(q string) bool {
	for _, tok := range Tokens(q) {
		if _, ok := tagalogIndicators[tok]; ok {
			return true
		}
	}
	return false
}

// Pick returns tl for Tagalog queries and en otherwise.
func Pick(tagalog bool, en, tl string) string {
	if tagalog {
		return tl
	}
	return en
}
