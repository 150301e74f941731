package contactinfo

import (
	"regexp"
	"strings"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/lang"
)

// Info is the shop's contact block pulled out of the knowledge text.
type Info struct {
	Location string
	Phone    string
	Email    string
	Hours    string
}

func (i Info) Empty() bool {
	return i.Location == "" && i.Phone == "" && i.Email == "" && i.Hours == ""
}

var labels = []struct {
	names []string
	field func(*Info) *string
}{
	{[]string{"location", "address", "shop address", "store address"}, func(i *Info) *string { return &i.Location }},
	{[]string{"phone", "mobile", "contact number", "cellphone", "tel"}, func(i *Info) *string { return &i.Phone }},
	{[]string{"email", "e-mail"}, func(i *Info) *string { return &i.Email }},
	{[]string{"hours", "business hours", "store hours", "shop hours", "open"}, func(i *Info) *string { return &i.Hours }},
}

var (
	localities = []string{"lipa", "batangas city", "tanauan", "sto. tomas", "santo tomas", "rosario", "ibaan", "san jose", "malvar", "cuenca", "padre garcia", "balete", "mataasnakahoy"}
	provinces  = []string{"batangas", "laguna", "quezon", "cavite"}
	weekdays   = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday", "mon", "tue", "wed", "thu", "fri", "sat", "sun", "lunes", "sabado", "linggo"}

	emailLike  = regexp.MustCompile(`[\w.+-]+@[\w-]+(?:\.[\w-]+)*\.(?:com|ph|net|org|edu)\b`)
	mobileLike = regexp.MustCompile(`(?:^|[^\d])(09\d{9})(?:[^\d]|$)`)
)

// Parse scans text for labelled contact lines, then fills the gaps from
// unlabelled lines that look like an address, email, schedule or phone.
// The first value found for each field wins.
func Parse(text string) Info {
	var info Info
	lines := strings.Split(text, "\n")

	for _, raw := range lines {
		line := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(raw), "-•*"))
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		label = strings.ToLower(strings.TrimSpace(label))
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		for _, l := range labels {
			if !hasLabel(label, l.names) {
				continue
			}
			if f := l.field(&info); *f == "" {
				*f = value
			}
			break
		}
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		lower := strings.ToLower(line)
		if line == "" {
			continue
		}
		if info.Location == "" && containsAny(lower, localities) && containsAny(lower, provinces) {
			info.Location = afterLabel(line)
		}
		if info.Email == "" {
			if m := emailLike.FindString(line); m != "" {
				info.Email = m
			}
		}
		if info.Hours == "" && countWeekdays(lower) >= 2 {
			info.Hours = afterLabel(line)
		}
		if info.Phone == "" {
			if m := mobileLike.FindStringSubmatch(line); m != nil {
				info.Phone = m[1]
			}
		}
	}
	return info
}

func hasLabel(label string, names []string) bool {
	for _, n := range names {
		if label == n {
			return true
		}
	}
	return false
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if lang.ContainsWord(s, w) {
			return true
		}
	}
	return false
}

func countWeekdays(s string) int {
	seen := 0
	for _, tok := range lang.Tokens(s) {
		for _, d := range weekdays {
			if tok == d {
				seen++
				break
			}
		}
	}
	return seen
}

var leadingLabel = regexp.MustCompile(`^[A-Za-z][A-Za-z ]{0,20}:\s*`)

func afterLabel(line string) string {
	return leadingLabel.ReplaceAllString(line, "")
}
