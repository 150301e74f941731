// Package contactinfo answers "where are you" and "how do I reach you"
// questions from the contact block of the knowledge text.
package contactinfo

import (
	"context"
	"strings"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/lang"
	mw "github.com/MJBeltran13/ai-chatbot-shop/internal/middleware"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/store"
)

func init() {
	mw.Register(Location{})
	mw.Register(Contact{})
}

const (
	NotFoundEN = "Sorry, I couldn't find the shop's contact details in the catalog. Please check the catalog document or visit PomWorkz directly."
	NotFoundTL = "Pasensya na, hindi ko makita ang contact details ng shop sa katalogo. Pakitingnan ang katalogo o bumisita sa PomWorkz."
)

// Location answers location questions, address first.
type Location struct{}

func (Location) ID() string    { return "location" }
func (Location) Priority() int { return 200 }

func (Location) OnEvent(_ context.Context, e *mw.Event) (mw.Decision, error) {
	if !mw.IsQuery(e) || !lang.Location.Match(e.Query) {
		return mw.Pass()
	}
	info, ok := lookup(e.Snapshot)
	if !ok {
		return mw.Reply(lang.Pick(e.Tagalog, NotFoundEN, NotFoundTL), "location: no contact block")
	}
	return mw.Reply(formatLocation(info, e.Tagalog), "location")
}

// Contact answers phone, email and opening hours questions.
type Contact struct{}

func (Contact) ID() string    { return "contact" }
func (Contact) Priority() int { return 190 }

func (Contact) OnEvent(_ context.Context, e *mw.Event) (mw.Decision, error) {
	if !mw.IsQuery(e) || !lang.Contact.Match(e.Query) {
		return mw.Pass()
	}
	info, ok := lookup(e.Snapshot)
	if !ok {
		return mw.Reply(lang.Pick(e.Tagalog, NotFoundEN, NotFoundTL), "contact: no contact block")
	}
	return mw.Reply(formatContact(info, e.Tagalog), "contact")
}

func lookup(snap *store.Snapshot) (Info, bool) {
	if snap == nil {
		return Info{}, false
	}
	info := Parse(snap.Knowledge)
	return info, !info.Empty()
}

type field struct{ label, value string }

func formatLocation(i Info, tagalog bool) string {
	var b strings.Builder
	if tagalog {
		b.WriteString("📍 Lokasyon ng PomWorkz Auto Parts\n\n")
	} else {
		b.WriteString("📍 PomWorkz Auto Parts Location\n\n")
	}
	writeFields(&b, []field{
		{lang.Pick(tagalog, "Address", "Address"), i.Location},
		{lang.Pick(tagalog, "Hours", "Oras"), i.Hours},
		{lang.Pick(tagalog, "Phone", "Telepono"), i.Phone},
		{"Email", i.Email},
	})
	b.WriteString("\n\n")
	b.WriteString(lang.Pick(tagalog, "See you at the shop!", "Kita-kits sa shop!"))
	return b.String()
}

func formatContact(i Info, tagalog bool) string {
	var b strings.Builder
	b.WriteString(lang.Pick(tagalog, "PomWorkz Contact Information\n\n", "Contact Information ng PomWorkz\n\n"))
	writeFields(&b, []field{
		{lang.Pick(tagalog, "Phone", "Telepono"), i.Phone},
		{"Email", i.Email},
		{lang.Pick(tagalog, "Hours", "Oras"), i.Hours},
		{lang.Pick(tagalog, "Address", "Address"), i.Location},
	})
	return b.String()
}

func writeFields(b *strings.Builder, fields []field) {
	first := true
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if !first {
			b.WriteString("\n")
		}
		first = false
		b.WriteString(f.label + ": " + f.value)
	}
}
