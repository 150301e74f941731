package guard

import (
	"context"
	"testing"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/catalog"
	mw "github.com/MJBeltran13/ai-chatbot-shop/internal/middleware"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/store"
)

func loaded() *store.Snapshot {
	p := catalog.NewProducts()
	p.Add("camshaft", 1700)
	return &store.Snapshot{Version: 1, Products: p, Services: catalog.NewServices()}
}

func query(q string, snap *store.Snapshot) *mw.Event {
	return &mw.Event{Name: mw.EventBeforeLLMRequest, UserText: q, Query: q, Snapshot: snap}
}

func TestUnavailableWithoutCatalog(t *testing.T) {
	dec, err := Unavailable{}.OnEvent(context.Background(), query("how much is camshaft", &store.Snapshot{}))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !dec.Cancel || dec.ReplaceText == nil || *dec.ReplaceText != UnavailableEN {
		t.Fatalf("expected unavailable reply, got %+v", dec)
	}
	if !dec.NoCache {
		t.Fatalf("unavailable reply must not be cached")
	}

	dec, _ = Unavailable{}.OnEvent(context.Background(), query("hi", nil))
	if !dec.Cancel {
		t.Fatalf("nil snapshot must count as unavailable")
	}
}

func TestUnavailableFollowsQueryLanguage(t *testing.T) {
	ev := query("magkano ang camshaft", &store.Snapshot{})
	ev.Tagalog = true
	dec, _ := Unavailable{}.OnEvent(context.Background(), ev)
	if dec.ReplaceText == nil || *dec.ReplaceText != UnavailableTL {
		t.Fatalf("expected Tagalog unavailable reply, got %+v", dec)
	}
}

func TestUnavailablePassesWithCatalog(t *testing.T) {
	dec, _ := Unavailable{}.OnEvent(context.Background(), query("hi", loaded()))
	if dec.Cancel {
		t.Fatalf("should pass when catalog is loaded")
	}
}

func TestProfanityWholeWord(t *testing.T) {
	tests := []struct {
		q    string
		want bool
	}{
		{"this shop is shit", true},
		{"gago ka ba", true},
		{"do you sell shitake", false},
		{"how much is camshaft", false},
	}
	for _, tt := range tests {
		ev := query(tt.q, loaded())
		ev.Tagalog = tt.q == "gago ka ba"
		dec, err := Profanity{}.OnEvent(context.Background(), ev)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if dec.Cancel != tt.want {
			t.Fatalf("%q: cancel=%v want %v", tt.q, dec.Cancel, tt.want)
		}
		if tt.want {
			want := RespectfulEN
			if ev.Tagalog {
				want = RespectfulTL
			}
			if *dec.ReplaceText != want {
				t.Fatalf("%q: got %q", tt.q, *dec.ReplaceText)
			}
		}
	}
}
