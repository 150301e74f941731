package pricing

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/catalog"
	mw "github.com/MJBeltran13/ai-chatbot-shop/internal/middleware"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/store"
)

func snapshot() *store.Snapshot {
	p := catalog.NewProducts()
	p.Add("camshaft", 1700)
	p.Add("gear oil", 75)
	p.Add("motul oil", 320)
	p.Add("pulley set", 2100)
	s := catalog.NewServices()
	s.Add("change oil", "Labor: ₱250")
	s.Add("cvt cleaning", "₱300")
	return &store.Snapshot{Version: 1, Products: p, Services: s}
}

func ask(m mw.Middleware, q string, snap *store.Snapshot, tagalog bool) (string, bool) {
	ev := &mw.Event{Name: mw.EventBeforeLLMRequest, UserText: q, Query: q, Tagalog: tagalog, Snapshot: snap}
	if c, ok := m.(mw.ConditionalMiddleware); ok && !c.ShouldLoad(context.Background(), ev) {
		return "", false
	}
	dec, err := m.OnEvent(context.Background(), ev)
	if err != nil || !dec.Cancel {
		return "", false
	}
	return *dec.ReplaceText, true
}

func TestServiceList_Numbered(t *testing.T) {
	got, ok := ask(ServiceList{}, "list services", snapshot(), false)
	require.True(t, ok)
	assert.Equal(t, "Here are the services we offer:\n\n1. Change Oil – Labor: ₱250\n2. CVT Cleaning – ₱300", got)
}

func TestServiceList_EmptyIsExactSentinel(t *testing.T) {
	empty := &store.Snapshot{Products: snapshot().Products, Services: catalog.NewServices()}

	got, ok := ask(ServiceList{}, "list services", empty, false)
	require.True(t, ok)
	assert.Equal(t, NoServicesEN, got)

	got, _ = ask(ServiceList{}, "ano ang mga serbisyo niyo", empty, true)
	assert.Equal(t, NoServicesTL, got)
}

func TestPrice_ProductContainment(t *testing.T) {
	got, ok := ask(Price{}, "how much is camshaft", snapshot(), false)
	require.True(t, ok)
	assert.Contains(t, got, "1,700")
	assert.Contains(t, strings.ToLower(got), "camshaft")
}

func TestPrice_ServicesWinOnCollision(t *testing.T) {
	// "change oil" is a service; "oil" alone would also overlap gear oil.
	got, ok := ask(Price{}, "how much is change oil", snapshot(), false)
	require.True(t, ok)
	assert.Equal(t, "Labor for our Change Oil service costs ₱250.", got)
}

func TestPrice_LaborLabelMovesIntoSentence(t *testing.T) {
	got, ok := ask(Price{}, "magkano ang change oil", snapshot(), true)
	require.True(t, ok)
	assert.Equal(t, "Ang singil sa labor para sa Change Oil ay ₱250.", got)

	got, ok = ask(Price{}, "how much is cvt cleaning", snapshot(), false)
	require.True(t, ok)
	assert.Equal(t, "Our CVT Cleaning service costs ₱300.", got)
}

func TestPrice_FuzzyPicksFirstInserted(t *testing.T) {
	snap := &store.Snapshot{Products: catalog.NewProducts(), Services: catalog.NewServices()}
	snap.Products.Add("gear oil", 75)
	snap.Products.Add("motul oil", 320)

	got, ok := ask(Price{}, "how much is oil", snap, false)
	require.True(t, ok)
	assert.Contains(t, got, "Gear Oil")
	assert.Contains(t, got, "₱75")
	assert.NotContains(t, got, "Motul")
	assert.NotContains(t, got, "320")
}

func TestPrice_Tagalog(t *testing.T) {
	got, ok := ask(Price{}, "magkano ang camshaft", snapshot(), true)
	require.True(t, ok)
	assert.Equal(t, "Ang presyo ng Camshaft ay ₱1,700.", got)
}

func TestPrice_NotFound(t *testing.T) {
	got, ok := ask(Price{}, "how much is a turbocharger", snapshot(), false)
	require.True(t, ok)
	assert.Equal(t, NotFoundEN, got)
}

func TestPrice_NoTrigger(t *testing.T) {
	_, ok := ask(Price{}, "camshaft", snapshot(), false)
	assert.False(t, ok)
}

func TestAvailability_OnlyTagalog(t *testing.T) {
	_, ok := ask(Availability{}, "is camshaft available", snapshot(), false)
	assert.False(t, ok)
}

func TestAvailability_ProductsThenServicesThenNone(t *testing.T) {
	got, ok := ask(Availability{}, "meron ba kayong camshaft", snapshot(), true)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(got, "Opo, meron kami niyan:"))
	assert.Contains(t, got, "Camshaft: ₱1,700")

	got, _ = ask(Availability{}, "may oil po ba kayo", snapshot(), true)
	assert.Contains(t, got, "Gear Oil: ₱75")
	assert.Contains(t, got, "Motul Oil: ₱320")

	got, _ = ask(Availability{}, "meron ba kayong cleaning", snapshot(), true)
	assert.Contains(t, got, "may serbisyo kami")
	assert.Contains(t, got, "CVT Cleaning: ₱300")

	got, _ = ask(Availability{}, "meron ba kayong turbo", snapshot(), true)
	assert.Contains(t, got, "wala kaming turbo")
}

func TestAvailability_FillerOnlyFallsThrough(t *testing.T) {
	_, ok := ask(Availability{}, "meron po ba kayo", snapshot(), true)
	assert.False(t, ok)
}

func TestCatalogList(t *testing.T) {
	got, ok := ask(CatalogList{}, "show me your products", snapshot(), false)
	require.True(t, ok)
	assert.Contains(t, got, "PRODUCTS:\n• Camshaft: ₱1,700\n• Gear Oil: ₱75")
	assert.Contains(t, got, "SERVICES:\n• Change Oil: Labor: ₱250")

	empty := &store.Snapshot{Products: catalog.NewProducts(), Services: catalog.NewServices(), Raw: "x"}
	got, _ = ask(CatalogList{}, "catalog", empty, false)
	assert.Contains(t, got, "PRODUCTS:\n(none listed)")
}
