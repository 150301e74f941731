// Package procedures answers "how do I ..." questions with fixed step lists.
// None of it depends on the catalog.
package procedures

import (
	"context"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/lang"
	mw "github.com/MJBeltran13/ai-chatbot-shop/internal/middleware"
)

func init() {
	for _, p := range All() {
		mw.Register(p)
	}
}

// Procedure is a keyword-triggered canned answer.
type Procedure struct {
	id       string
	priority int
	triggers lang.Table
	en, tl   string
}

func (p Procedure) ID() string    { return p.id }
func (p Procedure) Priority() int { return p.priority }

func (p Procedure) OnEvent(_ context.Context, e *mw.Event) (mw.Decision, error) {
	if !mw.IsQuery(e) || !p.triggers.Match(e.Query) {
		return mw.Pass()
	}
	return mw.Reply(lang.Pick(e.Tagalog, p.en, p.tl), p.id)
}

// Text returns the canned answer in the requested language.
func (p Procedure) Text(tagalog bool) string { return lang.Pick(tagalog, p.en, p.tl) }

var (
	Booking = Procedure{
		id:       "booking",
		priority: 142,
		triggers: lang.Booking,
		en: `How to book a service at PomWorkz:
1. Message us here or call the shop with your motorcycle model and the service you need.
2. We will confirm the available date and time slot.
3. Bring your motorcycle to the shop on your scheduled day.
4. Our mechanic inspects the unit and confirms the final labor cost before starting.
5. Pay at the counter once the work is done and tested.`,
		tl: `Paano magpa-book ng serbisyo sa PomWorkz:
1. Mag-message dito o tumawag sa shop at sabihin ang modelo ng motor at ang serbisyong kailangan.
2. Kukumpirmahin namin ang available na petsa at oras.
3. Dalhin ang motor sa shop sa napiling araw.
4. Iche-check ng mekaniko ang unit at sasabihin ang final na labor bago simulan.
5. Magbayad sa counter kapag tapos at nasubukan na ang trabaho.`,
	}

	Ordering = Procedure{
		id:       "ordering",
		priority: 141,
		triggers: lang.Ordering,
		en: `How to order parts from PomWorkz:
1. Tell us the part name and your motorcycle model.
2. We confirm the price and whether it is in stock.
3. Reserve the item with a down payment, or pay in full at the shop.
4. Pick up the part at the shop, or have it installed by our mechanics.
Parts that are not in stock can be special ordered.`,
		tl: `Paano umorder ng piyesa sa PomWorkz:
1. Sabihin ang pangalan ng piyesa at ang modelo ng motor.
2. Kukumpirmahin namin ang presyo at kung may stock.
3. Magbigay ng down payment para ma-reserve, o magbayad nang buo sa shop.
4. Kunin ang piyesa sa shop, o ipakabit sa aming mekaniko.
Puwedeng i-special order ang mga piyesang wala sa stock.`,
	}

	Workflow = Procedure{
		id:       "service-workflow",
		priority: 140,
		triggers: lang.Workflow,
		en: `Our service process:
1. Check-in: we note your concern and the motorcycle's condition.
2. Diagnosis: the mechanic inspects the unit and explains what needs to be done.
3. Quotation: you approve the parts and labor cost before we start.
4. Repair: most jobs are finished within the day, bigger engine work may take longer.
5. Testing and release: we test ride the unit, then hand it over with your receipt.`,
		tl: `Ang proseso ng aming serbisyo:
1. Check-in: ililista namin ang problema at kondisyon ng motor.
2. Diagnosis: iche-check ng mekaniko ang unit at ipapaliwanag ang kailangang gawin.
3. Quotation: aaprubahan mo muna ang presyo ng piyesa at labor bago magsimula.
4. Repair: karamihan ng trabaho ay natatapos sa loob ng araw, mas matagal ang malalaking engine work.
5. Testing at release: ite-test ride namin ang motor bago ibigay kasama ang resibo.`,
	}
)

// All lists the procedures in precedence order.
func All() []Procedure { return []Procedure{Booking, Ordering, Workflow} }
