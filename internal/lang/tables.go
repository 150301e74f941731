package lang

var (
	Profanity = Table{
		EN: []string{"fuck", "fucking", "shit", "bitch", "asshole", "bastard", "damn", "stupid bot", "motherfucker"},
		TL: []string{"putangina", "tangina", "putang ina", "gago", "gaga", "tanga", "bobo", "ulol", "puta", "tarantado", "leche", "punyeta", "pakyu", "hayop ka"},
	}

	Location = Table{
		EN: []string{"where", "location", "located", "address", "directions", "how to get there", "find your shop", "branch"},
		TL: []string{"saan", "nasaan", "lokasyon", "lugar ninyo", "lugar niyo", "paano pumunta"},
	}

	Contact = Table{
		EN: []string{"contact", "phone", "mobile number", "cellphone", "call you", "email", "hours", "open", "opening", "closing", "close", "reach you"},
		TL: []string{"numero", "telepono", "tawagan", "oras", "bukas kayo", "sarado", "makontak"},
	}

	ServiceList = Table{
		EN: []string{"list services", "list of services", "services", "what services", "service list", "services offered"},
		TL: []string{"mga serbisyo", "serbisyo", "anong serbisyo", "ano ang serbisyo"},
	}

	Price = Table{
		EN: []string{"how much", "price", "prices", "cost", "costs", "rate"},
		TL: []string{"magkano", "presyo", "halaga", "bayad"},
	}

	Availability = Table{
		EN: []string{"available"},
		TL: []string{"may", "meron", "mayroon", "ba kayo", "po ba"},
	}

	Warranty = Table{
		EN: []string{"warranty", "warranties", "guarantee", "guaranteed"},
		TL: []string{"garantiya", "may warranty"},
	}

	Booking = Table{
		EN: []string{"book", "booking", "appointment", "reserve", "reservation", "schedule a"},
		TL: []string{"magpa-book", "magpabook", "mag-book", "magpa-schedule", "magpareserba", "magpa-appointment"},
	}

	Ordering = Table{
		EN: []string{"order", "ordering", "how to buy", "purchase", "checkout", "place an order"},
		TL: []string{"umorder", "mag-order", "mag order", "bumili", "bibili", "pabili"},
	}

	Workflow = Table{
		EN: []string{"process", "workflow", "procedure", "steps", "how long", "what happens"},
		TL: []string{"proseso", "gaano katagal", "paano ginagawa", "hakbang"},
	}

	Greeting = Table{
		EN: []string{"hi", "hello", "hey", "good morning", "good afternoon", "good evening", "greetings", "howdy"},
		TL: []string{"kumusta", "kamusta", "musta", "magandang umaga", "magandang hapon", "magandang gabi", "magandang araw"},
	}

	Creator = Table{
		EN: []string{"who made you", "who created you", "who built you", "who developed you", "your creator", "who owns you"},
		TL: []string{"sino gumawa", "sino ang gumawa", "gumawa sa iyo", "gumawa sayo", "sino ang lumikha"},
	}

	FAQ = Table{
		EN: []string{"faq", "faqs", "frequently asked", "common questions"},
		TL: []string{"madalas itanong", "madalas na tanong", "mga tanong"},
	}

	CatalogList = Table{
		EN: []string{"products", "catalog", "catalogue", "what do you sell", "what parts", "parts list", "all items", "list products"},
		TL: []string{"produkto", "mga produkto", "katalogo", "binebenta", "paninda", "mga piyesa"},
	}
)

// AvailabilityStopWords are dropped from an availability query before the
// remaining words are matched against catalog names. The vocabulary of the
// intents ranked below availability is included, so "may warranty ba kayo"
// is left for the warranty handler.
var AvailabilityStopWords = withWords(map[string]struct{}{
	"may": {}, "meron": {}, "mayroon": {}, "ba": {}, "kayo": {}, "kayong": {},
	"po": {}, "available": {}, "ng": {}, "mga": {}, "na": {}, "ang": {},
	"yung": {}, "sa": {}, "nyo": {}, "niyo": {}, "ninyo": {}, "pa": {},
	"rin": {}, "din": {}, "ako": {}, "ko": {}, "gusto": {}, "bumili": {},
	"hanap": {}, "hinahanap": {}, "isang": {}, "ano": {}, "anong": {},
	"para": {}, "stock": {}, "kami": {}, "tanong": {}, "lang": {}, "naman": {},
	"is": {}, "there": {}, "do": {}, "you": {}, "have": {}, "a": {}, "an": {},
	"the": {}, "any": {},
}, Warranty, Booking, Ordering, Workflow, Greeting, Creator, FAQ, CatalogList, ServiceList)

func withWords(set map[string]struct{}, tables ...Table) map[string]struct{} {
	for _, t := range tables {
		for _, list := range [][]string{t.EN, t.TL} {
			for _, kw := range list {
				for _, tok := range Tokens(kw) {
					set[tok] = struct{}{}
				}
			}
		}
	}
	return set
}
