// Package dialect appends localization guidance to a prompt based on where
// the character comes from.
package dialect

import (
	"strings"
	"unicode"
)

// Kind is the detected category of a character origin.
type Kind int

const (
	Absent Kind = iota
	Fictional
	RecognizedLocale
	UnrecognizedLocale
)

func (k Kind) String() string {
	switch k {
	case Absent:
		return "absent"
	case Fictional:
		return "fictional"
	case RecognizedLocale:
		return "recognized-locale"
	case UnrecognizedLocale:
		return "unrecognized-locale"
	default:
		return "unknown"
	}
}

// CharacterOrigin is the optional origin metadata of a character.
type CharacterOrigin struct {
	Descriptor string
	Name       string
	Age        int
}

// Family is a recognized language variety.
type Family struct {
	ID       string
	Dialect  string
	Keywords []string
	// Neutral and Localized show the same phrase before and after adaptation.
	Neutral   string
	Localized string
	Notes     string
}

// Origin is the classified origin. Family is set only for RecognizedLocale.
type Origin struct {
	Kind       Kind
	Family     *Family
	Descriptor string
}

// fictionalKeywords name invented settings or mark a descriptor as made up.
// Bare words that also describe real places (kingdom, planet, realm) must
// not be listed.
var fictionalKeywords = []string{
	"westeros", "essos", "middle-earth", "middle earth", "mordor", "gondor", "the shire",
	"hogwarts", "narnia", "tatooine", "coruscant", "hyrule", "azeroth", "tamriel", "skyrim",
	"konoha", "teyvat", "gotham", "wakanda",
	"fantasy", "fantasía", "fictional", "ficticio", "ficticia", "made-up", "imaginary",
	"another world", "otro mundo", "isekai", "another planet", "otro planeta",
	"magical realm", "reino mágico", "galaxy far far away", "spaceship", "space station",
	"academy of magic",
}

// Families lists the recognized language varieties in match order.
var Families = []Family{
	{
		ID: "es-rioplatense", Dialect: "Rioplatense Spanish",
		Keywords:  []string{"argentina", "argentino", "buenos aires", "rosario", "córdoba argentina", "uruguay", "montevideo", "rioplatense"},
		Neutral:   "¿Tú quieres venir conmigo?",
		Localized: "¿Vos querés venir conmigo, che?",
		Notes:     "Use voseo (vos querés, vos tenés) and local expressions such as \"che\", \"boludo\" among friends, \"re\" as an intensifier.",
	},
	{
		ID: "es-mexican", Dialect: "Mexican Spanish",
		Keywords:  []string{"mexico", "méxico", "mexicano", "mexicana", "cdmx", "guadalajara", "monterrey"},
		Neutral:   "¡Qué bien, amigo!",
		Localized: "¡Qué padre, güey!",
		Notes:     "Use expressions such as \"qué padre\", \"güey\" among friends, \"ahorita\", \"neta\".",
	},
	{
		ID: "es-peninsular", Dialect: "Peninsular Spanish",
		Keywords:  []string{"spain", "españa", "español", "española", "madrid", "barcelona", "sevilla", "valencia"},
		Neutral:   "Ustedes son geniales.",
		Localized: "Vosotros sois la leche, tío.",
		Notes:     "Use vosotros, and expressions such as \"tío/tía\", \"vale\", \"guay\", \"mola\".",
	},
	{
		ID: "es-chilean", Dialect: "Chilean Spanish",
		Keywords:  []string{"chile", "chileno", "chilena", "santiago de chile", "valparaíso"},
		Neutral:   "¿Entiendes, amigo?",
		Localized: "¿Cachai, weón?",
		Notes:     "Use expressions such as \"cachai\", \"po\", \"bacán\", \"weón\" among close friends.",
	},
	{
		ID: "es-colombian", Dialect: "Colombian Spanish",
		Keywords:  []string{"colombia", "colombiano", "colombiana", "bogotá", "bogota", "medellín", "medellin", "cali"},
		Neutral:   "¡Qué bueno, amigo!",
		Localized: "¡Qué chévere, parce!",
		Notes:     "Use expressions such as \"parce\", \"chévere\", \"bacano\", and the warm usted common in Colombia.",
	},
	{
		ID: "en-british", Dialect: "British English",
		Keywords:  []string{"england", "britain", "british", "united kingdom", "uk", "london", "manchester", "liverpool", "scotland", "wales"},
		Neutral:   "That's really cool, friend.",
		Localized: "That's brilliant, mate.",
		Notes:     "Use British spelling and expressions such as \"mate\", \"brilliant\", \"cheers\", \"proper\".",
	},
	{
		ID: "en-american", Dialect: "American English",
		Keywords:  []string{"united states", "usa", "new york", "california", "texas", "los angeles", "chicago"},
		Neutral:   "That is very good, friend.",
		Localized: "That's awesome, dude.",
		Notes:     "Use American spelling and casual expressions such as \"awesome\", \"dude\", \"y'know\".",
	},
	{
		ID: "en-australian", Dialect: "Australian English",
		Keywords:  []string{"australia", "australian", "aussie", "sydney", "melbourne", "brisbane", "perth"},
		Neutral:   "Good afternoon, friend, how are you?",
		Localized: "G'day mate, how ya going?",
		Notes:     "Use expressions such as \"g'day\", \"mate\", \"arvo\", \"heaps\", \"reckon\".",
	},
	{
		ID: "pt-brazilian", Dialect: "Brazilian Portuguese",
		Keywords:  []string{"brazil", "brasil", "brazilian", "brasileiro", "brasileira", "são paulo", "sao paulo", "rio de janeiro"},
		Neutral:   "Isso é muito bom, amigo.",
		Localized: "Que massa, cara!",
		Notes:     "Use você, and expressions such as \"cara\", \"massa\", \"beleza\", \"tipo\".",
	},
	{
		ID: "ja", Dialect: "Japanese-influenced speech",
		Keywords:  []string{"japan", "japón", "japanese", "japonés", "japonesa", "tokyo", "tokio", "osaka", "kyoto"},
		Neutral:   "Thank you, see you later!",
		Localized: "Arigatou, mata ne!",
		Notes:     "Sprinkle common Japanese words and honorifics (-san, -kun, -chan) naturally, without overdoing it.",
	},
	{
		ID: "fr", Dialect: "French-influenced speech",
		Keywords:  []string{"france", "francia", "french", "francés", "francesa", "paris", "parís", "lyon", "marseille"},
		Neutral:   "Oh well, that's life.",
		Localized: "Bof, c'est la vie.",
		Notes:     "Let occasional French expressions (\"bof\", \"oh là là\", \"voilà\") slip in naturally.",
	},
}

// Classify detects the origin kind of a free-text descriptor. Fictional
// settings are checked before real-world locales.
func Classify(descriptor string) Origin {
	if strings.TrimSpace(descriptor) == "" {
		return Origin{Kind: Absent}
	}
	text := normalize(descriptor)

	for _, kw := range fictionalKeywords {
		if strings.Contains(text, " "+kw+" ") {
			return Origin{Kind: Fictional, Descriptor: strings.TrimSpace(descriptor)}
		}
	}

	for i := range Families {
		for _, kw := range Families[i].Keywords {
			if strings.Contains(text, " "+kw+" ") {
				return Origin{Kind: RecognizedLocale, Family: &Families[i], Descriptor: strings.TrimSpace(descriptor)}
			}
		}
	}

	return Origin{Kind: UnrecognizedLocale, Descriptor: strings.TrimSpace(descriptor)}
}

// normalize lowercases s, turns punctuation into spaces and pads it so
// keywords can be matched on word boundaries with " kw ".
func normalize(s string) string {
	var b strings.Builder
	b.WriteByte(' ')
	space := true
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '\'' {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	if !space {
		b.WriteByte(' ')
	}
	return b.String()
}
