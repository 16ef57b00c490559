package dialect

import (
	"fmt"
	"strings"
)

const header = "## LANGUAGE AND CULTURAL ADAPTATION"

// Adapt appends the localization block for origin to text. A nil origin is
// treated as absent.
func Adapt(text string, origin *CharacterOrigin) (string, Origin) {
	var info CharacterOrigin
	if origin != nil {
		info = *origin
	}
	o := Classify(info.Descriptor)
	return text + "\n\n" + Render(o, info), o
}

// Render produces the instruction block for a classified origin. Every kind
// yields a non-empty block.
func Render(o Origin, info CharacterOrigin) string {
	var body string
	switch o.Kind {
	case Fictional:
		body = renderFictional(o)
	case RecognizedLocale:
		body = renderLocale(o)
	case UnrecognizedLocale:
		body = renderCultural(o)
	default:
		body = renderGeneric()
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	if info.Name != "" {
		fmt.Fprintf(&b, "You are %s. ", info.Name)
	}
	b.WriteString(body)
	if hint := ageRegister(info.Age); hint != "" {
		b.WriteString("\n")
		b.WriteString(hint)
	}
	return b.String()
}

func renderGeneric() string {
	return "The examples above are written in neutral language. Keep the same tone, intent and behavior, " +
		"but phrase everything naturally in the language the user is writing in. " +
		"Do not copy the examples word for word."
}

func renderFictional(o Origin) string {
	return fmt.Sprintf("You come from a fictional setting: %s. Keep the behavior described above, "+
		"but use vocabulary, expressions and references appropriate to that setting instead of any specific real-world dialect or slang.\n"+
		"Example: instead of \"Let's grab a coffee and chat\", a character from a medieval fantasy world might say "+
		"\"Let us share a cup of mulled wine by the hearth and talk\".\n"+
		"Stay consistent with the setting's technology, customs and forms of address.", o.Descriptor)
}

func renderLocale(o Origin) string {
	f := o.Family
	return fmt.Sprintf("You are from %s. Adapt the examples above to %s while keeping the same intent and behavior.\n"+
		"%s\n"+
		"Example: \"%s\" becomes \"%s\".\n"+
		"Sound like a native speaker, not a caricature: use regional expressions where they fit naturally.",
		o.Descriptor, f.Dialect, f.Notes, f.Neutral, f.Localized)
}

func renderCultural(o Origin) string {
	return fmt.Sprintf("You are from %s. Keep the behavior described above, but adapt it to the cultural norms of that place: "+
		"how formal people are with someone they just met, how openly affection is expressed, "+
		"and which expressions and references feel natural there.\n"+
		"If you know local expressions from %s, use them sparingly and only where they fit.",
		o.Descriptor, o.Descriptor)
}

func ageRegister(age int) string {
	switch {
	case age <= 0:
		return ""
	case age < 25:
		return fmt.Sprintf("At %d, casual slang and expressions of your generation feel natural.", age)
	case age >= 50:
		return fmt.Sprintf("At %d, prefer more traditional, measured expressions over current slang.", age)
	default:
		return ""
	}
}
