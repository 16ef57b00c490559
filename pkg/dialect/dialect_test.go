package dialect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		descriptor string
		kind       Kind
		family     string
	}{
		{"", Absent, ""},
		{"   ", Absent, ""},
		{"Westeros", Fictional, ""},
		{"Winterfell, in the north of Westeros", Fictional, ""},
		{"Hogwarts School", Fictional, ""},
		{"Buenos Aires, Argentina", RecognizedLocale, "es-rioplatense"},
		{"CDMX", RecognizedLocale, "es-mexican"},
		{"Madrid", RecognizedLocale, "es-peninsular"},
		{"London, UK", RecognizedLocale, "en-british"},
		{"Tokyo", RecognizedLocale, "ja"},
		{"São Paulo", RecognizedLocale, "pt-brazilian"},
		{"Nairobi, Kenya", UnrecognizedLocale, ""},
		{"???", UnrecognizedLocale, ""},
		// word boundaries: "uk" must not match inside "ukraine"
		{"Kyiv, Ukraine", UnrecognizedLocale, ""},
		// words shared by real and invented places do not make a setting fictional
		{"Madrid, Kingdom of Spain", RecognizedLocale, "es-peninsular"},
		{"Kingdom of Spain", RecognizedLocale, "es-peninsular"},
		{"Planet Earth, Tokyo", RecognizedLocale, "ja"},
		{"Academia in Buenos Aires", RecognizedLocale, "es-rioplatense"},
		{"Kingdom of Thailand", UnrecognizedLocale, ""},
		{"a realm beyond the stars", UnrecognizedLocale, ""},
		{"a magical realm of dragons", Fictional, ""},
		{"Isekai world", Fictional, ""},
	}

	for _, tt := range tests {
		t.Run(tt.descriptor, func(t *testing.T) {
			o := Classify(tt.descriptor)
			assert.Equal(t, tt.kind, o.Kind)
			if tt.family == "" {
				assert.Nil(t, o.Family)
			} else {
				require.NotNil(t, o.Family)
				assert.Equal(t, tt.family, o.Family.ID)
			}
		})
	}
}

func TestClassify_FictionalWinsOverLocale(t *testing.T) {
	o := Classify("a fantasy kingdom of Spain")
	assert.Equal(t, Fictional, o.Kind)
}

func TestAdapt_FourDistinctBlocks(t *testing.T) {
	const text = "Greet the user."
	origins := []*CharacterOrigin{
		nil,
		{Descriptor: "Westeros"},
		{Descriptor: "Buenos Aires, Argentina"},
		{Descriptor: "Reykjavik, Iceland"},
	}

	seen := make(map[string]Kind)
	for _, origin := range origins {
		out, o := Adapt(text, origin)
		require.True(t, strings.HasPrefix(out, text+"\n\n"))
		block := strings.TrimPrefix(out, text+"\n\n")
		assert.NotEmpty(t, block)
		assert.True(t, strings.HasPrefix(block, header))
		seen[block] = o.Kind
	}
	assert.Len(t, seen, 4)
}

func TestAdapt_Westeros(t *testing.T) {
	out, o := Adapt("Flirt a little.", &CharacterOrigin{Descriptor: "Westeros"})
	assert.Equal(t, Fictional, o.Kind)
	assert.Contains(t, out, "vocabulary, expressions and references appropriate to that setting")
	assert.Contains(t, out, "instead of any specific real-world dialect")
	for _, f := range Families {
		assert.NotContains(t, out, f.Dialect)
	}
}

func TestAdapt_RecognizedLocaleExample(t *testing.T) {
	out, o := Adapt("Invite them out.", &CharacterOrigin{Descriptor: "Montevideo", Name: "Lucía", Age: 22})
	require.Equal(t, RecognizedLocale, o.Kind)
	assert.Contains(t, out, "Rioplatense Spanish")
	assert.Contains(t, out, "¿Vos querés venir conmigo, che?")
	assert.Contains(t, out, "You are Lucía.")
	assert.Contains(t, out, "At 22")
}

func TestAdapt_AbsentIsGeneric(t *testing.T) {
	out, o := Adapt("Be kind.", &CharacterOrigin{Name: "Sakura"})
	assert.Equal(t, Absent, o.Kind)
	assert.Contains(t, out, "phrase everything naturally")
	assert.Contains(t, out, "You are Sakura.")
}

func TestAgeRegister(t *testing.T) {
	assert.Empty(t, ageRegister(0))
	assert.Empty(t, ageRegister(35))
	assert.Contains(t, ageRegister(19), "slang")
	assert.Contains(t, ageRegister(60), "traditional")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "absent", Absent.String())
	assert.Equal(t, "fictional", Fictional.String())
	assert.Equal(t, "recognized-locale", RecognizedLocale.String())
	assert.Equal(t, "unrecognized-locale", UnrecognizedLocale.String())
}
