package latin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/let-userName-Brian/language-learner-sub000/internal/latin"
	"github.com/let-userName-Brian/language-learner-sub000/internal/models"
)

func TestTransliterateClassical(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "hard c before front vowel", in: "cena", want: "ˈkena"},
		{name: "ae diphthong kept", in: "caelum", want: "ˈkae̯lum"},
		{name: "labialized qu", in: "aqua", want: "ˈakʷa"},
		{name: "labialized qu before u", in: "equus", want: "ˈekʷus"},
		{name: "aspirated ch", in: "pulcher", want: "ˈpulkʰer"},
		{name: "geminate keeps length", in: "puella", want: "puˈelːa"},
		{name: "gn left alone", in: "agnus", want: "ˈagnus"},
		{name: "ti left alone", in: "gratia", want: "ˈgratia"},
		{name: "v is w", in: "verbum", want: "ˈwerbum"},
		{name: "greek y kept", in: "lyra", want: "ˈlyra"},
		{name: "x cluster", in: "rex", want: "ˈreks"},
		{name: "z cluster", in: "zona", want: "ˈdzona"},
		{name: "n before velar", in: "lingua", want: "ˈliŋgua"},
		{name: "n before labial", in: "inpono", want: "ˈimpono"},
		{name: "macron long vowel", in: "rōmānus", want: "roːˈmaːnus"},
		{name: "light penult antepenult stress", in: "dominus", want: "ˈdominus"},
		{name: "sentence word by word", in: "puella amat", want: "puˈelːa ˈamat"},
		{name: "long vowel blocks diphthong", in: "āe", want: "ˈaːe"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, latin.Transliterate(tt.in, models.DialectClassical))
		})
	}
}

func TestTransliterateEcclesiastical(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "soft c before front vowel", in: "cena", want: "ˈtʃena"},
		{name: "ae monophthongized", in: "caelum", want: "ˈtʃelum"},
		{name: "au diphthong kept", in: "laudo", want: "ˈlau̯do"},
		{name: "palatal gn", in: "agnus", want: "ˈaɲus"},
		{name: "sc before front vowel", in: "scientia", want: "ʃienˈtsia"},
		{name: "ti before vowel", in: "gratia", want: "graˈtsia"},
		{name: "unaspirated ch", in: "pulcher", want: "ˈpulker"},
		{name: "geminate reduced", in: "puella", want: "puˈela"},
		{name: "v is v", in: "verbum", want: "ˈverbum"},
		{name: "greek y flattened", in: "lyra", want: "ˈlira"},
		{name: "silent h", in: "mihi", want: "ˈmii"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, latin.Transliterate(tt.in, models.DialectEcclesiastical))
		})
	}
}

func TestTransliterateDialectDivergence(t *testing.T) {
	t.Parallel()

	for _, word := range []string{"cena", "caelum", "verbum", "agnus", "gratia", "puella"} {
		classical := latin.Transliterate(word, models.DialectClassical)
		ecclesiastical := latin.Transliterate(word, models.DialectEcclesiastical)
		assert.NotEqual(t, classical, ecclesiastical, "word %s", word)
	}
}

func TestTransliterateTotal(t *testing.T) {
	t.Parallel()

	// Unmapped runes pass through rather than failing.
	out := latin.Transliterate("x7", models.DialectClassical)
	assert.Contains(t, out, "7")
	assert.Contains(t, out, "ks")
}
