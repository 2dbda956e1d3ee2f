package latin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/let-userName-Brian/language-learner-sub000/internal/latin"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "lowercases", in: "Puella Amat", want: "puella amat"},
		{name: "strips punctuation", in: "Puella, amat!", want: "puella amat"},
		{name: "strips digits", in: "lectio 12", want: "lectio"},
		{name: "keeps macrons", in: "Rōma ēst", want: "rōma ēst"},
		{name: "composes combining macron", in: "ā", want: "ā"},
		{name: "collapses whitespace", in: "  puella \t amat\n", want: "puella amat"},
		{name: "only punctuation", in: "?!...", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, latin.Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"Puella amat",
		"Rōmānī ītē domum!",
		"  spaced \t out  ",
		"ā̄ double macron",
		"mixed 123 Ǣnēās, œconomia",
	}
	for _, in := range inputs {
		once := latin.Normalize(in)
		assert.Equal(t, once, latin.Normalize(once), "input %q", in)
	}
}
