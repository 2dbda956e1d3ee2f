package latin

import (
	"github.com/let-userName-Brian/language-learner-sub000/internal/models"
)

// stage is one pure text transformation in the transliteration pipeline.
type stage struct {
	name string
	fn   func(string) string
}

// Transliterate converts normalized Latin text into an IPA transcript for the
// given dialect by folding the dialect's ordered stage list over the input.
// It is a total function: unmapped runes pass through unchanged, and the empty
// string maps to the empty string.
func Transliterate(text string, d models.Dialect) string {
	if text == "" {
		return ""
	}
	for _, st := range stagesFor(d) {
		text = st.fn(text)
	}
	return text
}

// stagesFor returns the ordered pipeline for a dialect. The order is
// semantically load-bearing: length marking must precede diphthong folding,
// cluster rules must precede single-consonant substitution, nasal
// assimilation must follow it, and stress placement runs last.
func stagesFor(d models.Dialect) []stage {
	if d == models.DialectEcclesiastical {
		return []stage{
			{"length", func(s string) string { return applyRules(s, lengthRules) }},
			{"diphthongs", func(s string) string { return applyRules(s, ecclesiasticalDiphthongs) }},
			{"clusters", func(s string) string { return applyRules(s, ecclesiasticalClusters) }},
			{"geminates", func(s string) string { return reduceGeminates(s, false) }},
			{"softening", func(s string) string { return applyRules(s, ecclesiasticalSoftening) }},
			{"consonants", func(s string) string { return applyRuneMap(s, ecclesiasticalConsonants) }},
			{"nasals", func(s string) string { return applyRules(s, nasalRules) }},
			{"vowels", func(s string) string { return applyRuneMap(s, ecclesiasticalVowels) }},
			{"stress", func(s string) string { return applyStress(s, d) }},
		}
	}
	return []stage{
		{"length", func(s string) string { return applyRules(s, lengthRules) }},
		{"diphthongs", func(s string) string { return applyRules(s, classicalDiphthongs) }},
		{"clusters", func(s string) string { return applyRules(s, classicalClusters) }},
		{"geminates", func(s string) string { return reduceGeminates(s, true) }},
		{"consonants", func(s string) string { return applyRuneMap(s, classicalConsonants) }},
		{"nasals", func(s string) string { return applyRules(s, nasalRules) }},
		{"vowels", func(s string) string { return applyRuneMap(s, classicalVowels) }},
		{"stress", func(s string) string { return applyStress(s, d) }},
	}
}
