package latin

import "strings"

// IPA markers emitted by the rule stages.
const (
	longMark     = "ː" // U+02D0, vowel or consonant length
	offglideMark = "̯" // U+032F, non-syllabic diphthong offglide
	stressMark   = "ˈ" // U+02C8
)

const vowelLetters = "aeiouy"

// rule is one pattern substitution. The pattern is consumed and replaced by
// output; before, when non-empty, is a lookahead set the next rune must belong
// to (the lookahead rune is not consumed).
type rule struct {
	pattern string
	output  string
	before  string
}

// applyRules scans left to right, trying rules in declaration order at each
// position. Order within a list is load-bearing: more specific patterns must
// be declared before shorter ones that would preempt them. Unmatched runes
// pass through unchanged.
func applyRules(text string, rules []rule) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(runes); {
		matched := false
		for _, r := range rules {
			pat := []rune(r.pattern)
			if !matchAt(runes, i, pat) {
				continue
			}
			if r.before != "" {
				next := i + len(pat)
				if next >= len(runes) || !strings.ContainsRune(r.before, runes[next]) {
					continue
				}
			}
			b.WriteString(r.output)
			i += len(pat)
			matched = true
			break
		}
		if !matched {
			b.WriteRune(runes[i])
			i++
		}
	}
	return b.String()
}

func matchAt(runes []rune, i int, pat []rune) bool {
	if i+len(pat) > len(runes) {
		return false
	}
	for j, p := range pat {
		if runes[i+j] != p {
			return false
		}
	}
	return true
}

// applyRuneMap substitutes single runes, leaving unmapped runes untouched.
func applyRuneMap(text string, m map[rune]string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if out, ok := m[r]; ok {
			b.WriteString(out)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// reduceGeminates collapses doubled consonant letters. Classical keeps the
// length distinction as a long consonant; Ecclesiastical de-emphasizes
// gemination and drops it entirely. Doubled vowels (hiatus, e.g. "filii")
// are left alone.
func reduceGeminates(text string, keepLength bool) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(runes); {
		if i+1 < len(runes) && runes[i] == runes[i+1] && isConsonantLetter(runes[i]) {
			b.WriteRune(runes[i])
			if keepLength {
				b.WriteString(longMark)
			}
			i += 2
			continue
		}
		b.WriteRune(runes[i])
		i++
	}
	return b.String()
}

func isConsonantLetter(r rune) bool {
	return r >= 'a' && r <= 'z' && !strings.ContainsRune(vowelLetters, r)
}

// Macron-marked vowels become base vowel plus length marker. Runs before
// diphthong folding so a long vowel adjacent to another vowel is never
// mistaken for a diphthong.
var lengthRules = []rule{
	{pattern: "ā", output: "a" + longMark},
	{pattern: "ē", output: "e" + longMark},
	{pattern: "ī", output: "i" + longMark},
	{pattern: "ō", output: "o" + longMark},
	{pattern: "ū", output: "u" + longMark},
	{pattern: "ȳ", output: "y" + longMark},
}

// Classical preserves all diphthongs with a non-syllabic offglide.
var classicalDiphthongs = []rule{
	{pattern: "ae", output: "ae" + offglideMark},
	{pattern: "au", output: "au" + offglideMark},
	{pattern: "ei", output: "ei" + offglideMark},
	{pattern: "eu", output: "eu" + offglideMark},
	{pattern: "oe", output: "oe" + offglideMark},
	{pattern: "ui", output: "ui" + offglideMark},
	{pattern: "æ", output: "ae" + offglideMark},
	{pattern: "œ", output: "oe" + offglideMark},
}

// Ecclesiastical monophthongizes ae/oe to a plain mid-front vowel (Italian
// influence) but keeps au/ei/eu as true diphthongs.
var ecclesiasticalDiphthongs = []rule{
	{pattern: "ae", output: "e"},
	{pattern: "oe", output: "e"},
	{pattern: "æ", output: "e"},
	{pattern: "œ", output: "e"},
	{pattern: "au", output: "au" + offglideMark},
	{pattern: "ei", output: "ei" + offglideMark},
	{pattern: "eu", output: "eu" + offglideMark},
}

var classicalClusters = []rule{
	{pattern: "qu", output: "kʷ", before: vowelLetters},
	{pattern: "ph", output: "pʰ"},
	{pattern: "th", output: "tʰ"},
	{pattern: "ch", output: "kʰ"},
}

// Ordered most-specific first: gn/gl/sc/ti own their clusters before the
// bare c/g softening below could see them.
var ecclesiasticalClusters = []rule{
	{pattern: "gn", output: "ɲ"},
	{pattern: "gl", output: "ʎ", before: "i"},
	{pattern: "sc", output: "ʃ", before: "ei"},
	{pattern: "ti", output: "tsi", before: vowelLetters},
	{pattern: "qu", output: "kʷ", before: vowelLetters},
	{pattern: "ch", output: "k"},
	{pattern: "ph", output: "p"},
	{pattern: "th", output: "t"},
}

// The defining Classical/Ecclesiastical divergence: c/g soften to affricates
// before front vowels. Runs after geminate reduction so "ecce" softens once.
var ecclesiasticalSoftening = []rule{
	{pattern: "c", output: "tʃ", before: "ei"},
	{pattern: "g", output: "dʒ", before: "ei"},
}

var classicalConsonants = map[rune]string{
	'c': "k",
	'q': "k",
	'v': "w",
	'x': "ks",
	'z': "dz",
}

var ecclesiasticalConsonants = map[rune]string{
	'c': "k",
	'q': "k",
	'h': "", // silent, Italian style
	'x': "ks",
	'z': "dz",
}

// n assimilates to following velars and labials in both dialects.
var nasalRules = []rule{
	{pattern: "n", output: "ŋ", before: "kg"},
	{pattern: "n", output: "m", before: "pbm"},
}

var classicalVowels = map[rune]string{
	'y': "y",
}

var ecclesiasticalVowels = map[rune]string{
	'y': "i",
}
