package latin

import (
	"strings"

	"github.com/let-userName-Brian/language-learner-sub000/internal/models"
)

// applyStress places a stress mark in each whitespace-split word.
//
// This is an approximation, not real scansion: syllables are counted as vowel
// nuclei (offglide-marked vowels attach to the previous nucleus), and
// Classical penult weight is judged from length marks and trailing consonant
// runs rather than full syllabification.
//
// Classical: words of three letters or fewer take initial stress; otherwise
// the penult is stressed when heavy, the antepenult when not. Ecclesiastical:
// Italianate default, penult stress for words longer than three letters.
func applyStress(text string, d models.Dialect) string {
	words := strings.Split(text, " ")
	for i, w := range words {
		words[i] = stressWord(w, d)
	}
	return strings.Join(words, " ")
}

func stressWord(w string, d models.Dialect) string {
	if w == "" {
		return ""
	}
	runes := []rune(w)

	nuclei := nucleusIndices(runes)
	if letterCount(runes) <= 3 || len(nuclei) < 2 {
		return stressMark + w
	}

	target := nuclei[len(nuclei)-2]
	if d == models.DialectClassical && len(nuclei) >= 3 && !penultIsHeavy(runes, nuclei) {
		target = nuclei[len(nuclei)-3]
	}

	pos := onsetStart(runes, target)
	return string(runes[:pos]) + stressMark + string(runes[pos:])
}

// letterCount ignores the markers the earlier stages attach to letters.
func letterCount(runes []rune) int {
	n := 0
	for _, r := range runes {
		if !isMarker(r) {
			n++
		}
	}
	return n
}

func isMarker(r rune) bool {
	return r == 'ː' || r == '̯' || r == 'ʰ' || r == 'ʷ' || r == 'ˈ'
}

// nucleusIndices returns the index of each syllable nucleus: a vowel rune not
// flagged as a non-syllabic offglide.
func nucleusIndices(runes []rune) []int {
	var out []int
	for i, r := range runes {
		if !isVowelRune(r) {
			continue
		}
		if i+1 < len(runes) && runes[i+1] == '̯' {
			continue
		}
		out = append(out, i)
	}
	return out
}

func isVowelRune(r rune) bool {
	return strings.ContainsRune(vowelLetters, r)
}

// penultIsHeavy approximates the Classical heavy-penult rule: the penult
// counts as heavy when its nucleus is long or a diphthong, or when at least
// two consonant-like runes separate it from the final nucleus (a long
// consonant counts as two).
func penultIsHeavy(runes []rune, nuclei []int) bool {
	penult := nuclei[len(nuclei)-2]
	last := nuclei[len(nuclei)-1]

	if penult+1 < len(runes) && runes[penult+1] == 'ː' {
		return true
	}
	if penult+2 < len(runes) && isVowelRune(runes[penult+1]) && runes[penult+2] == '̯' {
		return true
	}

	cluster := 0
	for i := penult + 1; i < last; i++ {
		r := runes[i]
		if isVowelRune(r) || r == '̯' {
			continue
		}
		cluster++
	}
	return cluster >= 2
}

// onsetStart backs up from the nucleus over its onset so the stress mark
// lands at the approximate syllable start: at most two consonant runes
// (covering affricates and muta-cum-liquida onsets) plus attached modifiers.
func onsetStart(runes []rune, nucleus int) int {
	i := nucleus
	for n := 0; n < 2; n++ {
		j := i
		for j > 0 && (runes[j-1] == 'ʰ' || runes[j-1] == 'ʷ') {
			j--
		}
		if j > 0 && isOnsetConsonant(runes[j-1]) {
			i = j - 1
			continue
		}
		break
	}
	return i
}

func isOnsetConsonant(r rune) bool {
	if isVowelRune(r) || isMarker(r) || r == '̯' {
		return false
	}
	return r != ' '
}
