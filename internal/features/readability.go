package features

import "strings"

// fleschReadingEase computes the Flesch reading ease score over already
// tokenized words. Higher is easier; typical prose lands between 0 and 100,
// though the formula is unbounded on degenerate input.
func fleschReadingEase(words []string, sentenceCount int) float64 {
	if len(words) == 0 || sentenceCount == 0 {
		return 0
	}

	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	wordsPerSentence := float64(len(words)) / float64(sentenceCount)
	syllablesPerWord := float64(syllables) / float64(len(words))

	return 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
}

// countSyllables approximates syllable count as the number of vowel groups,
// discounting a silent trailing 'e'. Every word counts at least one.
func countSyllables(word string) int {
	word = strings.ToLower(word)

	groups := 0
	prevVowel := false
	for _, r := range word {
		vowel := isVowel(r)
		if vowel && !prevVowel {
			groups++
		}
		prevVowel = vowel
	}

	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && groups > 1 {
		groups--
	}

	if groups < 1 {
		return 1
	}
	return groups
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
