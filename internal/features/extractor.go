// Package features encodes raw text into the fixed-length linguistic
// statistics vector shared by query classification and catalog similarity.
package features

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonreiter/govader"

	"github.com/calliope-labs/moodtune/internal/core/domain"
	"github.com/calliope-labs/moodtune/internal/core/ports"
)

// Dimensions is the length of every vector produced by the Extractor.
const Dimensions = 8

// SentimentIndex is the position of the VADER compound score within the
// vector. The catalog loader reads it to label songs without re-running
// sentiment analysis.
const SentimentIndex = 7

var (
	wordPattern     = regexp.MustCompile(`[a-z0-9']+`)
	sentenceSplit   = regexp.MustCompile(`[.!?]+`)
	emphasisPattern = regexp.MustCompile(`[!?]`)
)

// Extractor computes the 8-feature linguistic vector:
// average sentence length, !/? count, ellipsis count, uppercase ratio,
// lexical diversity, max word repetition, Flesch reading ease, and VADER
// compound sentiment. Feature scales are deliberately heterogeneous; the
// scorer consumes the raw vector without per-feature standardization to
// keep similarity values aligned with the fitted classifier's input space.
type Extractor struct {
	vader *govader.SentimentIntensityAnalyzer
}

// compile-time interface assertion
var _ ports.Encoder = (*Extractor)(nil)

// NewExtractor constructs an Extractor. Safe for concurrent use: the VADER
// lexicon is read-only after construction.
func NewExtractor() *Extractor {
	return &Extractor{vader: govader.NewSentimentIntensityAnalyzer()}
}

// Encode returns the feature vector for text, or domain.ErrUnencodable for
// degenerate input (empty, all whitespace, no tokenizable words).
func (e *Extractor) Encode(text string) ([]float64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrUnencodable
	}

	sentences := splitSentences(text)
	words := tokenizeWords(text)
	if len(sentences) == 0 || len(words) == 0 {
		return nil, domain.ErrUnencodable
	}

	unique := make(map[string]int, len(words))
	maxRepetition := 0
	for _, w := range words {
		unique[w]++
		if unique[w] > maxRepetition {
			maxRepetition = unique[w]
		}
	}

	return []float64{
		averageSentenceLength(sentences),
		float64(len(emphasisPattern.FindAllString(text, -1))),
		float64(strings.Count(text, "...")),
		uppercaseRatio(text),
		float64(len(unique)) / float64(len(words)),
		float64(maxRepetition),
		fleschReadingEase(words, len(sentences)),
		e.vader.PolarityScores(text).Compound,
	}, nil
}

// splitSentences breaks text on terminal punctuation runs. Text without any
// terminator is a single sentence.
func splitSentences(text string) []string {
	parts := sentenceSplit.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}

func tokenizeWords(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

func averageSentenceLength(sentences []string) float64 {
	total := 0
	for _, s := range sentences {
		total += len(strings.Fields(s))
	}
	return float64(total) / float64(len(sentences))
}

func uppercaseRatio(text string) float64 {
	runes := []rune(text)
	if len(runes) == 0 {
		return 0
	}
	upper := 0
	for _, r := range runes {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return float64(upper) / float64(len(runes))
}
