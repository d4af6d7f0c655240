package services

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/calliope-labs/moodtune/internal/core/domain"
)

const (
	defaultSimilarityWeight = 0.65
	defaultAdjustWeight     = 0.35
	defaultMinEmotionPool   = 10

	// guards the zero-range case when every raw score is equal
	normEpsilon = 1e-8
)

// boostedEmotions are the labels the scorer restricts candidates to when the
// subset is viable, and the only ones that receive a sentiment adjustment.
var boostedEmotions = map[domain.Emotion]bool{
	domain.EmotionJoy:     true,
	domain.EmotionSadness: true,
}

// Scorer computes the blended similarity score for every candidate.
// Deterministic modulo the optional noise source.
type Scorer struct {
	simWeight      float64
	adjWeight      float64
	minEmotionPool int

	// optional symmetric noise, to vary the top-N across identical queries
	noiseAmp float64
	rng      *rand.Rand
	mu       sync.Mutex
}

// NewScorer constructs a Scorer. Non-positive arguments fall back to the
// defaults (0.65/0.35 blend, pool floor of 10).
func NewScorer(simWeight, adjWeight float64, minEmotionPool int) *Scorer {
	if simWeight <= 0 {
		simWeight = defaultSimilarityWeight
	}
	if adjWeight <= 0 {
		adjWeight = defaultAdjustWeight
	}
	if minEmotionPool <= 0 {
		minEmotionPool = defaultMinEmotionPool
	}
	return &Scorer{
		simWeight:      simWeight,
		adjWeight:      adjWeight,
		minEmotionPool: minEmotionPool,
	}
}

// EnableNoise turns on per-score symmetric noise in [-amplitude, amplitude].
// The seed makes runs reproducible; tests leave noise off entirely.
func (s *Scorer) EnableNoise(amplitude float64, seed int64) {
	if amplitude <= 0 {
		return
	}
	s.noiseAmp = amplitude
	s.rng = rand.New(rand.NewSource(seed))
}

// Score produces one scored record per candidate. Candidates are restricted
// to songs sharing a boosted predicted emotion when that subset holds at
// least minEmotionPool entries; otherwise the whole catalog is scored so the
// similarity computation never runs against a degenerate pool.
func (s *Scorer) Score(query []float64, pred domain.Prediction, songs []domain.Song) ([]domain.ScoredSong, error) {
	if len(songs) == 0 {
		return nil, fmt.Errorf("scorer: %w", domain.ErrNoCandidates)
	}

	candidates := songs
	if boostedEmotions[pred.Emotion] {
		filtered := make([]domain.Song, 0, len(songs))
		for _, song := range songs {
			if song.Emotion == pred.Emotion {
				filtered = append(filtered, song)
			}
		}
		if len(filtered) >= s.minEmotionPool {
			candidates = filtered
		}
	}

	raw := make([]float64, len(candidates))
	for i := range candidates {
		raw[i] = cosineSimilarity(query, candidates[i].Features)
	}
	similarities := minMaxNormalize(raw)

	blended := make([]float64, len(candidates))
	s.mu.Lock()
	for i := range candidates {
		adjustment := 0.0
		switch pred.Emotion {
		case domain.EmotionJoy:
			adjustment = candidates[i].Sentiment
		case domain.EmotionSadness:
			adjustment = -candidates[i].Sentiment
		}
		blended[i] = s.simWeight*similarities[i] + s.adjWeight*pred.Confidence*adjustment
		if s.rng != nil {
			blended[i] += (s.rng.Float64()*2 - 1) * s.noiseAmp
		}
	}
	s.mu.Unlock()

	finals := minMaxNormalize(blended)

	scored := make([]domain.ScoredSong, len(candidates))
	for i := range candidates {
		scored[i] = domain.ScoredSong{
			Song: domain.ScoredRef{
				Title:     candidates[i].Title,
				Artist:    candidates[i].Artist,
				Sentiment: candidates[i].Sentiment,
				Emotion:   candidates[i].Emotion,
			},
			RawSimilarity: similarities[i],
			FinalScore:    finals[i],
		}
	}
	return scored, nil
}

// cosineSimilarity returns the angular similarity of two vectors. A zero
// vector, or mismatched dimensions, scores 0.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// minMaxNormalize maps values into [0, 1] across the pool. The epsilon keeps
// an all-equal pool finite (everything maps to 0) instead of dividing by
// zero.
func minMaxNormalize(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	out := make([]float64, len(values))
	span := hi - lo + normEpsilon
	for i, v := range values {
		out[i] = (v - lo) / span
	}
	return out
}
