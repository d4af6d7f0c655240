package domain

// Song is a catalog entry. Immutable once the catalog is loaded: every song
// carries its feature vector and emotion label before the engine accepts
// traffic, so nothing is recomputed per request.
type Song struct {
	Title     string
	Artist    string
	Lyrics    string
	Features  []float64 // fixed-length linguistic feature vector
	Sentiment float64   // VADER compound of the lyrics, range [-1, 1]
	Emotion   Emotion   // precomputed from the lyrics at load time
}

// ScoredSong pairs a catalog entry with its per-request scores. It exists
// only for the lifetime of one request.
type ScoredSong struct {
	Song ScoredRef

	// RawSimilarity is the min-max normalized cosine similarity, before the
	// emotion adjustment is blended in.
	RawSimilarity float64

	// FinalScore is the blended, re-normalized score in [0, 1].
	FinalScore float64
}

// ScoredRef is the subset of a Song the scorer and selector need. Copied by
// value so score records never alias catalog state.
type ScoredRef struct {
	Title     string
	Artist    string
	Sentiment float64
	Emotion   Emotion
}
