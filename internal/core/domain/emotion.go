package domain

// Emotion is a discrete emotion label shared by the classifier's label table
// and the catalog's precomputed per-song labels.
type Emotion string

const (
	EmotionJoy     Emotion = "joy"
	EmotionSadness Emotion = "sadness"
	EmotionAnger   Emotion = "anger"
	EmotionLove    Emotion = "love"
	EmotionFear    Emotion = "fear"
	EmotionNeutral Emotion = "neutral"
)

// Sentiment thresholds for mapping a lyrics compound score to a song label.
const (
	joySentimentFloor    = 0.3
	sadnessSentimentCeil = -0.3
)

// EmotionFromSentiment maps a VADER compound score to a song emotion label.
func EmotionFromSentiment(compound float64) Emotion {
	switch {
	case compound > joySentimentFloor:
		return EmotionJoy
	case compound < sadnessSentimentCeil:
		return EmotionSadness
	default:
		return EmotionNeutral
	}
}

// Prediction is the classifier's output for one query vector.
type Prediction struct {
	Emotion    Emotion
	Confidence float64 // majority-vote fraction in [0, 1]
}
