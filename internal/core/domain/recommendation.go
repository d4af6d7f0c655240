package domain

// RecommendedSong is one entry of the final response, in rank order.
type RecommendedSong struct {
	Title      string
	Artist     string
	Similarity float64
	Media      MediaLinks
}

// Recommendation is the response envelope for one request.
type Recommendation struct {
	ModelVersion string
	Emotion      Emotion
	Confidence   float64
	Songs        []RecommendedSong
}
