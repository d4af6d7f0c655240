package ports

import "github.com/calliope-labs/moodtune/internal/core/domain"

// Classifier is a pre-fitted multi-class emotion model, loaded once at
// process start and immutable afterwards. Predict must be side-effect-free.
type Classifier interface {
	Predict(vector []float64) (domain.Prediction, error)

	// Labels returns the model's label table, used for the load-time
	// label-space consistency check against the catalog.
	Labels() []domain.Emotion
}
