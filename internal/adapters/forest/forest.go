// Package forest loads a pre-fitted random-forest emotion classifier from a
// JSON artifact and serves predictions from it. The artifact is an export of
// the offline training pipeline: per-tree node arrays plus a class label
// table. The model is immutable after load.
package forest

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"github.com/calliope-labs/moodtune/internal/core/domain"
	"github.com/calliope-labs/moodtune/internal/core/ports"
)

// treeArtifact mirrors one decision tree in the artifact: parallel node
// arrays indexed by node id, with -1 children marking a leaf.
type treeArtifact struct {
	ChildrenLeft  []int     `json:"children_left"`
	ChildrenRight []int     `json:"children_right"`
	Feature       []int     `json:"feature"`
	Threshold     []float64 `json:"threshold"`
	LeafClass     []int     `json:"leaf_class"`
}

type artifact struct {
	Version  string         `json:"version"`
	Features int            `json:"n_features"`
	Classes  []string       `json:"classes"`
	Trees    []treeArtifact `json:"trees"`
}

// Classifier implements the classifier port over a loaded forest.
type Classifier struct {
	features int
	labels   []domain.Emotion
	trees    []treeArtifact
}

// compile-time interface assertion
var _ ports.Classifier = (*Classifier)(nil)

// Load reads and validates a forest artifact. Any failure here is a startup
// failure; the process must not serve without a model.
func Load(path string) (*Classifier, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("forest adapter: read artifact: %w", err)
	}

	var art artifact
	if err := json.Unmarshal(raw, &art); err != nil {
		return nil, fmt.Errorf("forest adapter: decode artifact: %w", err)
	}

	if art.Features < 1 {
		return nil, fmt.Errorf("forest adapter: artifact declares %d features", art.Features)
	}
	if len(art.Classes) == 0 {
		return nil, fmt.Errorf("forest adapter: artifact has no class labels")
	}
	if len(art.Trees) == 0 {
		return nil, fmt.Errorf("forest adapter: artifact has no trees")
	}
	for i, tree := range art.Trees {
		if err := validateTree(tree, art.Features, len(art.Classes)); err != nil {
			return nil, fmt.Errorf("forest adapter: tree %d: %w", i, err)
		}
	}

	labels := make([]domain.Emotion, len(art.Classes))
	for i, c := range art.Classes {
		labels[i] = domain.Emotion(c)
	}

	return &Classifier{
		features: art.Features,
		labels:   labels,
		trees:    art.Trees,
	}, nil
}

func validateTree(t treeArtifact, nFeatures, nClasses int) error {
	n := len(t.ChildrenLeft)
	if n == 0 {
		return fmt.Errorf("empty node arrays")
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.LeafClass) != n {
		return fmt.Errorf("node arrays have mismatched lengths")
	}
	for i := 0; i < n; i++ {
		left, right := t.ChildrenLeft[i], t.ChildrenRight[i]
		if (left == -1) != (right == -1) {
			return fmt.Errorf("node %d has a single child", i)
		}
		if left == -1 {
			if t.LeafClass[i] < 0 || t.LeafClass[i] >= nClasses {
				return fmt.Errorf("leaf %d votes for unknown class %d", i, t.LeafClass[i])
			}
			continue
		}
		if left < 0 || left >= n || right < 0 || right >= n {
			return fmt.Errorf("node %d has out-of-range children", i)
		}
		if t.Feature[i] < 0 || t.Feature[i] >= nFeatures {
			return fmt.Errorf("node %d splits on unknown feature %d", i, t.Feature[i])
		}
	}
	return nil
}

// Predict runs every tree over the vector and returns the majority-vote
// label with the vote fraction as confidence. Ties resolve to the lowest
// class index so prediction stays deterministic.
func (c *Classifier) Predict(vector []float64) (domain.Prediction, error) {
	if len(vector) != c.features {
		return domain.Prediction{}, fmt.Errorf("forest adapter: vector has %d features, model expects %d", len(vector), c.features)
	}

	votes := make([]int, len(c.labels))
	for _, tree := range c.trees {
		votes[walkTree(tree, vector)]++
	}

	best := 0
	for i := 1; i < len(votes); i++ {
		if votes[i] > votes[best] {
			best = i
		}
	}

	return domain.Prediction{
		Emotion:    c.labels[best],
		Confidence: float64(votes[best]) / float64(len(c.trees)),
	}, nil
}

func walkTree(t treeArtifact, vector []float64) int {
	node := 0
	for t.ChildrenLeft[node] != -1 {
		if vector[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return t.LeafClass[node]
}

// Labels returns the model's class label table.
func (c *Classifier) Labels() []domain.Emotion {
	out := make([]domain.Emotion, len(c.labels))
	copy(out, c.labels)
	return out
}
