package forest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/calliope-labs/moodtune/internal/core/domain"
)

// writeArtifact drops a forest artifact into a temp dir and returns its path.
func writeArtifact(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "forest.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return path
}

// Two stump trees splitting feature 0 at 0.5 (left=neutral, right=joy) plus
// one constant-neutral tree.
const validArtifact = `{
	"version": "1.5.0",
	"n_features": 2,
	"classes": ["neutral", "joy"],
	"trees": [
		{
			"children_left": [1, -1, -1],
			"children_right": [2, -1, -1],
			"feature": [0, 0, 0],
			"threshold": [0.5, 0, 0],
			"leaf_class": [0, 0, 1]
		},
		{
			"children_left": [1, -1, -1],
			"children_right": [2, -1, -1],
			"feature": [0, 0, 0],
			"threshold": [0.5, 0, 0],
			"leaf_class": [0, 0, 1]
		},
		{
			"children_left": [-1],
			"children_right": [-1],
			"feature": [0],
			"threshold": [0],
			"leaf_class": [0]
		}
	]
}`

func TestLoad_Predict(t *testing.T) {
	clf, err := Load(writeArtifact(t, validArtifact))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	tests := []struct {
		name           string
		vector         []float64
		wantEmotion    domain.Emotion
		wantConfidence float64
	}{
		{
			name:           "majority joy",
			vector:         []float64{0.9, 0},
			wantEmotion:    domain.EmotionJoy,
			wantConfidence: 2.0 / 3.0,
		},
		{
			name:           "unanimous neutral",
			vector:         []float64{0.1, 0},
			wantEmotion:    domain.EmotionNeutral,
			wantConfidence: 1.0,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			pred, err := clf.Predict(tc.vector)
			if err != nil {
				t.Fatalf("predict: %v", err)
			}
			if pred.Emotion != tc.wantEmotion {
				t.Errorf("emotion = %q, want %q", pred.Emotion, tc.wantEmotion)
			}
			if pred.Confidence != tc.wantConfidence {
				t.Errorf("confidence = %v, want %v", pred.Confidence, tc.wantConfidence)
			}
		})
	}
}

func TestPredict_DimensionMismatch(t *testing.T) {
	clf, err := Load(writeArtifact(t, validArtifact))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if _, err := clf.Predict([]float64{1, 2, 3}); err == nil {
		t.Fatal("expected error for wrong vector dimensionality")
	}
}

func TestLoad_InvalidArtifacts(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "not json at all"},
		{name: "no trees", body: `{"n_features": 2, "classes": ["joy"], "trees": []}`},
		{name: "no classes", body: `{"n_features": 2, "classes": [], "trees": [{"children_left":[-1],"children_right":[-1],"feature":[0],"threshold":[0],"leaf_class":[0]}]}`},
		{
			name: "mismatched node arrays",
			body: `{"n_features": 2, "classes": ["joy"], "trees": [{"children_left":[-1,-1],"children_right":[-1],"feature":[0],"threshold":[0],"leaf_class":[0]}]}`,
		},
		{
			name: "leaf votes for unknown class",
			body: `{"n_features": 2, "classes": ["joy"], "trees": [{"children_left":[-1],"children_right":[-1],"feature":[0],"threshold":[0],"leaf_class":[7]}]}`,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeArtifact(t, tc.body)); err == nil {
				t.Fatal("expected load error")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing artifact")
	}
}

func TestLabels_Copied(t *testing.T) {
	clf, err := Load(writeArtifact(t, validArtifact))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	labels := clf.Labels()
	labels[0] = "mutated"

	if clf.Labels()[0] != domain.EmotionNeutral {
		t.Fatal("Labels() must return a copy")
	}
}
