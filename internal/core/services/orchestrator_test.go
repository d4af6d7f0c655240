package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/calliope-labs/moodtune/internal/core/domain"
)

type mockEncoder struct {
	vec []float64
	err error
}

func (m *mockEncoder) Encode(text string) ([]float64, error) {
	return m.vec, m.err
}

type mockClassifier struct {
	pred domain.Prediction
	err  error
}

func (m *mockClassifier) Predict(vector []float64) (domain.Prediction, error) {
	return m.pred, m.err
}

func (m *mockClassifier) Labels() []domain.Emotion {
	return []domain.Emotion{domain.EmotionJoy, domain.EmotionSadness, domain.EmotionNeutral}
}

type mockCatalog struct {
	songs []domain.Song
	calls int
}

func (m *mockCatalog) Songs() []domain.Song {
	m.calls++
	return m.songs
}

func testOrchestrator(catalog *mockCatalog, pred domain.Prediction) *Orchestrator {
	encoder := &mockEncoder{vec: []float64{1, 0}}
	classifier := &mockClassifier{pred: pred}
	enricher := NewEnricher(&mockPreview{links: previewLinks("https://cdn/p.mp3")}, nil, freshCache(), 2, nil, zerolog.Nop())
	return NewOrchestrator(
		encoder, classifier, catalog,
		NewScorer(0.65, 0.35, 2),
		enricher,
		5, 0, time.Second,
		"1.5.0",
		zerolog.Nop(),
	)
}

func TestRecommend_HappyPath(t *testing.T) {
	catalog := &mockCatalog{songs: []domain.Song{
		song("close", "A", 0.8, domain.EmotionJoy, 1, 0.1),
		song("closer", "B", 0.9, domain.EmotionJoy, 1, 0),
		song("far", "C", 0.1, domain.EmotionJoy, 0, 1),
	}}
	o := testOrchestrator(catalog, domain.Prediction{Emotion: domain.EmotionJoy, Confidence: 0.9})

	rec, err := o.Recommend(context.Background(), "I am so happy today, everything is wonderful!", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.ModelVersion != "1.5.0" {
		t.Errorf("model version = %q", rec.ModelVersion)
	}
	if rec.Emotion != domain.EmotionJoy {
		t.Errorf("emotion = %q, want joy", rec.Emotion)
	}
	if rec.Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", rec.Confidence)
	}
	if len(rec.Songs) != 3 {
		t.Fatalf("got %d songs, want 3", len(rec.Songs))
	}
	for i := 1; i < len(rec.Songs); i++ {
		if rec.Songs[i].Similarity > rec.Songs[i-1].Similarity {
			t.Errorf("results not rank-ordered at %d", i)
		}
	}
	for _, s := range rec.Songs {
		if !s.Media.HasPreview() {
			t.Errorf("%q missing enrichment", s.Title)
		}
	}
}

func TestRecommend_EmptyText(t *testing.T) {
	catalog := &mockCatalog{}
	o := testOrchestrator(catalog, domain.Prediction{Emotion: domain.EmotionNeutral})

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := o.Recommend(context.Background(), text, 0); !errors.Is(err, domain.ErrEmptyQuery) {
			t.Errorf("text %q: err = %v, want ErrEmptyQuery", text, err)
		}
	}
	if catalog.calls != 0 {
		t.Errorf("catalog scanned %d times for empty input, want 0", catalog.calls)
	}
}

func TestRecommend_FewerArtistsThanTopN(t *testing.T) {
	// five songs, three distinct artists: diversity caps the answer at three
	catalog := &mockCatalog{songs: []domain.Song{
		song("a1", "A", 0.5, domain.EmotionJoy, 1, 0),
		song("a2", "A", 0.5, domain.EmotionJoy, 1, 0.1),
		song("b1", "B", 0.5, domain.EmotionJoy, 0.9, 0),
		song("b2", "B", 0.5, domain.EmotionJoy, 0.9, 0.1),
		song("c1", "C", 0.5, domain.EmotionJoy, 0.8, 0),
	}}
	o := testOrchestrator(catalog, domain.Prediction{Emotion: domain.EmotionJoy, Confidence: 1})

	rec, err := o.Recommend(context.Background(), "feeling good", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Songs) != 3 {
		t.Fatalf("got %d songs, want 3 unique artists", len(rec.Songs))
	}
}

func TestRecommend_ClampsTopN(t *testing.T) {
	var songs []domain.Song
	for i := 0; i < 40; i++ {
		songs = append(songs, song(
			fmt.Sprintf("song-%d", i),
			fmt.Sprintf("artist-%d", i),
			0, domain.EmotionNeutral,
			1, float64(i)/40,
		))
	}
	o := testOrchestrator(&mockCatalog{songs: songs}, domain.Prediction{Emotion: domain.EmotionNeutral, Confidence: 1})

	rec, err := o.Recommend(context.Background(), "anything at all", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Songs) != maxTopN {
		t.Fatalf("got %d songs, want clamp at %d", len(rec.Songs), maxTopN)
	}
}

func TestRecommend_EncoderFailure(t *testing.T) {
	o := testOrchestrator(&mockCatalog{}, domain.Prediction{})
	o.encoder = &mockEncoder{err: domain.ErrUnencodable}

	if _, err := o.Recommend(context.Background(), "...", 0); !errors.Is(err, domain.ErrUnencodable) {
		t.Fatalf("err = %v, want ErrUnencodable", err)
	}
}

func TestRecommend_EmptyCatalogPropagates(t *testing.T) {
	o := testOrchestrator(&mockCatalog{}, domain.Prediction{Emotion: domain.EmotionNeutral, Confidence: 1})

	if _, err := o.Recommend(context.Background(), "plenty of words here", 0); !errors.Is(err, domain.ErrNoCandidates) {
		t.Fatalf("err = %v, want ErrNoCandidates", err)
	}
}
