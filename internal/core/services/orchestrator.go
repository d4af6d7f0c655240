// Package services holds the recommendation engine: scoring, diversified
// selection, enrichment, and the orchestrator that sequences them.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/calliope-labs/moodtune/internal/core/domain"
	"github.com/calliope-labs/moodtune/internal/core/ports"
)

const (
	defaultTopN          = 5
	maxTopN              = 20
	defaultEnrichTimeout = 10 * time.Second
)

// Orchestrator composes encoder, classifier, scorer, selector and enricher
// into one request/response cycle. Everything up through selection runs
// synchronously on the calling goroutine; only enrichment fans out.
type Orchestrator struct {
	encoder    ports.Encoder
	classifier ports.Classifier
	catalog    ports.CatalogIndex
	scorer     *Scorer
	enricher   *Enricher

	topN          int
	candidatePool int
	enrichTimeout time.Duration
	version       string
	logger        zerolog.Logger
}

// NewOrchestrator constructs an Orchestrator. Non-positive topN,
// candidatePool or enrichTimeout fall back to defaults.
func NewOrchestrator(
	encoder ports.Encoder,
	classifier ports.Classifier,
	catalog ports.CatalogIndex,
	scorer *Scorer,
	enricher *Enricher,
	topN, candidatePool int,
	enrichTimeout time.Duration,
	version string,
	logger zerolog.Logger,
) *Orchestrator {
	if topN <= 0 {
		topN = defaultTopN
	}
	if candidatePool <= 0 {
		candidatePool = DefaultCandidatePool
	}
	if enrichTimeout <= 0 {
		enrichTimeout = defaultEnrichTimeout
	}
	return &Orchestrator{
		encoder:       encoder,
		classifier:    classifier,
		catalog:       catalog,
		scorer:        scorer,
		enricher:      enricher,
		topN:          topN,
		candidatePool: candidatePool,
		enrichTimeout: enrichTimeout,
		version:       version,
		logger:        logger,
	}
}

// Recommend runs the full pipeline for one query. topN <= 0 uses the
// configured default; values above the hard cap are clamped.
func (o *Orchestrator) Recommend(ctx context.Context, text string, topN int) (domain.Recommendation, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Recommendation{}, fmt.Errorf("service: %w", domain.ErrEmptyQuery)
	}

	query, err := o.encoder.Encode(text)
	if err != nil {
		return domain.Recommendation{}, fmt.Errorf("service: encode query: %w", err)
	}

	pred, err := o.classifier.Predict(query)
	if err != nil {
		return domain.Recommendation{}, fmt.Errorf("service: classify query: %w", err)
	}

	scored, err := o.scorer.Score(query, pred, o.catalog.Songs())
	if err != nil {
		return domain.Recommendation{}, fmt.Errorf("service: score catalog: %w", err)
	}

	if topN <= 0 {
		topN = o.topN
	}
	if topN > maxTopN {
		topN = maxTopN
	}
	picks := SelectDiverse(scored, topN, o.candidatePool)

	// Overall enrichment deadline: a hung provider degrades to null media
	// fields instead of stalling the response.
	enrichCtx, cancel := context.WithTimeout(ctx, o.enrichTimeout)
	defer cancel()
	songs := o.enricher.EnrichAll(enrichCtx, picks)

	o.logger.Debug().
		Str("emotion", string(pred.Emotion)).
		Float64("confidence", pred.Confidence).
		Int("songs", len(songs)).
		Msg("recommendation assembled")

	return domain.Recommendation{
		ModelVersion: o.version,
		Emotion:      pred.Emotion,
		Confidence:   pred.Confidence,
		Songs:        songs,
	}, nil
}
