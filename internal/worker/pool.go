// Package worker provides background analysis of enriched preview audio.
package worker

import (
	"sync"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/calliope-labs/moodtune/internal/core/domain"
)

// Job names one cached enrichment result whose preview should be analyzed.
type Job struct {
	CacheKey   string
	Title      string
	Artist     string
	PreviewURL string
}

// Pool runs preview-energy analysis off the request path and writes results
// back into the enrichment cache, so later requests for the same song carry
// the energy value. Losing a result to a racing cache write is acceptable;
// the cache is an optimization, not a source of truth.
type Pool struct {
	cache  *cache.Cache
	jobs   chan Job
	wg     sync.WaitGroup
	logger zerolog.Logger
}

// NewPool creates a pool draining into the given enrichment cache.
func NewPool(mediaCache *cache.Cache, queueSize int, logger zerolog.Logger) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{
		cache:  mediaCache,
		jobs:   make(chan Job, queueSize),
		logger: logger,
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Submit queues a job without blocking; a full queue drops the job.
func (p *Pool) Submit(job Job) {
	select {
	case p.jobs <- job:
	default:
		p.logger.Warn().Str("title", job.Title).Msg("worker: queue full, dropping analysis job")
	}
}

// Analyze satisfies the enricher's PreviewAnalyzer hook.
func (p *Pool) Analyze(cacheKey, title, artist, previewURL string) {
	p.Submit(Job{CacheKey: cacheKey, Title: title, Artist: artist, PreviewURL: previewURL})
}

func (p *Pool) processJob(job Job) {
	if job.PreviewURL == "" {
		return
	}

	energy, err := AnalyzePreviewFunc(job.PreviewURL)
	if err != nil {
		p.logger.Warn().Str("title", job.Title).Str("artist", job.Artist).Err(err).Msg("worker: preview analysis failed")
		return
	}

	hit, ok := p.cache.Get(job.CacheKey)
	if !ok {
		return
	}
	links, ok := hit.(domain.MediaLinks)
	if !ok {
		return
	}
	links.PreviewEnergy = &energy
	p.cache.Set(job.CacheKey, links, cache.NoExpiration)

	p.logger.Debug().Str("title", job.Title).Float64("energy", energy).Msg("worker: preview energy recorded")
}
