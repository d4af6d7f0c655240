package services

import (
	"context"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/calliope-labs/moodtune/internal/core/domain"
	"github.com/calliope-labs/moodtune/internal/core/ports"
)

const defaultEnrichWorkers = 5

// PreviewAnalyzer receives songs whose enrichment produced a playable
// preview, for background audio analysis.
type PreviewAnalyzer interface {
	Analyze(cacheKey, title, artist, previewURL string)
}

// Enricher attaches external media links to selected songs, memoizing every
// outcome in an injected process-lifetime cache. The cache is the only state
// mutated across requests; go-cache synchronizes access internally, and
// racing writers for one key compute equivalent values, so last-writer-wins
// is acceptable.
type Enricher struct {
	preview  ports.PreviewProvider
	video    ports.VideoProvider
	cache    *cache.Cache
	workers  int
	analyzer PreviewAnalyzer // optional
	logger   zerolog.Logger
}

// NewEnricher constructs an Enricher around an injected cache. analyzer may
// be nil to disable background preview analysis.
func NewEnricher(preview ports.PreviewProvider, video ports.VideoProvider, mediaCache *cache.Cache, workers int, analyzer PreviewAnalyzer, logger zerolog.Logger) *Enricher {
	if workers <= 0 {
		workers = defaultEnrichWorkers
	}
	return &Enricher{
		preview:  preview,
		video:    video,
		cache:    mediaCache,
		workers:  workers,
		analyzer: analyzer,
		logger:   logger,
	}
}

// EnrichAll looks up media links for every pick on a bounded worker group
// and blocks until all return. Results land at their pick's index, so rank
// order is preserved regardless of completion order. Enrichment never fails
// the request: every song comes back, with null media fields at worst.
func (e *Enricher) EnrichAll(ctx context.Context, picks []domain.ScoredSong) []domain.RecommendedSong {
	out := make([]domain.RecommendedSong, len(picks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range picks {
		pick := picks[i]
		idx := i
		g.Go(func() error {
			out[idx] = domain.RecommendedSong{
				Title:      pick.Song.Title,
				Artist:     pick.Song.Artist,
				Similarity: pick.FinalScore,
				Media:      e.Lookup(gctx, pick.Song.Title, pick.Song.Artist),
			}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	return out
}

// Lookup returns media links for one song, cache first. A miss consults the
// preview provider, then the video provider — but only when the primary
// yielded no playable preview. Whatever comes out, including nothing, is
// cached permanently: a fetch failure sticks as a negative result so an
// unresolvable song is never retried.
func (e *Enricher) Lookup(ctx context.Context, title, artist string) domain.MediaLinks {
	key := cacheKey(title, artist)
	if hit, ok := e.cache.Get(key); ok {
		return hit.(domain.MediaLinks)
	}

	// The request deadline already passed; answer with empty links but do
	// not poison the cache for a song no provider was actually asked about.
	if ctx.Err() != nil {
		return domain.MediaLinks{}
	}

	var links domain.MediaLinks
	if e.preview != nil {
		found, err := e.preview.SearchPreview(ctx, title, artist)
		if err != nil {
			e.logger.Warn().Str("title", title).Str("artist", artist).Err(err).Msg("preview enrichment failed")
		} else {
			links = found
		}
	}

	if !links.HasPreview() && e.video != nil {
		found, err := e.video.SearchVideo(ctx, title, artist)
		if err != nil {
			e.logger.Warn().Str("title", title).Str("artist", artist).Err(err).Msg("video enrichment failed")
		} else {
			links.VideoURL = found.VideoURL
			links.VideoEmbedURL = found.VideoEmbedURL
		}
	}

	e.cache.Set(key, links, cache.NoExpiration)

	if e.analyzer != nil && links.HasPreview() {
		e.analyzer.Analyze(key, title, artist, links.PreviewURL)
	}

	return links
}

// cacheKey addresses entries by the raw title/artist pair. Outbound query
// normalization never leaks into the key.
func cacheKey(title, artist string) string {
	return title + "-" + artist
}
