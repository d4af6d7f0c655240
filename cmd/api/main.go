package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/calliope-labs/moodtune/internal/adapters/catalog"
	"github.com/calliope-labs/moodtune/internal/adapters/deezer"
	"github.com/calliope-labs/moodtune/internal/adapters/forest"
	"github.com/calliope-labs/moodtune/internal/adapters/rest"
	"github.com/calliope-labs/moodtune/internal/adapters/spotify"
	"github.com/calliope-labs/moodtune/internal/adapters/youtube"
	"github.com/calliope-labs/moodtune/internal/config"
	"github.com/calliope-labs/moodtune/internal/core/ports"
	"github.com/calliope-labs/moodtune/internal/core/services"
	"github.com/calliope-labs/moodtune/internal/features"
	"github.com/calliope-labs/moodtune/internal/worker"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// 1. Configuration. Crash early if anything required is missing.
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("configuration failed")
	}

	// 2. Model artifacts and catalog. Load failures are fatal at startup,
	// never surfaced per request.
	encoder := features.NewExtractor()

	classifier, err := forest.Load(cfg.ModelPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load classifier model")
	}

	index, err := catalog.Load(cfg.Catalog.Driver, cfg.Catalog.Path, encoder, classifier.Labels(), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load catalog")
	}

	// 3. Enrichment: one process-lifetime cache, injected everywhere it is
	// needed, never evicted.
	mediaCache := cache.New(cache.NoExpiration, 0)

	providerTimeout := time.Duration(cfg.Enrich.ProviderTimeoutMs) * time.Millisecond
	providerClient := &http.Client{Timeout: providerTimeout}

	var preview ports.PreviewProvider
	switch cfg.Enrich.PreviewProvider {
	case "spotify":
		preview = spotify.NewClient(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, "")
	default:
		preview = deezer.NewClient(providerClient, "")
	}

	var video ports.VideoProvider
	if cfg.YouTubeAPIKey != "" {
		video = youtube.NewClient(providerClient, "", cfg.YouTubeAPIKey)
	} else {
		logger.Warn().Msg("MOOD_YOUTUBE_API_KEY not set, video fallback disabled")
	}

	var analyzer services.PreviewAnalyzer
	if cfg.Enrich.AnalyzerWorkers > 0 {
		pool := worker.NewPool(mediaCache, cfg.Enrich.AnalyzerQueue, logger)
		pool.Start(cfg.Enrich.AnalyzerWorkers)
		defer pool.Stop()
		analyzer = pool
	}

	enricher := services.NewEnricher(preview, video, mediaCache, cfg.Enrich.Workers, analyzer, logger)

	// 4. Core engine.
	scorer := services.NewScorer(cfg.Recommend.SimilarityWeight, cfg.Recommend.AdjustWeight, cfg.Recommend.MinEmotionPool)
	if cfg.Recommend.NoiseAmplitude > 0 {
		scorer.EnableNoise(cfg.Recommend.NoiseAmplitude, cfg.Recommend.NoiseSeed)
	}

	svc := services.NewOrchestrator(
		encoder,
		classifier,
		index,
		scorer,
		enricher,
		cfg.Recommend.TopN,
		cfg.Recommend.CandidatePool,
		time.Duration(cfg.Enrich.RequestTimeoutMs)*time.Millisecond,
		cfg.ModelVersion,
		logger,
	)

	handler := rest.NewHandler(svc, logger, cfg.ModelVersion, cfg.AllowedOrigins)

	// 5. Serve with graceful shutdown.
	logger.Info().
		Str("addr", cfg.Addr).
		Str("model_version", cfg.ModelVersion).
		Int("songs", index.Size()).
		Msg("moodtune API starting")

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Fatal().Err(err).Msg("server failed")
		}
	case <-ctx.Done():
		logger.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown error")
		}
	}
}
