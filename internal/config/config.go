// Package config loads service configuration from defaults and MOOD_*
// environment variables, with an optional local .env file.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Catalog selects the dataset source.
type Catalog struct {
	Driver string `koanf:"driver"` // "csv" or "sqlite"
	Path   string `koanf:"path"`
}

// Recommend tunes the scoring and selection stages.
type Recommend struct {
	TopN             int     `koanf:"top_n"`
	CandidatePool    int     `koanf:"candidate_pool"`
	MinEmotionPool   int     `koanf:"min_emotion_pool"`
	SimilarityWeight float64 `koanf:"similarity_weight"`
	AdjustWeight     float64 `koanf:"adjust_weight"`

	// NoiseAmplitude > 0 injects seeded symmetric score noise, trading exact
	// reproducibility for varied top-N on repeated identical queries.
	NoiseAmplitude float64 `koanf:"noise_amplitude"`
	NoiseSeed      int64   `koanf:"noise_seed"`
}

// Enrich tunes the media enrichment stage.
type Enrich struct {
	Workers           int    `koanf:"workers"`
	ProviderTimeoutMs int    `koanf:"provider_timeout_ms"`
	RequestTimeoutMs  int    `koanf:"request_timeout_ms"`
	PreviewProvider   string `koanf:"preview_provider"` // "deezer" or "spotify"
	AnalyzerWorkers   int    `koanf:"analyzer_workers"` // 0 disables preview analysis
	AnalyzerQueue     int    `koanf:"analyzer_queue"`
}

// Spotify holds client-credentials secrets for the optional Spotify
// preview provider.
type Spotify struct {
	ClientID     string `koanf:"client_id"`
	ClientSecret string `koanf:"client_secret"`
}

// Config is the full service configuration.
type Config struct {
	Addr           string   `koanf:"addr"`
	AllowedOrigins []string `koanf:"allowed_origins"`
	ModelVersion   string   `koanf:"model_version"`
	ModelPath      string   `koanf:"model_path"`

	Catalog   Catalog   `koanf:"catalog"`
	Recommend Recommend `koanf:"recommend"`
	Enrich    Enrich    `koanf:"enrich"`

	YouTubeAPIKey string  `koanf:"youtube_api_key"`
	Spotify       Spotify `koanf:"spotify"`
}

func defaults() Config {
	return Config{
		Addr:           ":8000",
		AllowedOrigins: []string{"http://localhost:5173"},
		ModelVersion:   "1.5.0",
		ModelPath:      "model/forest.json",
		Catalog: Catalog{
			Driver: "csv",
			Path:   "data/lyrics_final_clean.csv",
		},
		Recommend: Recommend{
			TopN:             5,
			CandidatePool:    60,
			MinEmotionPool:   10,
			SimilarityWeight: 0.65,
			AdjustWeight:     0.35,
		},
		Enrich: Enrich{
			Workers:           5,
			ProviderTimeoutMs: 5000,
			RequestTimeoutMs:  10000,
			PreviewProvider:   "deezer",
			AnalyzerQueue:     100,
		},
	}
}

// Load builds the configuration. A .env file in the working directory is
// read first when present. Environment keys use the MOOD_ prefix with a
// double underscore as the section separator, e.g. MOOD_CATALOG__PATH,
// MOOD_RECOMMEND__TOP_N, MOOD_YOUTUBE_API_KEY.
func Load() (Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("config: load defaults: %w", err)
	}

	if err := k.Load(env.Provider("MOOD_", ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("config: load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envKey(raw string) string {
	trimmed := strings.TrimPrefix(raw, "MOOD_")
	return strings.ReplaceAll(strings.ToLower(trimmed), "__", ".")
}

func (c Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("config: addr must not be empty")
	}
	switch c.Catalog.Driver {
	case "csv", "sqlite":
	default:
		return fmt.Errorf("config: unknown catalog driver %q", c.Catalog.Driver)
	}
	switch c.Enrich.PreviewProvider {
	case "deezer":
	case "spotify":
		if c.Spotify.ClientID == "" || c.Spotify.ClientSecret == "" {
			return fmt.Errorf("config: spotify preview provider requires client credentials")
		}
	default:
		return fmt.Errorf("config: unknown preview provider %q", c.Enrich.PreviewProvider)
	}
	return nil
}
