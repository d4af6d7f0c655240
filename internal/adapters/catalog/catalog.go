// Package catalog loads the song dataset, encodes every entry into the
// shared feature space, and precomputes per-song emotion labels. All of this
// happens once at startup; the resulting index is read-only for the process
// lifetime.
package catalog

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/calliope-labs/moodtune/internal/core/domain"
	"github.com/calliope-labs/moodtune/internal/core/ports"
	"github.com/calliope-labs/moodtune/internal/features"
)

// Row is one raw dataset record before encoding.
type Row struct {
	Title  string
	Artist string
	Lyrics string
}

// Index is the in-memory catalog, shared read-only across requests.
type Index struct {
	songs []domain.Song
}

// compile-time interface assertion
var _ ports.CatalogIndex = (*Index)(nil)

// Songs returns the shared catalog slice. Callers must not mutate it.
func (i *Index) Songs() []domain.Song {
	return i.songs
}

// Size returns the number of loaded songs.
func (i *Index) Size() int {
	return len(i.songs)
}

// Load reads the dataset named by driver ("csv" or "sqlite") and builds the
// index. Rows that fail encoding are dropped here, never at query time.
// classifierLabels is the model's label table; a catalog label outside it is
// a startup failure, not a silent mismatch.
func Load(driver, path string, enc ports.Encoder, classifierLabels []domain.Emotion, logger zerolog.Logger) (*Index, error) {
	var (
		rows []Row
		err  error
	)
	switch driver {
	case "csv":
		rows, err = readCSV(path)
	case "sqlite":
		rows, err = readSQLite(path)
	default:
		return nil, fmt.Errorf("catalog: unknown driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	return New(rows, enc, classifierLabels, logger)
}

// New encodes rows into an Index.
func New(rows []Row, enc ports.Encoder, classifierLabels []domain.Emotion, logger zerolog.Logger) (*Index, error) {
	known := make(map[domain.Emotion]struct{}, len(classifierLabels))
	for _, l := range classifierLabels {
		known[l] = struct{}{}
	}

	songs := make([]domain.Song, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		vec, err := enc.Encode(row.Lyrics)
		if err != nil {
			dropped++
			logger.Debug().
				Str("title", row.Title).
				Str("artist", row.Artist).
				Err(err).
				Msg("catalog: dropping row that failed encoding")
			continue
		}

		sentiment := vec[features.SentimentIndex]
		emotion := domain.EmotionFromSentiment(sentiment)
		if _, ok := known[emotion]; !ok {
			return nil, fmt.Errorf("catalog: song label %q is not in the classifier label table", emotion)
		}

		songs = append(songs, domain.Song{
			Title:     row.Title,
			Artist:    row.Artist,
			Lyrics:    row.Lyrics,
			Features:  vec,
			Sentiment: sentiment,
			Emotion:   emotion,
		})
	}

	if len(songs) == 0 {
		return nil, fmt.Errorf("catalog: no songs survived encoding (%d rows read)", len(rows))
	}

	logger.Info().
		Int("songs", len(songs)).
		Int("dropped", dropped).
		Msg("catalog ready")

	return &Index{songs: songs}, nil
}
