package ports

import "github.com/calliope-labs/moodtune/internal/core/domain"

// CatalogIndex exposes the in-memory song catalog. The returned slice is
// shared read-only across concurrent requests and must not be mutated.
type CatalogIndex interface {
	Songs() []domain.Song
}
