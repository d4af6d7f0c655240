package ports

import (
	"context"

	"github.com/calliope-labs/moodtune/internal/core/domain"
)

// PreviewProvider searches an external catalog for a track page, audio
// preview and album art. An empty result with a nil error means the provider
// answered but found nothing usable.
type PreviewProvider interface {
	SearchPreview(ctx context.Context, title, artist string) (domain.MediaLinks, error)
}

// VideoProvider searches an external video catalog. Consulted only as a
// fallback when the preview provider yields no playable preview.
type VideoProvider interface {
	SearchVideo(ctx context.Context, title, artist string) (domain.MediaLinks, error)
}
