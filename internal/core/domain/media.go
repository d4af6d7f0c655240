package domain

// MediaLinks holds the external media references attached to a recommended
// song during enrichment. Empty string fields mean the provider had nothing;
// they are serialized as JSON null by the REST layer.
type MediaLinks struct {
	TrackURL      string // provider's track page
	PreviewURL    string // short audio preview
	AlbumImage    string
	VideoURL      string // video page, fallback provider
	VideoEmbedURL string

	// PreviewEnergy is filled in asynchronously by the preview analyzer once
	// the preview audio has been decoded; nil until then.
	PreviewEnergy *float64
}

// HasPreview reports whether the primary provider yielded a playable preview.
func (m MediaLinks) HasPreview() bool {
	return m.PreviewURL != ""
}
