package ports

// Encoder turns raw text into a fixed-length feature vector. The same
// encoder instance (or at least the same feature space) must be used for
// query encoding and catalog encoding; mixing spaces silently corrupts
// similarity. Implementations must be pure and cheap enough to run per
// request.
type Encoder interface {
	Encode(text string) ([]float64, error)
}
