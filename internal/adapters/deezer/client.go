// Package deezer implements the audio-preview provider port against the
// Deezer public search API.
package deezer

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/calliope-labs/moodtune/internal/adapters/search"
	"github.com/calliope-labs/moodtune/internal/core/domain"
	"github.com/calliope-labs/moodtune/internal/core/ports"
)

const (
	defaultBaseURL = "https://api.deezer.com"
	defaultTimeout = 5 * time.Second
)

// Client is an HTTP client for the Deezer adapter.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// compile-time interface assertion
var _ ports.PreviewProvider = (*Client)(nil)

// NewClient constructs a Deezer client. A nil httpClient gets a short fixed
// timeout; an empty baseURL targets the public API.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

type searchResponse struct {
	Data []struct {
		Link    string `json:"link"`
		Preview string `json:"preview"`
		Album   struct {
			CoverMedium string `json:"cover_medium"`
		} `json:"album"`
	} `json:"data"`
}

// SearchPreview looks up a track page, preview and album art for the song.
// An empty result list is not an error: the zero MediaLinks signals the
// caller to try the fallback provider.
func (c *Client) SearchPreview(ctx context.Context, title, artist string) (domain.MediaLinks, error) {
	searchURL, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return domain.MediaLinks{}, fmt.Errorf("deezer adapter: invalid search url: %w", err)
	}

	query := searchURL.Query()
	query.Set("q", fmt.Sprintf("track:%q artist:%q", search.QueryTerm(title), search.QueryTerm(artist)))
	searchURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL.String(), nil)
	if err != nil {
		return domain.MediaLinks{}, fmt.Errorf("deezer adapter: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.MediaLinks{}, fmt.Errorf("deezer adapter: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.MediaLinks{}, fmt.Errorf("deezer adapter: status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.MediaLinks{}, fmt.Errorf("deezer adapter: decode response: %w", err)
	}

	if len(body.Data) == 0 {
		return domain.MediaLinks{}, nil
	}

	track := body.Data[0]
	return domain.MediaLinks{
		TrackURL:   track.Link,
		PreviewURL: track.Preview,
		AlbumImage: track.Album.CoverMedium,
	}, nil
}
