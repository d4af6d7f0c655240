// Package youtube implements the video-search fallback provider port
// against the YouTube Data API v3.
package youtube

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
	defaultBaseURL = "https://www.googleapis.com/youtube/v3"
	defaultTimeout = 5 * time.Second

	// Standard watch video ids are 11 characters; anything else (shorts,
	// channels) is skipped.
	videoIDLength = 11

	maxResults = "3"
)

// Client is an HTTP client for the YouTube adapter.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// compile-time interface assertion
var _ ports.VideoProvider = (*Client)(nil)

// NewClient constructs a YouTube client.
func NewClient(httpClient *http.Client, baseURL, apiKey string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

// SearchVideo looks up an official video for the song and returns watch and
// embed URLs. No acceptable result yields the zero MediaLinks with a nil
// error.
func (c *Client) SearchVideo(ctx context.Context, title, artist string) (domain.MediaLinks, error) {
	searchURL, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return domain.MediaLinks{}, fmt.Errorf("youtube adapter: invalid search url: %w", err)
	}

	query := searchURL.Query()
	query.Set("part", "snippet")
	query.Set("q", fmt.Sprintf("%s %s official music", search.QueryTerm(artist), search.QueryTerm(title)))
	query.Set("key", c.apiKey)
	query.Set("maxResults", maxResults)
	query.Set("type", "video")
	searchURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL.String(), nil)
	if err != nil {
		return domain.MediaLinks{}, fmt.Errorf("youtube adapter: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.MediaLinks{}, fmt.Errorf("youtube adapter: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.MediaLinks{}, fmt.Errorf("youtube adapter: status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.MediaLinks{}, fmt.Errorf("youtube adapter: decode response: %w", err)
	}

	for _, item := range body.Items {
		id := item.ID.VideoID
		if len(id) != videoIDLength {
			continue
		}
		return domain.MediaLinks{
			VideoURL:      "https://www.youtube.com/watch?v=" + id,
			VideoEmbedURL: "https://www.youtube.com/embed/" + id,
		}, nil
	}

	return domain.MediaLinks{}, nil
}
