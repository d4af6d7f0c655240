// Package spotify implements the audio-preview provider port against the
// Spotify Web API, authenticating with the client-credentials flow.
package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/calliope-labs/moodtune/internal/adapters/search"
	"github.com/calliope-labs/moodtune/internal/core/domain"
	"github.com/calliope-labs/moodtune/internal/core/ports"
)

const (
	defaultBaseURL = "https://api.spotify.com"
	tokenURL       = "https://accounts.spotify.com/api/token"
	defaultTimeout = 5 * time.Second

	searchLimit = "5"
)

// Client is an HTTP client for the Spotify adapter.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// compile-time interface assertion
var _ ports.PreviewProvider = (*Client)(nil)

// NewClient constructs a Spotify client using the client-credentials token
// flow. The oauth2 transport refreshes tokens transparently.
func NewClient(clientID, clientSecret, baseURL string) *Client {
	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	httpClient := conf.Client(context.Background())
	httpClient.Timeout = defaultTimeout

	return newClient(httpClient, baseURL)
}

// NewClientWithHTTP constructs a Client around a caller-supplied HTTP
// client. Intended for tests against a stub server.
func NewClientWithHTTP(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return newClient(httpClient, baseURL)
}

func newClient(httpClient *http.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

type spotifyTrack struct {
	PreviewURL   string `json:"preview_url"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
	Album struct {
		Images []struct {
			URL string `json:"url"`
		} `json:"images"`
	} `json:"album"`
}

type searchResponse struct {
	Tracks struct {
		Items []spotifyTrack `json:"items"`
	} `json:"tracks"`
}

// SearchPreview searches for the track and returns the first result carrying
// a playable preview, falling back to the top result's page link when none
// of them do.
func (c *Client) SearchPreview(ctx context.Context, title, artist string) (domain.MediaLinks, error) {
	searchURL, err := url.Parse(c.baseURL + "/v1/search")
	if err != nil {
		return domain.MediaLinks{}, fmt.Errorf("spotify adapter: invalid search url: %w", err)
	}

	query := searchURL.Query()
	query.Set("q", fmt.Sprintf("track:%s artist:%s", search.QueryTerm(title), search.QueryTerm(artist)))
	query.Set("type", "track")
	query.Set("limit", searchLimit)
	searchURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL.String(), nil)
	if err != nil {
		return domain.MediaLinks{}, fmt.Errorf("spotify adapter: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.MediaLinks{}, fmt.Errorf("spotify adapter: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.MediaLinks{}, fmt.Errorf("spotify adapter: status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.MediaLinks{}, fmt.Errorf("spotify adapter: decode response: %w", err)
	}

	items := body.Tracks.Items
	if len(items) == 0 {
		return domain.MediaLinks{}, nil
	}

	best := items[0]
	for _, item := range items {
		if item.PreviewURL != "" {
			best = item
			break
		}
	}

	links := domain.MediaLinks{
		TrackURL:   best.ExternalURLs.Spotify,
		PreviewURL: best.PreviewURL,
	}
	if len(best.Album.Images) > 0 {
		// middle image is the medium-resolution cover when several sizes exist
		links.AlbumImage = best.Album.Images[len(best.Album.Images)/2].URL
	}

	return links, nil
}
