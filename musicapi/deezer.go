package musicapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// ErrUpstream marks failures of the third-party music APIs. Handlers show
// a generic message; nothing is retried.
var ErrUpstream = errors.New("upstream request failed")

// Track is the slice of the Deezer search payload the templates render.
type Track struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Link    string `json:"link"`
	Preview string `json:"preview"`
	Artist  struct {
		Name string `json:"name"`
	} `json:"artist"`
	Album struct {
		Title string `json:"title"`
		Cover string `json:"cover_medium"`
	} `json:"album"`
}

type DeezerClient struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

func NewDeezerClient(apiKey string) *DeezerClient {
	return &DeezerClient{
		APIKey:  apiKey,
		BaseURL: "https://api.deezer.com",
		HTTP:    http.DefaultClient,
	}
}

// SearchTracks proxies a track search. The static API key travels as a
// query parameter, exactly as the upstream expects it.
func (c *DeezerClient) SearchTracks(ctx context.Context, query string) ([]Track, error) {
	params := url.Values{}
	params.Set("q", query)
	if c.APIKey != "" {
		params.Set("apikey", c.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: deezer: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: deezer returned status %d", ErrUpstream, resp.StatusCode)
	}

	var payload struct {
		Data []Track `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: deezer: decoding response: %v", ErrUpstream, err)
	}

	return payload.Data, nil
}
