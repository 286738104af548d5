package musicapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/oauth2/clientcredentials"
)

// Artist is the slice of the Spotify search payload the templates render.
type Artist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Genres     []string `json:"genres"`
	Popularity int      `json:"popularity"`
	Followers  struct {
		Total int `json:"total"`
	} `json:"followers"`
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
	ExternalURLs map[string]string `json:"external_urls"`
}

type SpotifyClient struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	BaseURL      string
	HTTP         *http.Client
}

func NewSpotifyClient(clientID, clientSecret string) *SpotifyClient {
	return &SpotifyClient{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     "https://accounts.spotify.com/api/token",
		BaseURL:      "https://api.spotify.com",
		HTTP:         http.DefaultClient,
	}
}

// SearchArtists performs the client-credentials flow and then the artist
// search. A fresh token is fetched on every call; nothing is cached
// between requests.
func (c *SpotifyClient) SearchArtists(ctx context.Context, term string) ([]Artist, error) {
	conf := &clientcredentials.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		TokenURL:     c.TokenURL,
	}
	token, err := conf.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: spotify token: %v", ErrUpstream, err)
	}

	params := url.Values{}
	params.Set("q", term)
	params.Set("type", "artist")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: spotify: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: spotify returned status %d", ErrUpstream, resp.StatusCode)
	}

	var payload struct {
		Artists struct {
			Items []Artist `json:"items"`
		} `json:"artists"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: spotify: decoding response: %v", ErrUpstream, err)
	}

	return payload.Artists.Items, nil
}
