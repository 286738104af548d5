package musicapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchTracks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "eminem", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[
			{"id":1,"title":"Lose Yourself","link":"https://example.com/1",
			 "preview":"https://example.com/1.mp3",
			 "artist":{"name":"Eminem"},
			 "album":{"title":"8 Mile","cover_medium":"https://example.com/1.jpg"}},
			{"id":2,"title":"Stan","artist":{"name":"Eminem"},"album":{"title":"TMMLP"}}
		]}`))
	}))
	defer srv.Close()

	c := NewDeezerClient("test-key")
	c.BaseURL = srv.URL

	tracks, err := c.SearchTracks(context.Background(), "eminem")
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, "Lose Yourself", tracks[0].Title)
	assert.Equal(t, "Eminem", tracks[0].Artist.Name)
	assert.Equal(t, "8 Mile", tracks[0].Album.Title)
	assert.Equal(t, "https://example.com/1.jpg", tracks[0].Album.Cover)
}

func TestSearchTracksOmitsEmptyAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.URL.Query()["apikey"]
		assert.False(t, present)
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := NewDeezerClient("")
	c.BaseURL = srv.URL

	tracks, err := c.SearchTracks(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, tracks)
}

func TestSearchTracksUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewDeezerClient("test-key")
	c.BaseURL = srv.URL

	_, err := c.SearchTracks(context.Background(), "eminem")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestSearchTracksBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := NewDeezerClient("test-key")
	c.BaseURL = srv.URL

	_, err := c.SearchTracks(context.Background(), "eminem")
	assert.ErrorIs(t, err, ErrUpstream)
}
