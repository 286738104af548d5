package handlers

import (
	"log"
	"net/http"

	"tuneboard/musicapi"
)

type MusicHandler struct {
	Deezer   *musicapi.DeezerClient
	Spotify  *musicapi.SpotifyClient
	Renderer *Renderer
}

func (h *MusicHandler) MusicPage(w http.ResponseWriter, r *http.Request) {
	h.Renderer.HTML(w, r, http.StatusOK, "search", map[string]interface{}{
		"Tracks": []musicapi.Track{},
	})
}

// MusicSearch proxies the track query to Deezer and renders the results.
func (h *MusicHandler) MusicSearch(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.Deezer.SearchTracks(r.Context(), r.URL.Query().Get("track"))
	if err != nil {
		log.Printf("deezer search: %v", err)
		w.Write([]byte("Error occurred"))
		return
	}

	h.Renderer.HTML(w, r, http.StatusOK, "search", map[string]interface{}{
		"Tracks": tracks,
	})
}

func (h *MusicHandler) ArtistPage(w http.ResponseWriter, r *http.Request) {
	h.Renderer.HTML(w, r, http.StatusOK, "artists", map[string]interface{}{
		"Artists": []musicapi.Artist{},
	})
}

// ArtistResult runs the Spotify client-credentials flow and the artist
// search; a fresh token is fetched for every request.
func (h *MusicHandler) ArtistResult(w http.ResponseWriter, r *http.Request) {
	artists, err := h.Spotify.SearchArtists(r.Context(), r.URL.Query().Get("artist"))
	if err != nil {
		log.Printf("spotify search: %v", err)
		w.Write([]byte("Error occurred"))
		return
	}

	h.Renderer.HTML(w, r, http.StatusOK, "artists", map[string]interface{}{
		"Artists": artists,
	})
}
