package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zmb3/spotify/v2"

	"github.com/WictorCampos/playlist-inteligente/internal/music"
)

func newTestSession(t *testing.T, h http.HandlerFunc) *Session {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	client := spotify.New(srv.Client(), spotify.WithBaseURL(srv.URL+"/"))
	return NewSession(client, nil)
}

func TestSearchTracks(t *testing.T) {
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Fatalf("path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != `genre:"rock"` || q.Get("type") != "track" || q.Get("limit") != "4" || q.Get("market") != "BR" {
			t.Fatalf("query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"tracks":{"items":[
			{"id":"1","uri":"spotify:track:1","name":"Yellow","popularity":80,"artists":[{"name":"Coldplay"}]},
			{"id":"2","uri":"spotify:track:2","name":"Fix You","popularity":60,"artists":[{"name":"Coldplay"},{"name":"Guest"}]}
		],"total":2}}`)
	})

	tracks, err := s.SearchTracks(context.Background(), `genre:"rock"`, 4, "BR")
	if err != nil {
		t.Fatalf("SearchTracks: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("tracks: %+v", tracks)
	}
	if tracks[0].URI != "spotify:track:1" || tracks[0].Popularity != 80 || tracks[1].Artists[1] != "Guest" {
		t.Fatalf("tracks: %+v", tracks)
	}
}

func TestSearchTracksClassifiesErrors(t *testing.T) {
	status := http.StatusTooManyRequests
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, `{"error":{"status":`+itoa(status)+`,"message":"nope"}}`)
	})

	_, err := s.SearchTracks(context.Background(), "x", 1, "")
	if !IsTransient(err) {
		t.Fatalf("429 should be transient: %v", err)
	}

	status = http.StatusBadRequest
	_, err = s.SearchTracks(context.Background(), "x", 1, "")
	if err == nil || IsTransient(err) {
		t.Fatalf("400 should be permanent: %v", err)
	}
}

func TestPublishCalls(t *testing.T) {
	var added []string
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/me":
			_, _ = io.WriteString(w, `{"id":"wictor"}`)
		case r.Method == http.MethodPost && r.URL.Path == "/users/wictor/playlists":
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["name"] != "Good Vibes" || body["public"] != true {
				t.Fatalf("create body: %v", body)
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"id":"pl1","name":"Good Vibes","external_urls":{"spotify":"https://open.spotify.com/playlist/pl1"}}`)
		case r.Method == http.MethodPost && r.URL.Path == "/playlists/pl1/tracks":
			var body struct {
				URIs []string `json:"uris"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			added = append(added, body.URIs...)
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"snapshot_id":"s1"}`)
		default:
			t.Fatalf("unexpected call %s %s", r.Method, r.URL.Path)
		}
	})
	ctx := context.Background()

	id, err := s.CurrentUserID(ctx)
	if err != nil || id != "wictor" {
		t.Fatalf("CurrentUserID: %q %v", id, err)
	}
	pl, err := s.CreatePlaylist(ctx, id, "Good Vibes", "mood: feliz", true)
	if err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}
	if pl.ID != "pl1" || pl.URL != "https://open.spotify.com/playlist/pl1" {
		t.Fatalf("playlist: %+v", pl)
	}
	err = s.AddTracks(ctx, pl.ID, []music.Track{{ID: "a", URI: "spotify:track:a"}, {URI: "spotify:track:b"}})
	if err != nil {
		t.Fatalf("AddTracks: %v", err)
	}
	if strings.Join(added, ",") != "spotify:track:a,spotify:track:b" {
		t.Fatalf("added: %v", added)
	}
}

func TestUserCallsNeedLogin(t *testing.T) {
	s := NewSession(nil, nil)
	if _, err := s.CurrentUserID(context.Background()); err == nil {
		t.Fatalf("expected error without user client")
	}
	if _, err := s.SearchTracks(context.Background(), "x", 1, ""); err == nil {
		t.Fatalf("expected error without any client")
	}
}

func TestClassify(t *testing.T) {
	if classify(nil) != nil {
		t.Fatalf("nil stays nil")
	}
	if !IsTransient(classify(context.DeadlineExceeded)) {
		t.Fatalf("deadline should be transient")
	}
	if !IsTransient(classify(spotify.Error{Status: 503})) {
		t.Fatalf("503 should be transient")
	}
	if IsTransient(classify(spotify.Error{Status: 404})) {
		t.Fatalf("404 should not be transient")
	}
	if IsTransient(classify(errors.New("bad"))) {
		t.Fatalf("plain error should not be transient")
	}
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}
