package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/stijnwollerich/sparksmetrics-website/internal/model"
)

func testFetcher(transcriptURL, apiKey string) *Fetcher {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = 5 * time.Second
	cfg.Transcript.BaseURL = transcriptURL
	cfg.Transcript.APIKey = apiKey
	return NewFetcher(cfg, nil, nil)
}

func TestFetchTranscript_PlainText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("videoId") != "dQw4w9WgXcQ" {
			t.Errorf("expected videoId query param, got %q", r.URL.RawQuery)
		}
		if r.URL.Query().Get("text") != "true" {
			t.Error("expected text=true query param")
		}
		if r.Header.Get("x-api-key") != "secret" {
			t.Errorf("expected api key header, got %q", r.Header.Get("x-api-key"))
		}
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("  hello from the video  "))
	}))
	defer server.Close()

	f := testFetcher(server.URL, "secret")
	got := f.FetchTranscript(context.Background(), "dQw4w9WgXcQ")
	if got != "hello from the video" {
		t.Errorf("expected trimmed transcript, got %q", got)
	}
}

func TestFetchTranscript_JSONWrapper(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content": "wrapped transcript text"}`))
	}))
	defer server.Close()

	f := testFetcher(server.URL, "")
	got := f.FetchTranscript(context.Background(), "dQw4w9WgXcQ")
	if got != "wrapped transcript text" {
		t.Errorf("expected unwrapped content, got %q", got)
	}
}

func TestFetchTranscript_FailuresYieldEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	tests := []struct {
		name    string
		fetcher *Fetcher
		videoID string
	}{
		{"http error", testFetcher(server.URL, ""), "dQw4w9WgXcQ"},
		{"no base url", testFetcher("", ""), "dQw4w9WgXcQ"},
		{"empty video id", testFetcher(server.URL, ""), ""},
	}

	for _, tt := range tests {
		if got := tt.fetcher.FetchTranscript(context.Background(), tt.videoID); got != "" {
			t.Errorf("%s: expected empty transcript, got %q", tt.name, got)
		}
	}
}

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015" xmlns="http://www.w3.org/2005/Atom">
  <title>Channel uploads</title>
  <entry>
    <id>yt:video:dQw4w9WgXcQ</id>
    <yt:videoId>dQw4w9WgXcQ</yt:videoId>
    <title>First upload</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=dQw4w9WgXcQ"/>
    <published>2026-02-11T10:00:00+00:00</published>
  </entry>
  <entry>
    <id>yt:video:abcdefghijk</id>
    <yt:videoId>abcdefghijk</yt:videoId>
    <title>Second upload</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=abcdefghijk"/>
    <published>2026-02-10T10:00:00+00:00</published>
  </entry>
</feed>`

func TestVideosFromFeed(t *testing.T) {
	feed, err := gofeed.NewParser().ParseString(sampleFeed)
	if err != nil {
		t.Fatalf("parse feed: %v", err)
	}

	videos := videosFromFeed(feed)
	if len(videos) != 2 {
		t.Fatalf("expected 2 videos, got %d", len(videos))
	}

	first := videos[0]
	if first.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("expected video id from yt extension, got %q", first.VideoID)
	}
	if first.Title != "First upload" {
		t.Errorf("unexpected title: %q", first.Title)
	}
	if !strings.Contains(first.URL, "dQw4w9WgXcQ") {
		t.Errorf("unexpected link: %q", first.URL)
	}
	if first.Published != "11 Feb 2026" {
		t.Errorf("expected formatted publish date, got %q", first.Published)
	}
}

func TestVideosFromFeed_SkipsItemsWithoutID(t *testing.T) {
	raw := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Channel uploads</title>
  <entry>
    <id>something-else</id>
    <title>No video id</title>
  </entry>
</feed>`
	feed, err := gofeed.NewParser().ParseString(raw)
	if err != nil {
		t.Fatalf("parse feed: %v", err)
	}
	if videos := videosFromFeed(feed); len(videos) != 0 {
		t.Errorf("expected no videos, got %d", len(videos))
	}
}

func TestCapVideos(t *testing.T) {
	videos := []model.Video{{VideoID: "a"}, {VideoID: "b"}, {VideoID: "c"}}
	if got := capVideos(videos, 2); len(got) != 2 {
		t.Errorf("expected cap at 2, got %d", len(got))
	}
	if got := capVideos(videos, 5); len(got) != 3 {
		t.Errorf("expected all 3, got %d", len(got))
	}
}
