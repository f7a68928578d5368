package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/stijnwollerich/sparksmetrics-website/internal/cache"
	"github.com/stijnwollerich/sparksmetrics-website/internal/model"
	"github.com/stijnwollerich/sparksmetrics-website/internal/util"
	"github.com/stijnwollerich/sparksmetrics-website/internal/worker"
)

const feedURLFormat = "https://www.youtube.com/feeds/videos.xml?channel_id=%s"

// publishedFormat renders dates the way the site shows them, e.g. "11 Feb 2026"
const publishedFormat = "2 Jan 2006"

var videoIDRe = regexp.MustCompile(`(?:v=|youtu\.be/|/embed/)([A-Za-z0-9_-]{11})`)
var bareVideoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ExtractVideoID pulls an 11-char YouTube video id out of a raw id or any
// common URL form. Returns "" when nothing parseable is found.
func ExtractVideoID(s string) string {
	s = strings.TrimSpace(s)
	if m := videoIDRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	if bareVideoIDRe.MatchString(s) {
		return s
	}
	return ""
}

// Fetcher retrieves channel uploads from the YouTube RSS feed and video
// transcripts from the transcript API. Both go through the layered cache
// and the per-host rate limiter.
type Fetcher struct {
	feedParser *gofeed.Parser
	httpClient *http.Client
	limiter    *worker.Limiter
	cache      cache.Cache
	userAgent  string
	maxBytes   int64
	transcript model.TranscriptConfig
	feedTTL    time.Duration
	transTTL   time.Duration
	verbose    bool
}

// NewFetcher creates a fetcher. The cache may be nil to disable caching
// (dry runs, tests).
func NewFetcher(cfg *model.Config, limiter *worker.Limiter, store cache.Cache) *Fetcher {
	client := &http.Client{
		Timeout: cfg.HTTP.Timeout,
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 3 {
				return fmt.Errorf("stopped after 3 redirects")
			}
			return nil
		},
	}

	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = cfg.HTTP.UserAgent

	return &Fetcher{
		feedParser: parser,
		httpClient: client,
		limiter:    limiter,
		cache:      store,
		userAgent:  cfg.HTTP.UserAgent,
		maxBytes:   cfg.HTTP.MaxBodyBytes,
		transcript: cfg.Transcript,
		feedTTL:    cfg.Cache.FeedTTL,
		transTTL:   cfg.Cache.TranscriptTTL,
		verbose:    cfg.Output.Verbose,
	}
}

// LatestVideos fetches the newest uploads for a channel, newest first,
// capped at maxResults
func (f *Fetcher) LatestVideos(ctx context.Context, channelID string, maxResults int) ([]model.Video, error) {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return nil, fmt.Errorf("missing channel id")
	}
	if maxResults < 1 {
		maxResults = 1
	}

	feedURL := fmt.Sprintf(feedURLFormat, channelID)

	key := cache.Key("feed", channelID)
	if f.cache != nil {
		if raw, ok := f.cache.Get(key); ok {
			var videos []model.Video
			if err := json.Unmarshal(raw, &videos); err == nil {
				return capVideos(videos, maxResults), nil
			}
		}
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, feedURL); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	feed, err := f.feedParser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}

	videos := videosFromFeed(feed)
	if f.cache != nil && len(videos) > 0 {
		if raw, err := json.Marshal(videos); err == nil {
			_ = f.cache.Set(key, raw, f.feedTTL)
		}
	}

	return capVideos(videos, maxResults), nil
}

func capVideos(videos []model.Video, n int) []model.Video {
	if len(videos) > n {
		return videos[:n]
	}
	return videos
}

func videosFromFeed(feed *gofeed.Feed) []model.Video {
	videos := make([]model.Video, 0, len(feed.Items))
	for _, item := range feed.Items {
		id := videoIDFromItem(item)
		if id == "" {
			continue
		}

		title := strings.TrimSpace(item.Title)
		if title == "" {
			title = id
		}

		link := strings.TrimSpace(item.Link)
		if link == "" {
			link = "https://youtu.be/" + id
		}

		published := time.Now().UTC()
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		}

		videos = append(videos, model.Video{
			VideoID:   id,
			Title:     title,
			URL:       link,
			Published: published.Format(publishedFormat),
		})
	}
	return videos
}

// videoIDFromItem reads the yt:videoId extension, falling back to the
// GUID which YouTube writes as "yt:video:<id>"
func videoIDFromItem(item *gofeed.Item) string {
	if ext, ok := item.Extensions["yt"]; ok {
		if ids, ok := ext["videoId"]; ok && len(ids) > 0 {
			if id := strings.TrimSpace(ids[0].Value); id != "" {
				return id
			}
		}
	}
	if strings.HasPrefix(item.GUID, "yt:video:") {
		return strings.TrimSpace(strings.TrimPrefix(item.GUID, "yt:video:"))
	}
	return ""
}

// FetchTranscript fetches the plain-text transcript for a video. Any
// failure yields an empty transcript: the pipeline falls back to its
// deterministic draft rather than skipping the video.
func (f *Fetcher) FetchTranscript(ctx context.Context, videoID string) string {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" || f.transcript.BaseURL == "" {
		return ""
	}

	key := cache.Key("transcript", videoID)
	if f.cache != nil {
		if raw, ok := f.cache.Get(key); ok {
			return string(raw)
		}
	}

	text, err := f.requestTranscript(ctx, videoID)
	if err != nil {
		if f.verbose {
			fmt.Fprintf(os.Stderr, "Warning: transcript unavailable for %s: %v\n", videoID, err)
		}
		return ""
	}

	if f.cache != nil && text != "" {
		_ = f.cache.Set(key, []byte(text), f.transTTL)
	}
	return text
}

func (f *Fetcher) requestTranscript(ctx context.Context, videoID string) (string, error) {
	reqURL := fmt.Sprintf("%s?videoId=%s&text=true", strings.TrimRight(f.transcript.BaseURL, "/"), videoID)

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, reqURL); err != nil {
			return "", fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/plain,application/json")
	if f.transcript.APIKey != "" {
		req.Header.Set("x-api-key", f.transcript.APIKey)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch transcript: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	// The API returns either the raw text or a JSON wrapper with a
	// content field
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		var wrapper struct {
			Content    string `json:"content"`
			Text       string `json:"text"`
			Transcript string `json:"transcript"`
		}
		if err := json.Unmarshal(body, &wrapper); err != nil {
			return "", fmt.Errorf("decode transcript: %w", err)
		}
		for _, v := range []string{wrapper.Content, wrapper.Text, wrapper.Transcript} {
			if strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v), nil
			}
		}
		return "", nil
	}

	return strings.TrimSpace(string(body)), nil
}
