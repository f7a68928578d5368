package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/stijnwollerich/sparksmetrics-website/internal/model"
)

// Index is the post index document. It is read wholesale, mutated in
// memory and written back atomically; concurrent writers are out of
// scope, the pipeline is the only writer.
type Index struct {
	path  string
	posts []model.PostRecord
}

// LoadIndex reads the index from disk. A missing file is an empty index,
// not an error.
func LoadIndex(path string) (*Index, error) {
	idx := &Index{path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return idx, nil
		}
		return nil, fmt.Errorf("read index: %w", err)
	}

	var doc model.PostIndex
	if err := json.Unmarshal(raw, &doc); err != nil {
		// Legacy shape: a bare array of posts
		var posts []model.PostRecord
		if err2 := json.Unmarshal(raw, &posts); err2 != nil {
			return nil, fmt.Errorf("parse index: %w", err)
		}
		idx.posts = posts
		return idx, nil
	}

	idx.posts = doc.Posts
	return idx, nil
}

// Save writes the index back to disk via a temp file and rename, so a
// crash mid-write never leaves a truncated index
func (i *Index) Save() error {
	payload, err := json.MarshalIndent(model.PostIndex{Posts: i.posts}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	payload = append(payload, '\n')

	tmp := i.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	if err := os.Rename(tmp, i.path); err != nil {
		return fmt.Errorf("replace index: %w", err)
	}
	return nil
}

// Posts returns the records, newest first
func (i *Index) Posts() []model.PostRecord {
	return i.posts
}

// Len returns the number of records
func (i *Index) Len() int {
	return len(i.posts)
}

// HasVideo reports whether a post already exists for the video, matching
// by video id or by the id appearing in the stored YouTube URL
func (i *Index) HasVideo(videoID string) bool {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return false
	}
	for _, p := range i.posts {
		if strings.TrimSpace(p.VideoID) == videoID {
			return true
		}
		if strings.Contains(p.YouTubeURL, videoID) {
			return true
		}
	}
	return false
}

// Upsert inserts a post at the front (newest first). An existing record
// with the same slug is replaced in place, so re-publishing a video is
// idempotent.
func (i *Index) Upsert(post model.PostRecord) {
	for n, p := range i.posts {
		if p.Slug == post.Slug {
			i.posts[n] = post
			return
		}
	}
	i.posts = append([]model.PostRecord{post}, i.posts...)
}
